// Package snapshot provides the static fallback document: a bundled copy of
// every analytics API response, keyed the same way the backend's cache is.
package snapshot

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed mockData.json
var embeddedDocument []byte

// Top-level keys of the snapshot document.
const (
	KeyOverview         = "overview"
	KeyEventPerformance = "event_performance"
	KeyStandPerformance = "stand_performance"
	KeyPredictions      = "march5_predictions"
	KeyStaffing         = "staffing_recommendations"
	KeyHistoricalData   = "historical_data"
	KeyRiskAssessment   = "risk_assessment"
)

var (
	ErrMissing = errors.New("resource not present in snapshot")
	ErrEmpty   = errors.New("snapshot document is empty")
)

// Document maps a top-level key to its raw JSON value.
type Document map[string]json.RawMessage

// Store is a source of snapshot payloads.
type Store interface {
	Lookup(ctx context.Context, key string) (json.RawMessage, error)
	Name() string
}

// Parse decodes a snapshot document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if len(doc) == 0 {
		return nil, ErrEmpty
	}
	return doc, nil
}

// Embedded returns the document compiled into the binary.
func Embedded() (Document, error) {
	return Parse(embeddedDocument)
}

// LoadFile reads a snapshot document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return Parse(data)
}

// MemoryStore serves a parsed document held in memory.
type MemoryStore struct {
	doc  Document
	name string
}

func NewMemoryStore(doc Document, name string) *MemoryStore {
	return &MemoryStore{doc: doc, name: name}
}

func (s *MemoryStore) Lookup(_ context.Context, key string) (json.RawMessage, error) {
	payload, ok := s.doc[key]
	if !ok || len(payload) == 0 {
		return nil, fmt.Errorf("%s: %w", key, ErrMissing)
	}
	return payload, nil
}

func (s *MemoryStore) Name() string {
	return s.name
}
