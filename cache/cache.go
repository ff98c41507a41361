package cache

import (
	"encoding/json"
	"time"

	"arena-dashboard/config"
	"arena-dashboard/model"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

// Cache wraps Ristretto with payload-oriented helpers for live API responses
type Cache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

// New creates a new cache instance with the given configuration
func New(cfg config.CacheConfig) (*Cache, error) {
	// Calculate max cost in bytes (convert MB to bytes)
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize), // Number of keys to track frequency for admission
		MaxCost:     maxCost,                 // Maximum cache size in bytes
		BufferItems: 64,                      // Number of keys per Get buffer
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", cfg.MaxSizeMB).
		Int("ttl_seconds", cfg.TTLSeconds).
		Int("counter_size", cfg.CounterSize).
		Msg("Cache initialized successfully")

	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

// Get retrieves a payload from the cache
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	v, found := c.client.Get(key)
	if !found {
		return nil, false
	}
	payload, ok := v.(json.RawMessage)
	return payload, ok
}

// Set stores a payload with the configured TTL; cost is the payload size in bytes
func (c *Cache) Set(key string, payload json.RawMessage) bool {
	if c == nil || c.client == nil {
		return false
	}
	ok := c.client.SetWithTTL(key, payload, int64(len(payload)), c.ttl)
	// Sets are buffered; make the entry visible to the next request.
	c.client.Wait()
	return ok
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(key)
}

// Clear drops every entry
func (c *Cache) Clear() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Clear()
}

// Close cleanly shuts down the cache
func (c *Cache) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
		log.Info().Msg("Cache closed")
	}
}

// GetMetricsSnapshot returns current cache metrics as a snapshot
func (c *Cache) GetMetricsSnapshot() model.CacheMetricsResponse {
	if c == nil {
		return model.CacheMetricsResponse{}
	}
	if c.client == nil || c.client.Metrics == nil {
		return model.CacheMetricsResponse{TTLSeconds: int(c.ttl.Seconds())}
	}

	m := c.client.Metrics
	hits := m.Hits()
	misses := m.Misses()
	total := hits + misses

	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return model.CacheMetricsResponse{
		Hits:         hits,
		Misses:       misses,
		KeysAdded:    m.KeysAdded(),
		KeysEvicted:  m.KeysEvicted(),
		SetsDropped:  m.SetsDropped(),
		SetsRejected: m.SetsRejected(),
		HitRatio:     hitRatio,
		TTLSeconds:   int(c.ttl.Seconds()),
	}
}
