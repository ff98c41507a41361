package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arena-dashboard/config"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name        string
		override    string
		environment string
		want        string
	}{
		{"Override wins", "https://analytics.example.com", "production", "https://analytics.example.com"},
		{"Production same-origin", "", "production", "/api"},
		{"Production any case", "", "Production", "/api"},
		{"Development default", "", "development", "http://localhost:5001"},
		{"Empty environment", "", "", "http://localhost:5001"},
		{"Blank override ignored", "   ", "development", "http://localhost:5001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBaseURL(tt.override, tt.environment); got != tt.want {
				t.Errorf("ResolveBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_RelativeBaseJoinsOrigin(t *testing.T) {
	c, err := New(config.APIConfig{Environment: "production", Origin: "http://proxy.internal:8000"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.BaseURL() != "http://proxy.internal:8000/api" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}

	if _, err := New(config.APIConfig{Environment: "production", Origin: ""}); err == nil {
		t.Error("Expected error for relative base without origin")
	}
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analysis/overview" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"avg_attendance":15234}`))
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.URL+"/", srv.Client())
	body, err := c.Get(context.Background(), "/api/analysis/overview")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != `{"avg_attendance":15234}` {
		t.Errorf("Unexpected body %s", body)
	}
}

func TestGet_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Cache not available. Run cache_results.py first."}`))
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.URL, srv.Client())
	_, err := c.Get(context.Background(), "/api/risk-assessment")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Path != "/api/risk-assessment" {
		t.Errorf("Path = %q", apiErr.Path)
	}
}

func TestGet_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>proxy error</html>`))
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.URL, srv.Client())
	if _, err := c.Get(context.Background(), "/api/historical-data"); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Expected ErrInvalidJSON, got %v", err)
	}
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.URL, &http.Client{Timeout: 50 * time.Millisecond})
	if _, err := c.Get(context.Background(), "/"); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewWithHTTPClient(url, &http.Client{Timeout: time.Second})
	if err := c.Probe(context.Background()); err == nil {
		t.Error("Expected probe to fail against a closed server")
	}
}
