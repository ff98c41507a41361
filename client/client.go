// Package client wraps net/http for the external analytics API: a base URL
// resolved from configuration, request/response logging and a uniform error
// type for non-2xx answers.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"arena-dashboard/config"

	"github.com/rs/zerolog/log"
)

const (
	productionBaseURL  = "/api"
	developmentBaseURL = "http://localhost:5001"

	// Error bodies beyond this are truncated in APIError.
	maxErrorBody = 4 << 10
)

var ErrInvalidJSON = errors.New("response body is not valid JSON")

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

// ResolveBaseURL applies the lookup order: explicit override, then the
// same-origin "/api" path for production builds, then the local backend.
func ResolveBaseURL(override, environment string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	if strings.EqualFold(environment, "production") {
		return productionBaseURL
	}
	return developmentBaseURL
}

// Client issues GET requests against the analytics API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client from the API configuration. A relative base URL is
// joined onto cfg.Origin.
func New(cfg config.APIConfig) (*Client, error) {
	base := ResolveBaseURL(cfg.BaseURL, cfg.Environment)

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", base, err)
	}
	if !parsed.IsAbs() {
		origin, err := url.Parse(cfg.Origin)
		if err != nil || !origin.IsAbs() {
			return nil, fmt.Errorf("relative api base url %q needs an absolute origin, got %q", base, cfg.Origin)
		}
		parsed = origin.ResolveReference(parsed)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return NewWithHTTPClient(parsed.String(), &http.Client{Timeout: timeout}), nil
}

// NewWithHTTPClient is used by tests and callers that manage their own transport.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the absolute base URL requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path and returns the raw JSON body.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	log.Debug().Str("method", http.MethodGet).Str("path", path).Msgf("Making GET request to %s", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Request error")
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("API error")
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("API error")
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Path: path, Body: truncate(body)}
		log.Error().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("body", apiErr.Body).
			Msg("API error")
		return nil, apiErr
	}

	if !json.Valid(body) {
		log.Error().Str("path", path).Msg("API error: invalid JSON")
		return nil, fmt.Errorf("GET %s: %w", path, ErrInvalidJSON)
	}

	return json.RawMessage(body), nil
}

// Probe checks backend reachability via its health endpoint.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.Get(ctx, "/")
	return err
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
