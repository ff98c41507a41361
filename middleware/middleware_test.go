package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, nil)
	h := rl.Limit(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:5000" // port changes must not matter
		if i == 1 {
			req.RemoteAddr = "10.0.0.1:5001"
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Burst requests rejected: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after burst, got %d", codes[2])
	}

	// Another client has its own bucket
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Second client limited: %d", w.Code)
	}
}

func TestRateLimiter_RejectionBody(t *testing.T) {
	h := NewRateLimiter(0.001, 1, nil).Limit(okHandler())

	var w *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	}

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Status = %d, want 429", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Rate limit exceeded") {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, nil)
	h := rl.Limit(okHandler())

	limited := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	if limited != 48 {
		t.Errorf("Limited %d of 50 requests, want 48", limited)
	}
	if got := rl.buckets(); got != 1 {
		t.Errorf("Buckets = %d, want 1", got)
	}
}

func TestRateLimiter_TrustedProxyKeysOnForwardedClient(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatal(err)
	}
	rl := NewRateLimiter(0.001, 1, proxies)
	h := rl.Limit(okHandler())

	send := func(forwarded string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("203.0.113.7"); code != http.StatusOK {
		t.Errorf("First client = %d", code)
	}
	if code := send("203.0.113.8"); code != http.StatusOK {
		t.Errorf("Second client behind the same proxy = %d", code)
	}
	if code := send("203.0.113.7"); code != http.StatusTooManyRequests {
		t.Errorf("Repeat client = %d, want 429", code)
	}
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.1", "172.16.0.0/12"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"Untrusted peer ignores header", "192.168.1.5:40000", "203.0.113.7", "192.168.1.5"},
		{"IPv6 peer", "[::1]:8080", "", "::1"},
		{"No port", "192.168.1.5", "", "192.168.1.5"},
		{"Trusted peer", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"Spoofed leftmost hop", "10.0.0.1:80", "1.2.3.4, 203.0.113.7", "203.0.113.7"},
		{"Chained proxies", "10.0.0.1:80", "203.0.113.7, 172.16.0.9", "203.0.113.7"},
		{"Trusted peer without header", "10.0.0.1:80", "", "10.0.0.1"},
		{"Garbage hop", "10.0.0.1:80", "not-an-ip", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := proxies.ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	for _, entry := range []string{"proxy.internal", "10.0.0.0/99"} {
		if _, err := ParseTrustedProxies([]string{entry}); err == nil {
			t.Errorf("ParseTrustedProxies(%q) should fail", entry)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("Generated request ID %q is not a UUID", seen)
	}
	if w.Header().Get(RequestIDHeader) != seen {
		t.Error("Response header does not carry the request ID")
	}

	supplied := uuid.New().String()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, supplied)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != supplied {
		t.Errorf("Caller request ID not reused: %q", seen)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "not-a-uuid" {
		t.Error("Malformed request ID should be replaced")
	}
}

func TestRequestLogger_PassesFlush(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("Wrapped writer lost http.Flusher")
		}
		w.Write([]byte("shell"))
		f.Flush()
		w.WriteHeader(http.StatusTeapot) // ignored after the first write
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if !w.Flushed {
		t.Error("Flush was not forwarded")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://dash.example.com"})(okHandler())

	req := httptest.NewRequest("OPTIONS", "/api/analysis/overview", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest("GET", "/api/analysis/overview", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Unexpected Allow-Origin %q for foreign origin", got)
	}
}
