package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arena-dashboard/cache"
	"arena-dashboard/client"
	"arena-dashboard/config"
	"arena-dashboard/datasource"
	"arena-dashboard/model"
	"arena-dashboard/snapshot"
	"arena-dashboard/view"

	"github.com/gorilla/mux"
)

func snapshotStore(t *testing.T) (*snapshot.MemoryStore, snapshot.Document) {
	t.Helper()
	doc, err := snapshot.Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	return snapshot.NewMemoryStore(doc, "embedded"), doc
}

// failingBackend answers every request with 500.
func failingBackend(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	t.Cleanup(srv.Close)
	return client.NewWithHTTPClient(srv.URL, srv.Client())
}

func setupHandler(t *testing.T, opts datasource.Options, cfg config.Config) *DashboardHandler {
	t.Helper()
	resolver := datasource.NewResolver(opts)
	renderer, err := view.NewRenderer(resolver, func() string { return resolver.Status().Mode.String() })
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return NewDashboardHandler(resolver, opts.Cache, cfg, renderer)
}

func TestGetResource_StaticOnly(t *testing.T) {
	store, doc := snapshotStore(t)
	h := setupHandler(t, datasource.Options{Static: store, Mode: datasource.StaticOnly}, config.Config{})

	req := httptest.NewRequest("GET", "/api/analysis/overview", nil)
	w := httptest.NewRecorder()
	h.GetResource(datasource.Overview)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Data-Source"); got != "static" {
		t.Errorf("X-Data-Source = %q", got)
	}
	if w.Body.String() != string(doc[snapshot.KeyOverview]) {
		t.Error("Body does not match the snapshot")
	}
}

func TestGetResource_FallbackServesSnapshot(t *testing.T) {
	store, _ := snapshotStore(t)
	h := setupHandler(t, datasource.Options{
		Live:   failingBackend(t),
		Static: store,
		Mode:   datasource.LiveWithStaticFallback,
	}, config.Config{})

	for _, res := range datasource.Resources() {
		w := httptest.NewRecorder()
		h.GetResource(res)(w, httptest.NewRequest("GET", res.Path(), nil))

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", res, w.Code)
		}
		if got := w.Header().Get("X-Data-Source"); got != "static" {
			t.Errorf("%s: X-Data-Source = %q", res, got)
		}
	}
}

func TestGetResource_LiveOnlyFailureIs502(t *testing.T) {
	h := setupHandler(t, datasource.Options{Live: failingBackend(t), Mode: datasource.LiveOnly}, config.Config{})

	w := httptest.NewRecorder()
	h.GetResource(datasource.RiskAssessment)(w, httptest.NewRequest("GET", "/api/risk-assessment", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", w.Code)
	}
	var resp model.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if resp.Error == "" || resp.Message != "Failed to load risk-assessment" {
		t.Errorf("Unexpected error body %+v", resp)
	}
}

func TestGetView(t *testing.T) {
	store, _ := snapshotStore(t)
	h := setupHandler(t, datasource.Options{Static: store, Mode: datasource.StaticOnly}, config.Config{})

	tests := []struct {
		name       string
		page       string
		wantStatus int
	}{
		{"Dashboard", "dashboard", http.StatusOK},
		{"Predictions", "predictions", http.StatusOK},
		{"Stands", "stand-analysis", http.StatusOK},
		{"Staffing", "staffing", http.StatusOK},
		{"Risk", "risk-assessment", http.StatusOK},
		{"Methods", "methods", http.StatusOK},
		{"Unknown", "tickets", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/views/"+tt.page, nil)
			req = mux.SetURLVars(req, map[string]string{"page": tt.page})
			w := httptest.NewRecorder()
			h.GetView(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp struct {
				Page  string          `json:"page"`
				State string          `json:"state"`
				Data  json.RawMessage `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode view: %v", err)
			}
			if resp.Page != tt.page || resp.State != "ready" || len(resp.Data) == 0 {
				t.Errorf("Unexpected view response page=%s state=%s", resp.Page, resp.State)
			}
		})
	}
}

func TestGetView_DashboardShape(t *testing.T) {
	store, _ := snapshotStore(t)
	h := setupHandler(t, datasource.Options{Static: store, Mode: datasource.StaticOnly}, config.Config{})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/views/dashboard", nil), map[string]string{"page": "dashboard"})
	w := httptest.NewRecorder()
	h.GetView(w, req)

	var resp struct {
		Data struct {
			Weekdays []struct {
				Day string `json:"day"`
			} `json:"weekdays"`
			RecentTrends []json.RawMessage `json:"recent_trends"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.RecentTrends) != 10 {
		t.Errorf("recent_trends = %d, want 10", len(resp.Data.RecentTrends))
	}
	if len(resp.Data.Weekdays) != 7 || resp.Data.Weekdays[0].Day != "Monday" {
		t.Errorf("Unexpected weekday series %+v", resp.Data.Weekdays)
	}
}

func TestGetView_LiveOnlyFailureIs502(t *testing.T) {
	h := setupHandler(t, datasource.Options{Live: failingBackend(t), Mode: datasource.LiveOnly}, config.Config{})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/views/staffing", nil), map[string]string{"page": "staffing"})
	w := httptest.NewRecorder()
	h.GetView(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
}

func TestServePage(t *testing.T) {
	store, _ := snapshotStore(t)
	h := setupHandler(t, datasource.Options{Static: store, Mode: datasource.StaticOnly}, config.Config{})
	page, _ := view.BySlug("staffing")

	w := httptest.NewRecorder()
	h.ServePage(page)(w, httptest.NewRequest("GET", "/staffing", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"Staffing Recommendations", "Data: static", "GC - Beer", "HIGH"} {
		if !strings.Contains(body, want) {
			t.Errorf("Page missing %q", want)
		}
	}
}

func TestRefreshCache(t *testing.T) {
	c, err := cache.New(config.CacheConfig{Enabled: true, MaxSizeMB: 1, TTLSeconds: 60, CounterSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	c.Set(string(datasource.Overview), json.RawMessage(`{"stale":true}`))

	store, _ := snapshotStore(t)
	h := setupHandler(t, datasource.Options{Static: store, Cache: c, Mode: datasource.StaticOnly}, config.Config{})

	w := httptest.NewRecorder()
	h.RefreshCache(w, httptest.NewRequest("POST", "/api/cache/refresh", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp model.RefreshResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" || resp.RefreshedAt == "" {
		t.Errorf("Unexpected refresh response %+v", resp)
	}
	if _, ok := c.Get(string(datasource.Overview)); ok {
		t.Error("Refresh should clear cached payloads")
	}
}

func TestHealthCheck(t *testing.T) {
	store, _ := snapshotStore(t)

	t.Run("Static only", func(t *testing.T) {
		h := setupHandler(t, datasource.Options{Static: store, Mode: datasource.StaticOnly}, config.Config{})
		w := httptest.NewRecorder()
		h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

		var resp model.HealthResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if w.Code != http.StatusOK || resp.Status != "healthy" || resp.Backend != "disabled" || resp.Mode != "static" {
			t.Errorf("Unexpected health %d %+v", w.Code, resp)
		}
		if resp.Snapshot != "embedded" {
			t.Errorf("Snapshot = %q", resp.Snapshot)
		}
	})

	t.Run("Fallback with backend down", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		h := setupHandler(t, datasource.Options{
			Live:   client.NewWithHTTPClient(url, &http.Client{}),
			Static: store,
			Mode:   datasource.LiveWithStaticFallback,
		}, config.Config{})
		w := httptest.NewRecorder()
		h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

		var resp model.HealthResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if w.Code != http.StatusOK || resp.Backend != "unreachable" {
			t.Errorf("Unexpected health %d %+v", w.Code, resp)
		}
	})

	t.Run("Live only with backend down", func(t *testing.T) {
		h := setupHandler(t, datasource.Options{Live: failingBackend(t), Mode: datasource.LiveOnly}, config.Config{})
		w := httptest.NewRecorder()
		h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}

func TestCacheMetrics(t *testing.T) {
	store, _ := snapshotStore(t)

	h := setupHandler(t, datasource.Options{Static: store, Mode: datasource.StaticOnly}, config.Config{})
	w := httptest.NewRecorder()
	h.CacheMetrics(w, httptest.NewRequest("GET", "/cache/metrics", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Disabled cache: expected 503, got %d", w.Code)
	}

	c, err := cache.New(config.CacheConfig{Enabled: true, MaxSizeMB: 1, TTLSeconds: 60, CounterSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	h = setupHandler(t, datasource.Options{Static: store, Cache: c, Mode: datasource.StaticOnly},
		config.Config{Cache: config.CacheConfig{Enabled: true}})
	w = httptest.NewRecorder()
	h.CacheMetrics(w, httptest.NewRequest("GET", "/cache/metrics", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Enabled cache: expected 200, got %d", w.Code)
	}
}
