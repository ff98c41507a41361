package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"arena-dashboard/cache"
	"arena-dashboard/config"
	"arena-dashboard/datasource"
	"arena-dashboard/model"
	"arena-dashboard/view"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	dataSourceHeader   = "X-Data-Source"
	healthProbeTimeout = 2 * time.Second
)

var ErrUnknownPage = errors.New("unknown page")

// ViewResponse wraps a derived page model
type ViewResponse struct {
	Page  string      `json:"page"`
	Title string      `json:"title"`
	State string      `json:"state"`
	Data  interface{} `json:"data"`
}

// DashboardHandler serves analytics resources, derived views and HTML pages
type DashboardHandler struct {
	resolver *datasource.Resolver
	cache    *cache.Cache
	config   config.Config
	renderer *view.Renderer
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(resolver *datasource.Resolver, cacheClient *cache.Cache, cfg config.Config, renderer *view.Renderer) *DashboardHandler {
	return &DashboardHandler{
		resolver: resolver,
		cache:    cacheClient,
		config:   cfg,
		renderer: renderer,
	}
}

// GetResource returns a handler for one analytics resource
// @Summary Analytics resource
// @Description Returns the live, cached or snapshot payload for a resource. X-Data-Source names the origin.
// @Tags Analytics
// @Produce json
// @Success 200 {object} object "Resource payload"
// @Failure 502 {object} model.ErrorResponse "Resource unavailable"
// @Router /api/analysis/overview [get]
func (h *DashboardHandler) GetResource(res datasource.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := h.resolver.Resolve(r.Context(), res)
		if err != nil {
			log.Warn().Err(err).Str("resource", string(res)).Msg("Resource unavailable")
			SendJSONError(w, http.StatusBadGateway, err, fmt.Sprintf("Failed to load %s", res))
			return
		}

		w.Header().Set(dataSourceHeader, string(payload.Source))
		SendRawJSON(w, http.StatusOK, payload.Data)
	}
}

// GetView handles GET /api/views/{page}
// @Summary Derived page model
// @Description Loads every resource a page needs and returns its chart-ready model
// @Tags Views
// @Produce json
// @Param page path string true "Page slug" Enums(dashboard, methods, predictions, stand-analysis, staffing, risk-assessment)
// @Success 200 {object} ViewResponse "Page model"
// @Failure 404 {object} model.ErrorResponse "Unknown page"
// @Failure 502 {object} model.ErrorResponse "Page failed to load"
// @Router /api/views/{page} [get]
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["page"]
	page, ok := view.BySlug(slug)
	if !ok {
		SendJSONError(w, http.StatusNotFound, ErrUnknownPage, fmt.Sprintf("No page named %q", slug))
		return
	}

	lc := view.NewLifecycle()
	data, err := page.Build(r.Context(), h.resolver, lc)
	if err != nil {
		log.Warn().Err(err).Str("page", slug).Msg("View failed to load")
		SendJSONError(w, http.StatusBadGateway, err, page.ErrorSubtitle)
		return
	}

	SendJSONSuccess(w, http.StatusOK, ViewResponse{
		Page:  page.Slug,
		Title: page.Title,
		State: lc.State().String(),
		Data:  data,
	})
}

// ServePage returns the HTML handler for a dashboard page
func (h *DashboardHandler) ServePage(page view.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.ServePage(w, r, page)
	}
}

// RefreshCache handles POST /api/cache/refresh
// @Summary Refresh cached data
// @Description Clears cached live payloads and the sticky fallback flag, then re-probes the backend
// @Tags System
// @Produce json
// @Success 200 {object} model.RefreshResponse "Cache refreshed"
// @Router /api/cache/refresh [post]
func (h *DashboardHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	h.resolver.Reset(r.Context())

	status := h.resolver.Status()
	log.Info().Bool("degraded", status.Degraded).Msg("Cache refreshed")

	SendJSONSuccess(w, http.StatusOK, model.RefreshResponse{
		Status:      "success",
		Message:     "Cache refreshed successfully",
		Degraded:    status.Degraded,
		RefreshedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheck handles GET /health
// @Summary Health check
// @Description Returns data source mode and live backend reachability
// @Tags System
// @Produce json
// @Success 200 {object} model.HealthResponse "Service is healthy"
// @Failure 503 {object} model.HealthResponse "Live-only mode with the backend down"
// @Router /health [get]
func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := h.resolver.Status()
	response := model.HealthResponse{
		Status:   "healthy",
		Mode:     status.Mode.String(),
		Sticky:   status.Sticky.String(),
		Degraded: status.Degraded,
		Backend:  "disabled",
		Snapshot: status.Snapshot,
	}

	code := http.StatusOK
	if status.Mode != datasource.StaticOnly {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		response.Backend = "reachable"
		if err := h.resolver.Probe(ctx); err != nil {
			log.Warn().Err(err).Msg("Live backend health check failed")
			response.Backend = "unreachable"
			// Without a snapshot to fall back on the service cannot answer.
			if status.Mode == datasource.LiveOnly {
				response.Status = "unhealthy"
				code = http.StatusServiceUnavailable
			}
		}
	}

	SendJSONSuccess(w, code, response)
}

// CacheMetrics handles GET /cache/metrics
// @Summary Cache performance metrics
// @Description Returns cache performance metrics including hit rate, misses, and evictions
// @Tags System
// @Produce json
// @Success 200 {object} model.CacheMetricsResponse "Cache metrics"
// @Failure 503 {object} model.ErrorResponse "Cache is disabled"
// @Router /cache/metrics [get]
func (h *DashboardHandler) CacheMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.config.Cache.Enabled || h.cache == nil {
		SendJSONError(w, http.StatusServiceUnavailable, errors.New("cache is disabled"), "")
		return
	}

	metrics := h.cache.GetMetricsSnapshot()
	SendJSONSuccess(w, http.StatusOK, metrics)
}
