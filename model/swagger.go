package model

// ErrorResponse represents an error response
// @Description Standard error response format
type ErrorResponse struct {
	Error   string `json:"error" example:"live backend unavailable"`
	Message string `json:"message,omitempty" example:"Failed to load overview"`
}

// HealthResponse represents the health check response
// @Description Health check response showing data source status
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Mode     string `json:"mode" example:"fallback"`
	Sticky   string `json:"sticky" example:"per_call"`
	Degraded bool   `json:"degraded" example:"false"`
	Backend  string `json:"backend" example:"reachable"`
	Snapshot string `json:"snapshot" example:"embedded"`
}

// CacheMetricsResponse represents cache performance metrics
// @Description Cache performance metrics including hit rate and evictions
type CacheMetricsResponse struct {
	Hits         uint64  `json:"hits" example:"1500"`
	Misses       uint64  `json:"misses" example:"300"`
	KeysAdded    uint64  `json:"keys_added" example:"7"`
	KeysEvicted  uint64  `json:"keys_evicted" example:"0"`
	SetsDropped  uint64  `json:"sets_dropped" example:"0"`
	SetsRejected uint64  `json:"sets_rejected" example:"0"`
	HitRatio     float64 `json:"hit_ratio" example:"0.83"`
	TTLSeconds   int     `json:"ttl_seconds" example:"300"`
}

// RefreshResponse is returned after the cache and sticky flag are reset
// @Description Result of a cache refresh
type RefreshResponse struct {
	Status      string `json:"status" example:"success"`
	Message     string `json:"message" example:"Cache refreshed successfully"`
	Degraded    bool   `json:"degraded" example:"false"`
	RefreshedAt string `json:"refreshed_at" example:"2026-03-05T14:00:00Z"`
}
