package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arena-dashboard/cache"
	"arena-dashboard/client"
	"arena-dashboard/config"
	"arena-dashboard/datasource"
	"arena-dashboard/handler"
	appLogger "arena-dashboard/logger"
	"arena-dashboard/middleware"
	redisClient "arena-dashboard/redis"
	"arena-dashboard/snapshot"
	"arena-dashboard/view"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// @title Silver Arena Analytics Dashboard API
// @version 1.0
// @description Backend-for-frontend for the arena concessions dashboard. Serves live analytics with a static snapshot fallback, derived page models, and server-rendered pages.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Analytics
// @tag.description Raw analytics resources, live or from the snapshot

// @tag.name Views
// @tag.description Chart-ready page models derived from the analytics resources

// @tag.name System
// @tag.description Health checks, cache refresh and cache metrics

func main() {
	// Initialize logger
	appLogger.Initialize()

	// Load configuration
	cfg := config.MustLoadConfig()
	appLogger.SetLevel(cfg.Log.Level)
	log.Info().Msg("Configuration loaded successfully")

	// Initialize cache (if enabled)
	var cacheClient *cache.Cache
	if cfg.Cache.Enabled {
		var err error
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize cache")
		}
	} else {
		log.Info().Msg("Cache disabled in configuration")
	}

	mode, sticky, err := datasource.ModeFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid data source configuration")
	}

	store, rdb := openSnapshot(cfg)

	// The live client is left nil in static mode so the resolver never sees
	// a typed nil.
	var live datasource.Fetcher
	if mode != datasource.StaticOnly {
		apiClient, err := client.New(cfg.API)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize analytics client")
		}
		live = apiClient
		log.Info().Str("base_url", apiClient.BaseURL()).Msg("Analytics client initialized")
	}

	resolver := datasource.NewResolver(datasource.Options{
		Live:         live,
		Static:       store,
		Cache:        cacheClient,
		Mode:         mode,
		Sticky:       sticky,
		ProbeTimeout: time.Duration(cfg.DataSource.ProbeTimeoutSeconds) * time.Second,
	})
	resolver.Start(context.Background())
	log.Info().
		Str("mode", mode.String()).
		Str("sticky", sticky.String()).
		Str("snapshot", store.Name()).
		Msg("Data source resolver ready")

	renderer, err := view.NewRenderer(resolver, func() string {
		status := resolver.Status()
		if status.Degraded {
			return "static (fallback)"
		}
		return status.Mode.String()
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse page templates")
	}

	// Create handler with dependency injection
	dashboardHandler := handler.NewDashboardHandler(resolver, cacheClient, cfg, renderer)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	proxies, err := middleware.ParseTrustedProxies(cfg.WebServer.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid trusted proxy configuration")
	}
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, proxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Register routes
	r.HandleFunc("/health", dashboardHandler.HealthCheck).Methods("GET")
	r.HandleFunc("/cache/metrics", dashboardHandler.CacheMetrics).Methods("GET")
	r.HandleFunc("/api/cache/refresh", dashboardHandler.RefreshCache).Methods("POST")
	r.HandleFunc("/api/views/{page}", dashboardHandler.GetView).Methods("GET")

	for _, res := range datasource.Resources() {
		r.HandleFunc(res.Path(), dashboardHandler.GetResource(res)).Methods("GET")
	}

	for _, page := range view.Pages() {
		r.HandleFunc(page.Path, dashboardHandler.ServePage(page)).Methods("GET")
	}

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      middleware.CORS(cfg.WebServer.AllowedOrigins)(r),
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	if cacheClient != nil {
		cacheClient.Close()
	}

	// Close Redis connection
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}

	log.Info().Msg("Server stopped gracefully")
}

// openSnapshot builds the static store. The Redis client is returned for
// shutdown and is nil unless snapshot.source is "redis".
func openSnapshot(cfg config.Config) (snapshot.Store, *redis.Client) {
	doc, name, err := loadDocument(cfg.Snapshot.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load snapshot document")
	}

	switch cfg.Snapshot.Source {
	case "", "embedded":
		return snapshot.NewMemoryStore(doc, name), nil
	case "redis":
		rdb := redisClient.NewClient(cfg.Redis)
		store := snapshot.NewRedisStore(rdb, snapshot.DefaultRedisHash)
		if cfg.Snapshot.SeedRedis {
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.OperationTimeout)*time.Second)
			defer cancel()

			// A populated hash is left as is so edits made in Redis survive restarts.
			if _, err := store.Seed(ctx, doc, false); err != nil {
				log.Fatal().Err(err).Str("from", name).Msg("Failed to seed snapshot into Redis")
			}
		}
		return store, rdb
	default:
		log.Fatal().Str("source", cfg.Snapshot.Source).Msg("Unknown snapshot source")
		return nil, nil
	}
}

func loadDocument(path string) (snapshot.Document, string, error) {
	if path == "" {
		doc, err := snapshot.Embedded()
		return doc, "embedded", err
	}
	doc, err := snapshot.LoadFile(path)
	return doc, path, err
}
