package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rogerio-castellano/asset-dashboard/internal/client"
	"github.com/rogerio-castellano/asset-dashboard/internal/config"
	"github.com/rogerio-castellano/asset-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/asset-dashboard/internal/db"
	api "github.com/rogerio-castellano/asset-dashboard/internal/http"
	"github.com/rogerio-castellano/asset-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/asset-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/asset-dashboard/internal/notify"
	"github.com/rogerio-castellano/asset-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/asset-dashboard/internal/repo"
)

// @title Asset Dashboard API
// @version 1.0
// @description Aggregation service for the fixed-asset dashboard: filtered views, aggregate snapshots and drill-downs over the bulk-loaded item population.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()
	redisService, err := redissvc.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer redisService.Close()

	apiClient := client.New(cfg.ItemAPIURL, cfg.RequestTimeout)
	cache := repo.NewItemCache(apiClient, cfg.PageSize, cfg.MaxItems)
	session := dashboard.NewSession(cache)

	// The first bulk load may race service startup ordering; a failure
	// leaves the cache empty and is recovered by POST /dashboard/refresh.
	if err := cache.Load(ctx); err != nil {
		log.Printf("Initial item load failed: %v", err)
	} else {
		log.Printf("Loaded %d items (cache generation %d)", cache.Len(), cache.Version())
	}

	var prefRepo repo.PreferenceRepository
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()
		prefRepo = repo.NewPostgresPreferenceRepository(database)
	} else {
		prefRepo = repo.NewRedisPreferenceRepository(redisService)
	}

	handlers.SetSession(session)
	handlers.SetResolver(dashboard.NewResolver(apiClient))
	handlers.SetPreferenceRepo(prefRepo)
	handlers.SetNotifier(notify.NewNotifier(redisService, cfg.AlertChannel))
	handlers.SetAPIClient(apiClient)
	api.SetJWTSecret(cfg.JWTSecret)

	r := api.NewRouter()
	log.Printf("✅ Server running on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatal(err)
	}
}
