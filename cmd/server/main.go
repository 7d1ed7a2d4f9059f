package main

import (
	"charger-siting-service/internal/adapters/cache"
	"charger-siting-service/internal/adapters/facilities"
	"charger-siting-service/internal/adapters/geocoder"
	"charger-siting-service/internal/adapters/repositories"
	"charger-siting-service/internal/api"
	"charger-siting-service/internal/config"
	"charger-siting-service/internal/platform/db"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"charger-siting-service/internal/services"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (NREL or Postgres, TomTom, Redis) behind ports
// and starts the HTTP server.
func main() {
	envErr := godotenv.Load()
	obs.SetupLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if envErr != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	sitingPath := config.Get("SITING_CONFIG", "config/siting.yaml")

	siting, err := config.LoadSiting(sitingPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", sitingPath).Msg("load siting config")
	}
	region, err := siting.RegionPolygon()
	if err != nil {
		log.Fatal().Err(err).Msg("region polygon")
	}
	exclude, err := siting.ExcludedAddress()
	if err != nil {
		log.Fatal().Err(err).Msg("excluded address pattern")
	}

	ctx := context.Background()

	var sqlDB *sql.DB
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		sqlDB, err = db.Open(databaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(ctx, sqlDB); err != nil {
			log.Fatal().Err(err).Msg("init schema")
		}
	}

	var rc *redis.Client
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		rc, err = db.OpenRedis(ctx, addr, config.Get("REDIS_PASSWORD", ""), config.GetInt("REDIS_DB", 0))
		if err != nil {
			// The hot cache is optional; run without it.
			log.Warn().Err(err).Msg("redis unavailable, geocode hot cache disabled")
			rc = nil
		} else {
			defer rc.Close()
		}
	}

	provider, err := newFacilityProvider(config.Get("FACILITY_SOURCE", "nrel"), sqlDB)
	if err != nil {
		log.Fatal().Err(err).Msg("facility provider")
	}

	reverse, err := newReverseGeocoder(sqlDB, rc)
	if err != nil {
		log.Fatal().Err(err).Msg("reverse geocoder")
	}
	resolver := services.NewAddressResolver(reverse, exclude, siting.Geocode.MinInterval)

	router := api.NewRouter(api.Deps{
		Provider:            provider,
		Resolver:            resolver,
		Region:              region,
		Targets:             siting.TargetPoints(),
		Query:               siting.FacilityQuery(),
		Selection:           siting.SelectionParams(),
		CorridorRadiusMiles: siting.CorridorRadiusMiles,
		Grid:                siting.GridParams(),
	})

	// Timeouts are tuned for cold-cache recommendation runs (paced geocoding).
	log.Info().Str("addr", ":"+port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func newFacilityProvider(source string, sqlDB *sql.DB) (ports.FacilityProvider, error) {
	switch strings.ToLower(source) {
	case "nrel":
		return facilities.NewNRELClient(config.Get("NREL_API_KEY", ""))
	case "postgres":
		if sqlDB == nil {
			return nil, fmt.Errorf("FACILITY_SOURCE=postgres requires DATABASE_URL")
		}
		return repositories.NewPostgresFacilityRepository(sqlDB), nil
	default:
		return nil, fmt.Errorf("unknown FACILITY_SOURCE %q (want nrel or postgres)", source)
	}
}

// newReverseGeocoder returns nil when no TomTom key is configured; the address
// stage is then skipped.
func newReverseGeocoder(sqlDB *sql.DB, rc *redis.Client) (ports.ReverseGeocoder, error) {
	key := config.Get("TOMTOM_API_KEY", "")
	if key == "" {
		log.Warn().Msg("TOMTOM_API_KEY not set, recommendations will not carry addresses")
		return nil, nil
	}

	tomtom, err := geocoder.NewTomTomClient(key)
	if err != nil {
		return nil, err
	}

	cached := cache.NewCachedGeocoder(tomtom)
	if rc != nil {
		ttl := time.Duration(config.GetInt("GEOCODE_CACHE_TTL_HOURS", 24)) * time.Hour
		cached.WithTier("redis", cache.NewRedisGeocodeCache(rc, ttl))
	}
	if sqlDB != nil {
		cached.WithTier("postgres", cache.NewSQLGeocodeCache(sqlDB))
	}
	return cached, nil
}
