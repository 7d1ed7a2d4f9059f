package main

import (
	"charger-siting-service/internal/adapters/facilities"
	"charger-siting-service/internal/adapters/repositories"
	"charger-siting-service/internal/config"
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/db"
	"charger-siting-service/internal/platform/obs"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// dbtool creates the schema and loads a facility snapshot, either from a
// GeoJSON file in NREL's format (SEED_SOURCE=file) or straight from the NREL
// API (SEED_SOURCE=nrel).
func main() {
	envErr := godotenv.Load()
	obs.SetupLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if envErr != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open postgres")
	}
	defer sqlDB.Close()

	if err := initAndSeed(context.Background(), sqlDB); err != nil {
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Msg("schema ready")

	fs, err := loadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	log.Info().Int("facilities", len(fs)).Msg("seeding database")
	if err := repositories.SeedFacilities(ctx, sqlDB, fs); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Msg("seeding complete")

	return nil
}

func loadSnapshot(ctx context.Context) ([]domain.Facility, error) {
	switch source := strings.ToLower(config.Get("SEED_SOURCE", "file")); source {
	case "file":
		path := config.Get("SEED_PATH", "data/seeds/stations.geojson")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %q: %w", path, err)
		}
		fs, skipped, err := facilities.DecodeStations(data)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", path, err)
		}
		if skipped > 0 {
			log.Warn().Int("skipped", skipped).Msg("seed features without point geometry")
		}
		return fs, nil

	case "nrel":
		siting, err := config.LoadSiting(config.Get("SITING_CONFIG", "config/siting.yaml"))
		if err != nil {
			return nil, err
		}
		client, err := facilities.NewNRELClient(config.Get("NREL_API_KEY", ""))
		if err != nil {
			return nil, err
		}
		return client.FetchFacilities(ctx, siting.FacilityQuery())

	default:
		return nil, fmt.Errorf("unknown SEED_SOURCE %q (want file or nrel)", source)
	}
}
