package repositories

import (
	"charger-siting-service/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createFacilitiesQuery := `
	CREATE TABLE IF NOT EXISTS facilities (
		facility_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		properties JSONB NOT NULL DEFAULT '{}'::jsonb
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		coord_key TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_facilities_lon_lat
	ON facilities(lon, lat);
	`

	statements := []string{
		createFacilitiesQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFacilities upserts a facility snapshot. Facilities need a positive ID and a name.
func SeedFacilities(ctx context.Context, db *sql.DB, facilities []domain.Facility) error {
	if db == nil {
		return errors.New("seed facilities: DB is nil")
	}

	for i, f := range facilities {
		if f.ID <= 0 {
			return fmt.Errorf("seed facilities: invalid facility id at index %d: %d", i+1, f.ID)
		}
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("seed facilities: facility %d: name cannot be empty", f.ID)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed facilities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO facilities (
		facility_id,
		name,
		address,
		lon,
		lat,
		properties
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (facility_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		properties = EXCLUDED.properties;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed facilities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range facilities {
		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		raw, err := json.Marshal(props)
		if err != nil {
			return fmt.Errorf("seed facilities: facility_id=%d: encode properties: %w", f.ID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			f.ID,
			strings.TrimSpace(f.Name),
			strings.TrimSpace(f.Address),
			f.Coordinates.Lon,
			f.Coordinates.Lat,
			string(raw),
		); err != nil {
			return fmt.Errorf("seed facilities: insert facility_id=%d: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed facilities: commit tx: %w", err)
	}

	return nil
}
