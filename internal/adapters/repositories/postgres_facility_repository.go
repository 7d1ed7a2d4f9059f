package repositories

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/geometry"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the FacilityProvider port, serving an
// offline snapshot of the station directory.
type PostgresFacilityRepository struct{ DB *sql.DB }

func NewPostgresFacilityRepository(db *sql.DB) *PostgresFacilityRepository {
	return &PostgresFacilityRepository{DB: db}
}

// FetchFacilities returns stored facilities ordered by id. A positive
// RadiusMiles keeps only facilities within that great-circle distance of the
// query center. Options are ignored.
func (p *PostgresFacilityRepository) FetchFacilities(
	ctx context.Context,
	q ports.FacilityQuery,
) (_ []domain.Facility, err error) {
	defer obs.Time(ctx, "postgres.FetchFacilities")(&err)
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		obs.FacilityFetchTotal.WithLabelValues("postgres", status).Inc()
	}()

	if p.DB == nil {
		return nil, errors.New("postgres facility repository: DB is nil")
	}

	query := `
	SELECT
		facility_id,
		name,
		address,
		lon,
		lat,
		properties
	FROM facilities
	ORDER BY facility_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list facilities: query facilities table: %w", err)
	}
	defer rows.Close()

	center := domain.Coordinates{Lon: q.CenterLon, Lat: q.CenterLat}
	facilities := make([]domain.Facility, 0, 64)
	for rows.Next() {
		var f domain.Facility
		var raw []byte
		if err := rows.Scan(&f.ID, &f.Name, &f.Address, &f.Coordinates.Lon, &f.Coordinates.Lat, &raw); err != nil {
			return nil, fmt.Errorf("list facilities: scan row: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &f.Properties); err != nil {
				return nil, fmt.Errorf("list facilities: facility_id=%d: decode properties: %w", f.ID, err)
			}
		}

		if q.RadiusMiles > 0 && geometry.DistanceMiles(center, f.Coordinates) > q.RadiusMiles {
			continue
		}
		facilities = append(facilities, f)

		if q.Limit > 0 && len(facilities) == q.Limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facilities: row iteration: %w", err)
	}

	return facilities, nil
}
