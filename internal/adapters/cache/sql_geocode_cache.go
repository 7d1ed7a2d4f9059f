package cache

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLGeocodeCache is a SQL-backed cache mapping rounded coordinates to
// reverse-geocode results.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Get returns the cached result for c. ok is false on a miss.
func (s *SQLGeocodeCache) Get(
	ctx context.Context,
	c domain.Coordinates,
) (_ domain.GeocodeResult, ok bool, err error) {
	defer obs.Time(ctx, "geocode.cache.sql.Get")(&err)

	if s.DB == nil {
		return domain.GeocodeResult{}, false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE coord_key = $1;
	`

	var res domain.GeocodeResult
	err = s.DB.QueryRowContext(ctx, q, CoordKey(c)).Scan(
		&res.Address,
		&res.Coordinates.Lon,
		&res.Coordinates.Lat,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeocodeResult{}, false, nil
	}
	if err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return res, true, nil
}

// Put stores the result for c, replacing any previous entry.
func (s *SQLGeocodeCache) Put(ctx context.Context, c domain.Coordinates, res domain.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (coord_key, address, lon, lat, updated_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (coord_key) DO UPDATE
	SET address = EXCLUDED.address,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		updated_at = EXCLUDED.updated_at;
	`, CoordKey(c), res.Address, res.Coordinates.Lon, res.Coordinates.Lat)
	if err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", CoordKey(c), err)
	}

	return nil
}
