package cache

import (
	"charger-siting-service/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordKeyRounds(t *testing.T) {
	assert.Equal(t, "43.65260,-79.38390", CoordKey(domain.Coordinates{Lon: -79.383901, Lat: 43.652604}))
	assert.Equal(t,
		CoordKey(domain.Coordinates{Lon: 1.000001, Lat: 2.000002}),
		CoordKey(domain.Coordinates{Lon: 1.000003, Lat: 2.000004}),
	)
}

func TestSQLGeocodeCacheGetHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT address, lon, lat").
		WithArgs("43.65000,-79.38000").
		WillReturnRows(sqlmock.NewRows([]string{"address", "lon", "lat"}).
			AddRow("1 King St W", -79.3801, 43.6502))

	c := NewSQLGeocodeCache(db)
	res, ok, err := c.Get(context.Background(), domain.Coordinates{Lon: -79.38, Lat: 43.65})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1 King St W", res.Address)
	assert.Equal(t, domain.Coordinates{Lon: -79.3801, Lat: 43.6502}, res.Coordinates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheGetMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT address, lon, lat").
		WillReturnRows(sqlmock.NewRows([]string{"address", "lon", "lat"}))

	_, ok, err := NewSQLGeocodeCache(db).Get(context.Background(), domain.Coordinates{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheGetError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT address, lon, lat").WillReturnError(errors.New("conn reset"))

	_, ok, err := NewSQLGeocodeCache(db).Get(context.Background(), domain.Coordinates{})
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSQLGeocodeCachePut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO geocode_cache").
		WithArgs("43.65000,-79.38000", "1 King St W", -79.3801, 43.6502).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewSQLGeocodeCache(db).Put(context.Background(),
		domain.Coordinates{Lon: -79.38, Lat: 43.65},
		domain.GeocodeResult{Address: "1 King St W", Coordinates: domain.Coordinates{Lon: -79.3801, Lat: 43.6502}},
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)
	_, _, err := c.Get(context.Background(), domain.Coordinates{})
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), domain.Coordinates{}, domain.GeocodeResult{}))
}
