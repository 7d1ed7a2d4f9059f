package repositories

import (
	"charger-siting-service/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS facilities").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS geocode_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_facilities_lon_lat").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, InitSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchemaRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS facilities").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = InitSchema(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement #1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFacilities(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO facilities")
	prep.ExpectExec().
		WithArgs(7, "Union Station", "65 Front St W", -79.38, 43.645, `{"ev_network":"FLO"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(9, "Eglinton", "", -79.4, 43.7, `{}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = SeedFacilities(context.Background(), db, []domain.Facility{
		{
			ID:          7,
			Name:        " Union Station ",
			Address:     "65 Front St W",
			Coordinates: domain.Coordinates{Lon: -79.38, Lat: 43.645},
			Properties:  map[string]any{"ev_network": "FLO"},
		},
		{ID: 9, Name: "Eglinton", Coordinates: domain.Coordinates{Lon: -79.4, Lat: 43.7}},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFacilitiesValidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = SeedFacilities(context.Background(), db, []domain.Facility{{ID: 0, Name: "x"}})
	assert.ErrorContains(t, err, "invalid facility id")

	err = SeedFacilities(context.Background(), db, []domain.Facility{{ID: 3, Name: "  "}})
	assert.ErrorContains(t, err, "name cannot be empty")

	assert.NoError(t, mock.ExpectationsWereMet())
}
