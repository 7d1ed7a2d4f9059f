package repositories

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/ports"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var facilityColumns = []string{"facility_id", "name", "address", "lon", "lat", "properties"}

func facilityRows() *sqlmock.Rows {
	return sqlmock.NewRows(facilityColumns).
		AddRow(1, "Downtown", "1 Yonge St", -79.38, 43.65, []byte(`{"ev_level2_evse_num":4}`)).
		AddRow(2, "Midtown", "", -79.40, 43.70, []byte(`{}`)).
		AddRow(3, "Ottawa", "", -75.70, 45.42, nil)
}

func TestPostgresFacilityRepositoryListsAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM facilities").WillReturnRows(facilityRows())

	fs, err := NewPostgresFacilityRepository(db).FetchFacilities(context.Background(), ports.FacilityQuery{})
	require.NoError(t, err)
	require.Len(t, fs, 3)

	assert.Equal(t, 1, fs[0].ID)
	assert.Equal(t, "1 Yonge St", fs[0].Address)
	assert.Equal(t, domain.Coordinates{Lon: -79.38, Lat: 43.65}, fs[0].Coordinates)
	assert.Equal(t, float64(4), fs[0].Properties["ev_level2_evse_num"])
	assert.Nil(t, fs[2].Properties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFacilityRepositoryRadiusAndLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM facilities").WillReturnRows(facilityRows())

	repo := NewPostgresFacilityRepository(db)
	fs, err := repo.FetchFacilities(context.Background(), ports.FacilityQuery{
		CenterLat:   43.65,
		CenterLon:   -79.38,
		RadiusMiles: 50,
	})
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, "Midtown", fs[1].Name)

	mock.ExpectQuery("SELECT (.+) FROM facilities").WillReturnRows(facilityRows())
	fs, err = repo.FetchFacilities(context.Background(), ports.FacilityQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, "Downtown", fs[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFacilityRepositoryQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM facilities").WillReturnError(errors.New("relation does not exist"))

	_, err = NewPostgresFacilityRepository(db).FetchFacilities(context.Background(), ports.FacilityQuery{})
	assert.ErrorContains(t, err, "query facilities table")
}
