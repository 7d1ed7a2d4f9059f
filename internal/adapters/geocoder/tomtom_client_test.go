package geocoder

import (
	"charger-siting-service/internal/domain"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTomTomReverseGeocode(t *testing.T) {
	var path, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`{
			"summary": {"numResults": 1},
			"addresses": [{
				"address": {"freeformAddress": "100 Queen St W, Toronto ON M5H 2N2"},
				"position": "43.652600,-79.383900"
			}]
		}`))
	}))
	defer srv.Close()

	c, err := NewTomTomClient("tt")
	require.NoError(t, err)
	c.WithBaseURL(srv.URL)

	res, err := c.ReverseGeocode(context.Background(), domain.Coordinates{Lon: -79.384, Lat: 43.6525})
	require.NoError(t, err)

	assert.Equal(t, "/reverseGeocode/43.6525,-79.384.json", path)
	assert.Equal(t, "tt", key)
	assert.Equal(t, "100 Queen St W, Toronto ON M5H 2N2", res.Address)
	assert.InDelta(t, 43.6526, res.Coordinates.Lat, 1e-9)
	assert.InDelta(t, -79.3839, res.Coordinates.Lon, 1e-9)
}

func TestTomTomReverseGeocodeNoAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"addresses": []}`))
	}))
	defer srv.Close()

	c, err := NewTomTomClient("tt")
	require.NoError(t, err)
	c.WithBaseURL(srv.URL)

	_, err = c.ReverseGeocode(context.Background(), domain.Coordinates{})
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestTomTomReverseGeocodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewTomTomClient("tt")
	require.NoError(t, err)
	c.WithBaseURL(srv.URL)

	_, err = c.ReverseGeocode(context.Background(), domain.Coordinates{})
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestTomTomTransportErrorDoesNotLeakKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewTomTomClient("SECRET-KEY-123")
	require.NoError(t, err)
	c.WithBaseURL(base)
	c.http.MaxAttempts = 1

	_, err = c.ReverseGeocode(context.Background(), domain.Coordinates{Lon: 1, Lat: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
}

func TestParsePosition(t *testing.T) {
	c, err := parsePosition(" 43.5 , -79.25 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -79.25, Lat: 43.5}, c)

	for _, bad := range []string{"", "43.5", "x,1", "1,y"} {
		_, err := parsePosition(bad)
		assert.Error(t, err, bad)
	}
}
