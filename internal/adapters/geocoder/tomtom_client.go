// Package geocoder implements ReverseGeocoder against the TomTom Search API.
package geocoder

import (
	"charger-siting-service/internal/adapters/upstream"
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/obs"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultTomTomBaseURL = "https://api.tomtom.com/search/2"

type reverseGeocodeResponse struct {
	Addresses []struct {
		Address struct {
			FreeformAddress string `json:"freeformAddress"`
		} `json:"address"`
		Position string `json:"position"`
	} `json:"addresses"`
}

// TomTomClient resolves coordinates to addresses with /reverseGeocode.
// It is safe for concurrent use; callers are responsible for pacing.
type TomTomClient struct {
	http    *upstream.Client
	apiKey  string
	baseURL string
}

func NewTomTomClient(apiKey string) (*TomTomClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("TomTom api key is empty: %w", domain.ErrConfiguration)
	}

	return &TomTomClient{
		http:    upstream.NewClient(10 * time.Second),
		apiKey:  apiKey,
		baseURL: defaultTomTomBaseURL,
	}, nil
}

// WithBaseURL points the client at another host. Used by tests.
func (t *TomTomClient) WithBaseURL(u string) *TomTomClient {
	t.baseURL = strings.TrimRight(u, "/")
	return t
}

func (t *TomTomClient) ReverseGeocode(
	ctx context.Context,
	c domain.Coordinates,
) (_ domain.GeocodeResult, err error) {
	defer obs.Time(ctx, "tomtom.ReverseGeocode")(&err)
	obs.GeocodeRequestsTotal.Inc()

	endpoint := fmt.Sprintf("%s/reverseGeocode/%s,%s.json",
		t.baseURL,
		strconv.FormatFloat(c.Lat, 'f', -1, 64),
		strconv.FormatFloat(c.Lon, 'f', -1, 64),
	)

	resp, err := t.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := t.http.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("key", t.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("reverse geocode: %w: %w", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	var decoded reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("reverse geocode: decode response: %w: %w", domain.ErrExternalService, err)
	}

	if len(decoded.Addresses) == 0 {
		return domain.GeocodeResult{}, fmt.Errorf("reverse geocode: no address for %v: %w", c.CoordsToList(), domain.ErrExternalService)
	}

	first := decoded.Addresses[0]
	snapped, err := parsePosition(first.Position)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("reverse geocode: %w: %w", domain.ErrExternalService, err)
	}

	return domain.GeocodeResult{
		Address:     strings.TrimSpace(first.Address.FreeformAddress),
		Coordinates: snapped,
	}, nil
}

// parsePosition reads TomTom's "lat,lon" position string.
func parsePosition(s string) (domain.Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("invalid position %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}
