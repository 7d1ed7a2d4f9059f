package facilities

import (
	"charger-siting-service/internal/adapters/upstream"
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

const defaultNRELBaseURL = "https://developer.nrel.gov/api/alt-fuel-stations/v1"

// NRELClient implements FacilityProvider using the NREL Alternative Fuel
// Stations API (nearest.geojson). It is safe for concurrent use.
type NRELClient struct {
	http    *upstream.Client
	apiKey  string
	baseURL string
	params  map[string]string
}

// Search parameters sent with every request unless overridden per query.
func defaultNRELParams() map[string]string {
	return map[string]string{
		"country":           "CA",
		"fuel_type":         "ELEC",
		"access":            "public",
		"status":            "E,T",
		"limit":             "all",
		"ev_connector_type": "all",
		"ev_charging_level": "all",
		"ev_network":        "all",
		"owner_type":        "all",
		"cards_accepted":    "all",
	}
}

func NewNRELClient(apiKey string) (*NRELClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NREL api key is empty: %w", domain.ErrConfiguration)
	}

	return &NRELClient{
		http:    upstream.NewClient(30 * time.Second),
		apiKey:  apiKey,
		baseURL: defaultNRELBaseURL,
		params:  defaultNRELParams(),
	}, nil
}

// WithBaseURL points the client at another host. Used by tests.
func (n *NRELClient) WithBaseURL(u string) *NRELClient {
	n.baseURL = strings.TrimRight(u, "/")
	return n
}

func (n *NRELClient) FetchFacilities(
	ctx context.Context,
	q ports.FacilityQuery,
) (_ []domain.Facility, err error) {
	defer obs.Time(ctx, "nrel.FetchFacilities")(&err)
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		obs.FacilityFetchTotal.WithLabelValues("nrel", status).Inc()
	}()

	endpoint := n.baseURL + "/nearest.geojson"

	resp, err := n.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.http.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Api-Key", n.apiKey)
		req.URL.RawQuery = n.query(q).Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch NREL stations: %w: %w", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch NREL stations: read body: %w: %w", domain.ErrExternalService, err)
	}

	out, skipped, err := DecodeStations(body)
	if err != nil {
		return nil, fmt.Errorf("fetch NREL stations: %w: %w", domain.ErrExternalService, err)
	}
	if skipped > 0 {
		log.Warn().Str("req_id", obs.RequestID(ctx)).Int("skipped", skipped).Msg("nrel: features without point geometry")
	}

	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}

	return out, nil
}

func (n *NRELClient) query(q ports.FacilityQuery) url.Values {
	v := url.Values{}
	for k, val := range n.params {
		v.Set(k, val)
	}
	v.Set("latitude", strconv.FormatFloat(q.CenterLat, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(q.CenterLon, 'f', -1, 64))
	if q.RadiusMiles > 0 {
		v.Set("radius", strconv.FormatFloat(q.RadiusMiles, 'f', -1, 64))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	for k, val := range q.Options {
		v.Set(k, val)
	}
	return v
}

// DecodeStations parses an NREL GeoJSON FeatureCollection. Features without
// point geometry are counted in skipped and left out.
func DecodeStations(data []byte) (_ []domain.Facility, skipped int, err error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decode geojson: %w", err)
	}

	out := make([]domain.Facility, 0, len(fc.Features))
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			skipped++
			continue
		}
		out = append(out, FacilityFromFeature(f.Properties, pt))
	}
	return out, skipped, nil
}

// FacilityFromFeature maps NREL station properties onto a Facility.
func FacilityFromFeature(props geojson.Properties, pt orb.Point) domain.Facility {
	return domain.Facility{
		ID:          props.MustInt("id", 0),
		Name:        props.MustString("station_name", ""),
		Address:     stationAddress(props),
		Coordinates: domain.FromPoint(pt),
		Properties:  map[string]any(props.Clone()),
	}
}

func stationAddress(props geojson.Properties) string {
	parts := make([]string, 0, 4)
	for _, k := range []string{"street_address", "city", "state", "zip"} {
		if s := strings.TrimSpace(props.MustString(k, "")); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
