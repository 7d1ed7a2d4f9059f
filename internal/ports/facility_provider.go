package ports

import (
	"charger-siting-service/internal/domain"
	"context"
)

// Search window for existing facilities.
// Limit 0 means "all"; Options are passed through to the upstream directory.
type FacilityQuery struct {
	CenterLat   float64
	CenterLon   float64
	RadiusMiles float64
	Limit       int
	Options     map[string]string
}

// Port: a boundary for retrieving existing charging stations.
type FacilityProvider interface {
	// Return facilities near the query center.
	FetchFacilities(ctx context.Context, q FacilityQuery) ([]domain.Facility, error)
}
