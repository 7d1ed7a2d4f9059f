package ports

import (
	"charger-siting-service/internal/domain"
	"context"
)

// Contract for resolving a coordinate to a normalized street address.
type ReverseGeocoder interface {
	// Return the address nearest to c and the coordinate it was snapped to.
	ReverseGeocode(ctx context.Context, c domain.Coordinates) (domain.GeocodeResult, error)
}
