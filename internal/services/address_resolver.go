package services

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Default minimum delay between upstream reverse-geocode calls.
const DefaultGeocodeInterval = 500 * time.Millisecond

// AddressResolver snaps candidates to street addresses.
//
// It runs after selection and never inside it. Calls are sequential and spaced by a
// fixed minimum interval to respect the upstream quota. A failed lookup drops only
// that candidate; cancellation of ctx stops the stage.
type AddressResolver struct {
	geocoder ports.ReverseGeocoder
	exclude  *regexp.Regexp
	limiter  *rate.Limiter
}

// NewAddressResolver returns a resolver. A nil geocoder makes Resolve a no-op;
// a nil exclude pattern keeps every address. interval <= 0 disables spacing.
func NewAddressResolver(geocoder ports.ReverseGeocoder, exclude *regexp.Regexp, interval time.Duration) *AddressResolver {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &AddressResolver{
		geocoder: geocoder,
		exclude:  exclude,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Resolve returns the candidates that resolved to an acceptable address, in input
// order, with coordinates replaced by the geocoder's snapped position.
func (r *AddressResolver) Resolve(ctx context.Context, candidates []domain.Candidate) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "services.ResolveAddresses")(&err)

	if r == nil || r.geocoder == nil {
		return candidates, nil
	}

	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("resolve addresses: wait for geocode slot: %w", err)
		}

		res, err := r.geocoder.ReverseGeocode(ctx, c.Coordinates)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("resolve addresses: %w", ctx.Err())
			}
			obs.GeocodeFailTotal.Inc()
			log.Warn().
				Str("req_id", obs.RequestID(ctx)).
				Float64("lat", c.Coordinates.Lat).
				Float64("lon", c.Coordinates.Lon).
				Err(err).
				Msg("reverse geocode failed, skipping candidate")
			continue
		}

		if r.exclude != nil && r.exclude.MatchString(res.Address) {
			obs.GeocodeFilteredTotal.Inc()
			log.Debug().Str("address", res.Address).Msg("candidate on excluded road class")
			continue
		}

		c.Address = res.Address
		c.Coordinates = res.Coordinates
		out = append(out, c)
	}

	return out, nil
}
