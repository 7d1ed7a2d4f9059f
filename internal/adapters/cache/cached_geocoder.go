package cache

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"context"

	"github.com/rs/zerolog/log"
)

// GeocodeStore is one tier of the reverse-geocode cache.
type GeocodeStore interface {
	Get(ctx context.Context, c domain.Coordinates) (domain.GeocodeResult, bool, error)
	Put(ctx context.Context, c domain.Coordinates, res domain.GeocodeResult) error
}

type namedStore struct {
	name  string
	store GeocodeStore
}

// CachedGeocoder decorates a ReverseGeocoder with tiered caches.
//
// Tiers are consulted in order; a hit back-fills the faster tiers in front of it.
// Cache errors are logged and treated as misses so the upstream stays authoritative.
type CachedGeocoder struct {
	next  ports.ReverseGeocoder
	tiers []namedStore
}

func NewCachedGeocoder(next ports.ReverseGeocoder) *CachedGeocoder {
	return &CachedGeocoder{next: next}
}

// WithTier appends a cache tier; nil stores are ignored.
func (g *CachedGeocoder) WithTier(name string, s GeocodeStore) *CachedGeocoder {
	if s != nil {
		g.tiers = append(g.tiers, namedStore{name: name, store: s})
	}
	return g
}

func (g *CachedGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinates) (domain.GeocodeResult, error) {
	for i, t := range g.tiers {
		res, ok, err := t.store.Get(ctx, c)
		if err != nil {
			obs.GeocodeCacheTotal.WithLabelValues(t.name, "error").Inc()
			log.Warn().Str("req_id", obs.RequestID(ctx)).Str("tier", t.name).Err(err).Msg("geocode cache read failed")
			continue
		}
		if !ok {
			obs.GeocodeCacheTotal.WithLabelValues(t.name, "miss").Inc()
			continue
		}

		obs.GeocodeCacheTotal.WithLabelValues(t.name, "hit").Inc()
		g.store(ctx, g.tiers[:i], c, res)
		return res, nil
	}

	res, err := g.next.ReverseGeocode(ctx, c)
	if err != nil {
		return domain.GeocodeResult{}, err
	}

	g.store(ctx, g.tiers, c, res)
	return res, nil
}

func (g *CachedGeocoder) store(ctx context.Context, tiers []namedStore, c domain.Coordinates, res domain.GeocodeResult) {
	for _, t := range tiers {
		if err := t.store.Put(ctx, c, res); err != nil {
			log.Warn().Str("req_id", obs.RequestID(ctx)).Str("tier", t.name).Err(err).Msg("geocode cache write failed")
		}
	}
}
