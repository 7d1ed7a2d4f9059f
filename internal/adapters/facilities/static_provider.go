package facilities

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/ports"
	"context"
	"fmt"
)

// StaticProvider serves a fixed facility list. Used in tests and offline demos.
type StaticProvider struct {
	facilities []domain.Facility
	err        error
}

func NewStaticProvider(fs []domain.Facility) *StaticProvider {
	cp := make([]domain.Facility, len(fs))
	copy(cp, fs)
	return &StaticProvider{facilities: cp}
}

// NewStaticProviderAt builds unnamed facilities from bare coordinates.
func NewStaticProviderAt(coords ...domain.Coordinates) *StaticProvider {
	fs := make([]domain.Facility, 0, len(coords))
	for i, c := range coords {
		fs = append(fs, domain.Facility{ID: i + 1, Name: fmt.Sprintf("station-%d", i+1), Coordinates: c})
	}
	return &StaticProvider{facilities: fs}
}

// NewFailingProvider returns a provider whose every fetch fails with err.
func NewFailingProvider(err error) *StaticProvider {
	return &StaticProvider{err: err}
}

func (p *StaticProvider) FetchFacilities(ctx context.Context, q ports.FacilityQuery) ([]domain.Facility, error) {
	if p.err != nil {
		return nil, fmt.Errorf("static facilities: %w", p.err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Facility, len(p.facilities))
	copy(out, p.facilities)
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}
