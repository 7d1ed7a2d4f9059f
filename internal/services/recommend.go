package services

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Inputs of one recommendation run. Region and Targets are static configuration
// loaded once at startup; everything else may vary per request.
type RecommendRequest struct {
	Region              domain.Region
	Targets             []domain.Target
	Query               ports.FacilityQuery
	Selection           SelectionParams
	CorridorRadiusMiles float64
	Quantity            *int
}

// ListExistingFacilities fetches the baseline station network.
// Failures are reported as ErrExternalService.
func ListExistingFacilities(
	ctx context.Context,
	provider ports.FacilityProvider,
	q ports.FacilityQuery,
) (_ []domain.Facility, err error) {
	defer obs.Time(ctx, "services.ListExistingFacilities")(&err)

	if provider == nil {
		return nil, fmt.Errorf("list facilities: provider is nil: %w", domain.ErrConfiguration)
	}

	fs, err := provider.FetchFacilities(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrExternalService) {
			return nil, fmt.Errorf("list facilities: %w", err)
		}
		return nil, fmt.Errorf("list facilities: %w: %w", domain.ErrExternalService, err)
	}
	return fs, nil
}

// RecommendNewSites ranks candidate sites for new stations.
//
// Pipeline: pairwise centroids and corridor candidates go through greedy selection;
// the accepted set is merged with the raw corridor candidates, deduplicated,
// resolved to addresses, then ranked farthest-from-coverage first.
// A facility fetch failure aborts the run; geocode failures only drop candidates.
func RecommendNewSites(
	ctx context.Context,
	req RecommendRequest,
	provider ports.FacilityProvider,
	resolver *AddressResolver,
) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "services.RecommendNewSites")(&err)

	if err := req.Selection.Validate(); err != nil {
		return nil, fmt.Errorf("recommend new sites: %w", err)
	}
	if req.CorridorRadiusMiles < 0 {
		return nil, fmt.Errorf("recommend new sites: corridor radius must be >= 0: %w", domain.ErrConfiguration)
	}

	fs, err := ListExistingFacilities(ctx, provider, req.Query)
	if err != nil {
		return nil, fmt.Errorf("recommend new sites: %w", err)
	}
	if len(fs) == 0 {
		return nil, fmt.Errorf("recommend new sites: no existing facilities: %w", domain.ErrConfiguration)
	}
	facilities := domain.FacilityCoordinates(fs)

	corridor := ExpandTargets(req.Targets, req.CorridorRadiusMiles, req.Region)

	pool := make([]domain.Candidate, 0)
	for _, c := range GenerateCentroids(facilities, req.Region) {
		pool = append(pool, domain.NewCandidate(c, domain.OriginCentroid))
	}
	pool = append(pool, corridor...)
	SortCandidates(pool)
	obs.CandidatesTotal.WithLabelValues("generated").Add(float64(len(pool)))

	accepted, err := SelectCandidates(pool, facilities, req.Selection)
	if err != nil {
		return nil, fmt.Errorf("recommend new sites: %w", err)
	}
	obs.CandidatesTotal.WithLabelValues("accepted").Add(float64(len(accepted)))

	merged := dedupeCandidates(append(accepted, corridor...))

	resolved, err := resolver.Resolve(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("recommend new sites: %w", err)
	}
	// Two candidates may snap to the same address point.
	resolved = dedupeCandidates(resolved)

	ranked, err := RankCandidates(resolved, facilities, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("recommend new sites: %w", err)
	}
	obs.CandidatesTotal.WithLabelValues("ranked").Add(float64(len(ranked)))

	log.Info().
		Str("req_id", obs.RequestID(ctx)).
		Int("facilities", len(facilities)).
		Int("pool", len(pool)).
		Int("accepted", len(accepted)).
		Int("corridor", len(corridor)).
		Int("returned", len(ranked)).
		Msg("recommendation complete")

	return ranked, nil
}

// ScanCoverage runs the grid coverage estimator against the current network.
func ScanCoverage(
	ctx context.Context,
	region domain.Region,
	q ports.FacilityQuery,
	params GridParams,
	provider ports.FacilityProvider,
) (_ []domain.GridPoint, err error) {
	defer obs.Time(ctx, "services.ScanCoverage")(&err)

	fs, err := ListExistingFacilities(ctx, provider, q)
	if err != nil {
		return nil, fmt.Errorf("scan coverage: %w", err)
	}

	points, err := ScanGrid(domain.FacilityCoordinates(fs), region, params)
	if err != nil {
		return nil, fmt.Errorf("scan coverage: %w", err)
	}
	return points, nil
}

// CentroidGaps fetches facilities and lists the density-blind centroid gaps.
func CentroidGaps(
	ctx context.Context,
	region domain.Region,
	q ports.FacilityQuery,
	minDistance float64,
	quantity int,
	provider ports.FacilityProvider,
) (_ []CentroidGap, err error) {
	defer obs.Time(ctx, "services.CentroidGaps")(&err)

	fs, err := ListExistingFacilities(ctx, provider, q)
	if err != nil {
		return nil, fmt.Errorf("centroid gaps: %w", err)
	}
	return ListCentroidGaps(domain.FacilityCoordinates(fs), region, minDistance, quantity), nil
}
