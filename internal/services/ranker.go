package services

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/geometry"
	"fmt"
	"slices"
)

// RankCandidates annotates every candidate with its distance to the nearest
// facility and sorts farthest-first. The sort is stable, so ties keep input order.
// A nil quantity returns everything; otherwise at most *quantity candidates.
func RankCandidates(
	candidates []domain.Candidate,
	facilities []domain.Coordinates,
	quantity *int,
) ([]domain.Candidate, error) {
	if len(facilities) == 0 {
		return nil, fmt.Errorf("rank candidates: facility set is empty: %w", domain.ErrConfiguration)
	}
	if quantity != nil && *quantity < 0 {
		return nil, fmt.Errorf("rank candidates: quantity must be >= 0, got %d: %w", *quantity, domain.ErrConfiguration)
	}

	ranked := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		c.DistanceMiles, _ = geometry.NearestDistanceMiles(c.Coordinates, facilities)
		ranked = append(ranked, c)
	}

	slices.SortStableFunc(ranked, func(a, b domain.Candidate) int {
		switch {
		case a.DistanceMiles > b.DistanceMiles:
			return -1
		case a.DistanceMiles < b.DistanceMiles:
			return 1
		}
		return 0
	})

	if quantity != nil && *quantity < len(ranked) {
		ranked = ranked[:*quantity]
	}
	return ranked, nil
}

// SortCandidates puts candidates into the canonical processing order (lon, lat).
func SortCandidates(cs []domain.Candidate) {
	slices.SortStableFunc(cs, func(a, b domain.Candidate) int {
		return domain.CompareCoordinates(a.Coordinates, b.Coordinates)
	})
}
