package services

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/geometry"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// GenerateCentroids returns the midpoints of every unordered pair of facilities
// that fall inside the region.
//
// The result is deduplicated and sorted by (lon, lat) so downstream greedy
// selection is deterministic. Rows of the pair matrix are evaluated in parallel;
// the inputs are read-only.
func GenerateCentroids(facilities []domain.Coordinates, region domain.Region) []domain.Coordinates {
	n := len(facilities)
	if n < 2 {
		return []domain.Coordinates{}
	}

	ring := geometry.Ring(region)
	rows := make([][]domain.Coordinates, n)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n-1; i++ {
		i := i
		g.Go(func() error {
			row := make([]domain.Coordinates, 0, n-i-1)
			for j := i + 1; j < n; j++ {
				m := geometry.Midpoint(facilities[i], facilities[j])
				if geometry.Contains(ring, m) {
					row = append(row, m)
				}
			}
			rows[i] = row
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[domain.Coordinates]struct{})
	out := make([]domain.Coordinates, 0)
	for _, row := range rows {
		for _, m := range row {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	slices.SortFunc(out, domain.CompareCoordinates)
	return out
}

// CentroidGap is a pairwise centroid annotated with its distance to the
// nearest facility.
type CentroidGap struct {
	Coordinates   domain.Coordinates
	DistanceMiles float64
}

// ListCentroidGaps ranks pairwise centroids by distance to the nearest facility
// and keeps those at least minDistance miles away. quantity <= 0 keeps all.
//
// This is the single-pass precursor of the greedy pipeline and is kept as a
// diagnostic: it ignores local density entirely.
func ListCentroidGaps(
	facilities []domain.Coordinates,
	region domain.Region,
	minDistance float64,
	quantity int,
) []CentroidGap {
	centroids := GenerateCentroids(facilities, region)

	gaps := make([]CentroidGap, 0, len(centroids))
	for _, c := range centroids {
		d, ok := geometry.NearestDistanceMiles(c, facilities)
		if !ok || d < minDistance {
			continue
		}
		gaps = append(gaps, CentroidGap{Coordinates: c, DistanceMiles: d})
	}

	slices.SortStableFunc(gaps, func(a, b CentroidGap) int {
		switch {
		case a.DistanceMiles > b.DistanceMiles:
			return -1
		case a.DistanceMiles < b.DistanceMiles:
			return 1
		}
		return 0
	})

	if quantity > 0 && quantity < len(gaps) {
		gaps = gaps[:quantity]
	}
	return gaps
}
