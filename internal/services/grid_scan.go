package services

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/geometry"
	"fmt"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Upper bound on grid points; the neighbor-count step is quadratic in this.
const DefaultMaxGridPoints = 250_000

// Parameters for the coverage grid scan.
type GridParams struct {
	// Grid spacing in degrees, applied to both axes.
	Step float64
	// Points closer than this to a facility are considered covered.
	MinDistanceMiles float64
	// Radius used to count other uncovered points around a point.
	MaxSubDistanceMiles float64
	// Points with fewer uncovered neighbors are treated as noise.
	MinSubCount int
	// Refuse grids larger than this; 0 uses DefaultMaxGridPoints.
	MaxPoints int
}

func (p GridParams) Validate() error {
	if p.Step <= 0 || math.IsNaN(p.Step) {
		return fmt.Errorf("grid params: step must be positive, got %v: %w", p.Step, domain.ErrConfiguration)
	}
	if p.MaxSubDistanceMiles < 0 {
		return fmt.Errorf("grid params: max sub distance must be >= 0, got %v: %w", p.MaxSubDistanceMiles, domain.ErrConfiguration)
	}
	if p.MinSubCount < 0 {
		return fmt.Errorf("grid params: min sub count must be >= 0, got %d: %w", p.MinSubCount, domain.ErrConfiguration)
	}
	return nil
}

// ScanGrid estimates coverage gaps on an evenly spaced grid over the region's
// bounding box.
//
// Points inside the region and at least MinDistanceMiles from every facility are
// kept; each is then annotated with the number of other kept points within
// MaxSubDistanceMiles, and points below MinSubCount are dropped. Output is sorted
// ascending by that count, ties ordered by descending distance to coverage.
func ScanGrid(facilities []domain.Coordinates, region domain.Region, params GridParams) ([]domain.GridPoint, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("scan grid: %w", err)
	}
	if len(facilities) == 0 {
		return nil, fmt.Errorf("scan grid: facility set is empty: %w", domain.ErrConfiguration)
	}

	sw, ne := geometry.BoundingBox(region)

	limit := params.MaxPoints
	if limit <= 0 {
		limit = DefaultMaxGridPoints
	}
	// Size the grid in float64 before allocating: a tiny step overflows int.
	nLon := axisLen(sw.Lon, ne.Lon, params.Step)
	nLat := axisLen(sw.Lat, ne.Lat, params.Step)
	if total := nLon * nLat; math.IsInf(total, 0) || math.IsNaN(total) || total > float64(limit) {
		return nil, fmt.Errorf(
			"scan grid: %g x %g grid exceeds %d points: %w",
			nLon, nLat, limit, domain.ErrConfiguration,
		)
	}
	lons := axis(sw.Lon, ne.Lon, params.Step)
	lats := axis(sw.Lat, ne.Lat, params.Step)

	ring := geometry.Ring(region)
	workers := runtime.GOMAXPROCS(0)

	// Nearest-facility distance per longitude column.
	columns := make([][]domain.GridPoint, len(lons))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, lon := range lons {
		i, lon := i, lon
		g.Go(func() error {
			col := make([]domain.GridPoint, 0, len(lats))
			for _, lat := range lats {
				c := domain.Coordinates{Lon: lon, Lat: lat}
				d, _ := geometry.NearestDistanceMiles(c, facilities)
				if d < params.MinDistanceMiles || !geometry.Contains(ring, c) {
					continue
				}
				col = append(col, domain.GridPoint{Coordinates: c, DistanceMiles: d})
			}
			columns[i] = col
			return nil
		})
	}
	_ = g.Wait()

	// slices.Concat needs Go 1.22; the local toolchain is 1.21.
	n := 0
	for _, col := range columns {
		n += len(col)
	}
	gaps := make([]domain.GridPoint, 0, n)
	for _, col := range columns {
		gaps = append(gaps, col...)
	}
	slices.SortStableFunc(gaps, func(a, b domain.GridPoint) int {
		switch {
		case a.DistanceMiles > b.DistanceMiles:
			return -1
		case a.DistanceMiles < b.DistanceMiles:
			return 1
		}
		return 0
	})

	counts := make([]int, len(gaps))
	var cg errgroup.Group
	cg.SetLimit(workers)
	for i := range gaps {
		i := i
		cg.Go(func() error {
			n := 0
			for j := range gaps {
				if i == j {
					continue
				}
				if geometry.DistanceMiles(gaps[i].Coordinates, gaps[j].Coordinates) <= params.MaxSubDistanceMiles {
					n++
				}
			}
			counts[i] = n
			return nil
		})
	}
	_ = cg.Wait()

	out := make([]domain.GridPoint, 0, len(gaps))
	for i, p := range gaps {
		if counts[i] < params.MinSubCount {
			continue
		}
		p.NeighborCount = counts[i]
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b domain.GridPoint) int {
		return a.NeighborCount - b.NeighborCount
	})
	return out, nil
}

// axisLen is the number of values axis would return, as a float64.
func axisLen(start, stop, step float64) float64 {
	n := math.Ceil((stop - start) / step)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return n
}

// axis returns start, start+step, ... strictly below stop.
// Callers bound the length with axisLen first.
func axis(start, stop, step float64) []float64 {
	n := int(axisLen(start, stop, step))
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		if v >= stop {
			break
		}
		out = append(out, v)
	}
	return out
}
