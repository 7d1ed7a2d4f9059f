package services

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/geometry"
	"fmt"
)

// Thresholds for density-aware candidate selection.
type SelectionParams struct {
	// Radius used to count neighbors around a candidate.
	MinDistanceMiles float64
	// A candidate with more neighbors than this is considered over-served.
	MaxTolerable int
	// Plain candidates closer than this to an accepted point are dropped.
	HardMinDistanceMiles float64
}

func (p SelectionParams) Validate() error {
	if p.MinDistanceMiles <= 0 {
		return fmt.Errorf("selection params: min distance must be positive, got %v: %w", p.MinDistanceMiles, domain.ErrConfiguration)
	}
	if p.MaxTolerable < 0 {
		return fmt.Errorf("selection params: max tolerable must be >= 0, got %d: %w", p.MaxTolerable, domain.ErrConfiguration)
	}
	if p.HardMinDistanceMiles < 0 {
		return fmt.Errorf("selection params: hard min distance must be >= 0, got %v: %w", p.HardMinDistanceMiles, domain.ErrConfiguration)
	}
	return nil
}

type neighbor struct {
	coord  domain.Coordinates
	origin domain.Origin
	dist   float64
}

// selection is the working state of one SelectCandidates call.
type selection struct {
	candidates []domain.Candidate
	facilities []domain.Coordinates
	excluded   map[domain.Coordinates]struct{}
	accepted   []domain.Candidate
}

// SelectCandidates runs one greedy pass over candidates in slice order.
//
// For each candidate not yet excluded, neighbors are the remaining (non-excluded)
// candidates and all facilities strictly within MinDistanceMiles. A candidate with
// more than MaxTolerable neighbors is rejected and its plain neighbors are excluded;
// otherwise it is accepted and only plain neighbors strictly within
// HardMinDistanceMiles are excluded. Corridor candidates and facilities are never
// excluded.
//
// The pass is not iterated to a fixed point, so the result depends on the order of
// candidates. Callers that need reproducible output sort first (see SortCandidates).
// Duplicate coordinates are evaluated once, at their first position; a corridor
// copy of a centroid keeps its corridor origin.
func SelectCandidates(
	candidates []domain.Candidate,
	facilities []domain.Coordinates,
	params SelectionParams,
) ([]domain.Candidate, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}

	s := &selection{
		candidates: dedupeCandidates(candidates),
		facilities: facilities,
		excluded:   make(map[domain.Coordinates]struct{}),
		accepted:   make([]domain.Candidate, 0),
	}

	for _, p := range s.candidates {
		if _, ok := s.excluded[p.Coordinates]; ok {
			continue
		}
		s.visit(p, params)
	}

	return s.accepted, nil
}

func (s *selection) visit(p domain.Candidate, params SelectionParams) {
	neighbors := s.neighbors(p.Coordinates, params.MinDistanceMiles)

	if len(neighbors) > params.MaxTolerable {
		for _, q := range neighbors {
			if q.origin.Excludable() {
				s.excluded[q.coord] = struct{}{}
			}
		}
		return
	}

	s.accepted = append(s.accepted, p)
	for _, q := range neighbors {
		if q.origin.Excludable() && q.dist < params.HardMinDistanceMiles {
			s.excluded[q.coord] = struct{}{}
		}
	}
}

// neighbors collects points strictly within radius of c, drawn from the
// non-excluded candidates (other than c itself) and every facility.
func (s *selection) neighbors(c domain.Coordinates, radius float64) []neighbor {
	out := make([]neighbor, 0)
	for _, q := range s.candidates {
		if q.Coordinates == c {
			continue
		}
		if _, ok := s.excluded[q.Coordinates]; ok {
			continue
		}
		if d := geometry.DistanceMiles(c, q.Coordinates); d < radius {
			out = append(out, neighbor{coord: q.Coordinates, origin: q.Origin, dist: d})
		}
	}
	for _, f := range s.facilities {
		if d := geometry.DistanceMiles(c, f); d < radius {
			out = append(out, neighbor{coord: f, origin: domain.OriginFacility, dist: d})
		}
	}
	return out
}

// dedupeCandidates keeps one candidate per coordinate at its first position.
// A corridor copy wins over a centroid copy so the point stays unexcludable.
func dedupeCandidates(cs []domain.Candidate) []domain.Candidate {
	seen := make(map[domain.Coordinates]int, len(cs))
	out := make([]domain.Candidate, 0, len(cs))
	for _, c := range cs {
		if i, ok := seen[c.Coordinates]; ok {
			if out[i].Origin.Excludable() && !c.Origin.Excludable() {
				out[i] = c
			}
			continue
		}
		seen[c.Coordinates] = len(out)
		out = append(out, c)
	}
	return out
}
