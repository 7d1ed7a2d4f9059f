package domain

import "fmt"

// Closed ring of coordinates bounding the study area (first == last).
// Self-intersection is assumed absent and is not validated.
type Region struct {
	Ring []Coordinates
}

// NewRegion builds a region from an ordered list of vertices.
// An open ring is closed by appending its first vertex.
func NewRegion(vertices []Coordinates) (Region, error) {
	if len(vertices) == 0 {
		return Region{}, fmt.Errorf("new region: no vertices: %w", ErrGeometry)
	}

	ring := make([]Coordinates, len(vertices), len(vertices)+1)
	copy(ring, vertices)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	if len(ring) < 4 {
		return Region{}, fmt.Errorf("new region: ring needs at least 4 points, got %d: %w", len(ring), ErrGeometry)
	}

	distinct := make(map[Coordinates]struct{}, len(ring))
	for _, c := range ring {
		distinct[c] = struct{}{}
	}
	if len(distinct) < 3 {
		return Region{}, fmt.Errorf("new region: ring has %d distinct vertices: %w", len(distinct), ErrGeometry)
	}

	return Region{Ring: ring}, nil
}
