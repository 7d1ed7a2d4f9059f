package domain

// Origin records how a point entered the pipeline.
// Neighbor and exclusion rules dispatch on it.
type Origin int

const (
	// OriginCentroid is a plain candidate derived from facility geometry.
	OriginCentroid Origin = iota
	// OriginCorridor is a synthetic candidate derived from a fixed target.
	OriginCorridor
	// OriginFacility marks an existing station used as a reference point.
	OriginFacility
)

func (o Origin) String() string {
	switch o {
	case OriginCentroid:
		return "centroid"
	case OriginCorridor:
		return "artificial"
	case OriginFacility:
		return "facility"
	default:
		return "unknown"
	}
}

// Excludable reports whether density rules may remove a point of this origin.
// Facilities and corridor candidates are permanent reference points.
func (o Origin) Excludable() bool { return o == OriginCentroid }

// Represents a proposed new-site coordinate.
// DistanceMiles and Address are filled in by later pipeline stages; a Candidate
// returned from the ranker always carries DistanceMiles.
type Candidate struct {
	Coordinates   Coordinates
	Origin        Origin
	DistanceMiles float64
	Address       string
}

// NewCandidate returns an unranked candidate at c.
func NewCandidate(c Coordinates, origin Origin) Candidate {
	return Candidate{Coordinates: c, Origin: origin}
}

// Represents one cell of the coverage grid scan.
type GridPoint struct {
	Coordinates   Coordinates
	DistanceMiles float64
	NeighborCount int
}
