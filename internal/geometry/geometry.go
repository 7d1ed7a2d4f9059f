// Package geometry is the pure geodesic kernel used by the siting algorithms.
// Distances are reported in statute miles; projections take meters.
package geometry

import (
	"charger-siting-service/internal/domain"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

const MetersPerMile = 1609.34

// Compass bearings used for bounding-box projection.
const (
	BearingNorth = 0.0
	BearingEast  = 90.0
	BearingSouth = 180.0
	BearingWest  = 270.0
)

// MilesToMeters converts statute miles to meters.
func MilesToMeters(mi float64) float64 { return mi * MetersPerMile }

// DistanceMiles returns the great-circle (haversine) distance between a and b.
func DistanceMiles(a, b domain.Coordinates) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point()) / MetersPerMile
}

// Direct projects from c along bearing (degrees clockwise from north) for meters.
// The earth is a sphere here; ellipsoidal error is sub-metre at corridor radii.
func Direct(c domain.Coordinates, bearing, meters float64) domain.Coordinates {
	return domain.FromPoint(geo.PointAtBearingAndDistance(c.Point(), bearing, meters))
}

// Inverse returns the distance in miles and the initial bearing from a to b.
func Inverse(a, b domain.Coordinates) (miles float64, bearing float64) {
	return DistanceMiles(a, b), geo.Bearing(a.Point(), b.Point())
}

// Midpoint returns the great-circle midpoint of a and b.
func Midpoint(a, b domain.Coordinates) domain.Coordinates {
	return domain.FromPoint(geo.Midpoint(a.Point(), b.Point()))
}

// Ring converts a region into an orb.Ring.
func Ring(r domain.Region) orb.Ring {
	ring := make(orb.Ring, 0, len(r.Ring))
	for _, c := range r.Ring {
		ring = append(ring, c.Point())
	}
	return ring
}

// Contains reports whether c lies inside the region. Boundary points count as inside.
func Contains(ring orb.Ring, c domain.Coordinates) bool {
	return planar.RingContains(ring, c.Point())
}

// BoundingBox returns the south-west and north-east corners of the region.
func BoundingBox(r domain.Region) (sw, ne domain.Coordinates) {
	b := Ring(r).Bound()
	return domain.FromPoint(b.Min), domain.FromPoint(b.Max)
}

// NearestDistanceMiles returns the distance from c to the closest point in refs.
// ok is false when refs is empty.
func NearestDistanceMiles(c domain.Coordinates, refs []domain.Coordinates) (d float64, ok bool) {
	if len(refs) == 0 {
		return 0, false
	}

	best := math.Inf(1)
	for _, r := range refs {
		if dist := DistanceMiles(c, r); dist < best {
			best = dist
		}
	}
	return best, true
}
