package services

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/geometry"
	"math"
)

// ExpandTargets derives corridor candidates around each target.
//
// The four cardinal projections of radiusMiles give the target's bounding box;
// its corners and the target itself are emitted (in that order) when they fall
// inside the region. Every result is tagged as corridor-derived.
func ExpandTargets(targets []domain.Target, radiusMiles float64, region domain.Region) []domain.Candidate {
	ring := geometry.Ring(region)
	meters := geometry.MilesToMeters(radiusMiles)

	out := make([]domain.Candidate, 0, len(targets)*5)
	for _, t := range targets {
		c := t.Coordinates

		north := geometry.Direct(c, geometry.BearingNorth, meters)
		south := geometry.Direct(c, geometry.BearingSouth, meters)
		east := geometry.Direct(c, geometry.BearingEast, meters)
		west := geometry.Direct(c, geometry.BearingWest, meters)

		minLat, maxLat := math.Min(north.Lat, south.Lat), math.Max(north.Lat, south.Lat)
		minLon, maxLon := math.Min(east.Lon, west.Lon), math.Max(east.Lon, west.Lon)

		points := []domain.Coordinates{
			{Lon: minLon, Lat: minLat},
			{Lon: minLon, Lat: maxLat},
			{Lon: maxLon, Lat: minLat},
			{Lon: maxLon, Lat: maxLat},
			c,
		}
		for _, p := range points {
			if geometry.Contains(ring, p) {
				out = append(out, domain.NewCandidate(p, domain.OriginCorridor))
			}
		}
	}

	return out
}
