package domain

import (
	"cmp"

	"github.com/paulmach/orb"
)

// Immutable geographic coordinates (longitude, latitude), WGS84 degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Point returns the coordinates as an orb.Point ([lon, lat]).
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lon, c.Lat} }

// FromPoint converts an orb.Point back into Coordinates.
func FromPoint(p orb.Point) Coordinates { return Coordinates{Lon: p.Lon(), Lat: p.Lat()} }

// CompareCoordinates orders by longitude, then latitude.
// This is the canonical processing order used by every order-sensitive step.
func CompareCoordinates(a, b Coordinates) int {
	if c := cmp.Compare(a.Lon, b.Lon); c != 0 {
		return c
	}
	return cmp.Compare(a.Lat, b.Lat)
}
