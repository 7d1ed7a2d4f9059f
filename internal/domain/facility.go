package domain

// Represents an existing, already-built charging station.
// Facilities are sourced externally and treated as read-only.
type Facility struct {
	ID          int
	Name        string
	Address     string
	Coordinates Coordinates
	Properties  map[string]any
}

// Named fixed point of interest that must be covered regardless of density.
type Target struct {
	Name        string
	Coordinates Coordinates
}

// FacilityCoordinates projects facilities onto their coordinates.
func FacilityCoordinates(fs []Facility) []Coordinates {
	out := make([]Coordinates, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Coordinates)
	}
	return out
}

// Resolved address for a coordinate, as returned by a reverse geocoder.
// Coordinates may differ from the query point (snapped to the road network).
type GeocodeResult struct {
	Address     string
	Coordinates Coordinates
}
