package domain

import (
	"errors"
	"testing"
)

func TestNewRegionClosesOpenRing(t *testing.T) {
	r, err := NewRegion([]Coordinates{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Ring) != 5 {
		t.Fatalf("ring length = %d, want 5", len(r.Ring))
	}
	if r.Ring[0] != r.Ring[4] {
		t.Fatalf("ring not closed: first=%v last=%v", r.Ring[0], r.Ring[4])
	}
}

func TestNewRegionKeepsClosedRing(t *testing.T) {
	r, err := NewRegion([]Coordinates{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Ring) != 4 {
		t.Fatalf("ring length = %d, want 4", len(r.Ring))
	}
}

func TestNewRegionRejectsDegenerateRing(t *testing.T) {
	cases := map[string][]Coordinates{
		"empty":     nil,
		"two":       {{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}},
		"collapsed": {{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0}},
	}

	for name, vertices := range cases {
		if _, err := NewRegion(vertices); !errors.Is(err, ErrGeometry) {
			t.Errorf("%s: err = %v, want ErrGeometry", name, err)
		}
	}
}

func TestOriginExcludable(t *testing.T) {
	if !OriginCentroid.Excludable() {
		t.Errorf("centroid candidates must be excludable")
	}
	if OriginCorridor.Excludable() || OriginFacility.Excludable() {
		t.Errorf("corridor and facility points must never be excludable")
	}
	if OriginCorridor.String() != "artificial" {
		t.Errorf("corridor tag = %q, want artificial", OriginCorridor.String())
	}
}
