package dto

import (
	"charger-siting-service/internal/domain"

	"github.com/paulmach/orb/geojson"
)

// FacilityFeatureCollection renders stations as point features. Upstream
// properties are kept; id, name, address and origin are always set.
func FacilityFeatureCollection(fs []domain.Facility) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range fs {
		feat := geojson.NewFeature(f.Coordinates.Point())
		for k, v := range f.Properties {
			feat.Properties[k] = v
		}
		feat.Properties["id"] = f.ID
		feat.Properties["name"] = f.Name
		feat.Properties["address"] = f.Address
		feat.Properties["origin"] = domain.OriginFacility.String()
		fc.Append(feat)
	}
	return fc
}

// GridFeatureCollection renders grid points as a heat map layer.
func GridFeatureCollection(points []domain.GridPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		feat := geojson.NewFeature(p.Coordinates.Point())
		feat.Properties["distance_to_existing"] = p.DistanceMiles
		feat.Properties["neighbor_count"] = p.NeighborCount
		fc.Append(feat)
	}
	return fc
}
