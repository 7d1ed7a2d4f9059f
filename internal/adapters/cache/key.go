package cache

import (
	"charger-siting-service/internal/domain"
	"fmt"
)

// CoordKey rounds c to 5 decimals (about a metre) as "lat,lon".
// Nearby queries that round together share a cache entry.
func CoordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}
