package services

import (
	"charger-siting-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

// toyRegion covers [-1,1] x [-1,3] in degrees.
func toyRegion(t *testing.T) domain.Region {
	t.Helper()
	r, err := domain.NewRegion([]domain.Coordinates{
		{Lon: -1, Lat: -1},
		{Lon: 1, Lat: -1},
		{Lon: 1, Lat: 3},
		{Lon: -1, Lat: 3},
	})
	require.NoError(t, err)
	return r
}

func centroid(lon, lat float64) domain.Candidate {
	return domain.NewCandidate(domain.Coordinates{Lon: lon, Lat: lat}, domain.OriginCentroid)
}

func corridor(lon, lat float64) domain.Candidate {
	return domain.NewCandidate(domain.Coordinates{Lon: lon, Lat: lat}, domain.OriginCorridor)
}

func coords(cs []domain.Candidate) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Coordinates)
	}
	return out
}

func intPtr(v int) *int { return &v }
