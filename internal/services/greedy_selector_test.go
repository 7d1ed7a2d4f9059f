package services

import (
	"charger-siting-service/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 0.01 degree along the equator is ~0.69 miles.

func TestSelectCandidatesAcceptsIsolatedPoints(t *testing.T) {
	candidates := []domain.Candidate{centroid(0, 0), centroid(0, 1), corridor(0.5, 0.5)}
	facilities := []domain.Coordinates{{Lon: 0.9, Lat: 0.9}}
	params := SelectionParams{MinDistanceMiles: 3, MaxTolerable: 0, HardMinDistanceMiles: 1}

	accepted, err := SelectCandidates(candidates, facilities, params)
	require.NoError(t, err)
	assert.Equal(t, candidates, accepted)
}

func TestSelectCandidatesRejectionKeepsCorridorPoints(t *testing.T) {
	candidates := []domain.Candidate{
		centroid(0, 0),
		centroid(0.01, 0),
		corridor(0.02, 0),
	}
	facilities := []domain.Coordinates{{Lon: 0, Lat: 0.01}}
	params := SelectionParams{MinDistanceMiles: 3, MaxTolerable: 2, HardMinDistanceMiles: 1}

	accepted, err := SelectCandidates(candidates, facilities, params)
	require.NoError(t, err)

	// (0,0) sees 3 neighbors and is rejected, excluding (0.01,0) but not the
	// corridor point, which then sees only (0,0) and the facility.
	assert.Equal(t, []domain.Candidate{corridor(0.02, 0)}, accepted)
}

func TestSelectCandidatesAcceptanceExcludesOnlyWithinHardMinimum(t *testing.T) {
	candidates := []domain.Candidate{
		centroid(0, 0),
		centroid(0.01, 0),
		centroid(0.03, 0),
	}
	params := SelectionParams{MinDistanceMiles: 3, MaxTolerable: 5, HardMinDistanceMiles: 1}

	accepted, err := SelectCandidates(candidates, nil, params)
	require.NoError(t, err)
	assert.Equal(t, []domain.Candidate{centroid(0, 0), centroid(0.03, 0)}, accepted)
}

func TestSelectCandidatesIsOrderDependent(t *testing.T) {
	params := SelectionParams{MinDistanceMiles: 3, MaxTolerable: 5, HardMinDistanceMiles: 1}

	forward := []domain.Candidate{centroid(0, 0), centroid(0.01, 0), centroid(0.03, 0)}
	reverse := []domain.Candidate{centroid(0.03, 0), centroid(0.01, 0), centroid(0, 0)}

	a, err := SelectCandidates(forward, nil, params)
	require.NoError(t, err)
	b, err := SelectCandidates(reverse, nil, params)
	require.NoError(t, err)

	assert.Equal(t, []domain.Candidate{centroid(0, 0), centroid(0.03, 0)}, a)
	assert.Equal(t, []domain.Candidate{centroid(0.03, 0), centroid(0.01, 0)}, b)
}

func TestSelectCandidatesRejectedPointStillCountsAsNeighbor(t *testing.T) {
	facilities := []domain.Coordinates{{Lon: 0, Lat: 0.01}}
	params := SelectionParams{MinDistanceMiles: 1, MaxTolerable: 0, HardMinDistanceMiles: 0.1}

	// Alone, (0.012,0) has no neighbor within a mile (the station is ~1.08mi away).
	alone, err := SelectCandidates([]domain.Candidate{corridor(0.012, 0)}, facilities, params)
	require.NoError(t, err)
	require.Equal(t, []domain.Candidate{corridor(0.012, 0)}, alone)

	// (0,0) is rejected first but stays in the pool, so it still crowds (0.012,0).
	accepted, err := SelectCandidates(
		[]domain.Candidate{corridor(0, 0), corridor(0.012, 0)},
		facilities,
		params,
	)
	require.NoError(t, err)
	assert.Empty(t, accepted)
}

func TestSelectCandidatesIdempotentOnSpreadOutput(t *testing.T) {
	candidates := []domain.Candidate{centroid(0, 0), centroid(0.01, 0), centroid(0.2, 0), centroid(0.21, 0)}
	facilities := []domain.Coordinates{{Lon: 0.1, Lat: 0.1}}
	params := SelectionParams{MinDistanceMiles: 3, MaxTolerable: 2, HardMinDistanceMiles: 1}

	first, err := SelectCandidates(candidates, facilities, params)
	require.NoError(t, err)
	require.Equal(t, []domain.Candidate{centroid(0, 0), centroid(0.2, 0)}, first)

	second, err := SelectCandidates(first, facilities, params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectCandidatesEvaluatesDuplicatesOnce(t *testing.T) {
	candidates := []domain.Candidate{centroid(0, 0), centroid(0, 0)}
	params := SelectionParams{MinDistanceMiles: 3, MaxTolerable: 0, HardMinDistanceMiles: 1}

	accepted, err := SelectCandidates(candidates, nil, params)
	require.NoError(t, err)
	assert.Equal(t, []domain.Candidate{centroid(0, 0)}, accepted)
}

func TestSelectCandidatesCorridorCopyOfCentroidIsNeverExcluded(t *testing.T) {
	// A target sitting exactly on a pairwise midpoint appears twice in the pool.
	candidates := []domain.Candidate{centroid(-0.001, 0), centroid(0, 0), corridor(0, 0)}
	params := SelectionParams{MinDistanceMiles: 3, MaxTolerable: 1, HardMinDistanceMiles: 1}

	accepted, err := SelectCandidates(candidates, nil, params)
	require.NoError(t, err)
	assert.Equal(t, []domain.Candidate{centroid(-0.001, 0), corridor(0, 0)}, accepted)
}

func TestDedupeCandidatesPrefersCorridorOrigin(t *testing.T) {
	got := dedupeCandidates([]domain.Candidate{centroid(0, 0), centroid(1, 1), corridor(0, 0), centroid(1, 1)})
	assert.Equal(t, []domain.Candidate{corridor(0, 0), centroid(1, 1)}, got)

	got = dedupeCandidates([]domain.Candidate{corridor(0, 0), centroid(0, 0)})
	assert.Equal(t, []domain.Candidate{corridor(0, 0)}, got)
}

func TestSelectCandidatesValidatesParams(t *testing.T) {
	bad := []SelectionParams{
		{MinDistanceMiles: 0, MaxTolerable: 1, HardMinDistanceMiles: 1},
		{MinDistanceMiles: 1, MaxTolerable: -1, HardMinDistanceMiles: 1},
		{MinDistanceMiles: 1, MaxTolerable: 1, HardMinDistanceMiles: -1},
	}
	for _, p := range bad {
		_, err := SelectCandidates(nil, nil, p)
		assert.True(t, errors.Is(err, domain.ErrConfiguration), "params %+v: err = %v", p, err)
	}
}
