package dto

// Coordinates are [lon, lat], matching GeoJSON position order.
type CandidateResponse struct {
	Coordinates        [2]float64 `json:"coordinates"`
	Address            string     `json:"address,omitempty"`
	Origin             string     `json:"origin"`
	DistanceToExisting float64    `json:"distance_to_existing"`
}

type ListCandidatesResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
}

type CentroidGapResponse struct {
	Coordinates        [2]float64 `json:"coordinates"`
	DistanceToExisting float64    `json:"distance_to_existing"`
}

type ListCentroidGapsResponse struct {
	MinDistanceMiles float64               `json:"min_distance_miles"`
	Gaps             []CentroidGapResponse `json:"gaps"`
}
