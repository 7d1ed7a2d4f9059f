package handlers

import (
	"charger-siting-service/internal/api/dto"
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/ports"
	"charger-siting-service/internal/services"
	"net/http"
)

type RecommendationHandler struct {
	Provider ports.FacilityProvider
	Resolver *services.AddressResolver

	Region              domain.Region
	Targets             []domain.Target
	Query               ports.FacilityQuery
	Selection           services.SelectionParams
	CorridorRadiusMiles float64
}

// Recommend runs the full siting pipeline. ?quantity=N keeps the N farthest
// candidates; without it every candidate is returned.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	quantity, err := queryInt(r, "quantity")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req := services.RecommendRequest{
		Region:              h.Region,
		Targets:             h.Targets,
		Query:               h.Query,
		Selection:           h.Selection,
		CorridorRadiusMiles: h.CorridorRadiusMiles,
		Quantity:            quantity,
	}

	candidates, err := services.RecommendNewSites(r.Context(), req, h.Provider, h.Resolver)
	if err != nil {
		writeServiceError(w, r, "recommend new sites", err)
		return
	}

	res := dto.ListCandidatesResponse{
		Candidates: make([]dto.CandidateResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		res.Candidates = append(res.Candidates, dto.CandidateResponse{
			Coordinates:        [2]float64{c.Coordinates.Lon, c.Coordinates.Lat},
			Address:            c.Address,
			Origin:             c.Origin.String(),
			DistanceToExisting: c.DistanceMiles,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
