package handlers

import (
	"charger-siting-service/internal/api/dto"
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/ports"
	"charger-siting-service/internal/services"
	"net/http"
)

const defaultCentroidGapQuantity = 10

// CoverageHandler serves the density diagnostics: the grid heat map and the
// pairwise-centroid gap list.
type CoverageHandler struct {
	Provider ports.FacilityProvider
	Region   domain.Region
	Query    ports.FacilityQuery
	Params   services.GridParams

	DefaultGapDistanceMiles float64
}

// Grid returns under-served grid points as a GeoJSON FeatureCollection.
// ?min_sub_count=N overrides the configured neighbor threshold.
func (h *CoverageHandler) Grid(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	params := h.Params
	minSub, err := queryInt(r, "min_sub_count")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if minSub != nil {
		params.MinSubCount = *minSub
	}

	points, err := services.ScanCoverage(r.Context(), h.Region, h.Query, params, h.Provider)
	if err != nil {
		writeServiceError(w, r, "scan coverage", err)
		return
	}

	writeGeoJSON(w, r, dto.GridFeatureCollection(points))
}

// Centroids lists pairwise centroids far from every facility.
func (h *CoverageHandler) Centroids(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	quantity, err := queryInt(r, "quantity")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	n := defaultCentroidGapQuantity
	if quantity != nil {
		n = *quantity
	}

	minDistance, err := queryFloat(r, "min_distance")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	d := h.DefaultGapDistanceMiles
	if minDistance != nil {
		d = *minDistance
	}

	gaps, err := services.CentroidGaps(r.Context(), h.Region, h.Query, d, n, h.Provider)
	if err != nil {
		writeServiceError(w, r, "centroid gaps", err)
		return
	}

	res := dto.ListCentroidGapsResponse{
		MinDistanceMiles: d,
		Gaps:             make([]dto.CentroidGapResponse, 0, len(gaps)),
	}
	for _, g := range gaps {
		res.Gaps = append(res.Gaps, dto.CentroidGapResponse{
			Coordinates:        [2]float64{g.Coordinates.Lon, g.Coordinates.Lat},
			DistanceToExisting: g.DistanceMiles,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
