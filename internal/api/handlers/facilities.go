package handlers

import (
	"charger-siting-service/internal/api/dto"
	"charger-siting-service/internal/ports"
	"charger-siting-service/internal/services"
	"net/http"
)

// FacilityHandler exposes the existing station network as GeoJSON.
type FacilityHandler struct {
	Provider ports.FacilityProvider
	Query    ports.FacilityQuery
}

func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	fs, err := services.ListExistingFacilities(r.Context(), h.Provider, h.Query)
	if err != nil {
		writeServiceError(w, r, "list facilities", err)
		return
	}

	writeGeoJSON(w, r, dto.FacilityFeatureCollection(fs))
}
