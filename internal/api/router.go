package api

import (
	"charger-siting-service/internal/api/handlers"
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/platform/obs"
	"charger-siting-service/internal/ports"
	"charger-siting-service/internal/services"
	"net/http"
)

// Deps are the collaborators and static settings the HTTP surface needs.
type Deps struct {
	Provider ports.FacilityProvider
	Resolver *services.AddressResolver

	Region              domain.Region
	Targets             []domain.Target
	Query               ports.FacilityQuery
	Selection           services.SelectionParams
	CorridorRadiusMiles float64
	Grid                services.GridParams
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	facilityHandler := &handlers.FacilityHandler{Provider: d.Provider, Query: d.Query}
	recommendationHandler := &handlers.RecommendationHandler{
		Provider:            d.Provider,
		Resolver:            d.Resolver,
		Region:              d.Region,
		Targets:             d.Targets,
		Query:               d.Query,
		Selection:           d.Selection,
		CorridorRadiusMiles: d.CorridorRadiusMiles,
	}
	coverageHandler := &handlers.CoverageHandler{
		Provider:                d.Provider,
		Region:                  d.Region,
		Query:                   d.Query,
		Params:                  d.Grid,
		DefaultGapDistanceMiles: d.Selection.MinDistanceMiles,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/existing-chargers", facilityHandler.List)
	mux.HandleFunc("/recommended-chargers", recommendationHandler.Recommend)
	mux.HandleFunc("/coverage-gaps", coverageHandler.Grid)
	mux.HandleFunc("/centroid-gaps", coverageHandler.Centroids)
	mux.Handle("/metrics", obs.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
