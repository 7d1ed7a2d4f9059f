package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OperationDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "siting_operation_duration_ms",
		Help:    "Duration of timed operations in milliseconds",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 30000},
	}, []string{"op"})
	FacilityFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "siting_facility_fetch_total",
		Help: "Facility fetches by source and outcome",
	}, []string{"source", "status"})
	GeocodeRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "siting_geocode_requests_total",
		Help: "Total upstream reverse geocode requests",
	})
	GeocodeFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "siting_geocode_fail_total",
		Help: "Total reverse geocode failures (candidate skipped)",
	})
	GeocodeFilteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "siting_geocode_filtered_total",
		Help: "Candidates dropped because their address matched the excluded road class",
	})
	GeocodeCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "siting_geocode_cache_total",
		Help: "Geocode cache lookups by tier and result",
	}, []string{"tier", "result"})
	CandidatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "siting_candidates_total",
		Help: "Candidates seen per pipeline stage",
	}, []string{"stage"})
)

func init() {
	prometheus.MustRegister(OperationDurationMs)
	prometheus.MustRegister(FacilityFetchTotal)
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeFailTotal)
	prometheus.MustRegister(GeocodeFilteredTotal)
	prometheus.MustRegister(GeocodeCacheTotal)
	prometheus.MustRegister(CandidatesTotal)
}

// Handler exposes registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
