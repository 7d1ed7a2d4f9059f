// Package config loads process settings from the environment and the static
// siting configuration (region, targets, thresholds) from YAML.
package config

import (
	"charger-siting-service/internal/domain"
	"charger-siting-service/internal/ports"
	"charger-siting-service/internal/services"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Siting is the static configuration read once at startup.
type Siting struct {
	// Region vertices as [lon, lat] pairs; an open ring is closed on load.
	Region   [][2]float64 `yaml:"region"`
	Targets  []TargetSpec `yaml:"targets"`
	Defaults Defaults     `yaml:"defaults"`

	Selection           SelectionSpec `yaml:"selection"`
	CorridorRadiusMiles float64       `yaml:"corridor_radius_miles"`
	Grid                GridSpec      `yaml:"grid"`
	Geocode             GeocodeSpec   `yaml:"geocode"`
}

type TargetSpec struct {
	Name string  `yaml:"name"`
	Lon  float64 `yaml:"lon"`
	Lat  float64 `yaml:"lat"`
}

// Default facility search window.
type Defaults struct {
	CenterLat         float64 `yaml:"center_lat"`
	CenterLon         float64 `yaml:"center_lon"`
	SearchRadiusMiles float64 `yaml:"search_radius_miles"`
}

type SelectionSpec struct {
	MinDistanceMiles     float64 `yaml:"min_distance_miles"`
	MaxTolerable         int     `yaml:"max_tolerable"`
	HardMinDistanceMiles float64 `yaml:"hard_min_distance_miles"`
}

type GridSpec struct {
	Step                float64 `yaml:"step"`
	MinDistanceMiles    float64 `yaml:"min_distance_miles"`
	MaxSubDistanceMiles float64 `yaml:"max_sub_distance_miles"`
	MinSubCount         int     `yaml:"min_sub_count"`
	MaxPoints           int     `yaml:"max_points"`
}

type GeocodeSpec struct {
	// Addresses matching this pattern are never recommended.
	ExcludedAddressPattern string        `yaml:"excluded_address_pattern"`
	MinInterval            time.Duration `yaml:"min_interval"`
}

// DefaultSiting mirrors the thresholds the service was tuned with.
func DefaultSiting() Siting {
	return Siting{
		Defaults: Defaults{
			CenterLat:         43.6532,
			CenterLon:         -79.3832,
			SearchRadiusMiles: 30,
		},
		Selection: SelectionSpec{
			MinDistanceMiles:     3,
			MaxTolerable:         3,
			HardMinDistanceMiles: 1,
		},
		CorridorRadiusMiles: 1,
		Grid: GridSpec{
			Step:                0.02,
			MinDistanceMiles:    3,
			MaxSubDistanceMiles: 3,
			MinSubCount:         15,
		},
		Geocode: GeocodeSpec{
			ExcludedAddressPattern: `^ON-\d+.*`,
			MinInterval:            500 * time.Millisecond,
		},
	}
}

// LoadSiting reads path over DefaultSiting and validates the result.
func LoadSiting(path string) (*Siting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load siting config %q: %w: %w", path, domain.ErrConfiguration, err)
	}
	return ParseSiting(data)
}

// ParseSiting decodes YAML over DefaultSiting and validates the result.
func ParseSiting(data []byte) (*Siting, error) {
	cfg := DefaultSiting()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse siting config: %w: %w", domain.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks thresholds and the region polygon.
func (s *Siting) Validate() error {
	if _, err := s.RegionPolygon(); err != nil {
		return fmt.Errorf("validate siting config: %w", err)
	}

	var problems []string
	if s.Selection.MinDistanceMiles <= 0 {
		problems = append(problems, "selection.min_distance_miles must be > 0")
	}
	if s.Selection.MaxTolerable < 0 {
		problems = append(problems, "selection.max_tolerable must be >= 0")
	}
	if s.Selection.HardMinDistanceMiles < 0 {
		problems = append(problems, "selection.hard_min_distance_miles must be >= 0")
	}
	if s.CorridorRadiusMiles < 0 {
		problems = append(problems, "corridor_radius_miles must be >= 0")
	}
	if s.Grid.Step <= 0 {
		problems = append(problems, "grid.step must be > 0")
	}
	if s.Defaults.SearchRadiusMiles <= 0 {
		problems = append(problems, "defaults.search_radius_miles must be > 0")
	}
	if _, err := s.ExcludedAddress(); err != nil {
		problems = append(problems, err.Error())
	}
	for i, t := range s.Targets {
		if strings.TrimSpace(t.Name) == "" {
			problems = append(problems, fmt.Sprintf("targets[%d].name is empty", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("validate siting config: %s: %w", strings.Join(problems, "; "), domain.ErrConfiguration)
	}
	return nil
}

// RegionPolygon converts the configured ring into a domain.Region.
func (s *Siting) RegionPolygon() (domain.Region, error) {
	vertices := make([]domain.Coordinates, 0, len(s.Region))
	for _, v := range s.Region {
		vertices = append(vertices, domain.Coordinates{Lon: v[0], Lat: v[1]})
	}
	return domain.NewRegion(vertices)
}

// TargetPoints converts the configured targets.
func (s *Siting) TargetPoints() []domain.Target {
	out := make([]domain.Target, 0, len(s.Targets))
	for _, t := range s.Targets {
		out = append(out, domain.Target{Name: t.Name, Coordinates: domain.Coordinates{Lon: t.Lon, Lat: t.Lat}})
	}
	return out
}

// ExcludedAddress compiles the excluded road class pattern; nil when unset.
func (s *Siting) ExcludedAddress() (*regexp.Regexp, error) {
	if strings.TrimSpace(s.Geocode.ExcludedAddressPattern) == "" {
		return nil, nil
	}
	re, err := regexp.Compile(s.Geocode.ExcludedAddressPattern)
	if err != nil {
		return nil, fmt.Errorf("geocode.excluded_address_pattern: %v", err)
	}
	return re, nil
}

// FacilityQuery is the default search window for the station directory.
func (s *Siting) FacilityQuery() ports.FacilityQuery {
	return ports.FacilityQuery{
		CenterLat:   s.Defaults.CenterLat,
		CenterLon:   s.Defaults.CenterLon,
		RadiusMiles: s.Defaults.SearchRadiusMiles,
	}
}

func (s *Siting) SelectionParams() services.SelectionParams {
	return services.SelectionParams{
		MinDistanceMiles:     s.Selection.MinDistanceMiles,
		MaxTolerable:         s.Selection.MaxTolerable,
		HardMinDistanceMiles: s.Selection.HardMinDistanceMiles,
	}
}

func (s *Siting) GridParams() services.GridParams {
	return services.GridParams{
		Step:                s.Grid.Step,
		MinDistanceMiles:    s.Grid.MinDistanceMiles,
		MaxSubDistanceMiles: s.Grid.MaxSubDistanceMiles,
		MinSubCount:         s.Grid.MinSubCount,
		MaxPoints:           s.Grid.MaxPoints,
	}
}
