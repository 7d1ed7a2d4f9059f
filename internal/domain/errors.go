package domain

import "errors"

// Error kinds shared across layers. Callers wrap them with fmt.Errorf("...: %w")
// and inspect with errors.Is.
var (
	// ErrExternalService reports a failed facility-fetch or geocode call.
	ErrExternalService = errors.New("external service error")
	// ErrGeometry reports a malformed polygon or degenerate geometry input.
	ErrGeometry = errors.New("geometry error")
	// ErrConfiguration reports missing or invalid thresholds or inputs.
	ErrConfiguration = errors.New("configuration error")
)
