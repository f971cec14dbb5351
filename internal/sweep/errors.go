package sweep

import "errors"

// Domain errors for sweep construction and per-run resolution.
var (
	// ErrConfiguration indicates a structural problem (missing config
	// files, unknown parameter or mesh). Fatal: the sweep aborts.
	ErrConfiguration = errors.New("sweep: invalid sweep configuration")

	// ErrValidation indicates a single resolved run violated its
	// declared bounds. The run is marked failed and the sweep continues.
	ErrValidation = errors.New("sweep: run configuration failed validation")

	// ErrRange indicates a start value greater than its end value.
	ErrRange = errors.New("sweep: start value is greater than the end value")
)

// Fatal reports whether an error should abort the whole sweep rather
// than fail a single run.
func Fatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrRange)
}
