package sweep

import (
	"fmt"
	"os"
	"strconv"

	"github.com/uterosim/symprobe/internal/config"
)

// Resolver materializes an enumerated configuration into its
// dispatch-ready form: base values merged with the run's overrides,
// then validated.
type Resolver struct {
	settings *config.Settings
}

func NewResolver(s *config.Settings) *Resolver {
	return &Resolver{settings: s}
}

// Resolve merges the overrides onto a copy of the base parameters
// (override wins key-by-key) and validates the result. Structural
// violations (unknown key, vanished config file) return a configuration
// error; out-of-bounds values return a validation error so the run can
// be marked failed without aborting the sweep.
func (r *Resolver) Resolve(base *BaseConfig, cfg SimulationConfig) (SimulationConfig, error) {
	for _, path := range []string{base.DimConfigPath, base.CellConfigPath} {
		if _, err := os.Stat(path); err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	params := base.Params()
	for param, value := range cfg.Overrides {
		if _, ok := params[param]; !ok {
			return cfg, fmt.Errorf("%w: parameter %q not found in the configuration files", ErrConfiguration, param)
		}
		if err := r.checkBounds(param, value); err != nil {
			return cfg, err
		}
		params[param] = value
	}

	cfg.Params = params
	return cfg, nil
}

// checkBounds enforces declared numeric bounds. Parameters without a
// bounds entry, and non-numeric values, are not validated.
func (r *Resolver) checkBounds(param, value string) error {
	bounds, ok := r.settings.Bounds[param]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	if v < bounds[0] || v > bounds[1] {
		return fmt.Errorf("%w: %s=%g outside bounds [%g, %g]",
			ErrValidation, param, v, bounds[0], bounds[1])
	}
	return nil
}
