package sweep

import (
	"fmt"
	"strconv"

	"github.com/uterosim/symprobe/internal/config"
)

// SimulationConfig is one fully resolved run: the values substituted
// into the simulator configuration files plus labeling metadata for
// downstream plots.
type SimulationConfig struct {
	Dim int

	// Params is the full merged view, base values overlaid with the
	// run's overrides. Populated by the Resolver.
	Params map[string]string

	// Overrides holds only the values this run changes, keyed by
	// parameter name, as raw value literals.
	Overrides map[string]string

	Label string

	// Mesh is set for resolution runs; Stage for estrus runs.
	Mesh  string
	Stage string

	// Elements is the mesh element count, attached for labeling only.
	Elements int
}

// Enumerator turns an axis into the ordered sequence of run
// configurations.
type Enumerator struct {
	settings *config.Settings
}

func NewEnumerator(s *config.Settings) *Enumerator {
	return &Enumerator{settings: s}
}

// Enumerate produces one SimulationConfig per axis value, in axis
// order. Axis values referencing a parameter or mesh unknown to the
// base configuration or the settings dictionaries fail with a
// configuration error before any run starts.
func (e *Enumerator) Enumerate(axis Axis, base *BaseConfig) ([]SimulationConfig, error) {
	switch axis.Kind() {
	case Parameter:
		return e.enumerateParameter(axis, base)
	case Resolution:
		return e.enumerateResolution(axis, base)
	case Estrus:
		return e.enumerateEstrus(axis, base)
	}
	return nil, fmt.Errorf("%w: unknown sweep kind %q", ErrConfiguration, axis.Kind())
}

func (e *Enumerator) enumerateParameter(axis Axis, base *BaseConfig) ([]SimulationConfig, error) {
	param := axis.ParamName()
	if !base.Has(param) {
		return nil, fmt.Errorf("%w: parameter %q not found in the configuration files", ErrConfiguration, param)
	}

	values := axis.Values()
	configs := make([]SimulationConfig, 0, len(values))
	for _, v := range values {
		literal := strconv.FormatFloat(v, 'g', -1, 64)
		configs = append(configs, SimulationConfig{
			Dim:       base.Dim,
			Overrides: map[string]string{param: literal},
			Label:     fmt.Sprintf("%s=%s", param, literal),
		})
	}
	return configs, nil
}

func (e *Enumerator) enumerateResolution(axis Axis, base *BaseConfig) ([]SimulationConfig, error) {
	if !base.Has("mesh_name") {
		return nil, fmt.Errorf("%w: mesh_name not found in the configuration files", ErrConfiguration)
	}
	conductParam := fmt.Sprintf("conductivities_%dd", base.Dim)
	if !base.Has(conductParam) {
		return nil, fmt.Errorf("%w: %s not found in the configuration files", ErrConfiguration, conductParam)
	}

	meshes := axis.Meshes()
	configs := make([]SimulationConfig, 0, len(meshes))
	for _, mesh := range meshes {
		conduct, err := e.settings.Conductivity(mesh)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		elements, err := e.settings.ElementCount(mesh)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}

		configs = append(configs, SimulationConfig{
			Dim: base.Dim,
			Overrides: map[string]string{
				"mesh_name":  mesh,
				conductParam: strconv.FormatFloat(conduct, 'g', -1, 64),
			},
			Label:    mesh,
			Mesh:     mesh,
			Elements: elements,
		})
	}
	return configs, nil
}

func (e *Enumerator) enumerateEstrus(_ Axis, base *BaseConfig) ([]SimulationConfig, error) {
	if !base.Has("estrus") {
		return nil, fmt.Errorf("%w: estrus not found in the configuration files", ErrConfiguration)
	}

	configs := make([]SimulationConfig, 0, len(EstrusStages))
	for _, stage := range EstrusStages {
		configs = append(configs, SimulationConfig{
			Dim:       base.Dim,
			Overrides: map[string]string{"estrus": stage},
			Label:     stage,
			Stage:     stage,
		})
	}
	return configs, nil
}
