package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirEnv names the environment variable pointing at the Chaste
// modelling configuration directory.
const ConfigDirEnv = "CHASTE_MODELLING_CONFIG_DIR"

const (
	DefaultSimulator  = "uterine-simulation"
	DefaultResistance = 350.0
	DefaultSimName    = "simulation"
)

// Settings carries every path and lookup table the commands need. It is
// built once at startup and passed by reference into the components.
type Settings struct {
	ResultsDir string  `yaml:"results_dir"`
	ConfigDir  string  `yaml:"config_dir"`
	Simulator  string  `yaml:"simulator"`
	SimName    string  `yaml:"sim_name"`
	Resistance float64 `yaml:"resistance"`

	// Points maps a mesh name to the ids of the three extraction
	// points, ordered ovarian end, centre, cervical end.
	Points map[string][3]int `yaml:"points"`

	// Elements maps a mesh name to its element count.
	Elements map[string]int `yaml:"elements"`

	// Distances maps a mesh name to the mean distance between
	// neighbouring elements in mm.
	Distances map[string]float64 `yaml:"distances"`

	// HornLengths maps a mesh name to the length of the left horn in mm.
	HornLengths map[string]float64 `yaml:"horn_lengths"`

	// Bounds optionally restricts numeric parameters to [min, max].
	// Parameters without an entry are not validated.
	Bounds map[string][2]float64 `yaml:"bounds"`
}

func Default() *Settings {
	home, _ := os.UserHomeDir()
	return &Settings{
		ResultsDir: filepath.Join(home, "Documents", "phd"),
		ConfigDir:  os.Getenv(ConfigDirEnv),
		Simulator:  DefaultSimulator,
		SimName:    DefaultSimName,
		Resistance: DefaultResistance,
		Points: map[string][3]int{
			"uterus_scaffold_scaled_1": {195, 265, 329},
			"uterus_scaffold_scaled_2": {1088, 1493, 1971},
			"uterus_scaffold_scaled_3": {1595, 2192, 2908},
			"uterus_scaffold_scaled_4": {2387, 3824, 4358},
			"uterus_scaffold_scaled_5": {3183, 4379, 5813},
			"AWA026_proestrus_mesh":    {38608, 41874, 42446},
			"AWA033_estrus_mesh":       {31768, 9323, 31933},
			"AWB008_metestrus_mesh":    {27499, 27256, 27826},
			"AWB003_diestrus_mesh":     {44899, 44192, 43638},
		},
		Elements: map[string]int{
			"uterus_scaffold_scaled_1": 1258,
			"uterus_scaffold_scaled_2": 9984,
			"uterus_scaffold_scaled_3": 14976,
			"uterus_scaffold_scaled_4": 22464,
			"uterus_scaffold_scaled_5": 33696,
		},
		Distances: map[string]float64{
			"uterus_scaffold_scaled_1": 1.82,
			"uterus_scaffold_scaled_2": 0.91,
			"uterus_scaffold_scaled_3": 0.79,
			"uterus_scaffold_scaled_4": 0.69,
			"uterus_scaffold_scaled_5": 0.60,
		},
		HornLengths: map[string]float64{
			"uterus_scaffold_scaled_3": 20,
			"AWA026_proestrus_mesh":    21,
			"AWA033_estrus_mesh":       20,
			"AWB008_metestrus_mesh":    19,
			"AWB003_diestrus_mesh":     20,
		},
	}
}

// Load reads a yaml settings file on top of the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ExtractionPoints returns the three extraction point ids for a mesh,
// failing when the mesh has no entry.
func (s *Settings) ExtractionPoints(mesh string) ([3]int, error) {
	pts, ok := s.Points[mesh]
	if !ok {
		return [3]int{}, fmt.Errorf("config: mesh %q has no extraction points", mesh)
	}
	return pts, nil
}

// ElementCount returns the number of elements in a mesh, failing when
// the mesh has no entry.
func (s *Settings) ElementCount(mesh string) (int, error) {
	n, ok := s.Elements[mesh]
	if !ok {
		return 0, fmt.Errorf("config: mesh %q has no element count", mesh)
	}
	return n, nil
}

// NeighbourDistance returns the mean neighbouring element distance for a
// mesh, failing when the mesh has no entry.
func (s *Settings) NeighbourDistance(mesh string) (float64, error) {
	d, ok := s.Distances[mesh]
	if !ok {
		return 0, fmt.Errorf("config: mesh %q has no neighbour distance", mesh)
	}
	return d, nil
}

// HornLength returns the left horn length in mm for a mesh, failing when
// the mesh has no entry.
func (s *Settings) HornLength(mesh string) (float64, error) {
	l, ok := s.HornLengths[mesh]
	if !ok {
		return 0, fmt.Errorf("config: mesh %q has no horn length", mesh)
	}
	return l, nil
}

// Conductivity derives the conductivity for a mesh from its neighbour
// distance, 1/(R*d^2).
func (s *Settings) Conductivity(mesh string) (float64, error) {
	d, err := s.NeighbourDistance(mesh)
	if err != nil {
		return 0, err
	}
	return 1 / (s.Resistance * d * d), nil
}
