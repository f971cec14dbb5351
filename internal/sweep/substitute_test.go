package sweep

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModifyConfig(t *testing.T) {
	tests := []struct {
		param string
		value string
		want  string
	}{
		{"conductivities_2d", "0.1", "conductivities_2d = [0.1, 0.1]"},
		{"conductivities_3d", "0.2", "conductivities_3d = [0.2, 0.2, 0.2]"},
		{"magnitude", "-3", "magnitude = -3"},
		{"mesh_name", "test_mesh", `mesh_name = "test_mesh"`},
		{"estrus", "proestrus", `estrus = "proestrus"`},
		{"stim_current", "0.4", "   stim_current = 0.4"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "params.toml")
			content := "mesh_name = \"old\"\nestrus = \"estrus\"\nmagnitude = -2\n" +
				"conductivities_2d = [9, 9]\nconductivities_3d = [9, 9, 9]\n   stim_current = 0.1\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}

			if err := ModifyConfig(path, tt.param, tt.value); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("expected %q in file, got:\n%s", tt.want, data)
			}
		})
	}
}

func TestModifyConfig_ParameterNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	if err := os.WriteFile(path, []byte("magnitude = -2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := ModifyConfig(path, "gkv43", "0.5")
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestModifyConfig_MissingFile(t *testing.T) {
	err := ModifyConfig(filepath.Join(t.TempDir(), "nope.toml"), "magnitude", "1")
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	s := writeTestConfigDir(t)
	base, err := LoadBase(s, 2)
	if err != nil {
		t.Fatal(err)
	}

	cfg := SimulationConfig{
		Overrides: map[string]string{
			"mesh_name": "uterus_scaffold_scaled_2",
			"gkv43":     "0.9",
		},
	}
	if err := ApplyOverrides(base, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dimData, err := os.ReadFile(base.DimConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dimData), `mesh_name = "uterus_scaffold_scaled_2"`) {
		t.Errorf("mesh_name not substituted:\n%s", dimData)
	}

	cellData, err := os.ReadFile(base.CellConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cellData), "gkv43 = 0.9") {
		t.Errorf("gkv43 not substituted:\n%s", cellData)
	}
}
