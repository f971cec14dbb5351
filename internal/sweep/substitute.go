package sweep

import (
	"fmt"
	"os"
	"strings"
)

// ApplyOverrides rewrites the run's overridden parameters into the
// simulator configuration files before dispatch. This is the
// substitution contract with the simulator: it reads the files on
// startup, so each run's values must be in place before it launches.
func ApplyOverrides(base *BaseConfig, cfg SimulationConfig) error {
	for param, value := range cfg.Overrides {
		target, err := base.TargetFile(param)
		if err != nil {
			return err
		}
		if err := ModifyConfig(target, param, value); err != nil {
			return err
		}
	}
	return nil
}

// ModifyConfig replaces the first line declaring the parameter with the
// formatted value. A parameter missing from the file means the file
// changed since the schema was read, which aborts the sweep.
func ModifyConfig(path, param, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	lines := strings.Split(string(data), "\n")
	found := false
	for i, line := range lines {
		if strings.Contains(line, param) {
			lines[i] = formatLine(param, value)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: parameter %q not found in %s", ErrConfiguration, param, path)
	}

	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

// formatLine renders a parameter assignment the way the simulator
// expects it. Conductivities are vectors matching the dimension,
// mesh_name and estrus are quoted strings, anything else is an indented
// sub-table entry.
func formatLine(param, value string) string {
	switch param {
	case "conductivities_2d":
		return fmt.Sprintf("%s = [%s, %s]", param, value, value)
	case "conductivities_3d":
		return fmt.Sprintf("%s = [%s, %s, %s]", param, value, value, value)
	case "magnitude":
		return fmt.Sprintf("%s = %s", param, value)
	case "mesh_name", "estrus":
		return fmt.Sprintf("%s = %q", param, value)
	default:
		return fmt.Sprintf("   %s = %s", param, value)
	}
}
