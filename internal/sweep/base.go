package sweep

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/uterosim/symprobe/internal/config"
)

// RoeslerCellType selects the estrus-dependent cell model; its config
// file is chosen per stage.
const RoeslerCellType = "Roesler"

var paramLine = regexp.MustCompile(`^\s*([A-Za-z0-9_]+)\s*=\s*(.+?)\s*$`)

// BaseConfig is the simulator-side configuration a sweep starts from:
// the dimension and cell config files plus the schema of parameters
// they declare.
type BaseConfig struct {
	Dim            int
	DimConfigPath  string
	CellConfigPath string
	CellType       string
	Stage          string

	params  map[string]string
	targets map[string]string
}

// LoadBase locates and parses the dimension and cell configuration
// files for a simulation dimension.
func LoadBase(s *config.Settings, dim int) (*BaseConfig, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("%w: dimension must be 2 or 3, got %d", ErrConfiguration, dim)
	}
	if s.ConfigDir == "" {
		return nil, fmt.Errorf("%w: %s environment variable is not set", ErrConfiguration, config.ConfigDirEnv)
	}

	base := &BaseConfig{
		Dim:           dim,
		DimConfigPath: filepath.Join(s.ConfigDir, "general", fmt.Sprintf("%dd_params.toml", dim)),
		params:        make(map[string]string),
		targets:       make(map[string]string),
	}

	if err := base.readDimConfig(); err != nil {
		return nil, err
	}

	switch {
	case base.CellType == RoeslerCellType && base.Stage == "":
		return nil, fmt.Errorf("%w: estrus not found in %s", ErrConfiguration, base.DimConfigPath)
	case base.CellType == RoeslerCellType:
		base.CellConfigPath = filepath.Join(s.ConfigDir, "estrus",
			fmt.Sprintf("%s_%s.toml", base.CellType, base.Stage))
	default:
		base.CellConfigPath = filepath.Join(s.ConfigDir, "cell", base.CellType+".toml")
	}

	if err := base.readParams(base.CellConfigPath); err != nil {
		return nil, err
	}
	return base, nil
}

func (b *BaseConfig) readDimConfig() error {
	f, err := os.Open(b.DimConfigPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "cell_type") {
			b.CellType = quotedValue(line)
		}
		if strings.Contains(line, "estrus") {
			b.Stage = quotedValue(line)
		}
		if m := paramLine.FindStringSubmatch(line); m != nil {
			b.params[m[1]] = strings.Trim(m[2], `"`)
			b.targets[m[1]] = b.DimConfigPath
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrConfiguration, b.DimConfigPath, err)
	}
	if b.CellType == "" {
		return fmt.Errorf("%w: cell_type not found in %s", ErrConfiguration, b.DimConfigPath)
	}
	return nil
}

func (b *BaseConfig) readParams(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := paramLine.FindStringSubmatch(scanner.Text()); m != nil {
			b.params[m[1]] = strings.Trim(m[2], `"`)
			b.targets[m[1]] = path
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
	}
	return nil
}

func quotedValue(line string) string {
	parts := strings.Split(line, `"`)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Has reports whether the parameter appears in either config file.
func (b *BaseConfig) Has(param string) bool {
	_, ok := b.params[param]
	return ok
}

// TargetFile returns the config file that declares the parameter.
func (b *BaseConfig) TargetFile(param string) (string, error) {
	path, ok := b.targets[param]
	if !ok {
		return "", fmt.Errorf("%w: parameter %q not found in the configuration files", ErrConfiguration, param)
	}
	return path, nil
}

// Params returns a copy of the declared parameter values.
func (b *BaseConfig) Params() map[string]string {
	params := make(map[string]string, len(b.params))
	for k, v := range b.params {
		params[k] = v
	}
	return params
}
