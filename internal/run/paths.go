package run

import (
	"fmt"
	"path/filepath"

	"github.com/uterosim/symprobe/internal/sweep"
)

// RunDirName encodes the sweep kind and simulation number into the
// name of the run's output directory.
func RunDirName(kind sweep.Kind, number int) string {
	return fmt.Sprintf("%s_simulation_%03d", kind, number)
}

// RunDir is the dedicated output directory for one run.
func RunDir(resultsDir string, kind sweep.Kind, number int) string {
	return filepath.Join(resultsDir, RunDirName(kind, number))
}

// LogPath is the captured simulator log inside a run directory.
func LogPath(outputDir, simName string, number int) string {
	return filepath.Join(outputDir, "log", fmt.Sprintf("%s_%03d.log", simName, number))
}

// MeshPath is the mesh output file the simulator writes inside a run
// directory, consumed by the extraction collaborator.
func MeshPath(outputDir, simName string, number int) string {
	return filepath.Join(outputDir, "vtu", fmt.Sprintf("%s_%03d.vtu", simName, number))
}

// ExtractPath is the extracted point-data CSV inside a run directory.
func ExtractPath(outputDir, simName string, number int) string {
	return filepath.Join(outputDir, "extract", fmt.Sprintf("%s_%03d.csv", simName, number))
}
