package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Extractor pulls the time series of selected mesh points out of a
// simulation output file.
type Extractor interface {
	Extract(ctx context.Context, meshPath, savePath string, points [3]int) error
}

// pvScript drives Paraview's batch interpreter: open the mesh, select
// the three points, export their V time series as CSV.
const pvScript = `import sys
import paraview.simple as ps

mesh_path, save_path, pts = sys.argv[1], sys.argv[2], sys.argv[3]
pts_list = [int(p) for p in pts.split(",")]

mesh = ps.XMLUnstructuredGridReader(registrationName="mesh.vtu", FileName=[mesh_path])
mesh.TimeArray = "None"

view = ps.GetActiveViewOrCreate("RenderView")
view.Update()

ps.QuerySelect(QueryString="(in1d(id, {}))".format(pts_list), FieldType="POINT", InsideOut=0)
view.Update()

selected = ps.ExtractSelection(registrationName="Selected_pts", Input=mesh)
ps.SaveData(save_path, proxy=selected, WriteTimeSteps=1, PointDataArrays=["V"], AddMetaData=0, AddTime=1)
`

// PvPython runs the extraction through the pvpython executable.
type PvPython struct {
	Command string
}

func NewPvPython() *PvPython {
	return &PvPython{Command: "pvpython"}
}

func (p *PvPython) Extract(ctx context.Context, meshPath, savePath string, points [3]int) error {
	if _, err := os.Stat(meshPath); err != nil {
		return fmt.Errorf("extract: mesh file at %s not found", meshPath)
	}
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return err
	}

	script := filepath.Join(os.TempDir(), "symprobe_extract.py")
	if err := os.WriteFile(script, []byte(pvScript), 0644); err != nil {
		return err
	}

	pts := fmt.Sprintf("%d,%d,%d", points[0], points[1], points[2])
	cmd := exec.CommandContext(ctx, p.Command, script, meshPath, savePath, pts)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("extract: %s failed: %v\n%s", p.Command, err, out)
	}
	return nil
}
