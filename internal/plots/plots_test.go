package plots

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCellTraces(t *testing.T) {
	V := [][]float64{
		{-70, -68, -71},
		{-20, -65, -70},
		{-60, -15, -68},
		{-70, -62, -12},
	}
	ts := []float64{0, 0.5, 1.0, 1.5}

	var buf bytes.Buffer
	if err := CellTraces(&buf, V, ts, "estrus"); err != nil {
		t.Fatalf("CellTraces: %v", err)
	}

	out := buf.String()
	for _, caption := range cellCaptions {
		if !strings.Contains(out, caption) {
			t.Errorf("output missing %q caption", caption)
		}
	}
	if !strings.Contains(out, "Estrus") {
		t.Errorf("output missing stage title")
	}
}

func TestCellTracesDimensionMismatch(t *testing.T) {
	V := [][]float64{{-70, -68}, {-20, -65}}
	if err := CellTraces(&bytes.Buffer{}, V, []float64{0}, "estrus"); err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
	if err := CellTraces(&bytes.Buffer{}, nil, nil, "estrus"); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestConvergenceStageOrder(t *testing.T) {
	comp := map[string][]float64{
		"diestrus":  {3.0, 2.0, 1.0},
		"proestrus": {4.0, 2.5, 1.2},
	}

	var buf bytes.Buffer
	if err := Convergence(&buf, comp, []float64{100, 500, 2500}, "rmse"); err != nil {
		t.Fatalf("Convergence: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "RMSE") {
		t.Errorf("caption missing upper-cased metric: %q", out)
	}
	pro := strings.Index(out, "Proestrus")
	di := strings.Index(out, "Diestrus")
	if pro < 0 || di < 0 {
		t.Fatalf("legend missing stages: %q", out)
	}
	if pro > di {
		t.Errorf("legend out of estrus order: proestrus at %d, diestrus at %d", pro, di)
	}
}

func TestStageSeriesNoKnownStages(t *testing.T) {
	err := Convergence(&bytes.Buffer{}, map[string][]float64{"anestrus": {1}}, nil, "mae")
	if err == nil {
		t.Fatal("expected error for unknown stage data")
	}
}

func TestParameterComparisonCaption(t *testing.T) {
	comp := map[string][]float64{"estrus": {1.0, 0.5, 0.1}}

	var buf bytes.Buffer
	if err := ParameterComparison(&buf, comp, []float64{0.1, 0.2, 0.3}, "mae", "gkv43"); err != nil {
		t.Fatalf("ParameterComparison: %v", err)
	}
	if !strings.Contains(buf.String(), "g_Kv4.3 (nS/pF)") {
		t.Errorf("caption missing parameter label: %q", buf.String())
	}
}

func TestAxisLabel(t *testing.T) {
	cases := []struct {
		param string
		want  string
	}{
		{"gkv43", "g_Kv4.3 (nS/pF)"},
		{"stim_current", "I_stim (pA/pF)"},
		{"unknown_param", "unknown_param"},
	}
	for _, c := range cases {
		if got := AxisLabel(c.param); got != c.want {
			t.Errorf("AxisLabel(%q) = %q, want %q", c.param, got, c.want)
		}
	}
}

func TestLineChartSVG(t *testing.T) {
	series := []Series{
		{Name: "estrus", Stage: "estrus", X: []float64{0, 1, 2}, Y: []float64{-70, -20, -65}},
		{Name: "proestrus", Stage: "proestrus", X: []float64{0, 1, 2}, Y: []float64{-68, -25, -60}},
	}

	svg, err := LineChartSVG(series, "time (s)", "amplitude (mV)")
	if err != nil {
		t.Fatalf("LineChartSVG: %v", err)
	}
	if !strings.HasPrefix(svg, "<?xml") {
		t.Errorf("missing XML declaration")
	}
	if got := strings.Count(svg, "<polyline"); got != 2 {
		t.Errorf("polyline count = %d, want 2", got)
	}
	if !strings.Contains(svg, stageHex["estrus"]) {
		t.Errorf("estrus stroke colour missing")
	}
	if !strings.Contains(svg, "time (s)") || !strings.Contains(svg, "amplitude (mV)") {
		t.Errorf("axis labels missing")
	}
}

func TestLineChartSVGErrors(t *testing.T) {
	if _, err := LineChartSVG(nil, "x", "y"); err == nil {
		t.Fatal("expected error for no series")
	}
	bad := []Series{{Name: "a", X: []float64{0, 1}, Y: []float64{0}}}
	if _, err := LineChartSVG(bad, "x", "y"); err == nil {
		t.Fatal("expected error for mismatched series")
	}
}

func TestWriteLineChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	series := []Series{{Stage: "diestrus", X: []float64{0, 1}, Y: []float64{1, 2}}}

	if err := WriteLineChart(path, series, "x", "y"); err != nil {
		t.Fatalf("WriteLineChart: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Errorf("written file is not a complete SVG")
	}
}
