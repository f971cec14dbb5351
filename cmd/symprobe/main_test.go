package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/uterosim/symprobe/internal/config"
	"github.com/uterosim/symprobe/internal/run"
	"github.com/uterosim/symprobe/internal/sweep"
)

type fakeSimulator struct{}

func (fakeSimulator) Run(ctx context.Context, cfg sweep.SimulationConfig, outputDir string, log io.Writer) error {
	io.WriteString(log, "mesh: test_mesh\n")
	return nil
}

func passthrough(cfg sweep.SimulationConfig) (sweep.SimulationConfig, error) {
	return cfg, nil
}

func testConfigs(n int) []sweep.SimulationConfig {
	configs := make([]sweep.SimulationConfig, n)
	for i := range configs {
		configs[i] = sweep.SimulationConfig{Dim: 2, Label: fmt.Sprintf("run-%d", i+1)}
	}
	return configs
}

func TestDispatchLive_CompletedSweep(t *testing.T) {
	d := run.NewDispatcher(fakeSimulator{}, t.TempDir(), sweep.Parameter, "simulation", passthrough)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	view := func(total int, updates <-chan run.Record) error {
		for range updates {
		}
		return nil
	}

	records, err := dispatchLive(ctx, cancel, d, testConfigs(3), view)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

// A view that exits without consuming its updates must not leave the
// dispatcher blocked on the channel buffer.
func TestDispatchLive_ViewQuitsEarly(t *testing.T) {
	d := run.NewDispatcher(fakeSimulator{}, t.TempDir(), sweep.Parameter, "simulation", passthrough)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// More updates than the channel buffers; the view reads none.
	view := func(total int, updates <-chan run.Record) error {
		return nil
	}

	records, err := dispatchLive(ctx, cancel, d, testConfigs(20), view)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(records) >= 20 {
		t.Errorf("sweep should have stopped early, got %d records", len(records))
	}
}

func TestDispatchLive_ViewErrorWins(t *testing.T) {
	d := run.NewDispatcher(fakeSimulator{}, t.TempDir(), sweep.Parameter, "simulation", passthrough)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	viewErr := errors.New("view closed")
	view := func(total int, updates <-chan run.Record) error {
		return viewErr
	}

	if _, err := dispatchLive(ctx, cancel, d, testConfigs(2), view); !errors.Is(err, viewErr) {
		t.Fatalf("expected view error, got %v", err)
	}
}

func writeRunLog(t *testing.T, root string, n int, mesh string) {
	t.Helper()
	outputDir := run.RunDir(root, sweep.Resolution, n)
	if err := os.MkdirAll(filepath.Join(outputDir, "log"), 0755); err != nil {
		t.Fatal(err)
	}
	logPath := run.LogPath(outputDir, "simulation", n)
	content := fmt.Sprintf("mesh: %s\nprint timestep: 1.0 ms\n", mesh)
	if err := os.WriteFile(logPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// Element counts come from the mesh each run logged, not from the
// run's position in the requested range.
func TestRunElements_NonContiguousRange(t *testing.T) {
	root := t.TempDir()
	writeRunLog(t, root, 1, "uterus_scaffold_scaled_1")
	writeRunLog(t, root, 3, "uterus_scaffold_scaled_3")

	settings := config.Default()
	settings.SimName = "simulation"

	cases := []struct {
		number int
		want   int
	}{
		{1, settings.Elements["uterus_scaffold_scaled_1"]},
		{3, settings.Elements["uterus_scaffold_scaled_3"]},
	}
	for _, c := range cases {
		got, err := runElements(settings, root, c.number)
		if err != nil {
			t.Fatalf("run %d: %v", c.number, err)
		}
		if got != c.want {
			t.Errorf("run %d: expected %d elements, got %d", c.number, c.want, got)
		}
	}
}

func TestRunElements_UnknownMesh(t *testing.T) {
	root := t.TempDir()
	writeRunLog(t, root, 1, "no_such_mesh")

	settings := config.Default()
	settings.SimName = "simulation"

	if _, err := runElements(settings, root, 1); err == nil {
		t.Fatal("expected error for mesh without an element count")
	}
}
