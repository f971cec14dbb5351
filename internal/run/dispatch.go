package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/uterosim/symprobe/internal/sweep"
)

// Simulator launches one external simulation run, blocking until it
// exits. Output is streamed into the run log.
type Simulator interface {
	Run(ctx context.Context, cfg sweep.SimulationConfig, outputDir string, log io.Writer) error
}

// Chaste invokes the external simulator executable. The simulator reads
// its parameters from the configuration files the substitution step
// rewrote, and writes its outputs under the directory given in
// CHASTE_TEST_OUTPUT.
type Chaste struct {
	Command string
}

func NewChaste(command string) *Chaste {
	return &Chaste{Command: command}
}

func (c *Chaste) Run(ctx context.Context, cfg sweep.SimulationConfig, outputDir string, log io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Command, strconv.Itoa(cfg.Dim))
	cmd.Stdout = log
	cmd.Stderr = log
	cmd.Env = append(os.Environ(), "CHASTE_TEST_OUTPUT="+outputDir)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalProcess, err)
	}
	return nil
}

// Prepare materializes a config right before its run: resolution plus
// config-file substitution. Errors wrapping sweep.ErrConfiguration
// abort the sweep; anything else fails only the run.
type Prepare func(sweep.SimulationConfig) (sweep.SimulationConfig, error)

// Dispatcher executes enumerated configurations one at a time, in
// order, recording success or failure per run.
type Dispatcher struct {
	sim        Simulator
	resultsDir string
	kind       sweep.Kind
	simName    string
	prepare    Prepare

	// OnUpdate, when set, observes every record state change.
	OnUpdate func(Record)
}

func NewDispatcher(sim Simulator, resultsDir string, kind sweep.Kind, simName string, prepare Prepare) *Dispatcher {
	return &Dispatcher{
		sim:        sim,
		resultsDir: resultsDir,
		kind:       kind,
		simName:    simName,
		prepare:    prepare,
	}
}

// Dispatch runs every configuration sequentially. Simulation numbers
// are assigned 1-based in input order. A failed run never prevents the
// following runs; the returned error is non-nil only when the sweep
// aborts (structural error or cancellation), and the records dispatched
// so far are returned either way. No retries: the simulator is assumed
// deterministic and expensive.
func (d *Dispatcher) Dispatch(ctx context.Context, configs []sweep.SimulationConfig) ([]Record, error) {
	records := make([]Record, 0, len(configs))

	for i, cfg := range configs {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		number := i + 1
		rec := Record{
			Number:    number,
			Config:    cfg,
			OutputDir: RunDir(d.resultsDir, d.kind, number),
			Status:    Pending,
		}
		d.notify(rec)

		resolved, err := d.prepare(cfg)
		if err != nil {
			if sweep.Fatal(err) {
				rec.Status = Failed
				rec.Err = err
				records = append(records, rec)
				d.notify(rec)
				return records, err
			}
			rec.Status = Failed
			rec.Err = err
			records = append(records, rec)
			d.notify(rec)
			continue
		}
		rec.Config = resolved

		if err := d.runOne(ctx, &rec); err != nil {
			rec.Status = Failed
			rec.Err = err
		} else {
			rec.Status = Success
		}
		records = append(records, rec)
		d.notify(rec)
	}

	return records, nil
}

func (d *Dispatcher) runOne(ctx context.Context, rec *Record) error {
	if err := os.MkdirAll(filepath.Join(rec.OutputDir, "log"), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalProcess, err)
	}

	logFile, err := os.Create(LogPath(rec.OutputDir, d.simName, rec.Number))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalProcess, err)
	}
	defer logFile.Close()

	return d.sim.Run(ctx, rec.Config, rec.OutputDir, logFile)
}

func (d *Dispatcher) notify(rec Record) {
	if d.OnUpdate != nil {
		d.OnUpdate(rec)
	}
}
