package run

import (
	"errors"

	"github.com/uterosim/symprobe/internal/sweep"
)

var (
	// ErrExternalProcess indicates the simulator exited non-zero or
	// failed to start. Per-run: the sweep continues.
	ErrExternalProcess = errors.New("run: external simulator failed")

	// ErrEmptyResult indicates no successful run is available for
	// indexing. Fatal to extraction and plotting.
	ErrEmptyResult = errors.New("run: no successful simulation runs")
)

// Status is the lifecycle state of a single run. Terminal either way
// after dispatch: no retries, no intermediate states.
type Status int

const (
	Pending Status = iota
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Record is the append-only log entry for one dispatched run.
type Record struct {
	// Number is 1-based and strictly matches enumeration order.
	Number    int
	Config    sweep.SimulationConfig
	OutputDir string
	Status    Status
	Err       error
}
