package sweep

import (
	"fmt"
	"math"
)

// Kind selects the controlled axis of a sweep.
type Kind string

const (
	Parameter  Kind = "parameter"
	Resolution Kind = "resolution"
	Estrus     Kind = "estrus"
)

// EstrusStages is the fixed progression of the estrus cycle. The order
// is an invariant: downstream comparison plots assume it.
var EstrusStages = [4]string{"proestrus", "estrus", "metestrus", "diestrus"}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Parameter, Resolution, Estrus:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: unknown sweep kind %q", ErrConfiguration, s)
}

// Axis is one controlled sweep axis. Immutable once constructed.
type Axis struct {
	kind   Kind
	param  string
	values []float64
	meshes []string
}

// NewParameterAxis builds a parameter axis from an inclusive numeric
// range. Values are emitted in order, start first.
func NewParameterAxis(param string, start, end, step float64) (Axis, error) {
	if param == "" {
		return Axis{}, fmt.Errorf("%w: empty parameter name", ErrConfiguration)
	}
	if start > end {
		return Axis{}, ErrRange
	}
	if step <= 0 {
		return Axis{}, fmt.Errorf("%w: step must be positive", ErrConfiguration)
	}

	// Counting up front keeps the end value in despite floating-point
	// accumulation error.
	n := int(math.Floor((end-start)/step+1e-9)) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return Axis{kind: Parameter, param: param, values: values}, nil
}

// ParameterAxisValues builds a parameter axis from explicit values, kept
// in input order. Duplicates are preserved: each value is a distinct
// labeled run.
func ParameterAxisValues(param string, values []float64) (Axis, error) {
	if param == "" {
		return Axis{}, fmt.Errorf("%w: empty parameter name", ErrConfiguration)
	}
	if len(values) == 0 {
		return Axis{}, fmt.Errorf("%w: no parameter values", ErrConfiguration)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return Axis{kind: Parameter, param: param, values: vals}, nil
}

// NewResolutionAxis builds a resolution axis over meshes named
// base_start .. base_end.
func NewResolutionAxis(base string, start, end int) (Axis, error) {
	if base == "" {
		return Axis{}, fmt.Errorf("%w: empty mesh name", ErrConfiguration)
	}
	if start > end {
		return Axis{}, ErrRange
	}

	meshes := make([]string, 0, end-start+1)
	for j := start; j <= end; j++ {
		meshes = append(meshes, fmt.Sprintf("%s_%d", base, j))
	}
	return Axis{kind: Resolution, meshes: meshes}, nil
}

// NewEstrusAxis builds the fixed four-stage estrus axis.
func NewEstrusAxis() Axis {
	return Axis{kind: Estrus}
}

func (a Axis) Kind() Kind { return a.kind }

func (a Axis) ParamName() string { return a.param }

func (a Axis) Values() []float64 {
	vals := make([]float64, len(a.values))
	copy(vals, a.values)
	return vals
}

func (a Axis) Meshes() []string {
	meshes := make([]string, len(a.meshes))
	copy(meshes, a.meshes)
	return meshes
}

// Len is the number of runs the axis enumerates to.
func (a Axis) Len() int {
	switch a.kind {
	case Parameter:
		return len(a.values)
	case Resolution:
		return len(a.meshes)
	case Estrus:
		return len(EstrusStages)
	}
	return 0
}
