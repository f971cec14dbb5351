// Package metrics compares simulation outputs.
package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch indicates series of different lengths.
var ErrDimensionMismatch = errors.New("metrics: dimensions must agree")

// DefaultTau is the time constant in seconds for the van Rossum
// exponential kernel.
const DefaultTau = 1.0

func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

func MAE(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, ErrDimensionMismatch
	}
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(len(yTrue)), nil
}

func MSE(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, ErrDimensionMismatch
	}
	sum := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return sum / float64(len(yTrue)), nil
}

// Compare computes the named comparison metric between two series. The
// time vector is only used by the van Rossum distance.
func Compare(yTrue, yPred []float64, metric string, t []float64) (float64, error) {
	switch metric {
	case "rmse":
		return RMSE(yTrue, yPred)
	case "mae":
		return MAE(yTrue, yPred)
	case "mse":
		return MSE(yTrue, yPred)
	case "vrd":
		return VRD(yTrue, yPred, t, DefaultTau)
	}
	return 0, fmt.Errorf("metrics: invalid metric %q", metric)
}
