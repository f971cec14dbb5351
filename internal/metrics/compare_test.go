package metrics

import (
	"errors"
	"math"
	"testing"
)

func TestRMSE(t *testing.T) {
	yTrue := []float64{1, 2, 3}
	yPred := []float64{1, 2, 5}

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Sqrt(4.0 / 3.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, got)
	}
}

func TestMAE(t *testing.T) {
	got, err := MAE([]float64{1, 2, 3}, []float64{2, 2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0, got %g", got)
	}
}

func TestMSE(t *testing.T) {
	got, err := MSE([]float64{0, 0}, []float64{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 12.5 {
		t.Errorf("expected 12.5, got %g", got)
	}
}

func TestCompare_DimensionMismatch(t *testing.T) {
	for _, metric := range []string{"rmse", "mae", "mse"} {
		if _, err := Compare([]float64{1}, []float64{1, 2}, metric, nil); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("%s: expected ErrDimensionMismatch, got %v", metric, err)
		}
	}
}

func TestCompare_InvalidMetric(t *testing.T) {
	if _, err := Compare([]float64{1}, []float64{1}, "nope", nil); err == nil {
		t.Error("expected error for invalid metric")
	}
}

func TestCompare_IdenticalSeries(t *testing.T) {
	y := []float64{-60, -20, -55, -60}
	time := []float64{0, 1, 2, 3}

	for _, metric := range []string{"rmse", "mae", "mse", "vrd"} {
		got, err := Compare(y, y, metric, time)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", metric, err)
		}
		if got != 0 {
			t.Errorf("%s: expected 0 for identical series, got %g", metric, got)
		}
	}
}
