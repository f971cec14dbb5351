package metrics

import "math"

// DefaultSpikeHeight is the minimum membrane potential in mV for a
// peak to count as a spike.
const DefaultSpikeHeight = -50.0

// SpikeTimes detects spikes in a signal by peak-finding: local maxima
// at or above the height threshold.
func SpikeTimes(signal, t []float64, height float64) []float64 {
	spikes := make([]float64, 0)
	for i := 1; i < len(signal)-1; i++ {
		if signal[i] < height {
			continue
		}
		if signal[i] > signal[i-1] && signal[i] > signal[i+1] {
			spikes = append(spikes, t[i])
		}
	}
	return spikes
}

// VanRossum computes the van Rossum distance between two spike trains
// with a causal exponential kernel of time constant tau.
func VanRossum(u, v []float64, tau float64) float64 {
	d2 := (kernelSum(u, u, tau) + kernelSum(v, v, tau) - 2*kernelSum(u, v, tau)) / 2
	if d2 < 0 {
		// Numerical noise around zero.
		d2 = 0
	}
	return math.Sqrt(d2)
}

func kernelSum(u, v []float64, tau float64) float64 {
	sum := 0.0
	for _, ti := range u {
		for _, tj := range v {
			sum += math.Exp(-math.Abs(ti-tj) / tau)
		}
	}
	return sum
}

// VRD detects the spike trains of both series and returns their van
// Rossum distance.
func VRD(yTrue, yPred, t []float64, tau float64) (float64, error) {
	if len(yTrue) != len(yPred) || len(yTrue) != len(t) {
		return 0, ErrDimensionMismatch
	}
	stTrue := SpikeTimes(yTrue, t, DefaultSpikeHeight)
	stPred := SpikeTimes(yPred, t, DefaultSpikeHeight)
	return VanRossum(stTrue, stPred, tau), nil
}
