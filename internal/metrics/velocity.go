package metrics

import "errors"

var (
	ErrNoOvarianSpikes  = errors.New("metrics: no spikes found at the ovarian end")
	ErrNoCervicalSpikes = errors.New("metrics: no spikes found at the cervical end")
)

// EstimateVelocity estimates the propagation velocity in mm/s between
// the ovarian and cervical ends of the horn, assuming propagation from
// ovaries to cervix. V columns are ordered ovarian end, centre,
// cervical end.
func EstimateVelocity(V [][]float64, t []float64, hornLength float64) (float64, error) {
	ovarian := make([]float64, len(V))
	cervical := make([]float64, len(V))
	for i := range V {
		ovarian[i] = V[i][0]
		cervical[i] = V[i][2]
	}

	ovaSpikes := SpikeTimes(ovarian, t, DefaultSpikeHeight)
	cvxSpikes := SpikeTimes(cervical, t, DefaultSpikeHeight)

	if len(cvxSpikes) == 0 {
		return 0, ErrNoCervicalSpikes
	}
	if len(ovaSpikes) == 0 {
		return 0, ErrNoOvarianSpikes
	}

	return hornLength / (cvxSpikes[0] - ovaSpikes[0]), nil
}
