package derive

// movingAverage returns a centered moving average of vals. The window
// shrinks at the edges so the output has the same length as the input
// and edge samples are averaged over whatever neighbours exist, which
// matches filling edge gaps with the raw value.
func movingAverage(vals []float64, window int) []float64 {
	n := len(vals)
	out := make([]float64, n)
	half := window / 2
	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += vals[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// lowPass runs a single-pole low-pass filter forward and then backward
// over vals, cancelling the phase shift. cutoff is the normalized
// cutoff in (0,1); smaller values smooth harder.
func lowPass(vals []float64, cutoff float64) []float64 {
	n := len(vals)
	if n == 0 {
		return nil
	}
	alpha := cutoff
	fwd := make([]float64, n)
	fwd[0] = vals[0]
	for i := 1; i < n; i++ {
		fwd[i] = fwd[i-1] + alpha*(vals[i]-fwd[i-1])
	}
	out := make([]float64, n)
	out[n-1] = fwd[n-1]
	for i := n - 2; i >= 0; i-- {
		out[i] = out[i+1] + alpha*(fwd[i]-out[i+1])
	}
	return out
}
