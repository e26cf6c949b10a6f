package derive

import (
	"math"
	"testing"
)

func TestMovingAveragePreservesConstantSeries(t *testing.T) {
	vals := []float64{3, 3, 3, 3, 3, 3}
	out := movingAverage(vals, 5)
	for i, v := range out {
		if math.Abs(v-3) > 1e-12 {
			t.Errorf("out[%d] = %v, want 3", i, v)
		}
	}
}

func TestMovingAverageCenters(t *testing.T) {
	vals := []float64{0, 0, 10, 0, 0}
	out := movingAverage(vals, 3)
	// The spike spreads symmetrically over its neighbours.
	want := []float64{0, 10.0 / 3, 10.0 / 3, 10.0 / 3, 0}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestLowPassPreservesConstantSeries(t *testing.T) {
	vals := []float64{7, 7, 7, 7}
	out := lowPass(vals, 0.2)
	for i, v := range out {
		if math.Abs(v-7) > 1e-9 {
			t.Errorf("out[%d] = %v, want 7", i, v)
		}
	}
}

func TestLowPassAttenuatesSpike(t *testing.T) {
	vals := []float64{0, 0, 0, 10, 0, 0, 0}
	out := lowPass(vals, 0.3)
	if out[3] >= 10 {
		t.Errorf("spike not attenuated: %v", out[3])
	}
	if out[2] <= 0 || out[4] <= 0 {
		t.Errorf("spike energy not spread to neighbours: %v", out)
	}
}
