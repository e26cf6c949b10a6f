package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

func TestTierFor(t *testing.T) {
	triple := Triple{Alert: 3, Intervention: 5, ImmediateAction: 10}

	tests := []struct {
		name  string
		value float64
		want  track.Tier
	}{
		{"below alert", 2.9, ""},
		{"exactly alert belongs to alert", 3.0, track.TierAlert},
		{"between alert and intervention", 4.9, track.TierAlert},
		{"exactly intervention belongs to intervention", 5.0, track.TierIntervention},
		{"between intervention and immediate", 9.9, track.TierIntervention},
		{"exactly immediate belongs to immediate", 10.0, track.TierImmediateAction},
		{"far above immediate", 25.0, track.TierImmediateAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.value, triple))
		})
	}
}

func TestTierMonotonicity(t *testing.T) {
	triple := Triple{Alert: 3, Intervention: 5, ImmediateAction: 10}
	prev := track.Tier("").Rank()
	for v := 0.0; v <= 15.0; v += 0.1 {
		rank := TierFor(v, triple).Rank()
		require.GreaterOrEqual(t, rank, prev, "tier rank decreased at value %v", v)
		prev = rank
	}
}

func TestClassifyScenarios(t *testing.T) {
	rows := []track.DerivedParameters{
		// gauge 1440 at chainage 100: deviation exactly at the
		// intervention limit.
		{Chainage: 100, GaugeDeviation: 5.0},
		// alignment 6/8 -> error 10, exactly the intervention limit.
		{Chainage: 200, AlignmentError: 10.0},
		// negative deviation classifies on absolute value.
		{Chainage: 300, GaugeDeviation: -12.0},
	}

	flags, err := Classify(rows, DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, flags, 3)

	byChainage := make(map[float64]track.Flag)
	for _, f := range flags {
		byChainage[f.Chainage] = f
	}

	assert.Equal(t, track.TierIntervention, byChainage[100].Tier)
	assert.Equal(t, track.ParamGaugeDeviation, byChainage[100].Parameter)
	assert.Equal(t, track.TierIntervention, byChainage[200].Tier)
	assert.Equal(t, track.ParamAlignmentError, byChainage[200].Parameter)
	assert.Equal(t, track.TierImmediateAction, byChainage[300].Tier)
	assert.Equal(t, -12.0, byChainage[300].Value, "flag keeps the signed value")
}

func TestClassifyMultipleFlagsPerChainage(t *testing.T) {
	rows := []track.DerivedParameters{
		{Chainage: 100, GaugeDeviation: 6, TwistValue: 4, AccelLateral: 0.1},
	}
	flags, err := Classify(rows, DefaultThresholds())
	require.NoError(t, err)
	assert.Len(t, flags, 2, "one flag per exceeding parameter")
}

func TestClassifyIdempotent(t *testing.T) {
	rows := []track.DerivedParameters{
		{Chainage: 100, GaugeDeviation: 4},
		{Chainage: 101, TwistValue: 8},
	}
	first, err := Classify(rows, DefaultThresholds())
	require.NoError(t, err)
	second, err := Classify(rows, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassifyRejectsBadConfig(t *testing.T) {
	rows := []track.DerivedParameters{{Chainage: 100}}

	tests := []struct {
		name string
		cfg  ThresholdConfig
	}{
		{"empty", ThresholdConfig{}},
		{"not ascending", ThresholdConfig{
			track.ParamTwist: {Alert: 5, Intervention: 5, ImmediateAction: 7},
		}},
		{"negative alert", ThresholdConfig{
			track.ParamTwist: {Alert: -1, Intervention: 5, ImmediateAction: 7},
		}},
		{"unknown parameter", ThresholdConfig{
			track.Parameter("curvature"): {Alert: 1, Intervention: 2, ImmediateAction: 3},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(rows, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestClassifySkipsUnconfiguredParameters(t *testing.T) {
	// Unevenness has no default triple; even an extreme value raises
	// no flag under the default config.
	rows := []track.DerivedParameters{{Chainage: 100, UnevennessValue: 100}}
	flags, err := Classify(rows, DefaultThresholds())
	require.NoError(t, err)
	assert.Empty(t, flags)

	// Adding a triple brings it into classification.
	cfg := DefaultThresholds()
	cfg[track.ParamUnevenness] = Triple{Alert: 5, Intervention: 7, ImmediateAction: 12}
	flags, err = Classify(rows, cfg)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, track.TierImmediateAction, flags[0].Tier)
}
