package segment

import (
	"math"
	"testing"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

func TestAggregateMergesWithinGap(t *testing.T) {
	flags := []track.Flag{
		{Chainage: 200.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.2},
		{Chainage: 203.0, Parameter: track.ParamTwist, Tier: track.TierIntervention, Value: 5.1},
		{Chainage: 210.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.4},
	}

	segments, err := Aggregate(flags, 5.0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}

	// Segment ordering puts the INTERVENTION run first.
	first := segments[0]
	if first.StartChainage != 200.0 || first.EndChainage != 203.0 {
		t.Errorf("merged segment spans [%g, %g], want [200, 203]", first.StartChainage, first.EndChainage)
	}
	if first.PeakTier != track.TierIntervention {
		t.Errorf("merged segment peak tier = %s, want INTERVENTION", first.PeakTier)
	}
	if first.PeakValue != 5.1 {
		t.Errorf("merged segment peak value = %g, want 5.1", first.PeakValue)
	}
	if first.FlagCount != 2 {
		t.Errorf("merged segment flag count = %d, want 2", first.FlagCount)
	}

	second := segments[1]
	if second.StartChainage != 210.0 || second.EndChainage != 210.0 || second.FlagCount != 1 {
		t.Errorf("trailing flag segment = %+v", second)
	}
}

func TestAggregateGapBoundaryInclusive(t *testing.T) {
	// A gap exactly equal to maxGap still merges.
	flags := []track.Flag{
		{Chainage: 100.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.1},
		{Chainage: 105.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.2},
	}
	segments, err := Aggregate(flags, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1 (gap == maxGap merges)", len(segments))
	}
}

func TestAggregateNeverMergesAcrossParameters(t *testing.T) {
	flags := []track.Flag{
		{Chainage: 300.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.5},
		{Chainage: 300.0, Parameter: track.ParamGaugeDeviation, Tier: track.TierAlert, Value: 4.0},
		{Chainage: 300.5, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.6},
	}
	segments, err := Aggregate(flags, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2 (one per parameter)", len(segments))
	}
	for _, s := range segments {
		switch s.Parameter {
		case track.ParamTwist:
			if s.FlagCount != 2 {
				t.Errorf("twist segment flag count = %d, want 2", s.FlagCount)
			}
		case track.ParamGaugeDeviation:
			if s.FlagCount != 1 {
				t.Errorf("gauge segment flag count = %d, want 1", s.FlagCount)
			}
		default:
			t.Errorf("unexpected segment parameter %s", s.Parameter)
		}
	}
}

func TestAggregateRanking(t *testing.T) {
	flags := []track.Flag{
		// Three isolated single-flag segments, far apart.
		{Chainage: 500.0, Parameter: track.ParamGaugeDeviation, Tier: track.TierAlert, Value: 4.0},
		{Chainage: 100.0, Parameter: track.ParamGaugeDeviation, Tier: track.TierImmediateAction, Value: -11.0},
		{Chainage: 300.0, Parameter: track.ParamGaugeDeviation, Tier: track.TierIntervention, Value: 6.0},
	}
	segments, err := Aggregate(flags, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	want := []track.Tier{track.TierImmediateAction, track.TierIntervention, track.TierAlert}
	if len(segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(segments), len(want))
	}
	for i, tier := range want {
		if segments[i].PeakTier != tier {
			t.Errorf("segments[%d].PeakTier = %s, want %s", i, segments[i].PeakTier, tier)
		}
	}
	// Sign is preserved on the peak value even though ranking uses the magnitude.
	if segments[0].PeakValue != -11.0 {
		t.Errorf("top segment peak value = %g, want -11", segments[0].PeakValue)
	}
}

func TestAggregateRankingTieBreaks(t *testing.T) {
	flags := []track.Flag{
		// Same tier, same magnitude, different start chainage.
		{Chainage: 400.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.5},
		{Chainage: 200.0, Parameter: track.ParamCrossLevel, Tier: track.TierAlert, Value: -3.5},
		// Same tier, larger magnitude.
		{Chainage: 600.0, Parameter: track.ParamGaugeDeviation, Tier: track.TierAlert, Value: 4.0},
	}
	segments, err := Aggregate(flags, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	if segments[0].StartChainage != 600.0 {
		t.Errorf("largest magnitude should rank first, got start %g", segments[0].StartChainage)
	}
	if segments[1].StartChainage != 200.0 || segments[2].StartChainage != 400.0 {
		t.Errorf("equal-magnitude tie should break on start chainage: got %g then %g",
			segments[1].StartChainage, segments[2].StartChainage)
	}
}

func TestAggregateRejectsBadGap(t *testing.T) {
	flags := []track.Flag{{Chainage: 1, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.5}}
	for _, gap := range []float64{0, -1, math.NaN()} {
		if _, err := Aggregate(flags, gap); err == nil {
			t.Errorf("Aggregate accepted gap %g", gap)
		}
	}
}

func TestAggregateEmptyAndUntouchedInput(t *testing.T) {
	segments, err := Aggregate(nil, 5.0)
	if err != nil || segments != nil {
		t.Errorf("empty input: got %v, %v", segments, err)
	}

	flags := []track.Flag{
		{Chainage: 50.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.1},
		{Chainage: 10.0, Parameter: track.ParamTwist, Tier: track.TierAlert, Value: 3.2},
	}
	if _, err := Aggregate(flags, 5.0); err != nil {
		t.Fatal(err)
	}
	if flags[0].Chainage != 50.0 || flags[1].Chainage != 10.0 {
		t.Error("Aggregate reordered the caller's flag slice")
	}
}
