package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/analysis"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

func testResult() *analysis.Result {
	return &analysis.Result{
		RunID:   "test-run",
		Options: analysis.DefaultOptions(),
		Derived: []track.DerivedParameters{
			{Chainage: 100, GaugeDeviation: 0.2, AlignmentError: 1.8, TwistValue: 0.8,
				CrossLevelValue: 0.5, UnevennessValue: 1.2, AccelVertical: 0.05, AccelLateral: 0.04},
			{Chainage: 100.5, GaugeDeviation: 6.0, AlignmentError: 1.7, TwistValue: 0.7,
				CrossLevelValue: 0.6, UnevennessValue: 1.1, AccelVertical: 0.06, AccelLateral: 0.05},
			{Chainage: 101, GaugeDeviation: 0.3, AlignmentError: 1.6, TwistValue: 0.9,
				CrossLevelValue: 0.4, UnevennessValue: 1.2, AccelVertical: 0.05, AccelLateral: 0.03},
		},
		Flags: []track.Flag{
			{Chainage: 100.5, Parameter: track.ParamGaugeDeviation, Tier: track.TierIntervention, Value: 6.0},
		},
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, testResult()); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, "Track Inspection Report test-run") {
		t.Error("report is missing its title")
	}
	for _, want := range []string{
		"Gauge Deviation vs Chainage",
		"Twist vs Chainage",
		"Lateral Acceleration vs Chainage",
		"Flagged Readings by Parameter",
		"Parameter Correlation",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report is missing chart title %q", want)
		}
	}
}

func TestCorrelationHeatmapValues(t *testing.T) {
	// Gauge deviation rises linearly while cross level falls linearly,
	// so their correlation is exactly -1 and every self-pair is 1.
	rows := []track.DerivedParameters{
		{Chainage: 100, GaugeDeviation: 1, CrossLevelValue: 3, TwistValue: 0.2},
		{Chainage: 101, GaugeDeviation: 2, CrossLevelValue: 2, TwistValue: 0.9},
		{Chainage: 102, GaugeDeviation: 3, CrossLevelValue: 1, TwistValue: 0.4},
	}

	hm := correlationHeatmap(rows)
	if got := len(hm.MultiSeries); got != 1 {
		t.Fatalf("heatmap has %d series, want 1", got)
	}
	data, ok := hm.MultiSeries[0].Data.([]opts.HeatMapData)
	if !ok {
		t.Fatalf("series data has type %T", hm.MultiSeries[0].Data)
	}
	n := len(track.Parameters)
	if len(data) != n*n {
		t.Fatalf("got %d cells, want %d", len(data), n*n)
	}

	cell := func(i, j int) float64 {
		v := data[i*n+j].Value.([3]interface{})
		return v[2].(float64)
	}
	// track.Parameters puts gauge_deviation at 0 and cross_level at 3.
	if got := cell(0, 0); got != 1 {
		t.Errorf("self correlation = %g, want 1", got)
	}
	if got := cell(0, 3); got != -1 {
		t.Errorf("gauge/cross-level correlation = %g, want -1", got)
	}
	if got, want := cell(0, 3), cell(3, 0); got != want {
		t.Errorf("correlation matrix not symmetric: %g vs %g", got, want)
	}
	// Constant columns (unevenness etc. are all zero here) must not
	// leak NaN into the chart payload.
	for _, d := range data {
		v := d.Value.([3]interface{})
		if f := v[2].(float64); f != f {
			t.Errorf("heatmap cell %v is NaN", v)
		}
	}
}

func TestRenderHTMLNoFlags(t *testing.T) {
	result := testResult()
	result.Flags = nil
	var buf bytes.Buffer
	if err := RenderHTML(&buf, result); err != nil {
		t.Fatalf("RenderHTML with no flags failed: %v", err)
	}
}

func TestRenderWearProfilePNG(t *testing.T) {
	readings := []track.Reading{
		{Chainage: 100, RailWearLeft: 2.0, RailWearRight: 2.1},
		{Chainage: 110, RailWearLeft: 2.2, RailWearRight: 2.1},
		{Chainage: 120, RailWearLeft: 2.3, RailWearRight: 2.4},
	}
	var buf bytes.Buffer
	if err := RenderWearProfilePNG(&buf, readings); err != nil {
		t.Fatalf("RenderWearProfilePNG failed: %v", err)
	}
	// PNG magic bytes.
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestSummarize(t *testing.T) {
	rows := []track.DerivedParameters{
		{Chainage: 100, GaugeDeviation: 2},
		{Chainage: 101, GaugeDeviation: 4},
		{Chainage: 102, GaugeDeviation: 6},
	}
	flags := []track.Flag{
		{Chainage: 101, Parameter: track.ParamGaugeDeviation, Tier: track.TierAlert, Value: 4},
		{Chainage: 102, Parameter: track.ParamGaugeDeviation, Tier: track.TierIntervention, Value: 6},
	}

	summaries := Summarize(rows, flags)
	if len(summaries) != len(track.Parameters) {
		t.Fatalf("got %d summaries, want %d", len(summaries), len(track.Parameters))
	}
	if summaries[0].Parameter != track.ParamGaugeDeviation {
		t.Fatalf("first summary is %s, want gauge_deviation", summaries[0].Parameter)
	}

	g := summaries[0]
	if g.Mean != 4 {
		t.Errorf("mean = %g, want 4", g.Mean)
	}
	if math.Abs(g.StdDev-2) > 1e-12 {
		t.Errorf("std dev = %g, want 2", g.StdDev)
	}
	if g.Min != 2 || g.Max != 6 {
		t.Errorf("min/max = %g/%g, want 2/6", g.Min, g.Max)
	}
	if g.Flags != 2 {
		t.Errorf("flag count = %d, want 2", g.Flags)
	}

	// Unflagged parameters still get a summary with zero flags.
	for _, s := range summaries[1:] {
		if s.Flags != 0 {
			t.Errorf("%s flag count = %d, want 0", s.Parameter, s.Flags)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summaries := Summarize(nil, nil)
	if len(summaries) != len(track.Parameters) {
		t.Fatalf("got %d summaries, want %d", len(summaries), len(track.Parameters))
	}
	for _, s := range summaries {
		if s.Mean != 0 || s.Flags != 0 {
			t.Errorf("empty summary for %s = %+v", s.Parameter, s)
		}
	}
}
