// Package report renders inspection report artifacts from an analysis
// run: an HTML report of parameter-vs-chainage charts with threshold
// bands and the flag distribution, a PNG rail-wear profile, and
// per-parameter summary statistics.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/analysis"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// chartParams is the order in which parameter charts appear in the
// HTML report.
var chartParams = []struct {
	param track.Parameter
	title string
	unit  string
}{
	{track.ParamGaugeDeviation, "Gauge Deviation", "mm"},
	{track.ParamAlignmentError, "Alignment Error", "mm"},
	{track.ParamTwist, "Twist", "mm/m"},
	{track.ParamCrossLevel, "Cross Level", "mm"},
	{track.ParamUnevenness, "Unevenness", "mm"},
	{track.ParamVerticalAccel, "Vertical Acceleration", "g"},
	{track.ParamLateralAccel, "Lateral Acceleration", "g"},
}

// RenderHTML writes the full inspection report for a run as a single
// HTML page: one line chart per derived parameter with its alert
// threshold marked, followed by a bar chart of flag counts per
// parameter.
func RenderHTML(w io.Writer, result *analysis.Result) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Track Inspection Report %s", result.RunID)

	for _, cp := range chartParams {
		page.AddCharts(parameterChart(result, cp.param, cp.title, cp.unit))
	}
	page.AddCharts(flagDistributionChart(result.Flags))
	page.AddCharts(correlationHeatmap(result.Derived))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report page: %w", err)
	}
	return nil
}

// parameterChart builds one parameter-vs-chainage line chart. The
// alert limit, when configured, is drawn as horizontal mark lines on
// both sides of zero.
func parameterChart(result *analysis.Result, param track.Parameter, title, unit string) *charts.Line {
	line := charts.NewLine()

	globalOpts := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s vs Chainage", title)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Chainage (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("%s (%s)", title, unit)}),
	}
	line.SetGlobalOptions(globalOpts...)

	x := make([]string, len(result.Derived))
	y := make([]opts.LineData, len(result.Derived))
	for i, row := range result.Derived {
		x[i] = fmt.Sprintf("%.1f", row.Chainage)
		y[i] = opts.LineData{Value: row.Value(param)}
	}
	line.SetXAxis(x)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
	}
	if triple, ok := result.Options.Thresholds[param]; ok {
		seriesOpts = append(seriesOpts,
			charts.WithMarkLineNameYAxisItemOpts(
				opts.MarkLineNameYAxisItem{Name: "alert", YAxis: triple.Alert},
				opts.MarkLineNameYAxisItem{Name: "-alert", YAxis: -triple.Alert},
			),
		)
	}
	line.AddSeries(string(param), y, seriesOpts...)
	return line
}

// correlationHeatmap builds a heatmap of pairwise Pearson correlations
// between the derived parameters across the run.
func correlationHeatmap(rows []track.DerivedParameters) *charts.HeatMap {
	names := make([]string, len(track.Parameters))
	cols := make([][]float64, len(track.Parameters))
	for i, p := range track.Parameters {
		names[i] = string(p)
		cols[i] = make([]float64, len(rows))
		for j, row := range rows {
			cols[i][j] = row.Value(p)
		}
	}

	data := make([]opts.HeatMapData, 0, len(cols)*len(cols))
	for i := range cols {
		for j := range cols {
			r := stat.Correlation(cols[i], cols[j], nil)
			if math.IsNaN(r) { // constant column
				r = 0
			}
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{i, j, math.Round(r*100) / 100},
			})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Parameter Correlation"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: names}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: names}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#74add1", "#ffffff", "#f46d43", "#a50026"}},
		}),
	)
	hm.AddSeries("correlation", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return hm
}

// flagDistributionChart builds the flag-count-per-parameter bar chart.
func flagDistributionChart(flags []track.Flag) *charts.Bar {
	counts := make(map[track.Parameter]int)
	for _, f := range flags {
		counts[f.Parameter]++
	}

	x := make([]string, 0, len(track.Parameters))
	y := make([]opts.BarData, 0, len(track.Parameters))
	for _, p := range track.Parameters {
		x = append(x, string(p))
		y = append(y, opts.BarData{Value: counts[p]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Flagged Readings by Parameter"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("flags", y,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}
