package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// ParameterSummary holds descriptive statistics for one derived
// parameter across a run, for the report header and the API.
type ParameterSummary struct {
	Parameter track.Parameter `json:"parameter"`
	Mean      float64         `json:"mean"`
	StdDev    float64         `json:"std_dev"`
	Min       float64         `json:"min"`
	Max       float64         `json:"max"`
	Flags     int             `json:"flags"`
}

// Summarize computes per-parameter statistics over the derived rows
// and folds in the flag counts. Parameters appear in canonical order.
func Summarize(rows []track.DerivedParameters, flags []track.Flag) []ParameterSummary {
	counts := make(map[track.Parameter]int)
	for _, f := range flags {
		counts[f.Parameter]++
	}

	summaries := make([]ParameterSummary, 0, len(track.Parameters))
	for _, p := range track.Parameters {
		vals := make([]float64, len(rows))
		for i, row := range rows {
			vals[i] = row.Value(p)
		}
		s := ParameterSummary{Parameter: p, Flags: counts[p]}
		if len(vals) > 0 {
			s.Mean = stat.Mean(vals, nil)
			s.StdDev = stat.StdDev(vals, nil)
			s.Min, s.Max = vals[0], vals[0]
			for _, v := range vals[1:] {
				if v < s.Min {
					s.Min = v
				}
				if v > s.Max {
					s.Max = v
				}
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
