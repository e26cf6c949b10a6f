// Package derive computes the derived track parameters from a
// validated dataset: missing-value handling first, optional smoothing
// of the raw measurement columns, then the fixed derivation formulas.
package derive

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// ErrInsufficientData is returned when fewer than two valid readings
// survive missing-value handling. Derivation and everything downstream
// need at least two chainages to be meaningful.
var ErrInsufficientData = errors.New("insufficient data: fewer than 2 valid readings")

// MissingValuePolicy selects how NaN cells are resolved before
// derivation.
type MissingValuePolicy string

const (
	// DropRow removes readings with any missing measurement.
	DropRow MissingValuePolicy = "drop_row"
	// InterpolateLinear fills a missing scalar from its nearest valid
	// neighbours by linear interpolation on chainage. Values missing
	// before the first or after the last valid sample take the nearest
	// valid value.
	InterpolateLinear MissingValuePolicy = "interpolate_linear"
	// FillZero substitutes 0.0 for missing values.
	FillZero MissingValuePolicy = "fill_zero"
)

// FilterKind selects the optional smoothing applied to raw measurement
// columns before derivation.
type FilterKind string

const (
	FilterNone          FilterKind = "none"
	FilterMovingAverage FilterKind = "moving_average"
	FilterLowPass       FilterKind = "low_pass"
)

// Options configures a derivation run.
type Options struct {
	Policy MissingValuePolicy `json:"missing_value_policy"`
	Filter FilterKind         `json:"filter"`
	// Window is the moving-average window in samples. Only read when
	// Filter is FilterMovingAverage.
	Window int `json:"window,omitempty"`
	// Cutoff is the normalized low-pass cutoff in (0,1). Only read
	// when Filter is FilterLowPass.
	Cutoff float64 `json:"cutoff,omitempty"`
}

// DefaultOptions returns the default derivation configuration:
// linear interpolation of missing values, no smoothing.
func DefaultOptions() Options {
	return Options{Policy: InterpolateLinear, Filter: FilterNone}
}

// Validate checks the options before any work starts.
func (o Options) Validate() error {
	switch o.Policy {
	case DropRow, InterpolateLinear, FillZero:
	default:
		return fmt.Errorf("unknown missing_value_policy %q", o.Policy)
	}
	switch o.Filter {
	case FilterNone, "":
	case FilterMovingAverage:
		if o.Window < 2 {
			return fmt.Errorf("moving_average window must be >= 2, got %d", o.Window)
		}
	case FilterLowPass:
		if o.Cutoff <= 0 || o.Cutoff >= 1 {
			return fmt.Errorf("low_pass cutoff must be in (0,1), got %g", o.Cutoff)
		}
	default:
		return fmt.Errorf("unknown filter %q", o.Filter)
	}
	return nil
}

// Result holds the outcome of a derivation run: the processed readings
// (after missing-value handling and smoothing) and the derived rows
// aligned to them by chainage.
type Result struct {
	Readings []track.Reading
	Rows     []track.DerivedParameters
	// Dropped counts readings removed by the DropRow policy.
	Dropped int
}

// Derive applies the missing-value policy and optional smoothing to a
// validated dataset and computes one DerivedParameters row per
// surviving reading. The input dataset is never mutated.
func Derive(ds *track.Dataset, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	readings := make([]track.Reading, len(ds.Readings))
	copy(readings, ds.Readings)

	var dropped int
	switch opts.Policy {
	case DropRow:
		readings, dropped = dropIncomplete(readings)
	case InterpolateLinear:
		for _, col := range track.NumericColumns[1:] { // chainage is never missing post-validation
			interpolateColumn(readings, col)
		}
	case FillZero:
		for _, col := range track.NumericColumns[1:] {
			for i := range readings {
				f := readings[i].Field(col)
				if math.IsNaN(*f) {
					*f = 0
				}
			}
		}
	}

	if len(readings) < 2 {
		return nil, fmt.Errorf("%w (have %d)", ErrInsufficientData, len(readings))
	}

	if opts.Filter != FilterNone && opts.Filter != "" {
		for _, col := range track.MeasurementColumns {
			vals := columnValues(readings, col)
			switch opts.Filter {
			case FilterMovingAverage:
				vals = movingAverage(vals, opts.Window)
			case FilterLowPass:
				vals = lowPass(vals, opts.Cutoff)
			}
			setColumnValues(readings, col, vals)
		}
	}

	rows := make([]track.DerivedParameters, len(readings))
	for i := range readings {
		rows[i] = deriveOne(readings[i])
	}
	return &Result{Readings: readings, Rows: rows, Dropped: dropped}, nil
}

// deriveOne applies the derivation formulas to a single reading.
func deriveOne(r track.Reading) track.DerivedParameters {
	return track.DerivedParameters{
		Chainage:        r.Chainage,
		GaugeDeviation:  r.Gauge - track.NominalGaugeMM,
		AlignmentError:  math.Sqrt(r.AlignmentLeft*r.AlignmentLeft + r.AlignmentRight*r.AlignmentRight),
		TwistValue:      r.Twist,
		CrossLevelValue: r.CrossLevel,
		UnevennessValue: math.Max(r.UnevennessLeft, r.UnevennessRight), // worst-rail convention
		AccelVertical:   math.Abs(r.VerticalAcceleration),
		AccelLateral:    math.Abs(r.LateralAcceleration),
	}
}

// dropIncomplete removes readings with any missing numeric value.
func dropIncomplete(readings []track.Reading) ([]track.Reading, int) {
	kept := readings[:0]
	for i := range readings {
		complete := true
		for _, col := range track.NumericColumns {
			if math.IsNaN(*readings[i].Field(col)) {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, readings[i])
		}
	}
	return kept, len(readings) - len(kept)
}

// interpolateColumn fills NaN cells in one column by linear
// interpolation on chainage between the nearest valid neighbours.
// Leading and trailing gaps take the nearest valid value rather than
// extrapolating. A column with no valid values at all cannot occur
// here: the validator rejects entirely-empty columns.
func interpolateColumn(readings []track.Reading, col string) {
	n := len(readings)
	prevValid := -1
	for i := 0; i < n; i++ {
		if !math.IsNaN(*readings[i].Field(col)) {
			prevValid = i
			continue
		}
		// Find the next valid sample.
		next := -1
		for j := i + 1; j < n; j++ {
			if !math.IsNaN(*readings[j].Field(col)) {
				next = j
				break
			}
		}
		f := readings[i].Field(col)
		switch {
		case prevValid < 0 && next < 0:
			*f = 0
		case prevValid < 0:
			*f = *readings[next].Field(col)
		case next < 0:
			*f = *readings[prevValid].Field(col)
		default:
			x0, x1 := readings[prevValid].Chainage, readings[next].Chainage
			y0, y1 := *readings[prevValid].Field(col), *readings[next].Field(col)
			t := (readings[i].Chainage - x0) / (x1 - x0)
			*f = y0 + t*(y1-y0)
		}
	}
}

func columnValues(readings []track.Reading, col string) []float64 {
	vals := make([]float64, len(readings))
	for i := range readings {
		vals[i] = *readings[i].Field(col)
	}
	return vals
}

func setColumnValues(readings []track.Reading, col string, vals []float64) {
	for i := range readings {
		*readings[i].Field(col) = vals[i]
	}
}

// MedianInterval returns the median chainage sampling interval of the
// derived rows. The segment aggregator uses it as the default merge
// gap and the resolver as the default coverage tolerance.
func MedianInterval(rows []track.DerivedParameters) float64 {
	if len(rows) < 2 {
		return 0
	}
	diffs := make([]float64, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		diffs = append(diffs, rows[i].Chainage-rows[i-1].Chainage)
	}
	sort.Float64s(diffs)
	return stat.Quantile(0.5, stat.Empirical, diffs, nil)
}
