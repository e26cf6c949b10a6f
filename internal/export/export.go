// Package export serializes analysis output for the UI collaborator:
// row-oriented CSV and structured JSON, both preserving chainage
// ordering and every field of the processed readings, derived
// parameters and flags.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// derivedHeader is the column layout of the derived-table export: the
// full input schema followed by the computed parameters.
var derivedHeader = []string{
	track.ColChainage,
	track.ColGauge,
	track.ColAlignmentLeft,
	track.ColAlignmentRight,
	track.ColCrossLevel,
	track.ColTwist,
	track.ColUnevennessLeft,
	track.ColUnevennessRight,
	track.ColVerticalAcceleration,
	track.ColLateralAcceleration,
	track.ColRailWearLeft,
	track.ColRailWearRight,
	track.ColComponentCondition,
	"gauge_deviation",
	"alignment_error",
	"unevenness",
	"accel_vertical_abs",
	"accel_lateral_abs",
}

// WriteDerivedCSV writes the processed readings and their derived
// parameters as one CSV row per chainage. readings and rows must be
// the aligned outputs of a single derivation run.
func WriteDerivedCSV(w io.Writer, readings []track.Reading, rows []track.DerivedParameters) error {
	if len(readings) != len(rows) {
		return fmt.Errorf("readings (%d) and derived rows (%d) are not aligned", len(readings), len(rows))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(derivedHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range rows {
		r, d := readings[i], rows[i]
		record := []string{
			num(r.Chainage),
			num(r.Gauge),
			num(r.AlignmentLeft),
			num(r.AlignmentRight),
			num(r.CrossLevel),
			num(r.Twist),
			num(r.UnevennessLeft),
			num(r.UnevennessRight),
			num(r.VerticalAcceleration),
			num(r.LateralAcceleration),
			num(r.RailWearLeft),
			num(r.RailWearRight),
			r.ComponentCondition,
			num(d.GaugeDeviation),
			num(d.AlignmentError),
			num(d.UnevennessValue),
			num(d.AccelVertical),
			num(d.AccelLateral),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFlagsCSV writes the flag list as CSV, chainage-ordered as
// produced by the classifier.
func WriteFlagsCSV(w io.Writer, flags []track.Flag) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"chainage", "parameter", "tier", "value"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, f := range flags {
		record := []string{num(f.Chainage), string(f.Parameter), string(f.Tier), num(f.Value)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DerivedRecord is one JSON export record: the processed reading with
// its derived parameters inline.
type DerivedRecord struct {
	track.Reading
	GaugeDeviation float64 `json:"gauge_deviation"`
	AlignmentError float64 `json:"alignment_error"`
	Unevenness     float64 `json:"unevenness"`
	AccelVertical  float64 `json:"accel_vertical_abs"`
	AccelLateral   float64 `json:"accel_lateral_abs"`
}

// WriteDerivedJSON writes the derived table as a JSON array of
// records, chainage-ordered.
func WriteDerivedJSON(w io.Writer, readings []track.Reading, rows []track.DerivedParameters) error {
	if len(readings) != len(rows) {
		return fmt.Errorf("readings (%d) and derived rows (%d) are not aligned", len(readings), len(rows))
	}
	records := make([]DerivedRecord, len(rows))
	for i := range rows {
		records[i] = DerivedRecord{
			Reading:        readings[i],
			GaugeDeviation: rows[i].GaugeDeviation,
			AlignmentError: rows[i].AlignmentError,
			Unevenness:     rows[i].UnevennessValue,
			AccelVertical:  rows[i].AccelVertical,
			AccelLateral:   rows[i].AccelLateral,
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteFlagsJSON writes the flag list as a JSON array.
func WriteFlagsJSON(w io.Writer, flags []track.Flag) error {
	if flags == nil {
		flags = []track.Flag{}
	}
	return json.NewEncoder(w).Encode(flags)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
