package track

// Column names for the tabular input format. This is the single source
// of truth for the dataset schema; the CSV reader, the validator and
// the exporters all key off these constants.
const (
	ColChainage             = "chainage"
	ColGauge                = "gauge"
	ColAlignmentLeft        = "alignment_left"
	ColAlignmentRight       = "alignment_right"
	ColCrossLevel           = "cross_level"
	ColTwist                = "twist"
	ColUnevennessLeft       = "unevenness_left"
	ColUnevennessRight      = "unevenness_right"
	ColVerticalAcceleration = "vertical_acceleration"
	ColLateralAcceleration  = "lateral_acceleration"
	ColRailWearLeft         = "rail_wear_left"
	ColRailWearRight        = "rail_wear_right"
	ColComponentCondition   = "component_condition"
)

// NumericColumns lists every column that must hold numeric values, in
// canonical order. ColComponentCondition is the only text column.
var NumericColumns = []string{
	ColChainage,
	ColGauge,
	ColAlignmentLeft,
	ColAlignmentRight,
	ColCrossLevel,
	ColTwist,
	ColUnevennessLeft,
	ColUnevennessRight,
	ColVerticalAcceleration,
	ColLateralAcceleration,
	ColRailWearLeft,
	ColRailWearRight,
}

// RequiredColumns lists every column the schema requires.
var RequiredColumns = append(append([]string{}, NumericColumns...), ColComponentCondition)

// MeasurementColumns lists the raw columns that feed derivations and
// are therefore eligible for smoothing. Chainage and rail wear are
// excluded: chainage is the index, rail wear is carried through
// unfiltered for the wear profile report.
var MeasurementColumns = []string{
	ColGauge,
	ColAlignmentLeft,
	ColAlignmentRight,
	ColCrossLevel,
	ColTwist,
	ColUnevennessLeft,
	ColUnevennessRight,
	ColVerticalAcceleration,
	ColLateralAcceleration,
}

// Field returns a pointer to the reading's value for a numeric column,
// or nil for unknown / non-numeric columns. The deriver uses this to
// apply missing-value policies and smoothing column-wise without
// per-field switch statements at every call site.
func (r *Reading) Field(col string) *float64 {
	switch col {
	case ColChainage:
		return &r.Chainage
	case ColGauge:
		return &r.Gauge
	case ColAlignmentLeft:
		return &r.AlignmentLeft
	case ColAlignmentRight:
		return &r.AlignmentRight
	case ColCrossLevel:
		return &r.CrossLevel
	case ColTwist:
		return &r.Twist
	case ColUnevennessLeft:
		return &r.UnevennessLeft
	case ColUnevennessRight:
		return &r.UnevennessRight
	case ColVerticalAcceleration:
		return &r.VerticalAcceleration
	case ColLateralAcceleration:
		return &r.LateralAcceleration
	case ColRailWearLeft:
		return &r.RailWearLeft
	case ColRailWearRight:
		return &r.RailWearRight
	default:
		return nil
	}
}
