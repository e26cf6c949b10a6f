// Package track defines the data model shared by the track geometry
// analysis pipeline: raw sensor readings indexed by chainage, the
// parameters derived from them, and the severity flags raised against
// them. The package also owns CSV ingestion and schema validation so
// that every downstream stage operates on a validated dataset rather
// than on raw untyped rows.
package track

// NominalGaugeMM is the standard gauge in millimetres. Gauge deviation
// is measured against this value.
const NominalGaugeMM = 1435.0

// Parameter identifies one derived track parameter.
type Parameter string

const (
	ParamGaugeDeviation Parameter = "gauge_deviation"
	ParamAlignmentError Parameter = "alignment_error"
	ParamTwist          Parameter = "twist"
	ParamCrossLevel     Parameter = "cross_level"
	ParamUnevenness     Parameter = "unevenness"
	ParamVerticalAccel  Parameter = "vertical_acceleration"
	ParamLateralAccel   Parameter = "lateral_acceleration"
)

// Parameters lists every derived parameter in canonical order.
var Parameters = []Parameter{
	ParamGaugeDeviation,
	ParamAlignmentError,
	ParamTwist,
	ParamCrossLevel,
	ParamUnevenness,
	ParamVerticalAccel,
	ParamLateralAccel,
}

// Tier is a severity classification, in increasing severity:
// ALERT < INTERVENTION < IMMEDIATE_ACTION.
type Tier string

const (
	TierAlert           Tier = "ALERT"
	TierIntervention    Tier = "INTERVENTION"
	TierImmediateAction Tier = "IMMEDIATE_ACTION"
)

// Rank returns the ordering of a tier for severity comparisons. Higher
// is more severe. Unknown tiers rank below ALERT.
func (t Tier) Rank() int {
	switch t {
	case TierAlert:
		return 1
	case TierIntervention:
		return 2
	case TierImmediateAction:
		return 3
	default:
		return 0
	}
}

// Reading is one sensor sample at a chainage. Distances are in
// millimetres, twist in mm/m, accelerations in g. Missing numeric
// values are represented as NaN and resolved by the deriver's
// missing-value policy.
type Reading struct {
	Chainage             float64 `json:"chainage"`
	Gauge                float64 `json:"gauge"`
	AlignmentLeft        float64 `json:"alignment_left"`
	AlignmentRight       float64 `json:"alignment_right"`
	CrossLevel           float64 `json:"cross_level"`
	Twist                float64 `json:"twist"`
	UnevennessLeft       float64 `json:"unevenness_left"`
	UnevennessRight      float64 `json:"unevenness_right"`
	VerticalAcceleration float64 `json:"vertical_acceleration"`
	LateralAcceleration  float64 `json:"lateral_acceleration"`
	RailWearLeft         float64 `json:"rail_wear_left"`
	RailWearRight        float64 `json:"rail_wear_right"`
	ComponentCondition   string  `json:"component_condition"`
}

// DerivedParameters is the set of computed parameters for one reading,
// aligned to it by chainage. Values are immutable once produced.
type DerivedParameters struct {
	Chainage        float64 `json:"chainage"`
	GaugeDeviation  float64 `json:"gauge_deviation"`
	AlignmentError  float64 `json:"alignment_error"`
	TwistValue      float64 `json:"twist"`
	CrossLevelValue float64 `json:"cross_level"`
	UnevennessValue float64 `json:"unevenness"`
	AccelVertical   float64 `json:"vertical_acceleration"`
	AccelLateral    float64 `json:"lateral_acceleration"`
}

// Value returns the derived value for the named parameter. Unknown
// parameters return 0.
func (d DerivedParameters) Value(p Parameter) float64 {
	switch p {
	case ParamGaugeDeviation:
		return d.GaugeDeviation
	case ParamAlignmentError:
		return d.AlignmentError
	case ParamTwist:
		return d.TwistValue
	case ParamCrossLevel:
		return d.CrossLevelValue
	case ParamUnevenness:
		return d.UnevennessValue
	case ParamVerticalAccel:
		return d.AccelVertical
	case ParamLateralAccel:
		return d.AccelLateral
	default:
		return 0
	}
}

// Flag associates one reading's chainage with a parameter whose value
// crossed at least the alert limit. Flags are never mutated after
// classification.
type Flag struct {
	Chainage  float64   `json:"chainage"`
	Parameter Parameter `json:"parameter"`
	Tier      Tier      `json:"tier"`
	Value     float64   `json:"value"`
}

// Dataset is a schema-validated, chainage-ordered collection of
// readings. Construct one through Validate; downstream stages rely on
// the ordering invariant.
type Dataset struct {
	Readings []Reading
}
