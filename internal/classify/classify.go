package classify

import (
	"fmt"
	"math"
	"sort"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// TierFor classifies one absolute value against a triple. The empty
// string means the value is below the alert limit and raises no flag.
func TierFor(absValue float64, t Triple) track.Tier {
	switch {
	case absValue >= t.ImmediateAction:
		return track.TierImmediateAction
	case absValue >= t.Intervention:
		return track.TierIntervention
	case absValue >= t.Alert:
		return track.TierAlert
	default:
		return ""
	}
}

// Classify compares every derived row against the threshold config and
// returns one flag per (chainage, parameter) pair at or above its
// alert limit. Classification is stateless: the same rows and config
// always produce the same flags, and the output is sorted by chainage
// then parameter so repeated runs are comparable byte for byte.
func Classify(rows []track.DerivedParameters, cfg ThresholdConfig) ([]track.Flag, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("threshold config rejected: %w", err)
	}

	params := make([]track.Parameter, 0, len(cfg))
	for _, p := range track.Parameters {
		if _, ok := cfg[p]; ok {
			params = append(params, p)
		}
	}

	var flags []track.Flag
	for _, row := range rows {
		for _, param := range params {
			value := row.Value(param)
			tier := TierFor(math.Abs(value), cfg[param])
			if tier == "" {
				continue
			}
			flags = append(flags, track.Flag{
				Chainage:  row.Chainage,
				Parameter: param,
				Tier:      tier,
				Value:     value,
			})
		}
	}

	sort.Slice(flags, func(i, j int) bool {
		if flags[i].Chainage != flags[j].Chainage {
			return flags[i].Chainage < flags[j].Chainage
		}
		return flags[i].Parameter < flags[j].Parameter
	})
	return flags, nil
}
