// Package classify maps derived track parameters to severity tiers
// against a per-parameter threshold configuration.
package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// Triple holds the ordered absolute-value limits for one parameter.
// A value's tier is decided closed-below/open-above: a value exactly
// equal to a limit belongs to the higher tier.
type Triple struct {
	Alert           float64 `json:"alert"`
	Intervention    float64 `json:"intervention"`
	ImmediateAction float64 `json:"immediate_action"`
}

// Validate checks that the limits are positive and strictly ascending.
func (t Triple) Validate() error {
	if t.Alert <= 0 {
		return fmt.Errorf("alert limit must be positive, got %g", t.Alert)
	}
	if t.Intervention <= t.Alert {
		return fmt.Errorf("intervention limit %g must exceed alert limit %g", t.Intervention, t.Alert)
	}
	if t.ImmediateAction <= t.Intervention {
		return fmt.Errorf("immediate_action limit %g must exceed intervention limit %g", t.ImmediateAction, t.Intervention)
	}
	return nil
}

// ThresholdConfig maps each classified parameter to its limit triple.
// It is an explicit value passed into every classification call; there
// is no process-wide mutable default. Parameters absent from the map
// are not classified.
type ThresholdConfig map[track.Parameter]Triple

// DefaultThresholds returns the standard limits. Units are mm for
// gauge deviation, alignment and cross level, mm/m for twist, and g
// for accelerations. Unevenness has no default limit and is only
// classified when a config adds one.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		track.ParamGaugeDeviation: {Alert: 3, Intervention: 5, ImmediateAction: 10},
		track.ParamAlignmentError: {Alert: 8, Intervention: 10, ImmediateAction: 16},
		track.ParamTwist:          {Alert: 3, Intervention: 5, ImmediateAction: 7},
		track.ParamCrossLevel:     {Alert: 5, Intervention: 7, ImmediateAction: 12},
		track.ParamVerticalAccel:  {Alert: 0.35, Intervention: 0.5, ImmediateAction: 0.7},
		track.ParamLateralAccel:   {Alert: 0.25, Intervention: 0.35, ImmediateAction: 0.5},
	}
}

// Validate checks every triple and rejects unknown parameter names.
func (c ThresholdConfig) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("threshold config is empty")
	}
	for param, triple := range c {
		known := false
		for _, p := range track.Parameters {
			if p == param {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown parameter %q in threshold config", param)
		}
		if err := triple.Validate(); err != nil {
			return fmt.Errorf("parameter %s: %w", param, err)
		}
	}
	return nil
}

// LoadThresholds reads a ThresholdConfig from a JSON file. Parameters
// omitted from the file keep their default triples, so partial
// override files are safe.
func LoadThresholds(path string) (ThresholdConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("threshold file must have .json extension, got %q", ext)
	}

	// Cap the file size; a threshold config is a handful of triples.
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat threshold file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("threshold file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read threshold file: %w", err)
	}

	overrides := ThresholdConfig{}
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse threshold JSON: %w", err)
	}

	cfg := DefaultThresholds()
	for param, triple := range overrides {
		cfg[param] = triple
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid threshold config: %w", err)
	}
	return cfg, nil
}
