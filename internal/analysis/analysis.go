// Package analysis orchestrates the full pipeline over one dataset:
// validate, derive, classify, aggregate. Each run is an independent,
// deterministic transformation of its inputs; the Result it returns is
// immutable and carries the configuration snapshot that produced it,
// so concurrent runs with different configs never interfere.
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/classify"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/derive"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/segment"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// Options configures one analysis run. The zero value is not valid;
// start from DefaultOptions.
type Options struct {
	Derive     derive.Options           `json:"derive"`
	Thresholds classify.ThresholdConfig `json:"thresholds"`
	// MaxGapM overrides the segment merge gap in metres. Zero selects
	// the dataset's median sampling interval.
	MaxGapM float64 `json:"max_gap_m,omitempty"`
}

// DefaultOptions returns the standard run configuration: linear
// interpolation of missing values, no smoothing, default thresholds,
// median-interval segment gap.
func DefaultOptions() Options {
	return Options{
		Derive:     derive.DefaultOptions(),
		Thresholds: classify.DefaultThresholds(),
	}
}

// Validate checks the whole configuration eagerly, before any
// derivation work starts.
func (o Options) Validate() error {
	if err := o.Derive.Validate(); err != nil {
		return fmt.Errorf("derive options: %w", err)
	}
	if err := o.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	if o.MaxGapM < 0 {
		return fmt.Errorf("max_gap_m must be non-negative, got %g", o.MaxGapM)
	}
	return nil
}

// Result is the immutable outcome of one analysis run.
type Result struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Options   Options   `json:"options"`

	Readings []track.Reading           `json:"-"`
	Derived  []track.DerivedParameters `json:"-"`
	Flags    []track.Flag              `json:"-"`
	Segments []segment.Segment         `json:"-"`

	// DroppedRows counts readings removed by the drop_row policy.
	DroppedRows int `json:"dropped_rows"`
	// GapM is the segment merge gap actually used.
	GapM float64 `json:"gap_m"`
}

// Run executes the pipeline over a raw table. Validation and
// configuration are checked before derivation; any failure stops the
// run with nothing produced.
func Run(t *track.Table, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ds, err := track.Validate(t)
	if err != nil {
		return nil, err
	}
	return RunDataset(ds, opts)
}

// RunDataset executes the pipeline over an already-validated dataset.
func RunDataset(ds *track.Dataset, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	derived, err := derive.Derive(ds, opts.Derive)
	if err != nil {
		return nil, err
	}

	flags, err := classify.Classify(derived.Rows, opts.Thresholds)
	if err != nil {
		return nil, err
	}

	gap := opts.MaxGapM
	if gap == 0 {
		gap = derive.MedianInterval(derived.Rows)
	}
	segments, err := segment.Aggregate(flags, gap)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Options:     opts,
		Readings:    derived.Readings,
		Derived:     derived.Rows,
		Flags:       flags,
		Segments:    segments,
		DroppedRows: derived.Dropped,
		GapM:        gap,
	}, nil
}
