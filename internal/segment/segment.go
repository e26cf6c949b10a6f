// Package segment groups flagged chainages into maintenance segments
// and ranks them for prioritization. The grouping rule follows the
// same sessionization idea as splitting a sample stream on a time gap:
// consecutive flags of one parameter belong to the same segment while
// the chainage gap between them stays within the merge threshold.
package segment

import (
	"fmt"
	"math"
	"sort"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// Segment is a contiguous or near-contiguous run of flagged chainages
// for one parameter.
type Segment struct {
	Parameter     track.Parameter `json:"parameter"`
	StartChainage float64         `json:"start_chainage"`
	EndChainage   float64         `json:"end_chainage"`
	PeakTier      track.Tier      `json:"peak_tier"`
	PeakValue     float64         `json:"peak_value"`
	FlagCount     int             `json:"flag_count"`
}

// Aggregate groups flags into segments using maxGap as the merge
// threshold in metres. Flags of different parameters never merge, even
// at identical chainage. The result is ordered by peak tier
// descending, then larger peak absolute value, then smaller start
// chainage, producing the ranked hotspot list.
func Aggregate(flags []track.Flag, maxGap float64) ([]Segment, error) {
	if maxGap <= 0 || math.IsNaN(maxGap) {
		return nil, fmt.Errorf("max gap must be positive, got %g", maxGap)
	}
	if len(flags) == 0 {
		return nil, nil
	}

	// Work on a copy ordered by parameter then chainage; the caller's
	// flag set stays untouched.
	sorted := make([]track.Flag, len(flags))
	copy(sorted, flags)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Parameter != sorted[j].Parameter {
			return sorted[i].Parameter < sorted[j].Parameter
		}
		return sorted[i].Chainage < sorted[j].Chainage
	})

	var segments []Segment
	current := newSegment(sorted[0])
	for _, f := range sorted[1:] {
		if f.Parameter == current.Parameter && f.Chainage-current.EndChainage <= maxGap {
			current.extend(f)
			continue
		}
		segments = append(segments, current)
		current = newSegment(f)
	}
	segments = append(segments, current)

	sort.Slice(segments, func(i, j int) bool {
		a, b := segments[i], segments[j]
		if a.PeakTier.Rank() != b.PeakTier.Rank() {
			return a.PeakTier.Rank() > b.PeakTier.Rank()
		}
		if math.Abs(a.PeakValue) != math.Abs(b.PeakValue) {
			return math.Abs(a.PeakValue) > math.Abs(b.PeakValue)
		}
		return a.StartChainage < b.StartChainage
	})
	return segments, nil
}

func newSegment(f track.Flag) Segment {
	return Segment{
		Parameter:     f.Parameter,
		StartChainage: f.Chainage,
		EndChainage:   f.Chainage,
		PeakTier:      f.Tier,
		PeakValue:     f.Value,
		FlagCount:     1,
	}
}

// extend folds one more flag into the segment, keeping the most severe
// tier and the largest absolute value seen.
func (s *Segment) extend(f track.Flag) {
	s.EndChainage = f.Chainage
	s.FlagCount++
	if f.Tier.Rank() > s.PeakTier.Rank() {
		s.PeakTier = f.Tier
	}
	if math.Abs(f.Value) > math.Abs(s.PeakValue) {
		s.PeakValue = f.Value
	}
}
