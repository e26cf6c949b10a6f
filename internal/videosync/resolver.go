package videosync

import (
	"fmt"
	"sort"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// Resolver answers chainage and timestamp queries against a frame
// index and the derived-parameter table of the same run. It holds only
// read-only references; a new analysis run gets a new resolver.
type Resolver struct {
	index FrameIndex
	rows  []track.DerivedParameters

	// WindowM is the half-width in metres of the local trend window
	// returned with each resolution.
	WindowM float64
	// ToleranceM is how far outside frame index coverage a query may
	// fall before it resolves to ErrNotFound.
	ToleranceM float64
}

// NewResolver builds a resolver over a validated frame index and the
// chainage-ordered derived rows. windowM and toleranceM must be
// non-negative.
func NewResolver(index FrameIndex, rows []track.DerivedParameters, windowM, toleranceM float64) (*Resolver, error) {
	if windowM < 0 {
		return nil, fmt.Errorf("window must be non-negative, got %g", windowM)
	}
	if toleranceM < 0 {
		return nil, fmt.Errorf("tolerance must be non-negative, got %g", toleranceM)
	}
	return &Resolver{index: index, rows: rows, WindowM: windowM, ToleranceM: toleranceM}, nil
}

// ResolvedView is the result of one query: the matched frame, the
// derived parameters nearest the matched chainage, and a local window
// of neighbouring rows for trend display.
type ResolvedView struct {
	Frame  Frame                     `json:"frame"`
	Row    track.DerivedParameters   `json:"parameters"`
	Window []track.DerivedParameters `json:"window"`
}

// ResolveChainage returns the frame nearest the queried chainage.
// Equidistant ties resolve to the lower chainage. Queries beyond
// coverage by more than the tolerance return ErrNotFound.
func (r *Resolver) ResolveChainage(chainage float64) (*ResolvedView, error) {
	if chainage < r.index.Start()-r.ToleranceM || chainage > r.index.End()+r.ToleranceM {
		return nil, fmt.Errorf("chainage %g outside coverage [%g, %g] (tolerance %g): %w",
			chainage, r.index.Start(), r.index.End(), r.ToleranceM, ErrNotFound)
	}
	frame := r.index[nearestIndex(len(r.index), chainage, func(i int) float64 { return r.index[i].Chainage })]
	return r.view(frame), nil
}

// ResolveTimestamp translates a timestamp query to the nearest frame
// by timestamp. Frame timestamps are co-monotonic with chainage for a
// forward-moving inspection vehicle, so the same binary search
// applies; equidistant ties take the lower chainage entry.
func (r *Resolver) ResolveTimestamp(ts float64) (*ResolvedView, error) {
	first, last := r.index[0].Timestamp, r.index[len(r.index)-1].Timestamp
	if ts < first || ts > last {
		// Tolerance is defined on chainage; outside the recorded span
		// there is simply no footage for the queried instant.
		return nil, fmt.Errorf("timestamp %g outside recorded span [%g, %g]: %w", ts, first, last, ErrNotFound)
	}
	frame := r.index[nearestIndex(len(r.index), ts, func(i int) float64 { return r.index[i].Timestamp })]
	return r.view(frame), nil
}

// view assembles the resolved view for a matched frame: the derived
// row nearest the frame's chainage plus the ±WindowM neighbourhood.
func (r *Resolver) view(frame Frame) *ResolvedView {
	v := &ResolvedView{Frame: frame}
	if len(r.rows) > 0 {
		v.Row = r.rows[nearestIndex(len(r.rows), frame.Chainage, func(i int) float64 { return r.rows[i].Chainage })]
		lo := sort.Search(len(r.rows), func(i int) bool { return r.rows[i].Chainage >= frame.Chainage-r.WindowM })
		hi := sort.Search(len(r.rows), func(i int) bool { return r.rows[i].Chainage > frame.Chainage+r.WindowM })
		v.Window = r.rows[lo:hi]
	}
	return v
}

// Advance returns the next frame strictly beyond current+step, for
// auto-advance playback. ok is false at end of track; advancing past
// the last frame stops rather than erroring.
func (r *Resolver) Advance(current, step float64) (Frame, bool) {
	if step <= 0 {
		step = 0
	}
	target := current + step
	i := sort.Search(len(r.index), func(i int) bool { return r.index[i].Chainage >= target })
	for i < len(r.index) && r.index[i].Chainage <= current {
		i++
	}
	if i >= len(r.index) {
		return Frame{}, false
	}
	return r.index[i], true
}

// nearestIndex finds the index whose key is nearest to q in a slice
// ordered ascending by key. Equidistant ties resolve to the lower
// index, and therefore the lower chainage.
func nearestIndex(n int, q float64, key func(int) float64) int {
	i := sort.Search(n, func(i int) bool { return key(i) >= q })
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	below, above := key(i-1), key(i)
	if q-below <= above-q {
		return i - 1
	}
	return i
}
