// Package videosync resolves chainage and timestamp queries against a
// synchronized inspection-video frame index. The index is supplied by
// the video-ingestion collaborator and is read-only here.
package videosync

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a query falls outside the frame index
// coverage by more than the configured tolerance. It is a normal,
// user-visible outcome: the caller should re-prompt, not crash.
var ErrNotFound = errors.New("no frame within tolerance of query")

// Frame is one entry of the chainage-to-video mapping. FrameRef is an
// opaque handle understood by the video collaborator.
type Frame struct {
	Chainage  float64 `json:"chainage"`
	Timestamp float64 `json:"timestamp"`
	FrameRef  string  `json:"frame_reference"`
}

// FrameIndex is a chainage-ordered sequence of frames.
type FrameIndex []Frame

// NewFrameIndex validates that frames are strictly increasing in
// chainage and returns them as a FrameIndex. The resolver's binary
// searches depend on this ordering.
func NewFrameIndex(frames []Frame) (FrameIndex, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("frame index is empty")
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Chainage <= frames[i-1].Chainage {
			return nil, fmt.Errorf("frame index not strictly increasing at entry %d (%g after %g)",
				i, frames[i].Chainage, frames[i-1].Chainage)
		}
	}
	return FrameIndex(frames), nil
}

// Start returns the first covered chainage.
func (fi FrameIndex) Start() float64 { return fi[0].Chainage }

// End returns the last covered chainage.
func (fi FrameIndex) End() float64 { return fi[len(fi)-1].Chainage }
