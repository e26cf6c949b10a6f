package videosync

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads a frame index from a CSV stream with the header
// `chainage,timestamp,frame_reference`. The resulting index is
// validated for chainage ordering.
func ReadCSV(r io.Reader) (FrameIndex, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty frame index: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read frame index header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"chainage", "timestamp", "frame_reference"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("frame index missing column %q", required)
		}
	}

	var frames []Frame
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read frame index row %d: %w", row, err)
		}
		chainage, err := strconv.ParseFloat(record[cols["chainage"]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad chainage at row %d: %w", row, err)
		}
		ts, err := strconv.ParseFloat(record[cols["timestamp"]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp at row %d: %w", row, err)
		}
		frames = append(frames, Frame{
			Chainage:  chainage,
			Timestamp: ts,
			FrameRef:  record[cols["frame_reference"]],
		})
	}
	return NewFrameIndex(frames)
}
