package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
)

// RenderWearProfilePNG plots left and right rail wear against chainage
// and writes the result as a PNG.
func RenderWearProfilePNG(w io.Writer, readings []track.Reading) error {
	if len(readings) == 0 {
		return fmt.Errorf("no readings to plot")
	}

	p := plot.New()
	p.Title.Text = "Rail Wear Profile"
	p.X.Label.Text = "Chainage (m)"
	p.Y.Label.Text = "Rail Wear (mm)"

	left := make(plotter.XYs, len(readings))
	right := make(plotter.XYs, len(readings))
	for i, r := range readings {
		left[i].X, left[i].Y = r.Chainage, r.RailWearLeft
		right[i].X, right[i].Y = r.Chainage, r.RailWearRight
	}

	leftLine, err := plotter.NewLine(left)
	if err != nil {
		return fmt.Errorf("failed to build left rail line: %w", err)
	}
	leftLine.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	rightLine, err := plotter.NewLine(right)
	if err != nil {
		return fmt.Errorf("failed to build right rail line: %w", err)
	}
	rightLine.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}

	p.Add(leftLine, rightLine)
	p.Legend.Add("left rail", leftLine)
	p.Legend.Add("right rail", rightLine)
	p.Legend.Top = true

	wt, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render wear profile: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write wear profile: %w", err)
	}
	return nil
}
