package chart

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// LineSpec is one line per series over a shared X axis.
type LineSpec struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Series []Series
}

// Line draws every series as a line. A missing value breaks the line; the
// series keeps its legend entry even when it has no values at all.
func (r *Renderer) Line(path string, s LineSpec) error {
	p := newPlot(s.Title, s.XLabel, s.YLabel)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = vg.Points(legendSize)

	colors := seriesColors(len(s.Series))
	for i, ser := range s.Series {
		if len(ser.Values) != len(s.X) {
			return errors.Errorf("line chart %q: series %q has %d values for %d x positions", s.Title, ser.Name, len(ser.Values), len(s.X))
		}
		for _, seg := range segments(s.X, ser.Values) {
			l, err := plotter.NewLine(seg)
			if err != nil {
				return errors.Wrapf(err, "line chart %q", s.Title)
			}
			l.Color = colors[i]
			l.Width = vg.Points(1.5)
			p.Add(l)
		}

		thumb, err := plotter.NewLine(plotter.XYs{})
		if err != nil {
			return errors.Wrapf(err, "line chart %q", s.Title)
		}
		thumb.Color = colors[i]
		thumb.Width = vg.Points(1.5)
		p.Legend.Add(ser.Name, thumb)
	}

	return r.save(path, p)
}

// segments splits a series into runs of present values.
func segments(x, y []float64) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for i := range x {
		if math.IsNaN(y[i]) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
