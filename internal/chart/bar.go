package chart

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// BarSpec is a grouped bar chart: one group per category, one bar per
// series inside each group.
type BarSpec struct {
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
}

// Bars draws a grouped bar chart. Missing values draw as empty bars.
func (r *Renderer) Bars(path string, s BarSpec) error {
	if len(s.Categories) == 0 || len(s.Series) == 0 {
		return errors.Errorf("bar chart %q: nothing to draw", s.Title)
	}

	p := newPlot(s.Title, s.XLabel, s.YLabel)
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(legendSize)

	group := r.Width * 0.6 / vg.Length(len(s.Categories))
	width := group / vg.Length(len(s.Series))
	colors := seriesColors(len(s.Series))

	for i, ser := range s.Series {
		if len(ser.Values) != len(s.Categories) {
			return errors.Errorf("bar chart %q: series %q has %d values for %d categories", s.Title, ser.Name, len(ser.Values), len(s.Categories))
		}
		vals := make(plotter.Values, len(ser.Values))
		for j, v := range ser.Values {
			if !math.IsNaN(v) {
				vals[j] = v
			}
		}
		b, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return errors.Wrapf(err, "bar chart %q", s.Title)
		}
		b.Color = colors[i]
		b.LineStyle.Width = 0
		b.Offset = vg.Length(float64(i)-float64(len(s.Series)-1)/2) * width
		p.Add(b)
		p.Legend.Add(ser.Name, b)
	}

	p.NominalX(s.Categories...)
	p.X.Tick.Label.Rotation = 65 * math.Pi / 180
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return r.save(path, p)
}
