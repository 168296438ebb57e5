package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"github.com/samanqayyum/ADS/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	heatmapColors = 64
	colorBarSteps = 100
)

// corrGrid exposes a correlation matrix as a heat map grid with the first
// label on the top row.
type corrGrid struct{ m *models.CorrelationMatrix }

func (g corrGrid) Dims() (c, r int)   { return g.m.Size(), g.m.Size() }
func (g corrGrid) Z(c, r int) float64 { return g.m.At(g.m.Size()-1-r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// rampGrid is a single column running from min to max, used as colour bar.
type rampGrid struct{ min, max float64 }

func (g rampGrid) Dims() (c, r int)   { return 1, colorBarSteps }
func (g rampGrid) Z(_, r int) float64 { return g.Y(r) }
func (g rampGrid) X(int) float64      { return 0 }
func (g rampGrid) Y(r int) float64 {
	return g.min + (g.max-g.min)*float64(r)/float64(colorBarSteps-1)
}

// Heatmap draws a correlation matrix on a fixed -1..1 colour scale with a
// colour bar on the right and every cell annotated with its value. The
// chart title is the country.
func (r *Renderer) Heatmap(path string, m *models.CorrelationMatrix, paletteName string) error {
	if m.Size() == 0 {
		return errors.Errorf("heatmap %q: empty matrix", m.Country)
	}
	pal, err := Palette(paletteName, heatmapColors)
	if err != nil {
		return errors.Wrapf(err, "heatmap %q", m.Country)
	}

	matrix, err := heatmapPlot(m, pal)
	if err != nil {
		return err
	}
	bar := colorBarPlot(pal)

	barWidth := r.Width / 8
	return r.write(path, func(c draw.Canvas) {
		matrix.Draw(draw.Crop(c, 0, -barWidth, 0, 0))
		// Align the bar with the matrix body, below the title.
		title := matrix.Title.TextStyle.Rectangle(matrix.Title.Text).Size().Y + matrix.Title.Padding
		bar.Draw(draw.Crop(c, r.Width-barWidth, 0, r.Height/4, -title))
	})
}

func heatmapPlot(m *models.CorrelationMatrix, pal palette.Palette) (*plot.Plot, error) {
	grid := corrGrid{m: m}
	h := plotter.NewHeatMap(grid, pal)
	h.Min, h.Max = -1, 1
	h.NaN = color.White

	p := newPlot(m.Country, "", "")
	p.Add(h)

	n := m.Size()
	xys := make(plotter.XYs, 0, n*n)
	labels := make([]string, 0, n*n)
	for c := 0; c < n; c++ {
		for row := 0; row < n; row++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(row)})
			labels = append(labels, cellLabel(grid.Z(c, row)))
		}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, errors.Wrapf(err, "heatmap %q", m.Country)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YCenter
		l.TextStyle[i].Font.Size = vg.Points(7)
	}
	p.Add(l)

	rows := make([]string, n)
	for i, label := range m.Labels {
		rows[n-1-i] = label
	}
	p.NominalX(m.Labels...)
	p.NominalY(rows...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

func colorBarPlot(pal palette.Palette) *plot.Plot {
	h := plotter.NewHeatMap(rampGrid{min: -1, max: 1}, pal)
	h.Min, h.Max = -1, 1

	p := plot.New()
	p.Add(h)
	p.HideX()
	p.Y.Tick.Marker = plot.ConstantTicks{
		{Value: -1, Label: "-1.00"},
		{Value: -0.5, Label: "-0.50"},
		{Value: 0, Label: "0.00"},
		{Value: 0.5, Label: "0.50"},
		{Value: 1, Label: "1.00"},
	}
	return p
}

func cellLabel(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%0.2f", v)
}
