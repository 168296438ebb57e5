// Package chart renders line, grouped bar and correlation heatmap charts to
// PNG files with gonum/plot.
package chart

import (
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	titleSize  = 14
	legendSize = 6
)

// Series is one named sequence of values. NaN marks a missing value.
type Series struct {
	Name   string
	Values []float64
}

// Renderer writes charts as PNG images of a fixed size and resolution.
type Renderer struct {
	DPI    int
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a Renderer for 6.4x4.8 inch images at dpi.
func NewRenderer(dpi int) *Renderer {
	if dpi <= 0 {
		dpi = 300
	}
	return &Renderer{DPI: dpi, Width: 6.4 * vg.Inch, Height: 4.8 * vg.Inch}
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)
	p.Title.Padding = vg.Points(6)
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

// save draws p over the whole canvas and writes it to path.
func (r *Renderer) save(path string, p *plot.Plot) error {
	return r.write(path, func(c draw.Canvas) { p.Draw(c) })
}

// write renders onto a fresh canvas and writes the PNG. A failed write is
// reported, not retried.
func (r *Renderer) write(path string, render func(draw.Canvas)) error {
	c := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	render(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create chart file")
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
