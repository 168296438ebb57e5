package chart

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/samanqayyum/ADS/internal/models"
	"gonum.org/v1/plot/plotter"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func assertPNG(t *testing.T, path string, r *Renderer) {
	t.Helper()
	f, err := os.Open(path)
	assert.NilError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	assert.NilError(t, err)
	b := img.Bounds()
	assert.Equal(t, b.Dx(), int(math.Round(6.4*float64(r.DPI))))
	assert.Equal(t, b.Dy(), int(math.Round(4.8*float64(r.DPI))))
}

func TestPalette(t *testing.T) {
	p, err := Palette("PRGn", 64)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(p.Colors(), 11))

	rev, err := Palette("PRGn_r", 64)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(rev.Colors(), 11))
	assert.DeepEqual(t, rev.Colors()[0], p.Colors()[10])
	assert.DeepEqual(t, rev.Colors()[10], p.Colors()[0])

	bb, err := Palette("blackbody", 64)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(bb.Colors(), 64))

	_, err = Palette("viridian", 64)
	assert.Assert(t, errors.Is(err, ErrUnknownPalette))
}

func TestSegments(t *testing.T) {
	nan := math.NaN()
	x := []float64{1, 2, 3, 4, 5, 6}

	got := segments(x, []float64{1, 2, nan, 4, nan, nan})
	assert.DeepEqual(t, got, []plotter.XYs{
		{{X: 1, Y: 1}, {X: 2, Y: 2}},
		{{X: 4, Y: 4}},
	})

	assert.Assert(t, is.Len(segments(x, []float64{nan, nan, nan, nan, nan, nan}), 0))
}

func TestSeriesColorsWrap(t *testing.T) {
	c := seriesColors(14)
	assert.Assert(t, is.Len(c, 14))
	assert.DeepEqual(t, c[12], c[0])
}

func TestLine(t *testing.T) {
	r := NewRenderer(50)
	path := filepath.Join(t.TempDir(), "Cereal Yield.png")

	err := r.Line(path, LineSpec{
		Title:  "Cereal Yield",
		XLabel: "Year",
		YLabel: "kg per hectare",
		X:      []float64{1991, 1992, 1993},
		Series: []Series{
			{Name: "ESP", Values: []float64{2500, math.NaN(), 2700}},
			{Name: "NPL", Values: []float64{math.NaN(), math.NaN(), math.NaN()}},
		},
	})
	assert.NilError(t, err)
	assertPNG(t, path, r)
}

func TestLineLengthMismatch(t *testing.T) {
	r := NewRenderer(50)
	err := r.Line(filepath.Join(t.TempDir(), "x.png"), LineSpec{
		Title:  "x",
		X:      []float64{1, 2},
		Series: []Series{{Name: "ESP", Values: []float64{1}}},
	})
	assert.ErrorContains(t, err, `series "ESP" has 1 values for 2 x positions`)
}

func TestBars(t *testing.T) {
	r := NewRenderer(50)
	path := filepath.Join(t.TempDir(), "GDP.png")

	err := r.Bars(path, BarSpec{
		Title:      "GDP",
		XLabel:     "Country",
		YLabel:     "GDP",
		Categories: []string{"Spain", "Nepal"},
		Series: []Series{
			{Name: "1997", Values: []float64{5.9e11, 4.9e9}},
			{Name: "2000", Values: []float64{5.9e11, math.NaN()}},
		},
	})
	assert.NilError(t, err)
	assertPNG(t, path, r)
}

func TestBarsErrors(t *testing.T) {
	r := NewRenderer(50)
	dir := t.TempDir()

	err := r.Bars(filepath.Join(dir, "a.png"), BarSpec{Title: "a"})
	assert.ErrorContains(t, err, "nothing to draw")

	err = r.Bars(filepath.Join(dir, "b.png"), BarSpec{
		Title:      "b",
		Categories: []string{"Spain", "Nepal"},
		Series:     []Series{{Name: "1997", Values: []float64{1}}},
	})
	assert.ErrorContains(t, err, `series "1997" has 1 values for 2 categories`)
}

func testMatrix() *models.CorrelationMatrix {
	return &models.CorrelationMatrix{
		Country: "Spain",
		Labels:  []string{"GDP", "EPC", "Pop. Growth"},
		Values: [][]float64{
			{1, 0.8, math.NaN()},
			{0.8, 1, -0.25},
			{math.NaN(), -0.25, 1},
		},
	}
}

func TestCorrGridOrientation(t *testing.T) {
	g := corrGrid{m: testMatrix()}
	c, r := g.Dims()
	assert.Equal(t, c, 3)
	assert.Equal(t, r, 3)
	// First label sits on the top row.
	assert.Equal(t, g.Z(0, 2), 1.0)
	assert.Equal(t, g.Z(1, 2), 0.8)
	assert.Equal(t, g.Z(2, 0), 1.0)
	assert.Equal(t, g.Z(1, 0), -0.25)
}

func TestCellLabel(t *testing.T) {
	assert.Equal(t, cellLabel(0.8), "0.80")
	assert.Equal(t, cellLabel(-1), "-1.00")
	assert.Equal(t, cellLabel(math.NaN()), "nan")
}

func TestHeatmap(t *testing.T) {
	r := NewRenderer(50)
	path := filepath.Join(t.TempDir(), "Spain.png")

	assert.NilError(t, r.Heatmap(path, testMatrix(), "PRGn"))
	assertPNG(t, path, r)
}

func TestHeatmapErrors(t *testing.T) {
	r := NewRenderer(50)
	dir := t.TempDir()

	err := r.Heatmap(filepath.Join(dir, "a.png"), testMatrix(), "viridian")
	assert.Assert(t, errors.Is(err, ErrUnknownPalette))

	err = r.Heatmap(filepath.Join(dir, "b.png"), &models.CorrelationMatrix{Country: "Nepal"}, "PRGn")
	assert.ErrorContains(t, err, `heatmap "Nepal": empty matrix`)

	err = r.Heatmap(filepath.Join(dir, "missing", "c.png"), testMatrix(), "PRGn")
	assert.ErrorContains(t, err, "create chart file")
}

func TestMatplotlibPalettes(t *testing.T) {
	magma, err := Palette("magma", len(magmaAnchors))
	assert.NilError(t, err)
	for i, c := range magma.Colors() {
		assert.Equal(t, c, color.Color(magmaAnchors[i]))
	}

	mid, err := Palette("magma", 17)
	assert.NilError(t, err)
	assert.Equal(t, mid.Colors()[1], color.Color(color.RGBA{0x0f, 0x09, 0x26, 0xff}))

	rev, err := Palette("magma_r", 64)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(rev.Colors(), 64))
	assert.Equal(t, rev.Colors()[0], color.Color(magmaAnchors[8]))

	p, err := Palette("pink", 5)
	assert.NilError(t, err)
	assert.Equal(t, p.Colors()[0], color.Color(color.RGBA{30, 0, 0, 0xff}))
	assert.Equal(t, p.Colors()[4], color.Color(color.RGBA{255, 255, 255, 0xff}))
}
