package chart

import (
	"image/color"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

// ErrUnknownPalette is returned when a palette name resolves to nothing.
var ErrUnknownPalette = errors.New("unknown palette")

var colorMaps = map[string]func() palette.ColorMap{
	"blackbody":            moreland.BlackBody,
	"extended-blackbody":   moreland.ExtendedBlackBody,
	"kindlmann":            moreland.Kindlmann,
	"extended-kindlmann":   moreland.ExtendedKindlmann,
	"smooth-blue-red":      func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"smooth-blue-tan":      func() palette.ColorMap { return moreland.SmoothBlueTan() },
	"smooth-green-purple":  func() palette.ColorMap { return moreland.SmoothGreenPurple() },
	"smooth-green-red":     func() palette.ColorMap { return moreland.SmoothGreenRed() },
	"smooth-purple-orange": func() palette.ColorMap { return moreland.SmoothPurpleOrange() },
}

// Palette resolves a palette by name. Names are either a ColorBrewer scheme
// ("PRGn", "RdPu", ...), one of the matplotlib maps in generated or one of
// the Moreland maps in colorMaps. A "_r"
// suffix reverses the colours. ColorBrewer schemes come with at most a
// dozen colours, so fewer than n may be returned.
func Palette(name string, n int) (palette.Palette, error) {
	base, reversed := strings.CutSuffix(name, "_r")

	var colors []color.Color
	if gen, ok := generated[strings.ToLower(base)]; ok {
		colors = gen(n)
	} else if mk, ok := colorMaps[strings.ToLower(base)]; ok {
		cm := mk()
		cm.SetMin(0)
		cm.SetMax(1)
		colors = cm.Palette(n).Colors()
	} else {
		p, err := brewerPalette(base, n)
		if err != nil {
			return nil, err
		}
		colors = p.Colors()
	}

	out := make([]color.Color, len(colors))
	copy(out, colors)
	if reversed {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return colorList(out), nil
}

// brewerPalette returns the largest variant of a scheme up to n colours.
func brewerPalette(name string, n int) (palette.Palette, error) {
	for k := n; k >= 3; k-- {
		if p, err := brewer.GetPalette(brewer.TypeAny, name, k); err == nil {
			return p, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownPalette, "%q", name)
}

type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }

// seriesColors returns n distinct colours for lines and bars.
func seriesColors(n int) []color.Color {
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", 12)
	if err != nil {
		panic(err)
	}
	base := p.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}
