package chart

import (
	"image/color"
	"math"
)

// magmaAnchors samples matplotlib's magma map at nine evenly spaced points.
var magmaAnchors = []color.RGBA{
	{0x00, 0x00, 0x04, 0xff},
	{0x1d, 0x11, 0x47, 0xff},
	{0x51, 0x12, 0x7c, 0xff},
	{0x82, 0x26, 0x81, 0xff},
	{0xb6, 0x36, 0x79, 0xff},
	{0xe6, 0x51, 0x64, 0xff},
	{0xfb, 0x88, 0x61, 0xff},
	{0xfe, 0xc2, 0x87, 0xff},
	{0xfc, 0xfd, 0xbf, 0xff},
}

// generated palettes are computed for any number of colours.
var generated = map[string]func(n int) []color.Color{
	"magma": func(n int) []color.Color { return interpolate(magmaAnchors, n) },
	"pink":  pink,
}

// interpolate spreads n colours evenly over the anchors, blending linearly
// between neighbours.
func interpolate(anchors []color.RGBA, n int) []color.Color {
	out := make([]color.Color, n)
	last := len(anchors) - 1
	for i := range out {
		pos := 0.0
		if n > 1 {
			pos = float64(i) / float64(n-1) * float64(last)
		}
		k := int(pos)
		if k >= last {
			out[i] = anchors[last]
			continue
		}
		f := pos - float64(k)
		a, b := anchors[k], anchors[k+1]
		out[i] = color.RGBA{
			R: lerp(a.R, b.R, f),
			G: lerp(a.G, b.G, f),
			B: lerp(a.B, b.B, f),
			A: 0xff,
		}
	}
	return out
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

// pink is matplotlib's sepia map: the square root of two parts grey and one
// part hot.
func pink(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		x := 0.0
		if n > 1 {
			x = float64(i) / float64(n-1)
		}
		hr := clamp01(0.0416 + (1-0.0416)*x/0.365079)
		hg := clamp01((x - 0.365079) / (0.746032 - 0.365079))
		hb := clamp01((x - 0.746032) / (1 - 0.746032))
		out[i] = color.RGBA{
			R: channel(math.Sqrt((2*x + hr) / 3)),
			G: channel(math.Sqrt((2*x + hg) / 3)),
			B: channel(math.Sqrt((2*x + hb) / 3)),
			A: 0xff,
		}
	}
	return out
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

func channel(v float64) uint8 { return uint8(math.Round(255 * clamp01(v))) }
