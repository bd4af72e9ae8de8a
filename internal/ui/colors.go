package ui

import (
	"image/color"
	"math"
)

// heightStops maps a normalized height to an overlay tint, deep to high.
var heightStops = []struct {
	t   float64
	col color.RGBA
}{
	{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
	{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
	{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
	{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
	{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
}

func heightColor(t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(heightStops); i++ {
		curr := heightStops[i]
		if t <= curr.t {
			prev := heightStops[i-1]
			return lerpRGBA(prev.col, curr.col, (t-prev.t)/(curr.t-prev.t))
		}
	}
	return heightStops[len(heightStops)-1].col
}

// speedColor tints velocity arrows from slow to fast.
func speedColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(80 + 170*t)),
		G: uint8(math.Round(170 - 60*t)),
		B: uint8(math.Round(230 - 150*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

// fillHeightRGBA tints every cell by its height, normalized over the field.
func fillHeightRGBA(buf []byte, field []float64) {
	if len(field) == 0 {
		return
	}
	lo, hi := field[0], field[0]
	for _, v := range field {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i, v := range field {
		col := heightColor((v - lo) / span)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
