// Package render turns display cells into RGBA pixels.
package render

import "image/color"

// Monochrome is used for sims that do not supply their own palette.
var Monochrome = []color.RGBA{
	{A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// Paletted is implemented by sims that color their own cells.
type Paletted interface {
	Palette() []color.RGBA
}

// PaletteOf returns the sim's palette or Monochrome.
func PaletteOf(sim any) []color.RGBA {
	if p, ok := sim.(Paletted); ok {
		if pal := p.Palette(); len(pal) > 0 {
			return pal
		}
	}
	return Monochrome
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry. An empty palette
// clears the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
