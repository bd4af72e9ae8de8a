package render

import (
	"image/color"
	"slices"
	"testing"
)

type colored struct{ pal []color.RGBA }

func (c colored) Palette() []color.RGBA { return c.pal }

func TestFillPaletteRGBA(t *testing.T) {
	pal := []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 10, G: 20, B: 30, A: 40}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{1, 0, 9}, pal)
	want := []byte{10, 20, 30, 40, 1, 2, 3, 4, 10, 20, 30, 40}
	if !slices.Equal(buf, want) {
		t.Fatalf("pixels = %v, want %v", buf, want)
	}

	fillPaletteRGBA(buf, []uint8{1, 1, 1}, nil)
	if !slices.Equal(buf, make([]byte, 12)) {
		t.Fatalf("empty palette should clear, got %v", buf)
	}
}

func TestPaletteOf(t *testing.T) {
	if got := PaletteOf(struct{}{}); !slices.Equal(got, Monochrome) {
		t.Fatal("expected monochrome fallback")
	}
	if got := PaletteOf(colored{}); !slices.Equal(got, Monochrome) {
		t.Fatal("an empty palette should fall back to monochrome")
	}
	pal := []color.RGBA{{R: 9, A: 255}}
	if got := PaletteOf(colored{pal}); !slices.Equal(got, pal) {
		t.Fatalf("palette = %v", got)
	}
}
