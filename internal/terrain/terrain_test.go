package terrain

import (
	"errors"
	"slices"
	"testing"
)

func TestBuiltinNames(t *testing.T) {
	want := []string{"flat", "islands", "ocean", "shore"}
	if got := Builtin().Names(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestUnknownSource(t *testing.T) {
	_, err := New(Builtin(), "lava", DefaultParams())
	if !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
}

func TestOceanAndFlat(t *testing.T) {
	p := DefaultParams()
	ocean, err := New(Builtin(), "ocean", p)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := New(Builtin(), "flat", p)
	if err != nil {
		t.Fatal(err)
	}
	for _, xz := range [][2]int{{0, 0}, {-50, 7}, {1000, -1000}} {
		if got := ocean.TileAt(xz[0], xz[1]); !got.Water || got.Height != p.SeaLevel {
			t.Fatalf("ocean at %v: %+v", xz, got)
		}
		if got := flat.TileAt(xz[0], xz[1]); got.Water || got.Height != p.LandHeight {
			t.Fatalf("flat at %v: %+v", xz, got)
		}
	}
}

func TestShoreRamps(t *testing.T) {
	p := DefaultParams()
	src := Shore(p)
	if !src.TileAt(-1, 3).Water {
		t.Fatal("negative x should be water")
	}
	prev := p.SeaLevel
	for x := 0; x < 20; x++ {
		tile := src.TileAt(x, 0)
		if tile.Water || tile.Height < prev {
			t.Fatalf("x=%d: expected rising land, got %+v", x, tile)
		}
		prev = tile.Height
	}
	if prev != p.LandHeight {
		t.Fatalf("ramp should top out at %g, got %g", p.LandHeight, prev)
	}
}

func TestIslandsDeterministicAndMixed(t *testing.T) {
	p := DefaultParams()
	a, b := Islands(p), Islands(p)
	water, land := 0, 0
	for z := -60; z < 60; z++ {
		for x := -60; x < 60; x++ {
			ta, tb := a.TileAt(x, z), b.TileAt(x, z)
			if ta != tb {
				t.Fatalf("(%d,%d) differs between identical sources", x, z)
			}
			if ta.Water {
				water++
				continue
			}
			land++
			if ta.Height <= p.SeaLevel || ta.Height > p.LandHeight {
				t.Fatalf("(%d,%d) land height %g out of range", x, z, ta.Height)
			}
		}
	}
	if water == 0 || land == 0 {
		t.Fatalf("expected both water and land, got %d/%d", water, land)
	}

	p.Seed = 99
	other := Islands(p)
	same := true
	for z := -60; z < 60 && same; z++ {
		for x := -60; x < 60; x++ {
			if other.TileAt(x, z) != a.TileAt(x, z) {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("a different seed should move the islands")
	}
}
