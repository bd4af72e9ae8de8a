package grid

import (
	"errors"
	"testing"
)

func TestNewRejectsOddOrEmptySizes(t *testing.T) {
	for _, size := range [][2]int{{0, 4}, {4, 0}, {3, 4}, {4, 5}, {-2, 2}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, ErrBadSize) {
			t.Fatalf("New(%d,%d): expected ErrBadSize, got %v", size[0], size[1], err)
		}
	}
}

func TestInitialMappingIsRowMajor(t *testing.T) {
	g, err := New(4, 6)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 24 {
		t.Fatalf("expected 24 tiles, got %d", g.Len())
	}
	for z := 0; z < 6; z++ {
		for x := 0; x < 4; x++ {
			id, ok := g.XZToIndex(x, z)
			if !ok || id != z*4+x {
				t.Fatalf("(%d,%d): expected id %d, got %d ok=%v", x, z, z*4+x, id, ok)
			}
		}
	}
	if _, ok := g.XZToIndex(4, 0); ok {
		t.Fatal("coordinate outside the window must not resolve")
	}
	if _, ok := g.XZToIndex(-1, 0); ok {
		t.Fatal("negative coordinate outside the window must not resolve")
	}
	if err := g.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateMappingErrors(t *testing.T) {
	g, err := New(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateMapping(5, 5, 6, 6); !errors.Is(err, ErrNotMapped) {
		t.Fatalf("expected ErrNotMapped, got %v", err)
	}
	if err := g.UpdateMapping(0, 0, 1, 1); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	// Failed updates must not disturb the mapping.
	if err := g.Check(); err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateMapping(0, 0, 2, 0); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.XZToIndex(0, 0); ok {
		t.Fatal("old coordinate still resolves after move")
	}
	if id, ok := g.XZToIndex(2, 0); !ok || id != 0 {
		t.Fatalf("expected tile 0 at (2,0), got %d ok=%v", id, ok)
	}
	if c := g.Coord(0); c != (Coord{X: 2, Z: 0}) {
		t.Fatalf("unexpected coordinate %v for tile 0", c)
	}
}

func TestColumnMovesKeepBijection(t *testing.T) {
	g, err := New(6, 4)
	if err != nil {
		t.Fatal(err)
	}
	originX := 0
	for step := 0; step < 15; step++ {
		for z := 0; z < g.Depth(); z++ {
			if err := g.UpdateMapping(originX, z, originX+g.Width(), z); err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
		}
		originX++
		if err := g.Check(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if o := g.Origin(); o.X != originX || o.Z != 0 {
			t.Fatalf("step %d: unexpected origin %v", step, o)
		}
	}
}

func TestTilesOrderIsStable(t *testing.T) {
	g, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateMapping(0, 0, 4, 0); err != nil {
		t.Fatal(err)
	}
	first := g.Tiles()
	second := g.Tiles()
	for i := range first {
		if first[i] != second[i] || first[i].ID != i {
			t.Fatalf("tile %d: order changed between passes: %v vs %v", i, first[i], second[i])
		}
	}
	count := 0
	g.Each(func(id int, c Coord) {
		if first[count].ID != id || first[count].Coord != c {
			t.Fatalf("Each visited %d %v, Tiles has %v", id, c, first[count])
		}
		count++
	})
	if count != g.Len() {
		t.Fatalf("Each visited %d tiles, expected %d", count, g.Len())
	}
}

func TestRestore(t *testing.T) {
	g, err := New(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	coords := []Coord{{10, 10}, {11, 10}, {10, 11}, {11, 11}}
	if err := g.Restore(coords); err != nil {
		t.Fatal(err)
	}
	if id, ok := g.XZToIndex(11, 10); !ok || id != 1 {
		t.Fatalf("expected tile 1 at (11,10), got %d ok=%v", id, ok)
	}
	if err := g.Check(); err != nil {
		t.Fatal(err)
	}

	dup := []Coord{{0, 0}, {0, 0}, {1, 0}, {1, 1}}
	if err := g.Restore(dup); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied for duplicate coordinates, got %v", err)
	}
	if err := g.Check(); err != nil {
		t.Fatalf("failed restore corrupted mapping: %v", err)
	}
	if err := g.Restore(coords[:3]); err == nil {
		t.Fatal("expected error for short coordinate list")
	}
}

func TestWrap(t *testing.T) {
	g, err := New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct{ x, z, wx, wz int }{
		{0, 0, 0, 0}, {4, 2, 0, 0}, {-1, -1, 3, 1}, {9, 5, 1, 1},
	}
	for _, c := range cases {
		if x, z := g.Wrap(c.x, c.z); x != c.wx || z != c.wz {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), expected (%d,%d)", c.x, c.z, x, z, c.wx, c.wz)
		}
	}
}
