package tiling

import (
	"errors"
	"slices"
	"testing"

	"sea-block/pkg/core"
)

func allTilings() []Tiling {
	return []Tiling{Square{}, Triangle{}, Hex{}, Octagon{}}
}

func TestRoundTripIdempotent(t *testing.T) {
	edgePoints := [][2]float64{
		{0, 0}, {0.5, 0.5}, {-0.5, -0.5}, {0.25, 0.433}, {-0.25, 0.433},
		{0.866, 0.5}, {-0.866, -0.5}, {0.707, 0}, {0.293, 0.293},
		{-0.293, 0.707}, {1e-9, -1e-9}, {17.5, -3.5}, {-100.25, 64.75},
	}
	rng := core.NewRNG(7)
	points := append([][2]float64(nil), edgePoints...)
	for i := 0; i < 2000; i++ {
		points = append(points, [2]float64{rng.Range(-200, 200), rng.Range(-200, 200)})
	}

	for _, tl := range allTilings() {
		for _, p := range points {
			ix, iz := tl.PositionToIndex(p[0], p[1])
			cx, cz := tl.IndexToPosition(ix, iz)
			jx, jz := tl.PositionToIndex(cx, cz)
			if jx != ix || jz != iz {
				t.Fatalf("%s: (%f,%f) -> (%d,%d) -> center (%f,%f) -> (%d,%d)",
					tl.Name(), p[0], p[1], ix, iz, cx, cz, jx, jz)
			}
		}
	}
}

func TestCenterMapsToOwnIndex(t *testing.T) {
	for _, tl := range allTilings() {
		for iz := -7; iz <= 7; iz++ {
			for ix := -7; ix <= 7; ix++ {
				x, z := tl.IndexToPosition(ix, iz)
				gx, gz := tl.PositionToIndex(x, z)
				if gx != ix || gz != iz {
					t.Fatalf("%s: center of (%d,%d) resolved to (%d,%d)", tl.Name(), ix, iz, gx, gz)
				}
			}
		}
	}
}

func TestNeighborRelationsAreSymmetric(t *testing.T) {
	for _, tl := range allTilings() {
		for iz := -4; iz <= 4; iz++ {
			for ix := -4; ix <= 4; ix++ {
				for _, o := range tl.Adjacent(ix, iz) {
					back := Offset{-o.X, -o.Z}
					if !slices.Contains(tl.Adjacent(ix+o.X, iz+o.Z), back) {
						t.Fatalf("%s: (%d,%d) lists adjacent %v but not vice versa", tl.Name(), ix, iz, o)
					}
					if slices.Contains(tl.Diagonal(ix, iz), o) {
						t.Fatalf("%s: (%d,%d) lists %v as both adjacent and diagonal", tl.Name(), ix, iz, o)
					}
				}
				for _, o := range tl.Diagonal(ix, iz) {
					back := Offset{-o.X, -o.Z}
					if !slices.Contains(tl.Diagonal(ix+o.X, iz+o.Z), back) {
						t.Fatalf("%s: (%d,%d) lists diagonal %v but not vice versa", tl.Name(), ix, iz, o)
					}
				}
			}
		}
	}
}

// Walking from a tile center to an adjacent tile center must leave the first
// tile straight into the second one. A wrong parity table points at a tile
// that is not actually across the shared edge.
func TestAdjacentTilesShareAnEdgeGeometrically(t *testing.T) {
	const samples = 200
	for _, tl := range allTilings() {
		for iz := -3; iz <= 3; iz++ {
			for ix := -3; ix <= 3; ix++ {
				ax, az := tl.IndexToPosition(ix, iz)
				for _, o := range tl.Adjacent(ix, iz) {
					bx, bz := tl.IndexToPosition(ix+o.X, iz+o.Z)
					left := false
					for s := 1; s < samples; s++ {
						f := float64(s) / samples
						gx, gz := tl.PositionToIndex(ax+(bx-ax)*f, az+(bz-az)*f)
						switch {
						case gx == ix && gz == iz:
							if left {
								t.Fatalf("%s: segment (%d,%d)->%v re-entered the start tile", tl.Name(), ix, iz, o)
							}
						case gx == ix+o.X && gz == iz+o.Z:
							left = true
						default:
							t.Fatalf("%s: segment (%d,%d)->%v crossed foreign tile (%d,%d) at f=%.3f",
								tl.Name(), ix, iz, o, gx, gz, f)
						}
					}
					if !left {
						t.Fatalf("%s: segment (%d,%d)->%v never reached the neighbor", tl.Name(), ix, iz, o)
					}
				}
			}
		}
	}
}

func TestNeighborCounts(t *testing.T) {
	cases := []struct {
		tiling       Tiling
		ix, iz       int
		adj, diag    int
		describeCase string
	}{
		{Square{}, 0, 0, 4, 4, "square"},
		{Triangle{}, 0, 0, 3, 9, "upward triangle"},
		{Triangle{}, 1, 0, 3, 9, "downward triangle"},
		{Hex{}, 0, 0, 6, 0, "even hex column"},
		{Hex{}, 1, 0, 6, 0, "odd hex column"},
		{Hex{}, -1, 3, 6, 0, "negative odd hex column"},
		{Octagon{}, 0, 0, 8, 0, "octagon"},
		{Octagon{}, 1, 0, 4, 0, "square between octagons"},
	}
	for _, c := range cases {
		if got := len(c.tiling.Adjacent(c.ix, c.iz)); got != c.adj {
			t.Fatalf("%s: expected %d adjacent, got %d", c.describeCase, c.adj, got)
		}
		if got := len(c.tiling.Diagonal(c.ix, c.iz)); got != c.diag {
			t.Fatalf("%s: expected %d diagonal, got %d", c.describeCase, c.diag, got)
		}
	}
}

func TestHexParityTablesDiffer(t *testing.T) {
	even := Hex{}.Adjacent(0, 0)
	odd := Hex{}.Adjacent(1, 0)
	if slices.Equal(even, odd) {
		t.Fatal("even and odd hex columns must use different neighbor tables")
	}
	// Column -1 is odd; Go's & keeps parity correct for negative indices.
	if !slices.Equal(Hex{}.Adjacent(-1, 0), odd) {
		t.Fatal("negative odd column must use the odd table")
	}
}

func TestSetRejectsDuplicatesAndUnknownNames(t *testing.T) {
	if _, err := NewSet(Square{}, Hex{}, Square{}); !errors.Is(err, ErrDuplicateTiling) {
		t.Fatalf("expected ErrDuplicateTiling, got %v", err)
	}

	set := Builtin()
	if got := set.Names(); !slices.Equal(got, []string{"hex", "octagon", "square", "triangle"}) {
		t.Fatalf("unexpected builtin names %v", got)
	}
	if _, err := set.Get("penrose"); !errors.Is(err, ErrUnknownTiling) {
		t.Fatalf("expected ErrUnknownTiling, got %v", err)
	}
	for _, name := range set.Names() {
		tl, err := set.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if tl.Name() != name {
			t.Fatalf("tiling %q reports name %q", name, tl.Name())
		}
	}
}
