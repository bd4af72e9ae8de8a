package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"sea-block/pkg/grid"
)

func sampleCheckpoint() Checkpoint {
	return Checkpoint{
		Header: Header{Name: "sea", Step: 1234, Seed: 9, Tiling: "hex", Terrain: "islands", Width: 2, Depth: 2},
		Config: map[string]string{"gravity": "0.01"},
		Coords: []grid.Coord{{X: 4, Z: 0}, {X: 1, Z: 0}, {X: 4, Z: 1}, {X: 1, Z: 1}},
		Pos:    []float64{0.1, -0.2, 0.3, 0},
		Vel:    []float64{0, 0.01, -0.01, 0.5},
		Spheres: []Sphere{
			{Position: [3]float64{1, 2, 3}, Velocity: [3]float64{0, -1, 0}, ScalePressure: 1},
			{Position: [3]float64{0, -10000, 0}, Ghost: true},
		},
		Tracked: 1,
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.snap")
	in := sampleCheckpoint()
	if err := Write(path, in); err != nil {
		t.Fatal(err)
	}

	h, err := ReadHeader(path)
	if err != nil {
		t.Fatal(err)
	}
	if h.Version != Version || h.Step != 1234 || h.Tiling != "hex" {
		t.Fatalf("unexpected header %+v", h)
	}

	out, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Header != h {
		t.Fatalf("body header %+v differs from header line %+v", out.Header, h)
	}
	if !slices.Equal(out.Coords, in.Coords) || !slices.Equal(out.Pos, in.Pos) || !slices.Equal(out.Vel, in.Vel) {
		t.Fatal("tile state did not survive the round trip")
	}
	if !slices.Equal(out.Spheres, in.Spheres) || out.Tracked != 1 || out.Config["gravity"] != "0.01" {
		t.Fatalf("sphere state did not survive the round trip: %+v", out)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snap")
	if err := os.WriteFile(path, []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("expected an error for a corrupt file")
	}
	if _, err := Read(filepath.Join(t.TempDir(), "missing.snap")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}
