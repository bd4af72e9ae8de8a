// Package snapshot persists engine checkpoints as a zstd stream holding a
// JSON header line followed by a gob body.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"sea-block/pkg/grid"
)

// Version is the checkpoint format written by this package.
const Version = 1

// ErrVersion is returned for checkpoints written by an unknown format.
var ErrVersion = errors.New("snapshot: unsupported version")

// Header is readable without decoding the body.
type Header struct {
	Version int    `json:"version"`
	Name    string `json:"name"`
	Step    uint64 `json:"step"`
	Seed    int64  `json:"seed"`
	Tiling  string `json:"tiling"`
	Terrain string `json:"terrain"`
	Width   int    `json:"width"`
	Depth   int    `json:"depth"`
}

// Sphere is the stored state of one sphere.
type Sphere struct {
	Position      [3]float64
	Velocity      [3]float64
	Ghost         bool
	Fish          bool
	ScalePressure float64
}

// Checkpoint is a full engine state.
type Checkpoint struct {
	Header Header
	// Config holds the flat tunables that produced the run.
	Config map[string]string
	// Coords is the logical coordinate of every flat id.
	Coords  []grid.Coord
	Pos     []float64
	Vel     []float64
	Spheres []Sphere
	Tracked int
}

// Write stores a checkpoint at path, creating parent directories.
func Write(path string, cp Checkpoint) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	cp.Header.Version = Version
	hb, err := json.Marshal(cp.Header)
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&cp); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadHeader decodes only the header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("snapshot header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("snapshot header: %w", err)
	}
	if h.Version != Version {
		return h, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return h, nil
}

// Read loads a full checkpoint.
func Read(path string) (Checkpoint, error) {
	var cp Checkpoint
	f, err := os.Open(path)
	if err != nil {
		return cp, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return cp, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	if _, err := br.ReadBytes('\n'); err != nil {
		return cp, fmt.Errorf("snapshot header: %w", err)
	}
	if err := gob.NewDecoder(br).Decode(&cp); err != nil {
		return cp, fmt.Errorf("gob decode: %w", err)
	}
	if cp.Header.Version != Version {
		return cp, fmt.Errorf("%w: %d", ErrVersion, cp.Header.Version)
	}
	return cp, nil
}
