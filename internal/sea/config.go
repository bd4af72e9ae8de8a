package sea

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"sea-block/internal/core"
	"sea-block/internal/terrain"
	"sea-block/pkg/spheres"
	"sea-block/pkg/tiles"
)

// ErrUnknownParam is returned for configuration keys the engine does not
// understand.
var ErrUnknownParam = errors.New("sea: unknown parameter")

// Config controls the sea engine.
type Config struct {
	Tiling  string
	Terrain string
	Width   int
	Depth   int
	Seed    int64

	// TileSize converts tile units to world units.
	TileSize float64
	// WaveAmplitude scales oscillator position into water height.
	WaveAmplitude float64

	StepDuration time.Duration
	MaxSubSteps  int

	SphereCount int
	SpawnHeight float64
	// Follow pans the window after the first sphere.
	Follow          bool
	FollowFrequency float64
	FollowDamping   float64

	Land    terrain.Params
	Tiles   tiles.Params
	Spheres spheres.Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	sp := spheres.DefaultParams()
	return Config{
		Tiling:          "square",
		Terrain:         "islands",
		Width:           32,
		Depth:           32,
		Seed:            1337,
		TileSize:        2 * sp.TileHalfExtent,
		WaveAmplitude:   1,
		StepDuration:    10 * time.Millisecond,
		MaxSubSteps:     20,
		SphereCount:     8,
		SpawnHeight:     20,
		Follow:          true,
		FollowFrequency: 4,
		FollowDamping:   1,
		Land:            terrain.DefaultParams(),
		Tiles:           tiles.DefaultParams(),
		Spheres:         sp,
	}
}

// structural keys need a rebuild when they change; the rest are live.
var structural = map[string]bool{
	"tiling": true, "terrain": true, "width": true, "depth": true,
	"tile_size": true, "seed": true, "sea_level": true, "land_height": true,
	"island_scale": true, "sphere_count": true, "spawn_height": true,
}

type field struct {
	key, label, group string
	typ               core.ParamType
	get               func(c *Config) string
	set               func(c *Config, v string) error
	control           *core.ParameterControl
}

func floatField(group, key, label string, ptr func(c *Config) *float64, lo, hi, step float64) field {
	return field{
		key: key, label: label, group: group, typ: core.ParamTypeFloat,
		get: func(c *Config) string { return strconv.FormatFloat(*ptr(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			if parsed < lo || parsed > hi {
				return fmt.Errorf("%g outside [%g, %g]", parsed, lo, hi)
			}
			*ptr(c) = parsed
			return nil
		},
		control: &core.ParameterControl{
			Key: key, Label: label, Type: core.ParamTypeFloat, Step: step,
			Min: lo, Max: hi, HasMin: true, HasMax: true,
		},
	}
}

func intField(group, key, label string, ptr func(c *Config) *int, lo, hi int) field {
	return field{
		key: key, label: label, group: group, typ: core.ParamTypeInt,
		get: func(c *Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *Config, v string) error {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			if parsed < lo || parsed > hi {
				return fmt.Errorf("%d outside [%d, %d]", parsed, lo, hi)
			}
			*ptr(c) = parsed
			return nil
		},
		control: &core.ParameterControl{
			Key: key, Label: label, Type: core.ParamTypeInt, Step: 1,
			Min: float64(lo), Max: float64(hi), HasMin: true, HasMax: true,
		},
	}
}

func stringField(group, key, label string, ptr func(c *Config) *string) field {
	return field{
		key: key, label: label, group: group, typ: core.ParamTypeString,
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			if v == "" {
				return errors.New("empty value")
			}
			*ptr(c) = v
			return nil
		},
	}
}

// fields lists every configuration key in display order.
var fields = []field{
	stringField("World", "tiling", "Tiling", func(c *Config) *string { return &c.Tiling }),
	stringField("World", "terrain", "Terrain", func(c *Config) *string { return &c.Terrain }),
	intField("World", "width", "Width", func(c *Config) *int { return &c.Width }, 2, 1024),
	intField("World", "depth", "Depth", func(c *Config) *int { return &c.Depth }, 2, 1024),
	{
		key: "seed", label: "Seed", group: "World", typ: core.ParamTypeInt,
		get: func(c *Config) string { return strconv.FormatInt(c.Seed, 10) },
		set: func(c *Config, v string) error {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			c.Seed = parsed
			return nil
		},
	},
	floatField("World", "tile_size", "Tile size", func(c *Config) *float64 { return &c.TileSize }, 0.1, 100, 0.5),
	floatField("World", "wave_amplitude", "Wave amplitude", func(c *Config) *float64 { return &c.WaveAmplitude }, 0, 20, 0.1),
	{
		key: "step_ms", label: "Step (ms)", group: "World", typ: core.ParamTypeFloat,
		get: func(c *Config) string {
			return strconv.FormatFloat(float64(c.StepDuration)/float64(time.Millisecond), 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			if parsed <= 0 {
				return fmt.Errorf("%g must be positive", parsed)
			}
			c.StepDuration = time.Duration(parsed * float64(time.Millisecond))
			return nil
		},
	},
	intField("World", "max_substeps", "Max sub-steps", func(c *Config) *int { return &c.MaxSubSteps }, 1, 1000),

	floatField("Terrain", "sea_level", "Sea level", func(c *Config) *float64 { return &c.Land.SeaLevel }, 0, 100, 0.1),
	floatField("Terrain", "land_height", "Land height", func(c *Config) *float64 { return &c.Land.LandHeight }, 0, 100, 0.5),
	floatField("Terrain", "island_scale", "Island spacing", func(c *Config) *float64 { return &c.Land.Scale }, 1, 1000, 1),

	floatField("Water", "spring", "Spring", func(c *Config) *float64 { return &c.Tiles.Spring }, 0, 1, 0.005),
	floatField("Water", "damping", "Damping", func(c *Config) *float64 { return &c.Tiles.Damping }, 0, 1, 0.001),
	floatField("Water", "centering", "Centering", func(c *Config) *float64 { return &c.Tiles.Centering }, 0, 1, 0.0005),
	floatField("Water", "friction", "Friction", func(c *Config) *float64 { return &c.Tiles.Friction }, 0, 1, 0.001),
	floatField("Water", "reset_range", "Reset range", func(c *Config) *float64 { return &c.Tiles.ResetRange }, 0, 10, 0.005),

	intField("Spheres", "sphere_count", "Sphere count", func(c *Config) *int { return &c.SphereCount }, 0, 10000),
	floatField("Spheres", "spawn_height", "Spawn height", func(c *Config) *float64 { return &c.SpawnHeight }, 0, 1000, 1),
	floatField("Spheres", "gravity", "Gravity", func(c *Config) *float64 { return &c.Spheres.Gravity }, 0, 1, 0.001),
	floatField("Spheres", "air_resistance", "Air resistance", func(c *Config) *float64 { return &c.Spheres.AirResistance }, 0, 1, 0.001),
	floatField("Spheres", "restitution", "Restitution", func(c *Config) *float64 { return &c.Spheres.Restitution }, 0, 1, 0.05),
	floatField("Spheres", "buoyancy", "Buoyancy", func(c *Config) *float64 { return &c.Spheres.Buoyancy }, 0, 1, 0.001),
	floatField("Spheres", "pressure_force", "Pressure force", func(c *Config) *float64 { return &c.Spheres.PressureForce }, 0, 1, 0.0005),
	floatField("Spheres", "sphere_radius", "Sphere radius", func(c *Config) *float64 { return &c.Spheres.SphereRadius }, 0.01, 100, 0.1),
	floatField("Spheres", "cohesion", "Cohesion", func(c *Config) *float64 { return &c.Spheres.Cohesion }, 0, 1, 0.05),
	floatField("Spheres", "stiffness", "Stiffness", func(c *Config) *float64 { return &c.Spheres.Stiffness }, 0, 1, 0.001),
	floatField("Spheres", "sphere_damping", "Sphere damping", func(c *Config) *float64 { return &c.Spheres.Damping }, 0, 1, 0.001),
	floatField("Spheres", "time_step", "Time step", func(c *Config) *float64 { return &c.Spheres.TimeStep }, 0.01, 10, 0.1),
	intField("Spheres", "kernel_radius", "Kernel radius", func(c *Config) *int { return &c.Spheres.KernelRadius }, 0, 16),

	{
		key: "follow", label: "Follow", group: "Camera", typ: core.ParamTypeBool,
		get: func(c *Config) string { return strconv.FormatBool(c.Follow) },
		set: func(c *Config, v string) error {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			c.Follow = parsed
			return nil
		},
	},
	floatField("Camera", "follow_frequency", "Follow frequency", func(c *Config) *float64 { return &c.FollowFrequency }, 0.1, 100, 0.5),
	floatField("Camera", "follow_damping", "Follow damping", func(c *Config) *float64 { return &c.FollowDamping }, 0, 10, 0.1),
}

func lookupField(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys and unparsable values are errors.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if err := c.Apply(cfg); err != nil {
		return DefaultConfig(), err
	}
	return c, nil
}

// Apply overlays key/value pairs onto c. Keys are applied in sorted order so
// error reporting is deterministic.
func (c *Config) Apply(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, ok := lookupField(k)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParam, k)
		}
		if err := f.set(c, values[k]); err != nil {
			return fmt.Errorf("sea: %s=%q: %w", k, values[k], err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.Width%2 != 0 || c.Depth%2 != 0 {
		return fmt.Errorf("sea: width and depth must be even, got %dx%d", c.Width, c.Depth)
	}
	return nil
}

// Map renders the config back into key/value form.
func (c Config) Map() map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.key] = f.get(&c)
	}
	return out
}

// sphereParams returns the sphere tunables with the box size tied to the
// tile size.
func (c Config) sphereParams() spheres.Params {
	p := c.Spheres
	p.TileHalfExtent = c.TileSize / 2
	return p
}
