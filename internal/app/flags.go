package app

import (
	"flag"

	"sea-block/internal/config"
)

// Config represents the command-line parameters shared by the viewers.
type Config struct {
	Scene      string
	Scale      int
	TPS        int
	Seed       int64
	HUDWidth   int
	Tuning     string
	Checkpoint string
	Sets       config.KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scene: "sea", Scale: 16, TPS: 60, Seed: 1337, HUDWidth: 300, Checkpoint: "sea.snap"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per tile")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.StringVar(&c.Tuning, "config", c.Tuning, "YAML tuning file")
	fs.StringVar(&c.Checkpoint, "checkpoint", c.Checkpoint, "checkpoint file for save and load keys")
	fs.Var(&c.Sets, "set", "parameter override in key=value form (repeatable)")
}

// Values resolves the tuning file and overrides into scene configuration.
// The seed flag is applied unless a seed override was given.
func (c *Config) Values() (map[string]string, error) {
	values, err := config.Resolve(c.Tuning, c.Sets)
	if err != nil {
		return nil, err
	}
	if _, ok := values["seed"]; !ok {
		values["seed"] = formatSeed(c.Seed)
	}
	return values, nil
}
