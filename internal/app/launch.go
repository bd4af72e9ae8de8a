package app

import (
	"fmt"
	"log"

	"sea-block/internal/core"
)

type logSetter interface {
	SetLogger(l *log.Logger)
}

// Open builds the configured scene from the registry and routes its
// diagnostics to logger. Scenes seed themselves from the resolved values.
func Open(cfg *Config, scenes core.Registry[core.Factory], logger *log.Logger) (core.Sim, error) {
	factory, err := scenes.Get(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("%w (have %v)", err, scenes.Names())
	}
	values, err := cfg.Values()
	if err != nil {
		return nil, err
	}
	sim, err := factory(values)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", cfg.Scene, err)
	}
	if s, ok := sim.(logSetter); ok {
		s.SetLogger(logger)
	}
	if logger != nil {
		logger.Printf("opened %s %dx%d", sim.Name(), sim.Size().W, sim.Size().H)
	}
	return sim, nil
}
