package sea

import (
	"sea-block/internal/core"
	"sea-block/internal/terrain"
	"sea-block/pkg/tiling"
)

// DropScene is an engine that re-drops a single sphere on flat ground on
// every reset.
type DropScene struct {
	*Engine
}

// Name identifies the scene.
func (d DropScene) Name() string { return "drop" }

// Reset rebuilds the flat world and drops the sphere again.
func (d DropScene) Reset(seed int64) {
	d.Engine.Reset(seed)
	d.Track(d.drop())
}

// NewDropScene builds a drop scene from cfg.
func NewDropScene(cfg Config, tilings tiling.Set, sources core.Registry[terrain.Factory]) (DropScene, error) {
	e, err := New(dropConfig(cfg), tilings, sources)
	if err != nil {
		return DropScene{}, err
	}
	d := DropScene{Engine: e}
	d.Track(d.drop())
	return d, nil
}

// Scenes returns the scene factories the viewers can launch by name.
func Scenes(tilings tiling.Set, sources core.Registry[terrain.Factory]) (core.Registry[core.Factory], error) {
	return core.NewRegistry("scene",
		core.Entry[core.Factory]{Name: "sea", Value: func(values map[string]string) (core.Sim, error) {
			cfg, err := FromMap(values)
			if err != nil {
				return nil, err
			}
			e, err := New(cfg, tilings, sources)
			if err != nil {
				return nil, err
			}
			return e, nil
		}},
		core.Entry[core.Factory]{Name: "drop", Value: func(values map[string]string) (core.Sim, error) {
			cfg, err := FromMap(values)
			if err != nil {
				return nil, err
			}
			d, err := NewDropScene(cfg, tilings, sources)
			if err != nil {
				return nil, err
			}
			return d, nil
		}},
	)
}
