package sea

import (
	"strconv"

	"sea-block/internal/core"
)

// Parameters reports every tunable grouped for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	var groups []core.ParameterGroup
	index := map[string]int{}
	for _, f := range fields {
		i, ok := index[f.group]
		if !ok {
			i = len(groups)
			index[f.group] = i
			groups = append(groups, core.ParameterGroup{Name: f.group})
		}
		groups[i].Params = append(groups[i].Params, core.Parameter{
			Key:   f.key,
			Label: f.label,
			Type:  f.typ,
			Value: f.get(&e.cfg),
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables that can change while running.
func (e *Engine) ParameterControls() []core.ParameterControl {
	var out []core.ParameterControl
	for _, f := range fields {
		if f.control == nil || structural[f.key] {
			continue
		}
		out = append(out, *f.control)
	}
	return out
}

// SetFloatParameter updates a live float tunable, clamping to its bounds.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	f, ok := lookupField(key)
	if !ok || f.control == nil || structural[key] || f.typ != core.ParamTypeFloat {
		return false
	}
	value = f.control.Clamp(value)
	if err := f.set(&e.cfg, strconv.FormatFloat(value, 'f', -1, 64)); err != nil {
		return false
	}
	e.applyLive()
	return true
}

// SetIntParameter updates a live integer tunable, clamping to its bounds.
func (e *Engine) SetIntParameter(key string, value int) bool {
	f, ok := lookupField(key)
	if !ok || f.control == nil || structural[key] || f.typ != core.ParamTypeInt {
		return false
	}
	value = int(f.control.Clamp(float64(value)))
	if err := f.set(&e.cfg, strconv.Itoa(value)); err != nil {
		return false
	}
	e.applyLive()
	return true
}

// applyLive pushes the live tunables into the subsystems.
func (e *Engine) applyLive() {
	e.water.SetParams(e.cfg.Tiles)
	e.balls.SetParams(e.cfg.sphereParams())
	e.retime()
}
