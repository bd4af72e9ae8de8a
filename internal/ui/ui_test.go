package ui

import (
	"math"
	"testing"

	"sea-block/internal/core"
)

func TestNudgeClampsToBounds(t *testing.T) {
	ctrl := core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true}
	if v, ok := nudge(ctrl, 0.5, 1); !ok || math.Abs(v-0.55) > 1e-12 {
		t.Fatalf("nudge up = %g, %v", v, ok)
	}
	if v, ok := nudge(ctrl, 0.98, 1); !ok || v != 1 {
		t.Fatalf("nudge past max = %g, %v", v, ok)
	}
	if _, ok := nudge(ctrl, 1, 1); ok {
		t.Fatal("nudge at max should report no change")
	}
	if _, ok := nudge(ctrl, 0.5, 0); ok {
		t.Fatal("zero direction should report no change")
	}
}

func TestNudgeRoundsIntegers(t *testing.T) {
	ctrl := core.ParameterControl{Type: core.ParamTypeInt, Step: 0.2, Min: 0, Max: 4, HasMin: true, HasMax: true}
	if v, ok := nudge(ctrl, 2, -1); !ok || v != 1 {
		t.Fatalf("integer step should be at least one, got %g", v)
	}
	if _, ok := nudge(ctrl, 0, -1); ok {
		t.Fatal("nudge below min should report no change")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		ctrl core.ParameterControl
		v    float64
		want string
	}{
		{core.ParameterControl{Type: core.ParamTypeInt, Step: 1}, 3, "3"},
		{core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.0005}, 0.002, "0.0020"},
		{core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.005}, 0.2, "0.200"},
		{core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.05}, 0.5, "0.50"},
		{core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.5}, 4, "4.0"},
	}
	for _, tc := range cases {
		if got := formatValue(tc.ctrl, tc.v); got != tc.want {
			t.Fatalf("formatValue(step %g, %g) = %q, want %q", tc.ctrl.Step, tc.v, got, tc.want)
		}
	}
}

func TestPanelTitle(t *testing.T) {
	if got := panelTitle("sea"); got != "Sea Controls" {
		t.Fatalf("title = %q", got)
	}
	if got := panelTitle(""); got != "Controls" {
		t.Fatalf("title = %q", got)
	}
}

func TestHeightColors(t *testing.T) {
	if got := heightColor(-1); got != heightStops[0].col {
		t.Fatalf("below range = %v", got)
	}
	if got := heightColor(2); got != heightStops[len(heightStops)-1].col {
		t.Fatalf("above range = %v", got)
	}
	buf := make([]byte, 8)
	fillHeightRGBA(buf, []float64{1, 1})
	if buf[0] != heightStops[0].col.R || buf[4] != heightStops[0].col.R {
		t.Fatalf("flat field should use the lowest stop, got %v", buf)
	}
	fillHeightRGBA(buf, []float64{0, 10})
	top := heightStops[len(heightStops)-1].col
	if buf[4] != top.R || buf[7] != top.A {
		t.Fatalf("highest cell = %v, want %v", buf[4:], top)
	}
}
