package field

import (
	"testing"

	"github.com/pthm-cable/vecfield/config"
)

func init() {
	config.MustInit("")
}

func TestRegistry_Types(t *testing.T) {
	r := NewRegistry()

	want := []string{
		"smoothWaves", "seaWaves", "rippleEffect", "expandingWave", "waterfall", "followPath",
		"pinwheels", "centerPulse", "vortex", "oceanCurrents", "geometricPattern", "tangenteClasica",
		"lissajous", "mouseInteraction", "perlinFlow", "jitter",
		"cellularAutomata", "flocking",
	}
	got := r.Types()
	if len(got) != len(want) {
		t.Fatalf("expected %d types, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("type %d: expected %s, got %s", i, want[i], got[i])
		}
		if r.Index(want[i]) != i {
			t.Errorf("Index(%s): expected %d, got %d", want[i], i, r.Index(want[i]))
		}
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()

	d, ok := r.Lookup("spirograph")
	if ok {
		t.Error("expected ok=false for unknown type")
	}
	if d.Type != DefaultType {
		t.Errorf("expected fallback to %s, got %s", DefaultType, d.Type)
	}
	if r.Index("spirograph") != -1 {
		t.Error("expected -1 index for unknown type")
	}
}

func TestRegistry_NeedsNeighbors(t *testing.T) {
	r := NewRegistry()
	for _, d := range r.All() {
		want := d.Type == "cellularAutomata" || d.Type == "flocking"
		if d.NeedsNeighbors != want {
			t.Errorf("%s: NeedsNeighbors = %v", d.Type, d.NeedsNeighbors)
		}
		if d.Fn == nil {
			t.Errorf("%s: nil function", d.Type)
		}
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	n := len(r.All())

	r.Register(Descriptor{Type: "smoothWaves", Name: "Flat", Fn: func(c *Context, p *config.AnimationConfig, env *Env) Result {
		return Result{Angle: 42}
	}})
	if len(r.All()) != n {
		t.Errorf("replacing grew the registry to %d", len(r.All()))
	}
	d, _ := r.Lookup("smoothWaves")
	if got := d.Fn(&Context{}, nil, nil); got.Angle != 42 {
		t.Errorf("expected replacement function, got angle %f", got.Angle)
	}
	if r.Index("smoothWaves") != 0 {
		t.Error("replacement changed registration order")
	}
}
