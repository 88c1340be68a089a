package grid

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
)

func testConfig() config.GridConfig {
	return config.GridConfig{
		Spacing:      40,
		Shape:        "arrow",
		NumFlocks:    3,
		LayerDelayMS: 100,
		InitialAngle: "zero",
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		l          Layout
		spacing    float64
		rows, cols int
	}{
		{Layout{640, 480}, 40, 12, 16},
		{Layout{650, 479}, 40, 11, 16},
		{Layout{640, 480}, 0, 0, 0},
		{Layout{0, 480}, 40, 0, 0},
		{Layout{30, 30}, 40, 0, 0},
	}
	for _, tt := range tests {
		r, c := Dimensions(tt.l, tt.spacing)
		if r != tt.rows || c != tt.cols {
			t.Errorf("Dimensions(%v, %f): expected %dx%d, got %dx%d", tt.l, tt.spacing, tt.rows, tt.cols, r, c)
		}
	}
}

func TestBuild_LayoutAndIDs(t *testing.T) {
	cells := Build(Layout{640, 480}, testConfig(), rand.New(rand.NewSource(1)))
	if len(cells) != 12*16 {
		t.Fatalf("expected 192 cells, got %d", len(cells))
	}

	seen := make(map[string]bool)
	for _, c := range cells {
		if c.ID != components.CellKey(c.Row, c.Col) {
			t.Errorf("cell id %q does not match (%d,%d)", c.ID, c.Row, c.Col)
		}
		if seen[c.ID] {
			t.Errorf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true

		if c.BaseX < 0 || c.BaseX > 640 || c.BaseY < 0 || c.BaseY > 480 {
			t.Errorf("cell %s outside canvas at (%f, %f)", c.ID, c.BaseX, c.BaseY)
		}
		if c.Shape != components.ShapeArrow {
			t.Errorf("expected arrow shape, got %s", c.Shape)
		}
		if c.LengthFactor != 1 || c.WidthFactor != 1 {
			t.Errorf("cell %s: factors should start at 1", c.ID)
		}
		if c.CurrentAngle != 0 {
			t.Errorf("cell %s: expected zero angle, got %f", c.ID, c.CurrentAngle)
		}
		if c.FlockID < 0 || c.FlockID >= 3 {
			t.Errorf("cell %s: flock id %d out of range", c.ID, c.FlockID)
		}
	}

	// Grid is centered: equal margins on both sides
	first, last := cells[0], cells[len(cells)-1]
	if first.BaseX != 640-last.BaseX || first.BaseY != 480-last.BaseY {
		t.Errorf("grid not centered: first (%f,%f) last (%f,%f)", first.BaseX, first.BaseY, last.BaseX, last.BaseY)
	}
}

func TestBuild_ChebyshevLayers(t *testing.T) {
	cfg := testConfig()
	cells := Build(Layout{200, 200}, cfg, rand.New(rand.NewSource(2)))
	// 5x5 grid, center cell (2,2)
	if len(cells) != 25 {
		t.Fatalf("expected 25 cells, got %d", len(cells))
	}

	want := map[string]int{
		"2-2": 0,
		"1-1": 1, "1-3": 1, "3-2": 1,
		"0-0": 2, "0-4": 2, "4-1": 2, "2-4": 2,
	}
	for _, c := range cells {
		layer, ok := want[c.ID]
		if !ok {
			continue
		}
		if c.Layer != layer {
			t.Errorf("cell %s: expected layer %d, got %d", c.ID, layer, c.Layer)
		}
		if c.ActivationTime != float64(layer)*cfg.LayerDelayMS {
			t.Errorf("cell %s: expected activation %f, got %f", c.ID, float64(layer)*cfg.LayerDelayMS, c.ActivationTime)
		}
	}
	if Rings(5, 5) != 3 {
		t.Errorf("expected 3 rings, got %d", Rings(5, 5))
	}
}

func TestBuild_RandomAngles(t *testing.T) {
	cfg := testConfig()
	cfg.InitialAngle = "random"
	cells := Build(Layout{400, 400}, cfg, rand.New(rand.NewSource(3)))

	nonZero := 0
	for _, c := range cells {
		if c.CurrentAngle < 0 || c.CurrentAngle >= 360 {
			t.Fatalf("random angle out of range: %f", c.CurrentAngle)
		}
		if c.CurrentAngle != c.PreviousAngle {
			t.Errorf("cell %s: previous angle should start equal to current", c.ID)
		}
		if c.CurrentAngle != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("expected random angles")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	cfg := testConfig()
	cfg.InitialAngle = "random"
	a := Build(Layout{300, 300}, cfg, rand.New(rand.NewSource(4)))
	b := Build(Layout{300, 300}, cfg, rand.New(rand.NewSource(4)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different cell %s", a[i].ID)
		}
	}
}

func TestBuild_Degenerate(t *testing.T) {
	if cells := Build(Layout{0, 0}, testConfig(), rand.New(rand.NewSource(5))); cells != nil {
		t.Errorf("expected no cells for empty canvas, got %d", len(cells))
	}
	cfg := testConfig()
	cfg.NumFlocks = 0
	cells := Build(Layout{120, 120}, cfg, rand.New(rand.NewSource(6)))
	for _, c := range cells {
		if c.FlockID != 0 {
			t.Fatalf("expected single flock, got %d", c.FlockID)
		}
	}
}

func TestRings(t *testing.T) {
	tests := []struct{ rows, cols, want int }{
		{0, 5, 0},
		{1, 1, 1},
		{4, 4, 3},
		{12, 16, 9},
	}
	for _, tt := range tests {
		if got := Rings(tt.rows, tt.cols); got != tt.want {
			t.Errorf("Rings(%d, %d): expected %d, got %d", tt.rows, tt.cols, tt.want, got)
		}
	}
}

func TestNearest(t *testing.T) {
	cells := Build(Layout{200, 200}, testConfig(), rand.New(rand.NewSource(7)))

	// Anchors sit at 20, 60, 100, ...
	i, ok := Nearest(cells, 62, 97, 40)
	if !ok {
		t.Fatal("expected a cell near (62, 97)")
	}
	if cells[i].ID != "2-1" {
		t.Errorf("expected cell 2-1, got %s", cells[i].ID)
	}

	if _, ok := Nearest(cells, 1000, 1000, 40); ok {
		t.Error("expected no cell far outside the grid")
	}
	if _, ok := Nearest(nil, 0, 0, 40); ok {
		t.Error("expected no cell in an empty grid")
	}
}
