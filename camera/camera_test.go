package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected camera at (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.MinZoom != 1.0 {
		t.Errorf("expected min zoom 1.0 for a canvas matching the viewport, got %f", cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	sx, sy := cam.WorldToScreen(640, 360)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2.5)
	cam.Pan(100, -40)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.SetZoom(0.25)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestPanStaysInsideCanvas(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// At 1:1 the whole canvas is visible and panning is a no-op
	cam.Pan(500, 500)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected pan ignored at full view, got (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("expected view pinned to top-left corner, got (%f, %f)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1280) || !near(maxY, 720) {
		t.Errorf("expected view pinned to bottom-right corner, got (%f, %f)", maxX, maxY)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	sx, sy := float32(500), float32(300)
	wx, wy := cam.ScreenToWorld(sx, sy)
	cam.ZoomAt(sx, sy, 2)

	gx, gy := cam.ScreenToWorld(sx, sy)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("cursor point moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(4)

	if !cam.IsVisible(cam.X, cam.Y, 0) {
		t.Error("camera center should be visible")
	}
	if cam.IsVisible(0, 0, 5) {
		t.Error("far corner should be culled when zoomed in")
	}
}

func TestResize(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(3)

	cam.Resize(800, 600, 800, 600)
	if cam.MinZoom != 1 {
		t.Errorf("expected min zoom 1 after resize, got %f", cam.MinZoom)
	}
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX < -0.01 || minY < -0.01 || maxX > 800.01 || maxY > 600.01 {
		t.Errorf("view outside canvas after resize: (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}

	cam.Reset()
	if cam.X != 400 || cam.Y != 300 || cam.Zoom != 1 {
		t.Errorf("expected reset to (400, 300) zoom 1, got (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
