package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vecfield/telemetry"
)

// HUDData holds everything the status overlay shows.
type HUDData struct {
	Type   string
	Name   string
	Cells  int
	Frame  uint64
	FPS    int32
	Paused bool
	Stats  telemetry.FieldStats
	Perf   telemetry.PerfStats
}

// HUD renders the status overlay in the top-left corner.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	p := openPanel(5, 5, 260, 156)
	p.title(data.Name, 20)
	p.rowf("Frame", "%d  (%d fps)", data.Frame, data.FPS)
	p.rowf("Cells", "%d", data.Cells)
	p.dial("Mean angle", data.Stats.MeanAngle)
	p.meter("Coherence", data.Stats.Coherence)
	p.rowf("Step", "%dus  p95 %dus", data.Perf.AvgStep.Microseconds(), data.Perf.P95Step.Microseconds())

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, p.x, p.cursor+2, 16, rl.Yellow)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
