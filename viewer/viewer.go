// Package viewer is the interactive raylib window: it draws the published
// cell snapshot, forwards pointer and keyboard input to the animator and
// drives the scheduler from the display refresh.
package viewer

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vecfield/animator"
	"github.com/pthm-cable/vecfield/camera"
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/export"
	"github.com/pthm-cable/vecfield/field"
	"github.com/pthm-cable/vecfield/grid"
	"github.com/pthm-cable/vecfield/telemetry"
)

const controlsLegend = "[Space] pause  [Left/Right] type  [Click] wave  [Shift+Click] inspect  [Tab] panel  [Wheel/RMB] zoom/pan  [Home] reset view  [S] svg  [E] snapshot"

// Viewer owns the window and the UI panels.
type Viewer struct {
	cfg       *config.Config
	anim      *animator.Animator
	sched     *animator.Scheduler
	host      *animator.QueueHost
	registry  *field.Registry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	rng       *rand.Rand
	exportDir string

	cam       *camera.Camera
	hud       *HUD
	inspector *CellInspector
	controls  *ControlsPanel
	stats     telemetry.FieldStats

	screenWidth  float32
	screenHeight float32
}

// Options wires the viewer to the rest of the application.
type Options struct {
	Animator  *animator.Animator
	Scheduler *animator.Scheduler
	Host      *animator.QueueHost
	Registry  *field.Registry
	Perf      *telemetry.PerfCollector
	Output    *telemetry.OutputManager
	Rand      *rand.Rand
	ExportDir string
}

// New creates a viewer. The window is opened by Run.
func New(cfg *config.Config, opts Options) *Viewer {
	return &Viewer{
		cfg:          cfg,
		anim:         opts.Animator,
		sched:        opts.Scheduler,
		host:         opts.Host,
		registry:     opts.Registry,
		perf:         opts.Perf,
		collector:    telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		output:       opts.Output,
		rng:          opts.Rand,
		exportDir:    opts.ExportDir,
		cam:          camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height), float32(cfg.Screen.Width), float32(cfg.Screen.Height)),
		hud:          NewHUD(),
		inspector:    NewCellInspector(10, int32(cfg.Screen.Height)-230),
		controls:     NewControlsPanel(int32(cfg.Screen.Width)-270, 10, 260),
		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(v.screenWidth), int32(v.screenHeight), "vecfield")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.cfg.Screen.TargetFPS))

	v.rebuild()
	v.sched.OnFrame = v.onFrame
	v.sched.Start()
	defer v.sched.Stop()

	for !rl.WindowShouldClose() {
		v.handleInput()
		v.host.Flush(rl.GetTime() * 1000)
		if v.perf != nil {
			v.perf.RecordFrame()
		}
		v.draw()
	}
	return nil
}

// rebuild lays out a fresh grid for the current window size.
func (v *Viewer) rebuild() {
	layout := grid.Layout{Width: float64(v.screenWidth), Height: float64(v.screenHeight)}
	cells := grid.Build(layout, v.cfg.Grid, v.rng)
	v.sched.Rebuild(cells, layout.Width, layout.Height)
	v.cam.Resize(v.screenWidth, v.screenHeight, v.screenWidth, v.screenHeight)
}

func (v *Viewer) onFrame(ts float64, f *animator.Frame) {
	typ := v.anim.Settings().Type
	if fs, ok := v.collector.Observe(int64(f.Seq), ts, typ, f.Cells); ok {
		v.stats = fs
		if err := v.output.WriteFieldStats(fs); err != nil {
			slog.Error("field stats write failed", "error", err)
		}
	}
}

// handleInput processes keyboard and pointer input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		paused := v.sched.TogglePause()
		slog.Info("pause toggled", "paused", paused)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		v.cycleType(1)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		v.cycleType(-1)
	}
	if rl.IsKeyPressed(rl.KeyS) {
		if path, err := v.exportSVG(); err != nil {
			slog.Error("svg export failed", "error", err)
		} else {
			slog.Info("svg exported", "path", path)
		}
	}
	if rl.IsKeyPressed(rl.KeyE) {
		v.saveSnapshot()
	}

	mouse := rl.GetMousePosition()
	overPanel := v.controls.Contains(mouse.X, mouse.Y)
	if !overPanel {
		v.handleCameraInput(mouse)
	}
	if rl.IsCursorOnScreen() && !overPanel {
		wx, wy := v.cam.ScreenToWorld(mouse.X, mouse.Y)
		v.anim.SetPointer(&field.Point{X: float64(wx), Y: float64(wy)})
	} else {
		v.anim.SetPointer(nil)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			wx, wy := v.cam.ScreenToWorld(mouse.X, mouse.Y)
			if !v.inspector.Select(v.anim.Cells(), float64(wx), float64(wy), v.cfg.Grid.Spacing) {
				v.inspector.Deselect()
			}
		} else {
			v.anim.TriggerWave()
		}
	}
}

// handleCameraInput zooms toward the cursor with the wheel and pans while the
// right button is held.
func (v *Viewer) handleCameraInput(mouse rl.Vector2) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}
}

// handleResize rebuilds the grid when the window size changes.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth, v.screenHeight = w, h
	v.controls.SetPosition(int32(w)-270, 10)
	v.inspector.SetPosition(10, int32(h)-230)
	v.rebuild()
}

func (v *Viewer) cycleType(step int) {
	types := v.registry.Types()
	i := v.registry.Index(v.anim.Settings().Type)
	if i < 0 {
		i = 0
	}
	next := types[(i+step+len(types))%len(types)]
	v.anim.SetType(next)
	slog.Info("animation type", "type", next)
}

func (v *Viewer) draw() {
	bg := rl.Color{R: 14, G: 15, B: 20, A: 255}
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(bg)

	zoom := v.cam.Zoom
	size := float32(v.cfg.Grid.Spacing*v.cfg.Export.GlyphLength) * zoom
	stroke := float32(v.cfg.Export.StrokeWidth) * zoom
	reach := float32(v.cfg.Grid.Spacing)
	fg := rl.Color{R: 232, G: 232, B: 240, A: 255}
	cells := v.anim.Cells()
	for i := range cells {
		c := &cells[i]
		x, y := float32(c.BaseX), float32(c.BaseY)
		if !v.cam.IsVisible(x, y, reach) {
			continue
		}
		color := fg
		if v.cfg.Export.Colorize {
			color = glyphColor(c.CurrentAngle)
		}
		sx, sy := v.cam.WorldToScreen(x, y)
		drawGlyph(c, rl.Vector2{X: sx, Y: sy}, size, stroke, color)
	}
	index := v.anim.Index()
	v.inspector.Highlight(cells, index, v.cam.WorldToScreen, size*0.6)

	settings := v.anim.Settings()
	desc, _ := v.registry.Lookup(settings.Type)
	var perf telemetry.PerfStats
	if v.perf != nil {
		perf = v.perf.Stats()
	}
	v.hud.Draw(HUDData{
		Type:   desc.Type,
		Name:   desc.Name,
		Cells:  len(cells),
		Frame:  v.anim.Frame().Seq,
		FPS:    rl.GetFPS(),
		Paused: v.anim.Paused(),
		Stats:  v.stats,
		Perf:   perf,
	})
	if edit := v.controls.Draw(&settings); edit != nil {
		v.anim.UpdateSettings(edit)
	}
	v.inspector.Draw(cells, index)
	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)
}

func (v *Viewer) exportSVG() (string, error) {
	if err := os.MkdirAll(v.exportDir, 0755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	frame := v.anim.Frame()
	settings := v.anim.Settings()
	path := filepath.Join(v.exportDir, fmt.Sprintf("vecfield_%s_%d.svg", settings.Type, frame.Seq))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating svg: %w", err)
	}
	defer f.Close()

	w, h := v.anim.Extent()
	err = export.WriteSVG(f, export.Frame{
		Cells:    frame.Cells,
		Width:    w,
		Height:   h,
		Spacing:  v.cfg.Grid.Spacing,
		Settings: settings,
	}, v.cfg.Export)
	if err != nil {
		return "", err
	}
	return path, nil
}

func (v *Viewer) saveSnapshot() {
	frame := v.anim.Frame()
	w, h := v.anim.Extent()
	snap := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		Seed:     v.cfg.Grid.Seed,
		Width:    w,
		Height:   h,
		Frame:    int64(frame.Seq),
		TimeMS:   frame.Time,
		Settings: v.anim.Settings(),
		Cells:    frame.Cells,
	}
	dir := v.output.Dir()
	if dir == "" {
		dir = v.exportDir
	}
	path, err := telemetry.SaveSnapshot(snap, filepath.Join(dir, "snapshots"))
	if err != nil {
		slog.Error("snapshot failed", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path)
}
