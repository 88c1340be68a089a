package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vecfield/config"
)

// Slider describes one tunable parameter of the animation settings.
type Slider struct {
	Label    string
	Min, Max float32
	Format   string
	Get      func(a *config.AnimationConfig) float64
	Set      func(a *config.AnimationConfig, v float64)
}

// globalSliders apply to every animation type.
var globalSliders = []Slider{
	{Label: "Speed", Min: 0, Max: 4, Format: "%.2f",
		Get: func(a *config.AnimationConfig) float64 { return a.Speed },
		Set: func(a *config.AnimationConfig, v float64) { a.Speed = v }},
	{Label: "Easing", Min: 0.01, Max: 1, Format: "%.2f",
		Get: func(a *config.AnimationConfig) float64 { return a.Easing },
		Set: func(a *config.AnimationConfig, v float64) { a.Easing = v }},
}

// typeSliders holds the parameters shown for each animation type.
var typeSliders = map[string][]Slider{
	"seaWaves": {
		{Label: "Amplitude", Min: 0, Max: 180, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.SeaWaves.Amplitude },
			Set: func(a *config.AnimationConfig, v float64) { a.SeaWaves.Amplitude = v }},
		{Label: "Frequency", Min: 0.1, Max: 8, Format: "%.1f",
			Get: func(a *config.AnimationConfig) float64 { return a.SeaWaves.Frequency },
			Set: func(a *config.AnimationConfig, v float64) { a.SeaWaves.Frequency = v }},
	},
	"pinwheels": {
		{Label: "Count", Min: 0, Max: 12, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return float64(a.Pinwheels.Count) },
			Set: func(a *config.AnimationConfig, v float64) { a.Pinwheels.Count = int(v) }},
		{Label: "Rotation", Min: -360, Max: 360, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Pinwheels.RotationSpeed },
			Set: func(a *config.AnimationConfig, v float64) { a.Pinwheels.RotationSpeed = v }},
	},
	"centerPulse": {
		{Label: "Interval ms", Min: 200, Max: 5000, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Pulse.IntervalMS },
			Set: func(a *config.AnimationConfig, v float64) { a.Pulse.IntervalMS = v }},
		{Label: "Duration ms", Min: 50, Max: 3000, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Pulse.DurationMS },
			Set: func(a *config.AnimationConfig, v float64) { a.Pulse.DurationMS = v }},
	},
	"rippleEffect": {
		{Label: "Scale", Min: 0.001, Max: 0.2, Format: "%.3f",
			Get: func(a *config.AnimationConfig) float64 { return a.Ripple.Scale },
			Set: func(a *config.AnimationConfig, v float64) { a.Ripple.Scale = v }},
		{Label: "Max angle", Min: 0, Max: 180, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Ripple.MaxAngle },
			Set: func(a *config.AnimationConfig, v float64) { a.Ripple.MaxAngle = v }},
	},
	"expandingWave": {
		{Label: "Deg/s", Min: 0, Max: 720, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.ExpandingWave.DegreesPerSecond },
			Set: func(a *config.AnimationConfig, v float64) { a.ExpandingWave.DegreesPerSecond = v }},
	},
	"vortex": {
		{Label: "Inward", Min: 0, Max: 1, Format: "%.2f",
			Get: func(a *config.AnimationConfig) float64 { return a.Vortex.InwardFactor },
			Set: func(a *config.AnimationConfig, v float64) { a.Vortex.InwardFactor = v }},
	},
	"jitter": {
		{Label: "Intensity", Min: 0, Max: 90, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Jitter.Intensity },
			Set: func(a *config.AnimationConfig, v float64) { a.Jitter.Intensity = v }},
	},
	"followPath": {
		{Label: "Threshold", Min: 5, Max: 200, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.FollowPath.Threshold },
			Set: func(a *config.AnimationConfig, v float64) { a.FollowPath.Threshold = v }},
	},
	"cellularAutomata": {
		{Label: "Blend", Min: 0, Max: 1, Format: "%.2f",
			Get: func(a *config.AnimationConfig) float64 { return a.Cellular.Blend },
			Set: func(a *config.AnimationConfig, v float64) { a.Cellular.Blend = v }},
	},
	"flocking": {
		{Label: "Radius", Min: 10, Max: 300, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Flocking.NeighborhoodRadius },
			Set: func(a *config.AnimationConfig, v float64) { a.Flocking.NeighborhoodRadius = v }},
		{Label: "Separation", Min: 0, Max: 5, Format: "%.2f",
			Get: func(a *config.AnimationConfig) float64 { return a.Flocking.Separation },
			Set: func(a *config.AnimationConfig, v float64) { a.Flocking.Separation = v }},
	},
	"lissajous": {
		{Label: "A", Min: 1, Max: 8, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Lissajous.A },
			Set: func(a *config.AnimationConfig, v float64) { a.Lissajous.A = float64(int(v)) }},
		{Label: "B", Min: 1, Max: 8, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Lissajous.B },
			Set: func(a *config.AnimationConfig, v float64) { a.Lissajous.B = float64(int(v)) }},
	},
	"perlinFlow": {
		{Label: "Scale", Min: 0.0005, Max: 0.02, Format: "%.4f",
			Get: func(a *config.AnimationConfig) float64 { return a.Perlin.Scale },
			Set: func(a *config.AnimationConfig, v float64) { a.Perlin.Scale = v }},
	},
	"geometricPattern": {
		{Label: "Rotation", Min: -180, Max: 180, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Geometric.RotationSpeed },
			Set: func(a *config.AnimationConfig, v float64) { a.Geometric.RotationSpeed = v }},
	},
	"waterfall": {
		{Label: "Turbulence", Min: 0, Max: 90, Format: "%.0f",
			Get: func(a *config.AnimationConfig) float64 { return a.Waterfall.Turbulence },
			Set: func(a *config.AnimationConfig, v float64) { a.Waterfall.Turbulence = v }},
		{Label: "Stretch", Min: 0, Max: 2, Format: "%.2f",
			Get: func(a *config.AnimationConfig) float64 { return a.Waterfall.Stretch },
			Set: func(a *config.AnimationConfig, v float64) { a.Waterfall.Stretch = v }},
	},
	"mouseInteraction": {
		{Label: "Radius %", Min: 0.05, Max: 1, Format: "%.2f",
			Get: func(a *config.AnimationConfig) float64 { return a.Mouse.RadiusPct },
			Set: func(a *config.AnimationConfig, v float64) { a.Mouse.RadiusPct = v }},
	},
}

func init() {
	// Both tangential variants share one parameter.
	typeSliders["tangenteClasica"] = typeSliders["geometricPattern"]
}

// ControlsPanel renders the right-side parameter panel.
type ControlsPanel struct {
	x, y    int32
	width   int32
	visible bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		x:       x,
		y:       y,
		width:   width,
		visible: true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	return px >= float32(c.x) && px <= float32(c.x+c.width) && py >= float32(c.y)
}

// Draw renders the sliders for settings and returns the edits to apply,
// or nil when nothing changed.
func (c *ControlsPanel) Draw(settings *config.AnimationConfig) func(*config.AnimationConfig) {
	if !c.visible {
		return nil
	}
	sliders := append(append([]Slider{}, globalSliders...), typeSliders[settings.Type]...)

	rowHeight := int32(38)
	height := padding*2 + 24 + int32(len(sliders))*rowHeight
	openPanel(c.x, c.y, c.width, height)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	rl.DrawText("Parameters", int32(x), int32(y), 16, rl.White)
	y += 24

	var edits []func(*config.AnimationConfig)
	barWidth := float32(c.width - padding*2 - 60)
	for _, s := range sliders {
		cur := float32(s.Get(settings))
		rl.DrawText(s.Label, int32(x), int32(y), fontSize, labelColor)
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: y + 14, Width: barWidth, Height: 16},
			"", "",
			cur, s.Min, s.Max,
		)
		rl.DrawText(fmt.Sprintf(s.Format, s.Get(settings)), int32(x+barWidth+8), int32(y+15), fontSize, valueColor)
		if next != cur {
			set, v := s.Set, float64(next)
			edits = append(edits, func(a *config.AnimationConfig) { set(a, v) })
		}
		y += float32(rowHeight)
	}

	if len(edits) == 0 {
		return nil
	}
	return func(a *config.AnimationConfig) {
		for _, e := range edits {
			e(a)
		}
	}
}
