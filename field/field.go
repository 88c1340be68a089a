// Package field implements the angle-field functions that map a cell's
// position, the frame timestamp and the animation parameters to a target
// orientation in degrees.
package field

import (
	"math"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/systems"
)

// Point is a pixel-space position such as the pointer.
type Point struct {
	X, Y float64
}

// Context is the per-cell input to a field function.
type Context struct {
	X, Y           float64 // Cell anchor
	Row, Col       int
	Index          int     // Position in Env.Cells
	Current        float64 // Current angle in degrees
	Layer          int
	ActivationTime float64 // ms after the wave start
	FlockID        int
	Time           float64 // Frame timestamp in ms
	Width, Height  float64 // Canvas extent
	Pointer        *Point  // nil when absent
}

// Random is the subset of *rand.Rand the jitter field needs.
type Random interface {
	Float64() float64
}

// Env carries frame-wide inputs shared by every cell of one pass.
// None of it may be mutated by a field function.
type Env struct {
	Cells     []components.Cell   // Front buffer snapshot (neighbor-aware types)
	Index     *systems.GridIndex  // May be stale; lookups then miss
	Pinwheels []systems.Center    // Drifting pinwheel centers
	Eddies    []systems.EddyState // Ocean eddies
	Noise     systems.NoiseSource
	Rand      Random

	PulseStart float64 // Absolute ms of the current pulse trigger
	WaveStart  float64 // Absolute ms of the expanding wave trigger

	Warn *Warner
}

// Result is a target angle plus an optional render hint.
type Result struct {
	Angle        float64
	LengthFactor float64 // 0 = no hint
}

// Func computes a target for one cell.
type Func func(c *Context, p *config.AnimationConfig, env *Env) Result

// Seconds returns the speed-scaled time base in seconds.
func Seconds(c *Context, p *config.AnimationConfig) float64 {
	return c.Time / 1000 * p.Speed
}

// degenerate reports whether the canvas extent cannot be used as a divisor.
func degenerate(c *Context) bool {
	return !(c.Width > 0) || !(c.Height > 0) || math.IsInf(c.Width, 0) || math.IsInf(c.Height, 0) ||
		!systems.Finite(c.X) || !systems.Finite(c.Y)
}

func keep(c *Context) Result {
	return Result{Angle: c.Current}
}

func angle(a float64) Result {
	return Result{Angle: a}
}

// SmoothWaves is the shared default field. t is in seconds.
func SmoothWaves(x, y, w, h, t float64) float64 {
	return (math.Sin(x/w*10+t) + math.Cos(y/h*10+t)) * 180
}

// fallback evaluates SmoothWaves for c with the time base scaled by scale.
func fallback(c *Context, p *config.AnimationConfig, scale float64) Result {
	return angle(SmoothWaves(c.X, c.Y, c.Width, c.Height, Seconds(c, p)*scale))
}

func smoothWaves(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	return fallback(c, p, 1)
}

// tangent returns the angle perpendicular to the direction from (cx, cy).
func tangent(x, y, cx, cy float64) float64 {
	return systems.AngleTo(cx, cy, x, y) + 90
}
