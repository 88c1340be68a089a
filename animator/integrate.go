package animator

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/field"
	"github.com/pthm-cable/vecfield/systems"
	"github.com/pthm-cable/vecfield/telemetry"
)

// widthSmoothing is the per-frame exponential rate toward the target width.
const widthSmoothing = 0.3

// frameInputs is the settings state captured once at the start of a Step.
type frameInputs struct {
	settings config.AnimationConfig
	pointer  *field.Point
	paused   bool
	resync   bool
	wave     bool
}

func (a *Animator) capture() frameInputs {
	a.mu.Lock()
	defer a.mu.Unlock()
	in := frameInputs{
		settings: a.settings.Clone(),
		paused:   a.paused,
		resync:   a.resync,
		wave:     a.wave,
	}
	if a.pointer != nil {
		p := *a.pointer
		in.pointer = &p
	}
	if !a.paused {
		a.resync = false
		a.wave = false
	}
	return in
}

// Step advances the animation to timestamp ts (ms). It reports whether a
// frame was computed; paused animators and non-increasing timestamps skip.
func (a *Animator) Step(ts float64) bool {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()

	in := a.capture()
	if in.paused || !systems.Finite(ts) {
		return false
	}
	if a.stepped && ts <= a.lastTS && !in.resync {
		return false
	}

	dt := 0.0
	if a.stepped && !in.resync {
		dt = (ts - a.lastTS) / 1000
	}
	a.lastTS = ts
	a.stepped = true

	s := &in.settings
	perf := a.perf
	if perf != nil {
		perf.Begin(s.Type)
		perf.Mark(telemetry.PhaseTimers)
	}

	if in.wave {
		a.timers.TriggerWave()
	}
	a.timers.Advance(ts, &s.Pulse)

	if perf != nil {
		perf.Mark(telemetry.PhaseVortices)
	}
	if s.Pinwheels.Count != a.pinCount {
		a.reseedVortices(s)
	}
	a.vortices.Drift(dt)
	a.pinBuf = a.vortices.Pinwheels(a.pinBuf)
	a.eddyBuf = a.vortices.Eddies(a.eddyBuf)

	prev := a.front.Load()
	cells := prev.Cells

	if perf != nil {
		perf.Mark(telemetry.PhaseTargets)
	}
	desc, _ := a.registry.Lookup(s.Type)
	if cap(a.results) < len(cells) {
		a.results = make([]field.Result, len(cells))
	}
	a.results = a.results[:len(cells)]

	pass := targetPass{
		fn:     desc.Fn,
		params: s,
		env: field.Env{
			Pinwheels:  a.pinBuf,
			Eddies:     a.eddyBuf,
			Noise:      a.noise,
			PulseStart: a.timers.PulseStart,
			WaveStart:  a.timers.WaveStart,
			Warn:       a.warn,
		},
		cells:   cells,
		pointer: in.pointer,
		ts:      ts,
		w:       a.width,
		h:       a.height,
		seed:    a.seed,
		frame:   prev.Seq,
		results: a.results,
	}
	if desc.NeedsNeighbors {
		pass.env.Cells = cells
		pass.env.Index = a.index
	}
	if a.width > 0 && a.height > 0 {
		pass.run(a.threshold, a.workers)
	} else {
		a.warn.Once("canvas.degenerate", "canvas extent is not positive, holding angles",
			"width", a.width, "height", a.height)
		for i := range cells {
			a.results[i] = field.Result{Angle: cells[i].CurrentAngle}
		}
	}

	if perf != nil {
		perf.Mark(telemetry.PhaseIntegrate)
	}
	next := make([]components.Cell, len(cells))
	copy(next, cells)
	a.integrate(next, a.results, s, dt)

	if perf != nil {
		perf.Mark(telemetry.PhasePublish)
	}
	a.front.Store(&Frame{Seq: prev.Seq + 1, Time: ts, Cells: next})

	if perf != nil {
		perf.End(len(next))
	}
	return true
}

// integrate eases every cell toward its target along the shortest arc and
// updates the render factors. Out-of-range easing or width parameters hold
// the affected value for the frame instead of poisoning the cell.
func (a *Animator) integrate(cells []components.Cell, results []field.Result, s *config.AnimationConfig, dt float64) {
	spring := s.EasingMode == "spring"
	var sp harmonica.Spring
	if spring {
		step := dt
		if !(step > 0) {
			step = a.frameDT
		}
		sp = harmonica.NewSpring(step, s.SpringFrequency, s.SpringDamping)
	}
	holdAngles := !spring && !validEasing(s.Easing)
	if holdAngles {
		a.warn.Once("easing.invalid", "easing outside (0,1], holding angles", "easing", s.Easing)
	}
	dw := &s.DynamicWidth
	widthOK := systems.Finite(dw.Intensity) && systems.Finite(dw.MinEffect)
	if dw.Enabled && !widthOK {
		a.warn.Once("dynamic_width.invalid", "dynamic width parameters are not finite, holding widths",
			"intensity", dw.Intensity, "min_effect", dw.MinEffect)
	}

	for i := range cells {
		c := &cells[i]
		res := results[i]
		current := c.CurrentAngle

		target := res.Angle
		if !systems.Finite(target) {
			a.warn.Once("target.nonfinite:"+s.Type, "field produced a non-finite angle, holding", "type", s.Type)
			target = current
		}
		if !systems.Finite(current) {
			// Recover a corrupted cell by snapping to its target.
			a.warn.Once("current.nonfinite", "cell angle is not finite, snapping to target", "cell", c.ID)
			current = 0
			if systems.Finite(target) {
				current = systems.Wrap360(target)
			}
			c.SpringVelocity = 0
		}

		next := current
		switch {
		case holdAngles:
		case spring:
			next, c.SpringVelocity = springStep(sp, current, c.SpringVelocity, target)
		default:
			next = EaseAngle(current, target, s.Easing)
		}
		if !systems.Finite(next) {
			next = current
		}
		c.CurrentAngle = next

		if !systems.Finite(c.WidthFactor) {
			c.WidthFactor = 1
		}
		switch {
		case !dw.Enabled:
			c.WidthFactor = 1
		case widthOK:
			velocity := math.Abs(systems.ShortestDelta(current, next))
			goal := 1 + math.Max(dw.MinEffect, velocity*dw.Intensity/2)
			if w := c.WidthFactor + (goal-c.WidthFactor)*widthSmoothing; systems.Finite(w) {
				c.WidthFactor = w
			}
		}
		c.LengthFactor = 1
		if res.LengthFactor > 0 && systems.Finite(res.LengthFactor) {
			c.LengthFactor = res.LengthFactor
		}

		c.PreviousAngle = current
	}
}

func validEasing(e float64) bool {
	return e > 0 && e <= 1
}

// EaseAngle moves current toward target by the easing fraction of the
// shortest signed difference and wraps the result to [0, 360). Easing
// outside (0,1] or a non-finite input returns current unchanged.
func EaseAngle(current, target, easing float64) float64 {
	if !validEasing(easing) || !systems.Finite(current) || !systems.Finite(target) {
		return current
	}
	diff := systems.NormalizeDelta(target - current)
	if diff == 0 {
		return current
	}
	return systems.Wrap360(current + diff*easing)
}

// springStep advances a critically or under-damped spring toward the target
// along the shortest arc.
func springStep(sp harmonica.Spring, current, velocity, target float64) (float64, float64) {
	goal := current + systems.NormalizeDelta(target-current)
	pos, vel := sp.Update(current, velocity, goal)
	if !systems.Finite(pos) || !systems.Finite(vel) {
		return current, 0
	}
	return systems.Wrap360(pos), vel
}
