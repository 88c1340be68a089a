// Package animator owns the cell state and advances it one frame at a time:
// timers, vortex drift, target computation, easing and snapshot publishing.
package animator

import (
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/field"
	"github.com/pthm-cable/vecfield/systems"
	"github.com/pthm-cable/vecfield/telemetry"
)

// Frame is an immutable published snapshot of the grid.
type Frame struct {
	Seq   uint64            // Completed frame count
	Time  float64           // Timestamp (ms) the frame was computed for
	Cells []components.Cell // Never modified after publishing
}

// Options configures an Animator. Zero values select defaults.
type Options struct {
	Registry          *field.Registry
	Noise             systems.NoiseSource
	Seed              int64 // Jitter and vortex seeding
	ParallelThreshold int
	Workers           int
	FrameDT           float64 // Seconds; spring step when no elapsed time is known
	Warner            *field.Warner
	Perf              *telemetry.PerfCollector
}

// Animator is the temporal integrator. Step must only be called from one
// goroutine at a time (the Scheduler guarantees this); settings, pointer and
// pause setters may be called from any goroutine.
type Animator struct {
	mu       sync.Mutex // guards settings, pointer, paused, resync, wave
	settings config.AnimationConfig
	pointer  *field.Point
	paused   bool
	resync   bool
	wave     bool // restart the expanding wave at the next Step

	stepMu  sync.Mutex // one pass in flight
	front   atomic.Pointer[Frame]
	index   *systems.GridIndex
	width   float64
	height  float64
	lastTS  float64
	stepped bool

	registry  *field.Registry
	noise     systems.NoiseSource
	warn      *field.Warner
	perf      *telemetry.PerfCollector
	seed      int64
	threshold int
	workers   int
	frameDT   float64

	vortices  *systems.VortexWorld
	vortexRNG *rand.Rand
	pinCount  int
	timers    Timers

	results []field.Result
	pinBuf  []systems.Center
	eddyBuf []systems.EddyState
}

// New creates an Animator with the given settings and no cells.
func New(settings config.AnimationConfig, opts Options) *Animator {
	if opts.Registry == nil {
		opts.Registry = field.NewRegistry()
	}
	if opts.Noise == nil {
		opts.Noise = systems.NewPerlinNoise(0)
	}
	if opts.Warner == nil {
		opts.Warner = field.NewWarner(nil)
	}
	if opts.FrameDT <= 0 {
		opts.FrameDT = 1.0 / 60
	}

	a := &Animator{
		settings:  settings.Clone(),
		registry:  opts.Registry,
		noise:     opts.Noise,
		warn:      opts.Warner,
		perf:      opts.Perf,
		seed:      opts.Seed,
		threshold: opts.ParallelThreshold,
		workers:   opts.Workers,
		frameDT:   opts.FrameDT,
		vortices:  systems.NewVortexWorld(),
		vortexRNG: rand.New(rand.NewSource(opts.Seed)),
	}
	a.front.Store(&Frame{})
	a.checkType(a.settings.Type)
	return a
}

// SetGrid replaces the whole cell batch and rebuilds the spatial index.
// Cell angles are taken as given; the grid builder decides their reset value.
func (a *Animator) SetGrid(cells []components.Cell, width, height float64) {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()

	owned := make([]components.Cell, len(cells))
	copy(owned, cells)

	a.index = systems.NewGridIndex(owned)
	a.width, a.height = width, height

	settings := a.Settings()
	a.reseedVortices(&settings)
	a.timers.TriggerWave()

	prev := a.front.Load()
	a.front.Store(&Frame{Seq: prev.Seq, Time: prev.Time, Cells: owned})

	slog.Info("grid rebuilt", "cells", len(owned), "rows", a.index.Rows(), "cols", a.index.Cols(),
		"width", width, "height", height)
}

func (a *Animator) reseedVortices(s *config.AnimationConfig) {
	a.vortices.Reset(systems.Bounds{Width: a.width, Height: a.height}, s.Pinwheels, s.Ocean.Eddies, a.vortexRNG)
	a.pinCount = s.Pinwheels.Count
}

// Cells returns the last published snapshot. It must not be modified.
func (a *Animator) Cells() []components.Cell {
	return a.front.Load().Cells
}

// Frame returns the last published frame.
func (a *Animator) Frame() *Frame {
	return a.front.Load()
}

// Index returns the current spatial index.
func (a *Animator) Index() *systems.GridIndex {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()
	return a.index
}

// Extent returns the canvas size the grid was built for.
func (a *Animator) Extent() (width, height float64) {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()
	return a.width, a.height
}

// Settings returns a copy of the live settings.
func (a *Animator) Settings() config.AnimationConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings.Clone()
}

// UpdateSettings applies fn to the live settings.
func (a *Animator) UpdateSettings(fn func(*config.AnimationConfig)) {
	a.mu.Lock()
	prev := a.settings.Type
	fn(&a.settings)
	typ := a.settings.Type
	if typ != prev {
		a.wave = true
	}
	a.mu.Unlock()
	a.checkType(typ)
}

// SetType switches the active field function. Selecting a new type restarts
// the expanding wave so it always plays from the center.
func (a *Animator) SetType(typ string) {
	a.UpdateSettings(func(s *config.AnimationConfig) { s.Type = typ })
}

func (a *Animator) checkType(typ string) {
	if _, ok := a.registry.Lookup(typ); !ok {
		a.warn.Once("type:"+typ, "unknown animation type, using smoothWaves", "type", typ)
	}
}

// SetPointer updates the pointer position; nil means no pointer.
func (a *Animator) SetPointer(p *field.Point) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p == nil {
		a.pointer = nil
		return
	}
	cp := *p
	a.pointer = &cp
}

// Pause stops integration. Frames stepped while paused are ignored.
func (a *Animator) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = true
}

// Resume restarts integration from the next timestamp, so the pause does not
// show up as one large elapsed interval.
func (a *Animator) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.paused {
		a.paused = false
		a.resync = true
	}
}

// Paused reports whether integration is paused.
func (a *Animator) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

// TriggerWave restarts the expanding wave at the next frame.
func (a *Animator) TriggerWave() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.wave = true
}

// Timers returns a copy of the frame timers.
func (a *Animator) Timers() Timers {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()
	return a.timers
}

// Pinwheels returns a snapshot of the pinwheel centers.
func (a *Animator) Pinwheels() []systems.Center {
	a.stepMu.Lock()
	defer a.stepMu.Unlock()
	return a.vortices.Pinwheels(nil)
}
