package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/config"
)

// Bounds is the canvas extent the vortex centers live in.
type Bounds struct {
	Width, Height float64
}

// Center is a read-only snapshot of one pinwheel center.
type Center struct {
	X, Y   float64
	VX, VY float64
}

// EddyState is a read-only snapshot of one ocean eddy.
type EddyState struct {
	X, Y      float64
	Radius    float64
	Strength  float64
	Clockwise bool
}

// VortexWorld holds the moving pinwheel centers and ocean eddies as ECS
// entities. It is owned by the integrator and mutated once per frame.
type VortexWorld struct {
	world  *ecs.World
	bounds Bounds

	pinMapper  *ecs.Map3[components.Position, components.Velocity, components.Pinwheel]
	eddyMapper *ecs.Map3[components.Position, components.Velocity, components.Eddy]
	pinFilter  ecs.Filter3[components.Position, components.Velocity, components.Pinwheel]
	eddyFilter ecs.Filter3[components.Position, components.Velocity, components.Eddy]
	moving     ecs.Filter2[components.Position, components.Velocity]

	pinCount int
}

// NewVortexWorld creates an empty vortex world.
func NewVortexWorld() *VortexWorld {
	v := &VortexWorld{}
	v.init()
	return v
}

func (v *VortexWorld) init() {
	w := ecs.NewWorld()
	v.world = w
	v.pinMapper = ecs.NewMap3[components.Position, components.Velocity, components.Pinwheel](w)
	v.eddyMapper = ecs.NewMap3[components.Position, components.Velocity, components.Eddy](w)
	v.pinFilter = *ecs.NewFilter3[components.Position, components.Velocity, components.Pinwheel](w)
	v.eddyFilter = *ecs.NewFilter3[components.Position, components.Velocity, components.Eddy](w)
	v.moving = *ecs.NewFilter2[components.Position, components.Velocity](w)
	v.pinCount = 0
}

// Reset discards all entities and seeds pinwheels at random positions with
// random headings, and eddies from their canvas-relative configuration.
func (v *VortexWorld) Reset(bounds Bounds, pins config.PinwheelsConfig, eddies []config.EddyConfig, rng *rand.Rand) {
	v.init()
	v.bounds = bounds

	for i := 0; i < pins.Count; i++ {
		heading := rng.Float64() * 2 * math.Pi
		pos := components.Position{X: rng.Float64() * bounds.Width, Y: rng.Float64() * bounds.Height}
		vel := components.Velocity{X: math.Cos(heading) * pins.DriftSpeed, Y: math.Sin(heading) * pins.DriftSpeed}
		v.pinMapper.NewEntity(&pos, &vel, &components.Pinwheel{Index: i})
	}
	if pins.Count > 0 {
		v.pinCount = pins.Count
	}

	for _, e := range eddies {
		pos := components.Position{X: e.X * bounds.Width, Y: e.Y * bounds.Height}
		vel := components.Velocity{X: e.DriftX, Y: e.DriftY}
		eddy := components.Eddy{Radius: e.Radius * bounds.Width, Strength: e.Strength, Clockwise: e.Clockwise}
		v.eddyMapper.NewEntity(&pos, &vel, &eddy)
	}
}

// PinwheelCount returns the number of pinwheel centers seeded by the last Reset.
func (v *VortexWorld) PinwheelCount() int {
	return v.pinCount
}

// Drift integrates every moving entity by dt seconds and bounces it off the
// canvas bounds: the offending velocity component flips and the position is
// clamped back inside [0, extent].
func (v *VortexWorld) Drift(dt float64) {
	if !(dt > 0) {
		return
	}
	query := v.moving.Query()
	for query.Next() {
		pos, vel := query.Get()

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		if pos.X < 0 {
			pos.X = 0
			vel.X = -vel.X
		} else if pos.X > v.bounds.Width {
			pos.X = v.bounds.Width
			vel.X = -vel.X
		}
		if pos.Y < 0 {
			pos.Y = 0
			vel.Y = -vel.Y
		} else if pos.Y > v.bounds.Height {
			pos.Y = v.bounds.Height
			vel.Y = -vel.Y
		}
	}
}

// Pinwheels appends a snapshot of all pinwheel centers to dst.
func (v *VortexWorld) Pinwheels(dst []Center) []Center {
	dst = dst[:0]
	query := v.pinFilter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		dst = append(dst, Center{X: pos.X, Y: pos.Y, VX: vel.X, VY: vel.Y})
	}
	return dst
}

// Eddies appends a snapshot of all eddies to dst.
func (v *VortexWorld) Eddies(dst []EddyState) []EddyState {
	dst = dst[:0]
	query := v.eddyFilter.Query()
	for query.Next() {
		pos, _, eddy := query.Get()
		dst = append(dst, EddyState{
			X:         pos.X,
			Y:         pos.Y,
			Radius:    eddy.Radius,
			Strength:  eddy.Strength,
			Clockwise: eddy.Clockwise,
		})
	}
	return dst
}
