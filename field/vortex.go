package field

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/systems"
)

// pinwheels rotates cells around the nearest drifting center. Cells outside
// every center's reach follow smooth waves at half speed.
func pinwheels(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	nearest := -1
	best := math.Inf(1)
	for i := range env.Pinwheels {
		d := systems.DistanceSq(c.X, c.Y, env.Pinwheels[i].X, env.Pinwheels[i].Y)
		if d < best {
			best = d
			nearest = i
		}
	}

	r := p.Pinwheels.Radius * c.Width
	if nearest < 0 || best > r*r {
		return fallback(c, p, 0.5)
	}
	ctr := env.Pinwheels[nearest]
	return angle(tangent(c.X, c.Y, ctr.X, ctr.Y) + Seconds(c, p)*p.Pinwheels.RotationSpeed)
}

// vortex blends the tangent around the canvas center toward the inward
// direction along the shorter arc.
func vortex(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	cx, cy := c.Width/2, c.Height/2
	tan := tangent(c.X, c.Y, cx, cy)
	inward := systems.AngleTo(c.X, c.Y, cx, cy)
	a := tan + systems.ShortestDelta(tan, inward)*p.Vortex.InwardFactor
	return angle(a + Seconds(c, p)*p.Vortex.Drift)
}

func geometricPattern(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	tan := tangent(c.X, c.Y, c.Width/2, c.Height/2)
	return angle(tan + c.Time/1000*p.Speed*p.Geometric.RotationSpeed)
}

// tangenteClasica rotates at a fixed 0.3 rate, ignoring the global speed.
func tangenteClasica(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	tan := tangent(c.X, c.Y, c.Width/2, c.Height/2)
	return angle(tan + c.Time/1000*0.3*p.Geometric.RotationSpeed)
}

// lissajous points every cell at one point tracing a Lissajous curve.
func lissajous(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	lj := &p.Lissajous
	t := Seconds(c, p) * lj.Speed
	size := lj.Size * math.Min(c.Width, c.Height)
	tx := c.Width/2 + size*math.Sin(lj.A*t+lj.Delta)
	ty := c.Height/2 + size*math.Sin(lj.B*t)
	return angle(systems.AngleTo(c.X, c.Y, tx, ty))
}

func mouseInteraction(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	if c.Pointer == nil {
		return fallback(c, p, 1)
	}
	r := p.Mouse.RadiusPct * c.Width
	if systems.DistanceSq(c.X, c.Y, c.Pointer.X, c.Pointer.Y) > r*r {
		return fallback(c, p, 1)
	}
	return angle(systems.AngleTo(c.X, c.Y, c.Pointer.X, c.Pointer.Y))
}

// oceanCurrents takes the weighted circular mean of a slow wave baseline
// and the tangents of every eddy whose radius covers the cell.
func oceanCurrents(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	base := fallback(c, p, p.Ocean.BaselineScale)
	if len(env.Eddies) == 0 {
		return base
	}

	var angles, weights []float64
	for _, e := range env.Eddies {
		if !(e.Radius > 0) {
			continue
		}
		d := math.Sqrt(systems.DistanceSq(c.X, c.Y, e.X, e.Y))
		if d >= e.Radius {
			continue
		}
		w := e.Strength * (1 - d/e.Radius)
		if !(w > 0) {
			continue
		}
		if angles == nil {
			angles = append(angles, systems.Rad(base.Angle))
			weights = append(weights, 1)
		}
		tan := tangent(c.X, c.Y, e.X, e.Y)
		if !e.Clockwise {
			tan -= 180
		}
		angles = append(angles, systems.Rad(tan))
		weights = append(weights, w)
	}
	if angles == nil {
		return base
	}
	return angle(systems.Deg(stat.CircularMean(angles, weights)))
}
