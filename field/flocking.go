package field

import (
	"math"

	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/systems"
)

// flocking steers each cell like a boid: alignment and cohesion with its own
// flock, separation from every close cell, and optional pointer attraction.
func flocking(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	fc := &p.Flocking
	radius := fc.NeighborhoodRadius
	if math.IsNaN(radius) || radius <= 0 {
		env.Warn.Once("flocking.radius", "invalid flocking neighborhood radius, using fallback", "radius", radius)
		return fallback(c, p, 0.5)
	}

	var (
		alignX, alignY float64
		posX, posY     float64
		sepX, sepY     float64
		flockmates     int
		separated      bool
	)
	rSq := radius * radius
	sepR := fc.SeparationRadius
	separate := fc.Separation > 0 && sepR > 0

	reach := env.Index.Reach(math.Max(radius, sepR))
	env.Index.ForEachNeighbor(c.Row, c.Col, reach, env.Cells, func(idx int) bool {
		n := &env.Cells[idx]
		dSq := systems.DistanceSq(c.X, c.Y, n.BaseX, n.BaseY)

		if n.FlockID == c.FlockID && dSq <= rSq {
			rad := systems.Rad(n.CurrentAngle)
			alignX += math.Cos(rad)
			alignY += math.Sin(rad)
			posX += n.BaseX
			posY += n.BaseY
			flockmates++
		}
		if separate && dSq > 0 && dSq < sepR*sepR {
			// Unit vector away from the neighbor, weighted by 1/d
			sepX += (c.X - n.BaseX) / dSq
			sepY += (c.Y - n.BaseY) / dSq
			separated = true
		}
		return true
	})

	var vx, vy float64
	influenced := false
	if flockmates > 0 {
		inv := 1 / float64(flockmates)
		vx += alignX * inv * fc.Alignment
		vy += alignY * inv * fc.Alignment
		vx += (posX*inv - c.X) * 0.01 * fc.Cohesion
		vy += (posY*inv - c.Y) * 0.01 * fc.Cohesion
		influenced = true
	}
	if separated {
		vx += sepX * fc.Separation
		vy += sepY * fc.Separation
		influenced = true
	}
	if fc.MouseAttraction && c.Pointer != nil {
		dx, dy := c.Pointer.X-c.X, c.Pointer.Y-c.Y
		d := math.Hypot(dx, dy)
		if d > 0 && d <= 2*radius {
			vx += dx / d * fc.MouseStrength
			vy += dy / d * fc.MouseStrength
			influenced = true
		}
	}

	if !influenced || (vx == 0 && vy == 0) {
		return fallback(c, p, 0.5)
	}
	return angle(systems.Deg(math.Atan2(vy, vx)))
}
