package field

import (
	"math"

	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/systems"
)

func seaWaves(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	t := Seconds(c, p)
	nx, ny := c.X/c.Width, c.Y/c.Height
	f := p.SeaWaves.Frequency * 2 * math.Pi
	primary := math.Sin(nx*f + t)
	secondary := math.Sin(ny*f*1.3 - 1.7*t)
	return angle(p.SeaWaves.Amplitude * (0.6*primary + 0.4*secondary))
}

func rippleEffect(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	cx, cy := c.Width/2, c.Height/2
	if p.Ripple.FollowPointer {
		if c.Pointer == nil {
			return fallback(c, p, 1)
		}
		cx, cy = c.Pointer.X, c.Pointer.Y
	}
	d := math.Sqrt(systems.DistanceSq(c.X, c.Y, cx, cy))
	t := Seconds(c, p)
	return angle(math.Sin(t*p.Ripple.Speed-d*p.Ripple.Scale) * p.Ripple.MaxAngle)
}

// expandingWave holds every cell at the hold angle until the wave reaches
// its ring, then rotates it continuously.
func expandingWave(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	hold := p.ExpandingWave.HoldAngle
	elapsed := c.Time - (env.WaveStart + c.ActivationTime)
	if elapsed < 0 {
		return angle(hold)
	}
	return angle(hold + elapsed/1000*p.ExpandingWave.DegreesPerSecond*p.Speed)
}

func jitter(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	base := fallback(c, p, 1)
	if env.Rand == nil {
		return base
	}
	base.Angle += (env.Rand.Float64()*2 - 1) * p.Jitter.Intensity
	return base
}

// followPath aligns cells near a horizontal sine path with its slope.
func followPath(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	t := Seconds(c, p)
	fp := &p.FollowPath
	amp := fp.Amplitude * c.Height
	k := fp.Frequency * 2 * math.Pi / c.Width
	phase := c.X*k + t
	pathY := c.Height/2 + amp*math.Sin(phase)

	if math.Abs(c.Y-pathY) > fp.Threshold {
		return fallback(c, p, 1)
	}
	slope := amp * k * math.Cos(phase)
	return angle(systems.Deg(math.Atan(slope)))
}

func perlinFlow(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	if env.Noise == nil {
		return fallback(c, p, 1)
	}
	t := Seconds(c, p)
	n := env.Noise.Noise2D(c.X*p.Perlin.Scale, c.Y*p.Perlin.Scale+t*p.Perlin.Speed)
	return angle(systems.Wrap360((n + 1) / 2 * 360))
}

// waterfall points cells downward with horizontal turbulence. A periodic
// gravity cycle pulls them toward vertical and, within 30 degrees of it,
// stretches the glyph.
func waterfall(c *Context, p *config.AnimationConfig, _ *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	t := Seconds(c, p)
	wf := &p.Waterfall

	gravity := 0.0
	if wf.GravityPeriod > 0 {
		phase := math.Mod(t/wf.GravityPeriod, 1)
		gravity = 0.5 - 0.5*math.Cos(2*math.Pi*phase)
	}

	offset := c.Y / c.Height * wf.OffsetScale * 2 * math.Pi
	turbulence := wf.Turbulence * math.Sin(t*2+c.X/c.Width*6*math.Pi+offset)
	a := 90 + turbulence*(1-0.5*gravity)

	off := math.Abs(a - 90)
	if off >= 30 {
		return angle(a)
	}
	return Result{Angle: a, LengthFactor: 1 + gravity*wf.Stretch*(1-off/30)}
}
