package field

import (
	"math"

	"github.com/pthm-cable/vecfield/config"
	"github.com/pthm-cable/vecfield/systems"
)

// PulsePhase is the timing phase a cell is in relative to the current pulse.
type PulsePhase uint8

const (
	PhaseWaiting PulsePhase = iota // Pulse has not reached the cell yet
	PhaseBurst                     // Radial outward burst
	PhaseWobble                    // Damped wobble after the burst
	PhaseIdle                      // Idle swirl between pulses
)

func (p PulsePhase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseBurst:
		return "burst"
	case PhaseWobble:
		return "wobble"
	default:
		return "idle"
	}
}

// PulseTiming classifies elapsed ms since the pulse trigger for a cell at
// normalized distance norm from the center.
func PulseTiming(elapsed, norm float64, pc *config.PulseConfig) PulsePhase {
	delay := norm * pc.DurationMS * pc.Propagation
	switch {
	case elapsed < 0:
		return PhaseIdle
	case elapsed < delay:
		return PhaseWaiting
	case elapsed < pc.DurationMS:
		return PhaseBurst
	case elapsed < pc.DurationMS+pc.GraceMS:
		return PhaseWobble
	default:
		return PhaseIdle
	}
}

// idleSwirl is the tangential angle around (cx, cy) with a phase offset that
// grows with distance so rings visibly lag each other.
func idleSwirl(c *Context, p *config.AnimationConfig, cx, cy, norm float64) float64 {
	return tangent(c.X, c.Y, cx, cy) + Seconds(c, p)*p.Pulse.SwirlSpeed + norm*90
}

func centerPulse(c *Context, p *config.AnimationConfig, env *Env) Result {
	if degenerate(c) {
		return keep(c)
	}
	pc := &p.Pulse
	cx, cy := c.Width/2, c.Height/2
	maxDist := math.Hypot(cx, cy)
	norm := math.Sqrt(systems.DistanceSq(c.X, c.Y, cx, cy)) / maxDist

	elapsed := c.Time - env.PulseStart
	switch PulseTiming(elapsed, norm, pc) {
	case PhaseBurst:
		return angle(systems.AngleTo(cx, cy, c.X, c.Y))
	case PhaseWobble:
		s := (elapsed - pc.DurationMS) / 1000
		wobble := pc.WobbleAmplitude * math.Exp(-pc.WobbleDecay*s) * math.Sin(2*math.Pi*pc.WobbleFrequency*s)
		return angle(idleSwirl(c, p, cx, cy, norm) + wobble)
	default:
		return angle(idleSwirl(c, p, cx, cy, norm))
	}
}
