package animator

import (
	"math"

	"github.com/pthm-cable/vecfield/config"
)

// Timers holds the absolute trigger timestamps (ms) used by the timed field
// functions. Nothing here counts frames or elapsed-since-start, so skipping
// frames while paused never shifts them.
type Timers struct {
	Origin     float64 // First timestamp after construction or reset
	PulseStart float64 // Latest pulse trigger, snapped to Origin + k*interval
	WaveStart  float64 // Expanding wave trigger

	started     bool
	pendingWave bool
}

// Reset forgets the origin; the next Advance re-anchors every timer.
func (t *Timers) Reset() {
	*t = Timers{}
}

// TriggerWave restarts the expanding wave at the next Advance.
func (t *Timers) TriggerWave() {
	t.pendingWave = true
}

// Advance updates the timers for the frame at ts.
func (t *Timers) Advance(ts float64, pc *config.PulseConfig) {
	if !t.started {
		t.started = true
		t.Origin = ts
		t.PulseStart = ts
		t.WaveStart = ts
		t.pendingWave = false
	}
	if t.pendingWave {
		t.WaveStart = ts
		t.pendingWave = false
	}
	t.PulseStart = PulseStart(t.Origin, ts, pc.IntervalMS)
}

// PulseStart returns the most recent pulse trigger at or before now for a
// pulse train starting at origin. A non-positive interval fires once at origin.
func PulseStart(origin, now, interval float64) float64 {
	if !(interval > 0) || now <= origin {
		return origin
	}
	return origin + math.Floor((now-origin)/interval)*interval
}
