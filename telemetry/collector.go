package telemetry

import "github.com/pthm-cable/vecfield/components"

// Collector samples field statistics once per time window.
// Windows are measured on frame timestamps, so paused time does not count.
type Collector struct {
	windowMS    float64
	windowStart float64
	started     bool
	frames      int
}

// NewCollector creates a collector with the given window length in seconds.
func NewCollector(windowSec float64) *Collector {
	if !(windowSec > 0) {
		windowSec = 1
	}
	return &Collector{windowMS: windowSec * 1000}
}

// Observe records one completed frame. When the window has elapsed it
// returns the statistics of that frame and ok=true, and starts a new window.
func (c *Collector) Observe(frame int64, ts float64, typ string, cells []components.Cell) (FieldStats, bool) {
	if !c.started {
		c.started = true
		c.windowStart = ts
	}
	c.frames++
	if ts-c.windowStart < c.windowMS {
		return FieldStats{}, false
	}

	fs := ComputeFieldStats(cells)
	fs.Frame = frame
	fs.TimeMS = ts
	fs.Type = typ

	c.windowStart = ts
	c.frames = 0
	return fs, true
}

// FramesInWindow returns the number of frames observed in the open window.
func (c *Collector) FramesInWindow() int {
	return c.frames
}
