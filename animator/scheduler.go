package animator

import (
	"sync"

	"github.com/pthm-cable/vecfield/components"
)

// FrameID identifies a requested frame callback.
type FrameID uint64

// FrameHost delivers frame callbacks at its own cadence with monotonically
// increasing timestamps in milliseconds.
type FrameHost interface {
	RequestFrame(cb func(ts float64)) FrameID
	CancelFrame(id FrameID)
}

// Scheduler keeps at most one frame request outstanding and runs one Step
// per delivered frame. Pausing and rebuilding cancel the outstanding request
// before a fresh one is made, so no callback ever runs against a replaced grid.
type Scheduler struct {
	mu      sync.Mutex
	host    FrameHost
	anim    *Animator
	running bool
	pending FrameID
	hasPend bool

	// OnFrame, if set, runs after every completed Step (telemetry, export).
	OnFrame func(ts float64, f *Frame)
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(host FrameHost, anim *Animator) *Scheduler {
	return &Scheduler{host: host, anim: anim}
}

// Start begins requesting frames. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.requestLocked()
}

// Stop cancels the outstanding frame and stops requesting more.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.cancelLocked()
}

// Running reports whether the scheduler has been started.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Pending reports whether a frame request is outstanding.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPend
}

// Pause pauses the animator and cancels the outstanding frame.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anim.Pause()
	s.cancelLocked()
}

// Resume resumes the animator from the next delivered timestamp.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anim.Resume()
	if s.running {
		s.requestLocked()
	}
}

// TogglePause flips between running and paused and returns the new state.
func (s *Scheduler) TogglePause() (paused bool) {
	if s.anim.Paused() {
		s.Resume()
		return false
	}
	s.Pause()
	return true
}

// Rebuild installs a new cell batch. The outstanding frame is cancelled
// first and a fresh one requested afterwards.
func (s *Scheduler) Rebuild(cells []components.Cell, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.anim.SetGrid(cells, width, height)
	if s.running && !s.anim.Paused() {
		s.requestLocked()
	}
}

// Tick runs one frame at ts. Hosts normally call it through the callback
// passed to RequestFrame; calling it directly is allowed when no frame is
// outstanding.
func (s *Scheduler) Tick(ts float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked(ts)
}

func (s *Scheduler) tickLocked(ts float64) {
	if s.anim.Step(ts) && s.OnFrame != nil {
		s.OnFrame(ts, s.anim.Frame())
	}
	if s.running && !s.anim.Paused() {
		s.requestLocked()
	}
}

func (s *Scheduler) requestLocked() {
	if s.hasPend {
		return
	}
	var id FrameID
	id = s.host.RequestFrame(func(ts float64) {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A cancelled or superseded request must not run.
		if !s.hasPend || s.pending != id {
			return
		}
		s.hasPend = false
		s.tickLocked(ts)
	})
	s.pending = id
	s.hasPend = true
}

func (s *Scheduler) cancelLocked() {
	if !s.hasPend {
		return
	}
	s.host.CancelFrame(s.pending)
	s.hasPend = false
}
