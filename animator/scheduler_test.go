package animator

import (
	"context"
	"errors"
	"testing"
	"time"
)

// recordingHost keeps every callback, including cancelled ones, so tests can
// fire stale requests on purpose.
type recordingHost struct {
	next      FrameID
	callbacks map[FrameID]func(ts float64)
	cancelled map[FrameID]bool
}

func newRecordingHost() *recordingHost {
	return &recordingHost{
		callbacks: make(map[FrameID]func(ts float64)),
		cancelled: make(map[FrameID]bool),
	}
}

func (h *recordingHost) RequestFrame(cb func(ts float64)) FrameID {
	h.next++
	h.callbacks[h.next] = cb
	return h.next
}

func (h *recordingHost) CancelFrame(id FrameID) {
	h.cancelled[id] = true
}

func (h *recordingHost) live() int {
	n := 0
	for id := range h.callbacks {
		if !h.cancelled[id] {
			n++
		}
	}
	return n
}

func TestScheduler_StartRequestsOnce(t *testing.T) {
	host := NewQueueHost()
	s := NewScheduler(host, newTestAnimator(t, "smoothWaves", Options{}))

	s.Start()
	s.Start()
	if host.Pending() != 1 {
		t.Errorf("expected 1 pending request, got %d", host.Pending())
	}
	if !s.Running() || !s.Pending() {
		t.Error("expected running scheduler with a pending frame")
	}
}

func TestScheduler_FlushSteps(t *testing.T) {
	host := NewQueueHost()
	anim := newTestAnimator(t, "smoothWaves", Options{})
	s := NewScheduler(host, anim)

	var frames []float64
	s.OnFrame = func(ts float64, f *Frame) {
		frames = append(frames, ts)
		if f.Time != ts {
			t.Errorf("frame time %f != callback ts %f", f.Time, ts)
		}
	}
	s.Start()

	for i := 1; i <= 5; i++ {
		if n := host.Flush(float64(i) * 16); n != 1 {
			t.Fatalf("flush %d: expected 1 callback, got %d", i, n)
		}
	}
	if anim.Frame().Seq != 5 {
		t.Errorf("expected 5 frames, got %d", anim.Frame().Seq)
	}
	if len(frames) != 5 {
		t.Errorf("expected 5 OnFrame calls, got %d", len(frames))
	}
	if host.Pending() != 1 {
		t.Errorf("expected the next frame requested, got %d pending", host.Pending())
	}
}

func TestScheduler_PauseCancels(t *testing.T) {
	host := NewQueueHost()
	anim := newTestAnimator(t, "smoothWaves", Options{})
	s := NewScheduler(host, anim)
	s.Start()
	host.Flush(16)

	s.Pause()
	if host.Pending() != 0 || s.Pending() {
		t.Fatalf("expected no pending request while paused, host has %d", host.Pending())
	}
	if host.Flush(32) != 0 {
		t.Error("flush ran a callback while paused")
	}

	s.Resume()
	if host.Pending() != 1 {
		t.Fatalf("expected 1 pending after resume, got %d", host.Pending())
	}
	host.Flush(5000)
	if anim.Frame().Seq != 2 {
		t.Errorf("expected 2 frames, got %d", anim.Frame().Seq)
	}
}

func TestScheduler_TogglePause(t *testing.T) {
	host := NewQueueHost()
	s := NewScheduler(host, newTestAnimator(t, "smoothWaves", Options{}))
	s.Start()

	if !s.TogglePause() {
		t.Error("expected first toggle to pause")
	}
	if s.TogglePause() {
		t.Error("expected second toggle to resume")
	}
	if host.Pending() != 1 {
		t.Errorf("expected 1 pending after toggling back, got %d", host.Pending())
	}
}

func TestScheduler_RebuildKeepsSingleRequest(t *testing.T) {
	host := NewQueueHost()
	anim := newTestAnimator(t, "cellularAutomata", Options{})
	s := NewScheduler(host, anim)
	s.Start()

	for i := 0; i < 3; i++ {
		s.Rebuild(testCells(t, 20+float64(i)*10), canvasW, canvasH)
		if host.Pending() != 1 {
			t.Fatalf("rebuild %d: expected 1 pending request, got %d", i, host.Pending())
		}
	}
	host.Flush(16)
	if len(anim.Cells()) != len(testCells(t, 40)) {
		t.Errorf("expected last rebuild's grid, got %d cells", len(anim.Cells()))
	}
}

func TestScheduler_RebuildWhilePausedDoesNotRequest(t *testing.T) {
	host := NewQueueHost()
	s := NewScheduler(host, newTestAnimator(t, "smoothWaves", Options{}))
	s.Start()
	s.Pause()

	s.Rebuild(testCells(t, 40), canvasW, canvasH)
	if host.Pending() != 0 {
		t.Errorf("expected no request while paused, got %d", host.Pending())
	}
}

func TestScheduler_StaleCallbackIgnored(t *testing.T) {
	host := newRecordingHost()
	anim := newTestAnimator(t, "smoothWaves", Options{})
	s := NewScheduler(host, anim)
	s.Start()

	stale := host.callbacks[1]
	s.Rebuild(testCells(t, 40), canvasW, canvasH)
	if !host.cancelled[1] {
		t.Fatal("rebuild did not cancel the outstanding request")
	}
	if host.live() != 1 {
		t.Fatalf("expected 1 live request, got %d", host.live())
	}

	// A host that delivers a cancelled callback anyway must not step
	stale(16)
	if anim.Frame().Seq != 0 {
		t.Errorf("stale callback stepped the animator")
	}

	host.callbacks[2](32)
	if anim.Frame().Seq != 1 {
		t.Errorf("expected fresh callback to step, seq %d", anim.Frame().Seq)
	}
}

func TestScheduler_Stop(t *testing.T) {
	host := NewQueueHost()
	s := NewScheduler(host, newTestAnimator(t, "smoothWaves", Options{}))
	s.Start()
	s.Stop()

	if host.Pending() != 0 || s.Running() {
		t.Error("expected stopped scheduler with nothing pending")
	}
	s.Tick(16)
	if host.Pending() != 0 {
		t.Error("tick on a stopped scheduler requested a frame")
	}
}

func TestQueueHost_CancelUnknown(t *testing.T) {
	host := NewQueueHost()
	id := host.RequestFrame(func(float64) {})
	host.CancelFrame(id + 10)
	if host.Pending() != 1 {
		t.Errorf("cancelling an unknown id dropped a request")
	}
	host.CancelFrame(id)
	if host.Pending() != 0 {
		t.Errorf("expected queue empty, got %d", host.Pending())
	}
}

func TestTickerHost_Run(t *testing.T) {
	host := NewTickerHost(5 * time.Millisecond)
	anim := newTestAnimator(t, "smoothWaves", Options{})
	s := NewScheduler(host, anim)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := host.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if anim.Frame().Seq == 0 {
		t.Error("expected at least one frame from the ticker")
	}
}
