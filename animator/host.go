package animator

import (
	"context"
	"sync"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
)

type frameRequest struct {
	id FrameID
	cb func(ts float64)
}

// QueueHost queues frame requests until Flush is called. The viewer and
// tests drive it with their own clock.
type QueueHost struct {
	mu    sync.Mutex
	next  FrameID
	queue []frameRequest
}

// NewQueueHost creates an empty queue host.
func NewQueueHost() *QueueHost {
	return &QueueHost{}
}

// RequestFrame queues cb for the next Flush.
func (h *QueueHost) RequestFrame(cb func(ts float64)) FrameID {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.queue = append(h.queue, frameRequest{id: h.next, cb: cb})
	return h.next
}

// CancelFrame drops a queued request. Unknown ids are ignored.
func (h *QueueHost) CancelFrame(id FrameID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.queue {
		if h.queue[i].id == id {
			h.queue = append(h.queue[:i], h.queue[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued requests.
func (h *QueueHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// Flush runs every request queued before the call with timestamp ts and
// returns how many ran. Requests made by the callbacks wait for the next Flush.
func (h *QueueHost) Flush(ts float64) int {
	h.mu.Lock()
	batch := h.queue
	h.queue = nil
	h.mu.Unlock()

	for _, r := range batch {
		r.cb(ts)
	}
	return len(batch)
}

// TickerHost delivers frames from a wall-clock ticker for headless runs.
// Timestamps are milliseconds since Run started.
type TickerHost struct {
	QueueHost
	interval time.Duration
}

// NewTickerHost creates a host ticking every interval.
func NewTickerHost(interval time.Duration) *TickerHost {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerHost{interval: interval}
}

// Run flushes queued frames on every tick until ctx is done.
func (h *TickerHost) Run(ctx context.Context) error {
	start := time.Now()
	for range channerics.NewTicker(ctx.Done(), h.interval) {
		h.Flush(float64(time.Since(start)) / float64(time.Millisecond))
	}
	return ctx.Err()
}
