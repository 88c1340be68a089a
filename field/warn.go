package field

import (
	"log/slog"
	"sync"
)

// Warner logs each distinct warning key at most once.
// A nil Warner discards warnings.
type Warner struct {
	mu   sync.Mutex
	seen map[string]struct{}
	log  *slog.Logger
}

// NewWarner creates a Warner logging to logger, or slog.Default when nil.
func NewWarner(logger *slog.Logger) *Warner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warner{seen: make(map[string]struct{}), log: logger}
}

// Once logs msg with args the first time key is seen.
// It reports whether the warning was emitted.
func (w *Warner) Once(key, msg string, args ...any) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	if _, ok := w.seen[key]; ok {
		w.mu.Unlock()
		return false
	}
	w.seen[key] = struct{}{}
	w.mu.Unlock()

	w.log.Warn(msg, args...)
	return true
}

// Reset forgets all seen keys, e.g. after the settings change.
func (w *Warner) Reset() {
	if w == nil {
		return
	}
	w.mu.Lock()
	clear(w.seen)
	w.mu.Unlock()
}
