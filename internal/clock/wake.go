// Package clock provides the wake-up timer and the forging slot clock.
package clock

import (
	"sync"
	"time"
)

// WakeTimer calls fn once after the last scheduled delay. Rescheduling replaces
// the pending call.
type WakeTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	fn    func()
}

func NewWakeTimer(fn func()) *WakeTimer {
	return &WakeTimer{fn: fn}
}

// Schedule arms the timer, dropping any call still pending.
func (w *WakeTimer) Schedule(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(d, w.fn)
}

// Stop cancels the pending call. It reports whether one was pending.
func (w *WakeTimer) Stop() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer == nil {
		return false
	}
	stopped := w.timer.Stop()
	w.timer = nil
	return stopped
}
