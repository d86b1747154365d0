package game

import (
	"sync"
	"time"
)

// SessionTimer counts elapsed seconds while gameplay is active. At most one ticker is alive.
type SessionTimer struct {
	mu       sync.Mutex
	sched    Scheduler
	interval time.Duration
	elapsed  int
	gen      int
	handle   Timer
}

func NewSessionTimer(sched Scheduler) *SessionTimer {
	return &SessionTimer{sched: sched, interval: time.Second}
}

// Start resets the count and starts ticking, cancelling any previous ticker.
func (t *SessionTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.elapsed = 0
	gen := t.gen
	t.handle = t.sched.Every(t.interval, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen != gen {
			return
		}
		t.elapsed++
	})
}

// Stop freezes the count.
func (t *SessionTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *SessionTimer) stopLocked() {
	t.gen++
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
}

func (t *SessionTimer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handle != nil
}

func (t *SessionTimer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}
