package race

import "time"

// Timer measures the race time. Stopping keeps the elapsed time and a later
// start resumes from it.
type Timer struct {
	now     func() time.Time
	running bool
	started time.Time
	elapsed time.Duration
}

// NewTimer returns a timer reading the given clock. A nil clock uses
// time.Now.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start starts the timer. It does nothing while running.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.started = t.now()
}

// Stop stops the timer and accumulates the time since the last start.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.elapsed += t.now().Sub(t.started)
	t.running = false
}

func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.elapsed + t.now().Sub(t.started)
	}
	return t.elapsed
}

func (t *Timer) Reset() {
	t.running = false
	t.elapsed = 0
}

func (t *Timer) Running() bool {
	return t.running
}
