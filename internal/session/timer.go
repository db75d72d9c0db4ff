package session

import "time"

// Timer produces the elapsed-duration signal for a recording session. It
// counts whole seconds while running, freezes at Stop, and zeroes at Reset.
// The clock is injectable for tests.
type Timer struct {
	now       func() time.Time
	startedAt time.Time
	frozen    int
	running   bool
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Start begins counting from zero.
func (t *Timer) Start() {
	t.startedAt = t.now()
	t.frozen = 0
	t.running = true
}

// Stop freezes the elapsed duration and returns it in whole seconds.
func (t *Timer) Stop() int {
	if t.running {
		t.frozen = t.elapsedSeconds()
		t.running = false
	}
	return t.frozen
}

// Reset returns the timer to its initial zeroed state.
func (t *Timer) Reset() {
	t.frozen = 0
	t.running = false
}

// Elapsed returns the current elapsed whole seconds: live while running,
// frozen after Stop, zero after Reset.
func (t *Timer) Elapsed() int {
	if t.running {
		return t.elapsedSeconds()
	}
	return t.frozen
}

func (t *Timer) elapsedSeconds() int {
	return int(t.now().Sub(t.startedAt) / time.Second)
}
