// File: suite/timer.go

package suite

import "time"

// Timer measures wall-clock time around a repeated-execution region
type Timer struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

// Start begins a measurement; starting a running timer restarts it
func (t *Timer) Start() {
	t.running = true
	t.start = time.Now()
}

// Stop ends the measurement and accumulates it
func (t *Timer) Stop() time.Duration {
	if !t.running {
		return t.elapsed
	}
	t.elapsed += time.Since(t.start)
	t.running = false
	return t.elapsed
}

// Elapsed is the accumulated duration of completed measurements
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Reset clears the timer
func (t *Timer) Reset() {
	*t = Timer{}
}

// Measure times fn
func Measure(fn func() error) (time.Duration, error) {
	var t Timer
	t.Start()
	err := fn()
	return t.Stop(), err
}
