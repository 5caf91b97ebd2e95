// File: suite/lifecycle.go

package suite

import (
	"fmt"
	"time"
)

// State of a lifecycle pass
type State int

const (
	StateUninitialized State = iota
	StateSetUp
	StateRunning
	StateChecksummed
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateSetUp:
		return "SetUp"
	case StateRunning:
		return "Running"
	case StateChecksummed:
		return "Checksummed"
	case StateTornDown:
		return "TornDown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Lifecycle drives one (variant, tuning index) pass of a kernel through
// SetUp -> Run -> Checksum -> TearDown. Transitions only move forward.
type Lifecycle struct {
	kernel Kernel
	pass   Pass
	state  State
	timer  Timer
}

// NewLifecycle creates a pass in the Uninitialized state
func NewLifecycle(k Kernel, p Pass) *Lifecycle {
	return &Lifecycle{kernel: k, pass: p}
}

func (lc *Lifecycle) State() State { return lc.state }

func (lc *Lifecycle) advance(from, to State) error {
	if lc.state != from {
		return fmt.Errorf("%s %s: %s requires state %s, in %s: %w",
			lc.kernel.Descriptor().Name(), lc.pass.Variant, to, from, lc.state, ErrLifecycle)
	}
	lc.state = to
	return nil
}

// SetUp allocates and initializes the pass's buffers
func (lc *Lifecycle) SetUp() error {
	if err := lc.advance(StateUninitialized, StateSetUp); err != nil {
		return err
	}
	return lc.kernel.SetUp(lc.pass)
}

// Run executes the repetitions. The returned duration covers Run only.
func (lc *Lifecycle) Run() (time.Duration, error) {
	if err := lc.advance(StateSetUp, StateRunning); err != nil {
		return 0, err
	}
	lc.timer.Start()
	err := lc.kernel.Run(lc.pass)
	return lc.timer.Stop(), err
}

// UpdateChecksum folds the pass output into a scalar
func (lc *Lifecycle) UpdateChecksum() (float64, error) {
	if err := lc.advance(StateRunning, StateChecksummed); err != nil {
		return 0, err
	}
	return lc.kernel.Checksum(lc.pass)
}

// TearDown releases the pass's buffers. It may be called from any live
// state so a failed pass still frees what it acquired.
func (lc *Lifecycle) TearDown() error {
	switch lc.state {
	case StateTornDown:
		return fmt.Errorf("%s %s: already torn down: %w",
			lc.kernel.Descriptor().Name(), lc.pass.Variant, ErrLifecycle)
	case StateUninitialized:
		lc.state = StateTornDown
		return nil
	}
	lc.state = StateTornDown
	return lc.kernel.TearDown(lc.pass)
}
