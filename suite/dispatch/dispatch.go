// Package dispatch batches heterogeneous pack/unpack segments and runs them
// through one of three call-resolution mechanisms. The three strategies are
// behaviorally identical; they exist side by side so their call overhead can
// be measured against each other.
package dispatch

import (
	"errors"
	"fmt"
)

// Strategy selects how a Group invokes its work items
type Strategy int

const (
	// Direct stores concrete items and runs their bodies inline
	Direct Strategy = iota
	// FuncPtr calls a stored function value per element
	FuncPtr
	// Virtual calls through an interface per element
	Virtual
)

func (s Strategy) String() string {
	switch s {
	case Direct:
		return "default"
	case FuncPtr:
		return "funcptr"
	case Virtual:
		return "virtfunc"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Strategies lists every strategy in canonical order
func Strategies() []Strategy {
	return []Strategy{Direct, FuncPtr, Virtual}
}

// Op is the per-element operation of a work item
type Op int

const (
	// Pack gathers Var[List[i]] into Buffer[i]
	Pack Op = iota
	// Unpack scatters Buffer[i] into Var[List[i]]
	Unpack
)

func (op Op) String() string {
	if op == Pack {
		return "pack"
	}
	return "unpack"
}

// Segment is the data of one work item. Its length is len(List).
type Segment struct {
	Buffer []float64
	List   []int
	Var    []float64
}

// Len is the number of elements the segment covers
func (s Segment) Len() int { return len(s.List) }

func (s Segment) validate() error {
	if len(s.Buffer) < len(s.List) {
		return fmt.Errorf("buffer holds %d elements, segment needs %d", len(s.Buffer), len(s.List))
	}
	return nil
}

var (
	// ErrInstantiated is returned by Enqueue on a frozen pool
	ErrInstantiated = errors.New("pool already instantiated")
	// ErrGroupConsumed is returned when a group is run twice
	ErrGroupConsumed = errors.New("group already run")
)

func packElem(s *Segment, i int)   { s.Buffer[i] = s.Var[s.List[i]] }
func unpackElem(s *Segment, i int) { s.Var[s.List[i]] = s.Buffer[i] }
