// File: suite/tuning.go

package suite

import "fmt"

// Tuning is one accepted configuration of a variant. Config carries the
// resolved specialization (a block size, a dispatch strategy, ...) so the
// kernel never re-derives it from the index.
type Tuning struct {
	Name   string
	Config interface{}
}

// TuningSet is the ordered list of accepted configurations for one variant.
// A position in the set is the tuning index. The executor builds each set
// exactly once and uses it both to register tuning names and to drive the
// sweep, so the two can never disagree.
type TuningSet []Tuning

// DefaultTunings is the set for variants with nothing to tune
func DefaultTunings() TuningSet {
	return TuningSet{{Name: "default"}}
}

// Enumerate filters candidates through accept, preserving candidate order
func Enumerate[T any](candidates []T, accept func(T) bool) []T {
	out := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if accept == nil || accept(c) {
			out = append(out, c)
		}
	}
	return out
}

// NewTuningSet enumerates candidates and names each accepted one
func NewTuningSet[T any](candidates []T, accept func(T) bool, name func(T) string) TuningSet {
	accepted := Enumerate(candidates, accept)
	ts := make(TuningSet, len(accepted))
	for i, c := range accepted {
		ts[i] = Tuning{Name: name(c), Config: c}
	}
	return ts
}

// BlockSizeTunings builds the "block_<n>" set for accelerator variants
func BlockSizeTunings(candidates []int, p *RunParams) TuningSet {
	return NewTuningSet(candidates, p.AcceptBlockSize, func(bs int) string {
		return fmt.Sprintf("block_%d", bs)
	})
}

// Names lists tuning names in index order
func (ts TuningSet) Names() []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}

// At returns the tuning for an index
func (ts TuningSet) At(idx int) (Tuning, error) {
	if idx < 0 || idx >= len(ts) {
		return Tuning{}, fmt.Errorf("tuning index %d out of range [0,%d)", idx, len(ts))
	}
	return ts[idx], nil
}

// Concat appends sets in order, as a variant that offers a default
// tuning followed by extra strategies does
func (ts TuningSet) Concat(more TuningSet) TuningSet {
	out := make(TuningSet, 0, len(ts)+len(more))
	out = append(out, ts...)
	return append(out, more...)
}

// BlockSize extracts an int config, as carried by BlockSizeTunings
func (t Tuning) BlockSize() (int, error) {
	bs, ok := t.Config.(int)
	if !ok {
		return 0, fmt.Errorf("tuning %s carries %T, not a block size", t.Name, t.Config)
	}
	return bs, nil
}
