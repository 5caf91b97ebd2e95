// File: suite/results.go

package suite

import (
	"time"
)

// Key addresses one (kernel, variant, tuning index) slot
type Key struct {
	Kernel  string
	Variant VariantID
	Tuning  int
}

// Record is the timing and checksum state of one slot
type Record struct {
	Key
	TuningName string
	Reps       int
	Passes     int
	Total      time.Duration
	Min        time.Duration
	Max        time.Duration
	Checksum   float64
}

// Average is the mean elapsed time per pass
func (r Record) Average() time.Duration {
	if r.Passes == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Passes)
}

// PerRep is the mean time of a single repetition
func (r Record) PerRep() time.Duration {
	if r.Reps == 0 {
		return 0
	}
	return r.Average() / time.Duration(r.Reps)
}

// Diagnostic is a recoverable condition reported during a sweep
type Diagnostic struct {
	Kernel  string
	Variant VariantID
	Tuning  int
	Err     error
}

// Results holds every timer and checksum record of a sweep. Each pass
// writes only its own slot.
type Results struct {
	order       []Key
	records     map[Key]*Record
	Diagnostics []Diagnostic
}

// NewResults creates an empty results context
func NewResults() *Results {
	return &Results{records: make(map[Key]*Record)}
}

func (r *Results) slot(key Key, tuningName string, reps int) *Record {
	rec, exists := r.records[key]
	if !exists {
		rec = &Record{Key: key, TuningName: tuningName, Reps: reps}
		r.records[key] = rec
		r.order = append(r.order, key)
	}
	return rec
}

// AddTime records one measured pass
func (r *Results) AddTime(key Key, tuningName string, reps int, d time.Duration) {
	rec := r.slot(key, tuningName, reps)
	if rec.Passes == 0 || d < rec.Min {
		rec.Min = d
	}
	if d > rec.Max {
		rec.Max = d
	}
	rec.Total += d
	rec.Passes++
}

// AddChecksum accumulates a pass checksum; slots are never reset mid-run
func (r *Results) AddChecksum(key Key, tuningName string, reps int, v float64) {
	rec := r.slot(key, tuningName, reps)
	rec.Checksum += v
}

// Record returns a copy of a slot
func (r *Results) Record(key Key) (Record, bool) {
	rec, exists := r.records[key]
	if !exists {
		return Record{}, false
	}
	return *rec, true
}

// Keys returns slots in the order the sweep first produced them
func (r *Results) Keys() []Key {
	out := make([]Key, len(r.order))
	copy(out, r.order)
	return out
}

// Kernels lists kernel names in sweep order
func (r *Results) Kernels() []string {
	var names []string
	seen := make(map[string]bool)
	for _, k := range r.order {
		if !seen[k.Kernel] {
			seen[k.Kernel] = true
			names = append(names, k.Kernel)
		}
	}
	return names
}

// ForKernel returns the records of one kernel in sweep order
func (r *Results) ForKernel(name string) []Record {
	var out []Record
	for _, k := range r.order {
		if k.Kernel == name {
			out = append(out, *r.records[k])
		}
	}
	return out
}

// Report adds a diagnostic
func (r *Results) Report(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}
