// File: suite/kernel.go

package suite

import (
	"fmt"
)

// Pass identifies one lifecycle pass handed to a kernel's stages
type Pass struct {
	Variant VariantID
	Index   int
	Tuning  Tuning
}

// Kernel is one benchmarked unit. Stages return ErrUnknownVariant (wrapped)
// for variants they do not implement and a *BackendError for backend failures.
type Kernel interface {
	Descriptor() *Descriptor
	SetUp(p Pass) error
	Run(p Pass) error
	// Checksum copies results back to the host if needed and folds them
	Checksum(p Pass) (float64, error)
	TearDown(p Pass) error
}

// Tuner is implemented by kernels whose variants have more than the
// default tuning. Tunings is called once per variant per run.
type Tuner interface {
	Tunings(vid VariantID, params *RunParams) TuningSet
}

// Descriptor is the static metadata of a kernel
type Descriptor struct {
	name  string
	group Group

	defaultSize int
	defaultReps int
	actualSize  int
	runReps     int

	itsPerRep     int64
	kernelsPerRep int64
	bytesPerRep   int64
	flopsPerRep   int64
	checksumScale float64

	features Feature
	variants   []VariantID
	tunings    map[VariantID]TuningSet
	registered bool
}

// NewDescriptor creates a descriptor with reps and size defaults of 1
func NewDescriptor(name string, group Group) *Descriptor {
	return &Descriptor{
		name:          name,
		group:         group,
		defaultSize:   1,
		defaultReps:   1,
		actualSize:    1,
		runReps:       1,
		kernelsPerRep: 1,
		checksumScale: 1.0,
		tunings:       make(map[VariantID]TuningSet),
	}
}

func (d *Descriptor) Name() string { return d.name }
func (d *Descriptor) Group() Group { return d.group }

func (d *Descriptor) SetDefaultProblemSize(n int) { d.defaultSize = n }
func (d *Descriptor) SetDefaultReps(n int)        { d.defaultReps = n }
func (d *Descriptor) DefaultProblemSize() int     { return d.defaultSize }
func (d *Descriptor) DefaultReps() int            { return d.defaultReps }

// Configure resolves the actual problem size and reps from the run params
func (d *Descriptor) Configure(p *RunParams) {
	d.actualSize = p.ActualProblemSize(d.defaultSize)
	d.runReps = p.Reps(d.defaultReps)
	// keep checksums of scaled problems comparable to the default size
	d.checksumScale = float64(d.defaultSize) / float64(d.actualSize)
}

// SetActualProblemSize overrides the resolved size, for kernels whose size
// is derived (e.g. rounded to a grid)
func (d *Descriptor) SetActualProblemSize(n int) { d.actualSize = n }
func (d *Descriptor) ActualProblemSize() int     { return d.actualSize }
func (d *Descriptor) RunReps() int               { return d.runReps }
func (d *Descriptor) ChecksumScale() float64     { return d.checksumScale }

func (d *Descriptor) SetItsPerRep(n int64)     { d.itsPerRep = n }
func (d *Descriptor) SetKernelsPerRep(n int64) { d.kernelsPerRep = n }
func (d *Descriptor) SetBytesPerRep(n int64)   { d.bytesPerRep = n }
func (d *Descriptor) SetFLOPsPerRep(n int64)   { d.flopsPerRep = n }
func (d *Descriptor) ItsPerRep() int64         { return d.itsPerRep }
func (d *Descriptor) KernelsPerRep() int64     { return d.kernelsPerRep }
func (d *Descriptor) BytesPerRep() int64       { return d.bytesPerRep }
func (d *Descriptor) FLOPsPerRep() int64       { return d.flopsPerRep }

// SetUsesFeature tags the kernel with a feature
func (d *Descriptor) SetUsesFeature(f Feature) { d.features |= f }
func (d *Descriptor) Features() Feature        { return d.features }
func (d *Descriptor) UsesFeature(f Feature) bool {
	return d.features.Has(f)
}

// SetVariantDefined appends a variant; registration order is sweep order
func (d *Descriptor) SetVariantDefined(vid VariantID) {
	if d.HasVariant(vid) {
		return
	}
	d.variants = append(d.variants, vid)
}

// HasVariant checks if vid was defined
func (d *Descriptor) HasVariant(vid VariantID) bool {
	for _, v := range d.variants {
		if v == vid {
			return true
		}
	}
	return false
}

// Variants returns defined variants in registration order
func (d *Descriptor) Variants() []VariantID {
	out := make([]VariantID, len(d.variants))
	copy(out, d.variants)
	return out
}

// TuningsRegistered reports whether the tuning sets were already built
func (d *Descriptor) TuningsRegistered() bool { return d.registered }

// registerTunings stores the set built for vid. Sets are registered once.
func (d *Descriptor) registerTunings(vid VariantID, ts TuningSet) error {
	if _, exists := d.tunings[vid]; exists {
		return fmt.Errorf("%s: tunings for %s already registered", d.name, vid)
	}
	d.tunings[vid] = ts
	return nil
}

// Tunings returns the registered set for vid
func (d *Descriptor) Tunings(vid VariantID) (TuningSet, bool) {
	ts, exists := d.tunings[vid]
	return ts, exists
}

// TuningNames lists the registered tuning names for vid
func (d *Descriptor) TuningNames(vid VariantID) []string {
	ts, exists := d.tunings[vid]
	if !exists {
		return nil
	}
	return ts.Names()
}
