// Package common holds the pieces every kernel package shares: variant
// definition, host execution policies, deterministic data initialization
// and the accelerator launch path.
package common

import (
	"fmt"

	"github.com/notargets/gocca"
	"github.com/notargets/kernelperf/runner"
	"github.com/notargets/kernelperf/runner/builder"
	"github.com/notargets/kernelperf/suite"
)

// BlockSizes are the accelerator work-group sizes each OCCA variant is
// specialized for. Powers of two, as the shared-memory reductions require.
var BlockSizes = []int{64, 128, 256, 512, 1024}

// HostVariants are the sequential and host-parallel variants in
// registration order
var HostVariants = []suite.VariantID{
	suite.BaseSeq, suite.LambdaSeq, suite.LibSeq,
	suite.BaseOpenMP, suite.LambdaOpenMP, suite.LibOpenMP,
}

// DefineVariants registers the host variants plus the given accelerator
// variants when a device is available
func DefineVariants(d *suite.Descriptor, dev *gocca.OCCADevice, accel ...suite.VariantID) {
	for _, vid := range HostVariants {
		d.SetVariantDefined(vid)
	}
	if dev == nil {
		return
	}
	for _, vid := range accel {
		d.SetVariantDefined(vid)
	}
}

// Policy maps a host variant onto its execution policy
func Policy(vid suite.VariantID, p *suite.RunParams) suite.ExecPolicy {
	if vid.Backend() == suite.BackendOpenMP {
		return suite.ParExec(p.ThreadCount())
	}
	return suite.SeqExec
}

// BlockTunings gives accelerator variants one tuning per accepted block
// size and every other variant the default tuning
func BlockTunings(vid suite.VariantID, p *suite.RunParams) suite.TuningSet {
	if vid.Backend() == suite.BackendOCCA {
		return suite.BlockSizeTunings(BlockSizes, p)
	}
	return suite.DefaultTunings()
}

// InitData fills a with a deterministic, non-trivial pattern. sign flips the
// scale factor so two arrays initialized with different signs differ.
func InitData(a []float64, sign bool) {
	factor := 0.2
	if sign {
		factor = 0.1
	}
	for i := range a {
		a[i] = factor * (float64(i) + 1.1) / (float64(i) + 1.12345)
	}
}

// InitConst fills a with v
func InitConst(a []float64, v float64) {
	for i := range a {
		a[i] = v
	}
}

// NBlocks is the number of work groups covering n elements
func NBlocks(n, blockSize int) int {
	return (n + blockSize - 1) / blockSize
}

// Accel is the accelerator half of a kernel pass: one runner compiled for
// the pass's block size
type Accel struct {
	Kernel string
	Name   string
	*runner.Runner
	vid suite.VariantID
}

// NewAccel creates a runner for the pass's block size with N and any extra
// defines baked into the preamble
func NewAccel(kernel string, dev *gocca.OCCADevice, p suite.Pass, n int, defines map[string]int) (*Accel, error) {
	if dev == nil {
		return nil, suite.UnknownVariant(kernel, p.Variant)
	}
	bs, err := p.Tuning.BlockSize()
	if err != nil {
		return nil, err
	}
	cfg := builder.Config{BlockSize: bs, Defines: map[string]int{"N": n}}
	for k, v := range defines {
		cfg.Defines[k] = v
	}
	return &Accel{Kernel: kernel, Runner: runner.NewRunner(dev, cfg), vid: p.Variant}, nil
}

// Bind defines the pass's device buffers and allocates them, uploading
// bound host data
func (a *Accel) Bind(params ...*builder.ParamBuilder) error {
	if err := a.DefineBindings(params...); err != nil {
		return a.wrap("bind", err)
	}
	if err := a.AllocateDevice(); err != nil {
		return a.wrap("allocate", err)
	}
	return nil
}

// Build configures name with params in argument order and compiles body,
// the kernel source after the "@kernel void name(...)" header
func (a *Accel) Build(name, body string, params ...*runner.ParamConfig) error {
	if _, err := a.ConfigureKernel(name, params...); err != nil {
		return a.wrap("configure", err)
	}
	sig, err := a.GetKernelSignature(name)
	if err != nil {
		return a.wrap("configure", err)
	}
	src := fmt.Sprintf("@kernel void %s(%s) %s", name, sig, body)
	if _, err = a.BuildKernel(src, name); err != nil {
		return a.wrap("build", err)
	}
	a.Name = name
	return nil
}

// Launch runs the compiled kernel once and waits for it. Launch errors are
// fatal backend errors.
func (a *Accel) Launch(scalars ...interface{}) error {
	if err := a.ExecuteKernel(a.Name, scalars...); err != nil {
		return a.wrap("launch", err)
	}
	return nil
}

// Download blocks until the device is idle and copies name to the host
func (a *Accel) Download(name string) error {
	if err := a.CopyFromDevice(name); err != nil {
		return a.wrap("download", err)
	}
	return nil
}

// Upload copies the host data of name to the device
func (a *Accel) Upload(name string) error {
	if err := a.CopyToDevice(name); err != nil {
		return a.wrap("upload", err)
	}
	return nil
}

func (a *Accel) wrap(op string, err error) error {
	return &suite.BackendError{Kernel: a.Kernel, Variant: a.vid, Op: op, Err: err}
}

// HostLoop picks the per-repetition loop of a host variant. Base styles run
// base over contiguous ranges, Lambda styles call body per index from a
// hand-written loop, Lib styles hand body to suite.Forall.
func HostLoop(kernel string, vid suite.VariantID, p *suite.RunParams, n int,
	base func(lo, hi int), body func(i int)) (func() error, error) {
	threads := p.ThreadCount()
	switch vid {
	case suite.BaseSeq:
		return func() error { base(0, n); return nil }, nil
	case suite.LambdaSeq:
		return func() error {
			for i := 0; i < n; i++ {
				body(i)
			}
			return nil
		}, nil
	case suite.LibSeq:
		return func() error { return suite.Forall(suite.SeqExec, 0, n, body) }, nil
	case suite.BaseOpenMP:
		return func() error { return suite.ParallelFor(threads, n, base) }, nil
	case suite.LambdaOpenMP:
		return func() error {
			return suite.ParallelFor(threads, n, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					body(i)
				}
			})
		}, nil
	case suite.LibOpenMP:
		return func() error { return suite.Forall(suite.ParExec(threads), 0, n, body) }, nil
	}
	return nil, suite.UnknownVariant(kernel, vid)
}

// Repeat calls fn reps times, stopping at the first error
func Repeat(reps int, fn func() error) error {
	for rep := 0; rep < reps; rep++ {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
