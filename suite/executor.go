// File: suite/executor.go

package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// Executor runs the variant/tuning sweep. Passes are strictly sequential:
// no two (variant, tuning) passes ever overlap.
type Executor struct {
	Params *RunParams
	log    *log.Logger
}

// NewExecutor creates an executor reporting diagnostics to diag
// (os.Stderr when nil)
func NewExecutor(params *RunParams, diag io.Writer) *Executor {
	if diag == nil {
		diag = os.Stderr
	}
	return &Executor{
		Params: params,
		log:    log.New(diag, "", 0),
	}
}

// Register builds each variant's tuning set once and stores it on the
// kernel's descriptor. Descriptors that already carry their sets, from this
// or any earlier executor, are left as they are.
func (e *Executor) Register(kernels ...Kernel) error {
	for _, k := range kernels {
		d := k.Descriptor()
		if d.TuningsRegistered() {
			continue
		}
		tuner, hasTunings := k.(Tuner)
		for _, vid := range d.Variants() {
			ts := DefaultTunings()
			if hasTunings {
				ts = tuner.Tunings(vid, e.Params)
			}
			if err := d.registerTunings(vid, ts); err != nil {
				return err
			}
		}
		d.registered = true
	}
	return nil
}

// Run sweeps every selected kernel, variant and tuning index NPasses times.
// Unknown variants are reported and skipped; any other error aborts the run
// and is returned together with the results gathered so far.
func (e *Executor) Run(ctx context.Context, kernels []Kernel) (*Results, error) {
	if err := e.Register(kernels...); err != nil {
		return nil, err
	}
	results := NewResults()
	npasses := e.Params.NPasses
	if npasses < 1 {
		npasses = 1
	}
	for pass := 0; pass < npasses; pass++ {
		for _, k := range kernels {
			d := k.Descriptor()
			if !e.Params.KernelSelected(d.Name(), d.Group()) {
				continue
			}
			if err := e.runKernel(ctx, k, results); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

func (e *Executor) runKernel(ctx context.Context, k Kernel, results *Results) error {
	d := k.Descriptor()
	for _, vid := range d.Variants() {
		if vid.Valid() && !e.Params.VariantSelected(vid) {
			continue
		}
		ts, _ := d.Tunings(vid)
		for idx, tuning := range ts {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := Pass{Variant: vid, Index: idx, Tuning: tuning}
			err := e.runPass(k, p, results)
			if err == nil {
				continue
			}
			if errors.Is(err, ErrUnknownVariant) {
				e.log.Printf("\n  %s : Unknown variant id = %d (%v)", d.Name(), int(vid), err)
				results.Report(Diagnostic{Kernel: d.Name(), Variant: vid, Tuning: idx, Err: err})
				break
			}
			return err
		}
	}
	return nil
}

// runPass performs exactly one lifecycle pass and records its slot
func (e *Executor) runPass(k Kernel, p Pass, results *Results) (err error) {
	d := k.Descriptor()
	lc := NewLifecycle(k, p)
	defer func() {
		if tdErr := lc.TearDown(); tdErr != nil && err == nil {
			err = tdErr
		}
	}()

	if err = lc.SetUp(); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	elapsed, err := lc.Run()
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	sum, err := lc.UpdateChecksum()
	if err != nil {
		return fmt.Errorf("checksum failed: %w", err)
	}

	key := Key{Kernel: d.Name(), Variant: p.Variant, Tuning: p.Index}
	results.AddTime(key, p.Tuning.Name, d.RunReps(), elapsed)
	results.AddChecksum(key, p.Tuning.Name, d.RunReps(), sum)
	return nil
}
