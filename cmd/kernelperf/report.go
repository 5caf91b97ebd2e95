package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/notargets/kernelperf/suite"
)

func writeHeader(w io.Writer, info suite.HostInfo, p *suite.RunParams, deviceMode string) {
	fmt.Fprintln(w, "=== kernelperf ===")
	fmt.Fprintf(w, "Host: %s/%s, %d CPUs, %d threads\n", info.GOOS, info.GOARCH, info.NumCPU, info.Threads)
	if len(info.Features) > 0 {
		fmt.Fprintf(w, "CPU features: %s\n", strings.Join(info.Features, " "))
	}
	fmt.Fprintf(w, "Accelerator: %s\n", deviceMode)
	fmt.Fprintf(w, "Passes: %d, size factor %g, rep factor %g\n\n", p.NPasses, p.SizeFactor, p.RepFactor)
}

// writeTimings prints one line per (kernel, variant, tuning) with the mean
// time per repetition and the derived bandwidth and flop rate
func writeTimings(w io.Writer, r *suite.Results, kernels []suite.Kernel) {
	descriptors := make(map[string]*suite.Descriptor, len(kernels))
	for _, k := range kernels {
		descriptors[k.Descriptor().Name()] = k.Descriptor()
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Kernel\tVariant\tTuning\tReps\tPasses\tTime/rep (us)\tGB/s\tGFLOP/s\tChecksum")
	for _, name := range r.Kernels() {
		d := descriptors[name]
		for _, rec := range r.ForKernel(name) {
			perRep := rec.PerRep().Seconds()
			var gbs, gflops float64
			if d != nil && perRep > 0 {
				gbs = float64(d.BytesPerRep()) / perRep / 1e9
				gflops = float64(d.FLOPsPerRep()) / perRep / 1e9
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.12e\n",
				rec.Kernel, rec.Variant, rec.TuningName, rec.Reps, rec.Passes,
				perRep*1e6, gbs, gflops, rec.Checksum)
		}
	}
	tw.Flush()

	for _, diag := range r.Diagnostics {
		fmt.Fprintf(w, "skipped %s %s: %v\n", diag.Kernel, diag.Variant, diag.Err)
	}
	fmt.Fprintln(w)
}

// writeChecksums compares every record with the first record of its kernel
func writeChecksums(w io.Writer, r *suite.Results, tol float64) {
	mismatches := suite.CompareChecksums(r, tol)
	if len(mismatches) == 0 {
		fmt.Fprintf(w, "Checksums: all variants agree within %g\n", tol)
		return
	}
	fmt.Fprintf(w, "Checksums: %d mismatches (tolerance %g)\n", len(mismatches), tol)
	for _, m := range mismatches {
		fmt.Fprintf(w, "  %s %s/%s differs from %s/%s by %.6e\n",
			m.Record.Kernel, m.Record.Variant, m.Record.TuningName,
			m.Reference.Variant, m.Reference.TuningName, m.Diff)
	}
}
