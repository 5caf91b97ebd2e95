// Package kernels is the registry of every benchmarked kernel
package kernels

import (
	"github.com/notargets/gocca"
	"github.com/notargets/kernelperf/kernels/apps"
	"github.com/notargets/kernelperf/kernels/basic"
	"github.com/notargets/kernelperf/kernels/polybench"
	"github.com/notargets/kernelperf/kernels/stream"
	"github.com/notargets/kernelperf/suite"
)

// All builds every kernel for p in group order. dev may be nil, in which
// case no accelerator variants are defined.
func All(p *suite.RunParams, dev *gocca.OCCADevice) []suite.Kernel {
	return []suite.Kernel{
		basic.NewReduceStruct(p),
		basic.NewTrapInt(p),
		stream.NewADD(p, dev),
		stream.NewMUL(p, dev),
		stream.NewDOT(p, dev),
		apps.NewHaloExchangeFused(p),
		polybench.NewFloydWarshall(p),
	}
}

// Selected is All filtered by the run's kernel selection
func Selected(p *suite.RunParams, dev *gocca.OCCADevice) []suite.Kernel {
	var out []suite.Kernel
	for _, k := range All(p, dev) {
		d := k.Descriptor()
		if p.KernelSelected(d.Name(), d.Group()) {
			out = append(out, k)
		}
	}
	return out
}
