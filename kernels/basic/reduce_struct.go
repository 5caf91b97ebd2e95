// Package basic holds small reduction kernels
package basic

import (
	"math"

	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/suite"
	"gonum.org/v1/gonum/floats"
)

// bounds is the per-axis sum, min and max of a point set
type bounds struct {
	xsum, xmin, xmax float64
	ysum, ymin, ymax float64
}

var emptyBounds = bounds{
	xmin: math.Inf(1), xmax: math.Inf(-1),
	ymin: math.Inf(1), ymax: math.Inf(-1),
}

func (b bounds) add(x, y float64) bounds {
	b.xsum += x
	b.xmin = math.Min(b.xmin, x)
	b.xmax = math.Max(b.xmax, x)
	b.ysum += y
	b.ymin = math.Min(b.ymin, y)
	b.ymax = math.Max(b.ymax, y)
	return b
}

func combineBounds(a, b bounds) bounds {
	return bounds{
		xsum: a.xsum + b.xsum, xmin: math.Min(a.xmin, b.xmin), xmax: math.Max(a.xmax, b.xmax),
		ysum: a.ysum + b.ysum, ymin: math.Min(a.ymin, b.ymin), ymax: math.Max(a.ymax, b.ymax),
	}
}

// ReduceStruct computes the center and bounding box of a point set with
// six simultaneous reductions
type ReduceStruct struct {
	d      *suite.Descriptor
	params *suite.RunParams

	x, y   []float64
	result bounds
}

func NewReduceStruct(p *suite.RunParams) *ReduceStruct {
	d := suite.NewDescriptor("REDUCE_STRUCT", suite.Basic)
	d.SetDefaultProblemSize(1000000)
	d.SetDefaultReps(50)
	d.Configure(p)
	n := int64(d.ActualProblemSize())
	d.SetItsPerRep(n)
	d.SetKernelsPerRep(1)
	d.SetBytesPerRep(2 * 8 * n)
	d.SetFLOPsPerRep(2 * n)
	d.SetUsesFeature(suite.FeatureForall | suite.FeatureReduction)
	common.DefineVariants(d, nil)
	return &ReduceStruct{d: d, params: p}
}

func (k *ReduceStruct) Descriptor() *suite.Descriptor { return k.d }

func (k *ReduceStruct) SetUp(p suite.Pass) error {
	if !p.Variant.Valid() || p.Variant.Backend() == suite.BackendOCCA {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}
	n := k.d.ActualProblemSize()
	k.x = make([]float64, n)
	k.y = make([]float64, n)
	dx := 2 * math.Pi / float64(n)
	for i := range k.x {
		k.x[i] = float64(i) * dx
		k.y[i] = math.Sin(float64(i) * dx)
	}
	k.result = emptyBounds
	return nil
}

func (k *ReduceStruct) Run(p suite.Pass) error {
	x, y := k.x, k.y
	n := len(x)
	policy := common.Policy(p.Variant, k.params)

	loop := func(lo, hi int) bounds {
		b := emptyBounds
		for i := lo; i < hi; i++ {
			b.xsum += x[i]
			b.xmin = math.Min(b.xmin, x[i])
			b.xmax = math.Max(b.xmax, x[i])
			b.ysum += y[i]
			b.ymin = math.Min(b.ymin, y[i])
			b.ymax = math.Max(b.ymax, y[i])
		}
		return b
	}
	lambda := func(lo, hi int) bounds {
		b := emptyBounds
		for i := lo; i < hi; i++ {
			b = b.add(x[i], y[i])
		}
		return b
	}
	lib := func(lo, hi int) bounds {
		xs, ys := x[lo:hi], y[lo:hi]
		return bounds{
			xsum: floats.Sum(xs), xmin: floats.Min(xs), xmax: floats.Max(xs),
			ysum: floats.Sum(ys), ymin: floats.Min(ys), ymax: floats.Max(ys),
		}
	}

	var partial func(lo, hi int) bounds
	switch p.Variant.Style() {
	case suite.StyleBase:
		partial = loop
	case suite.StyleLambda:
		partial = lambda
	default:
		partial = lib
	}

	for rep := 0; rep < k.d.RunReps(); rep++ {
		r, err := suite.Reduce(policy, n, emptyBounds, partial, combineBounds)
		if err != nil {
			return err
		}
		k.result = r
	}
	return nil
}

func (k *ReduceStruct) Checksum(p suite.Pass) (float64, error) {
	n := float64(len(k.x))
	r := k.result
	return suite.ChecksumScalars(k.d.ChecksumScale(),
		r.xsum/n, r.xmin, r.xmax, r.ysum/n, r.ymin, r.ymax), nil
}

func (k *ReduceStruct) TearDown(p suite.Pass) error {
	k.x, k.y = nil, nil
	return nil
}
