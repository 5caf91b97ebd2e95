package basic

import (
	"math"

	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/suite"
)

func trapIntFunc(x, y, xp, yp float64) float64 {
	denom := (x-xp)*(x-xp) + (y-yp)*(y-yp)
	return 1.0 / math.Sqrt(denom)
}

// TrapInt integrates 1/|p - p0| along a line with the trapezoid rule
type TrapInt struct {
	d      *suite.Descriptor
	params *suite.RunParams

	x0, xp, y, yp, h float64
	sumx             float64
}

func NewTrapInt(p *suite.RunParams) *TrapInt {
	d := suite.NewDescriptor("TRAP_INT", suite.Basic)
	d.SetDefaultProblemSize(1000000)
	d.SetDefaultReps(50)
	d.Configure(p)
	n := int64(d.ActualProblemSize())
	d.SetItsPerRep(n)
	d.SetKernelsPerRep(1)
	d.SetBytesPerRep(0)
	d.SetFLOPsPerRep(10 * n)
	d.SetUsesFeature(suite.FeatureForall | suite.FeatureReduction)
	common.DefineVariants(d, nil)
	return &TrapInt{d: d, params: p}
}

func (k *TrapInt) Descriptor() *suite.Descriptor { return k.d }

func (k *TrapInt) SetUp(p suite.Pass) error {
	if !p.Variant.Valid() || p.Variant.Backend() == suite.BackendOCCA {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}
	n := k.d.ActualProblemSize()
	k.x0, k.xp = 0.0, 1.5
	k.y, k.yp = 0.25, 1.0
	k.h = 1.0 / float64(n)
	k.sumx = 0
	return nil
}

func (k *TrapInt) Run(p suite.Pass) error {
	n := k.d.ActualProblemSize()
	x0, xp, y, yp, h := k.x0, k.xp, k.y, k.yp, k.h
	policy := common.Policy(p.Variant, k.params)

	body := func(i int) float64 {
		return trapIntFunc(x0+float64(i)*h, y, xp, yp)
	}
	var partial func(lo, hi int) float64
	switch p.Variant.Style() {
	case suite.StyleBase:
		partial = func(lo, hi int) float64 {
			var sum float64
			for i := lo; i < hi; i++ {
				x := x0 + float64(i)*h
				sum += trapIntFunc(x, y, xp, yp)
			}
			return sum
		}
	default:
		partial = func(lo, hi int) float64 {
			var sum float64
			for i := lo; i < hi; i++ {
				sum += body(i)
			}
			return sum
		}
	}

	// trapezoid rule: the two endpoints carry half weight
	ends := 0.5 * (trapIntFunc(x0+float64(n)*h, y, xp, yp) - body(0))
	for rep := 0; rep < k.d.RunReps(); rep++ {
		sum, err := suite.ReduceSum(policy, n, partial)
		if err != nil {
			return err
		}
		k.sumx += (sum + ends) * h
	}
	return nil
}

func (k *TrapInt) Checksum(p suite.Pass) (float64, error) {
	return suite.ChecksumScalars(k.d.ChecksumScale(), k.sumx), nil
}

func (k *TrapInt) TearDown(p suite.Pass) error {
	return nil
}
