package stream

import (
	"github.com/notargets/gocca"
	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/runner/builder"
	"github.com/notargets/kernelperf/suite"
	"gonum.org/v1/gonum/floats"
)

// Each work group reduces its block in shared memory and writes one
// partial sum; the host adds the partials.
const dotBaseOKL = `{
	for (int ib = 0; ib < NBLOCKS; ++ib; @outer) {
		@shared real_t s[BLOCK_SIZE];
		for (int it = 0; it < BLOCK_SIZE; ++it; @inner) {
			const int i = ib * BLOCK_SIZE + it;
			s[it] = (i < N) ? a[i] * b[i] : REAL_ZERO;
		}
		for (int alive = BLOCK_SIZE / 2; alive > 0; alive /= 2) {
			for (int it = 0; it < BLOCK_SIZE; ++it; @inner) {
				if (it < alive) {
					s[it] += s[it + alive];
				}
			}
		}
		for (int it = 0; it < BLOCK_SIZE; ++it; @inner) {
			if (it == 0) {
				partial[ib] = s[0];
			}
		}
	}
}`

// DOT accumulates the dot product of a and b once per repetition
type DOT struct {
	d      *suite.Descriptor
	params *suite.RunParams
	dev    *gocca.OCCADevice

	a, b    []float64
	partial []float64
	dot     float64
	accel   *common.Accel
}

func NewDOT(p *suite.RunParams, dev *gocca.OCCADevice) *DOT {
	d := suite.NewDescriptor("DOT", suite.Stream)
	d.SetDefaultProblemSize(1000000)
	d.SetDefaultReps(2000)
	d.Configure(p)
	n := int64(d.ActualProblemSize())
	d.SetItsPerRep(n)
	d.SetKernelsPerRep(1)
	d.SetBytesPerRep(2 * 8 * n)
	d.SetFLOPsPerRep(2 * n)
	d.SetUsesFeature(suite.FeatureForall | suite.FeatureReduction)
	common.DefineVariants(d, dev, suite.BaseOCCA)
	return &DOT{d: d, params: p, dev: dev}
}

func (k *DOT) Descriptor() *suite.Descriptor { return k.d }

func (k *DOT) Tunings(vid suite.VariantID, p *suite.RunParams) suite.TuningSet {
	return common.BlockTunings(vid, p)
}

func (k *DOT) SetUp(p suite.Pass) error {
	n := k.d.ActualProblemSize()
	k.a = make([]float64, n)
	k.b = make([]float64, n)
	common.InitData(k.a, false)
	common.InitData(k.b, true)
	k.dot = 0

	if !p.Variant.Valid() {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}
	if p.Variant.Backend() != suite.BackendOCCA {
		return nil
	}
	if p.Variant != suite.BaseOCCA {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}

	bs, err := p.Tuning.BlockSize()
	if err != nil {
		return err
	}
	nblocks := common.NBlocks(n, bs)
	accel, err := common.NewAccel(k.d.Name(), k.dev, p, n, map[string]int{"NBLOCKS": nblocks})
	if err != nil {
		return err
	}
	k.accel = accel
	k.partial = make([]float64, nblocks)
	if err := accel.Bind(
		builder.Input("a").Bind(k.a),
		builder.Input("b").Bind(k.b),
		builder.Output("partial").Bind(k.partial),
	); err != nil {
		return err
	}
	return accel.Build("dot", dotBaseOKL,
		accel.Param("a"), accel.Param("b"), accel.Param("partial").CopyBack())
}

func (k *DOT) Run(p suite.Pass) error {
	reps := k.d.RunReps()
	a, b := k.a, k.b
	n := len(a)

	if k.accel != nil {
		for rep := 0; rep < reps; rep++ {
			if err := k.accel.Launch(); err != nil {
				return err
			}
			k.dot += floats.Sum(k.partial)
		}
		return nil
	}

	body := func(i int) float64 { return a[i] * b[i] }
	policy := common.Policy(p.Variant, k.params)
	var once func() (float64, error)
	switch p.Variant {
	case suite.BaseSeq:
		once = func() (float64, error) {
			var sum float64
			for i := 0; i < n; i++ {
				sum += a[i] * b[i]
			}
			return sum, nil
		}
	case suite.LambdaSeq:
		once = func() (float64, error) {
			var sum float64
			for i := 0; i < n; i++ {
				sum += body(i)
			}
			return sum, nil
		}
	case suite.LibSeq:
		once = func() (float64, error) { return floats.Dot(a, b), nil }
	case suite.BaseOpenMP:
		once = func() (float64, error) {
			return suite.ReduceSum(policy, n, func(lo, hi int) float64 {
				var sum float64
				for i := lo; i < hi; i++ {
					sum += a[i] * b[i]
				}
				return sum
			})
		}
	case suite.LambdaOpenMP:
		once = func() (float64, error) {
			return suite.ReduceSum(policy, n, func(lo, hi int) float64 {
				var sum float64
				for i := lo; i < hi; i++ {
					sum += body(i)
				}
				return sum
			})
		}
	case suite.LibOpenMP:
		once = func() (float64, error) {
			return suite.ReduceSum(policy, n, func(lo, hi int) float64 {
				return floats.Dot(a[lo:hi], b[lo:hi])
			})
		}
	default:
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}

	for rep := 0; rep < reps; rep++ {
		sum, err := once()
		if err != nil {
			return err
		}
		k.dot += sum
	}
	return nil
}

func (k *DOT) Checksum(p suite.Pass) (float64, error) {
	return suite.ChecksumScalars(k.d.ChecksumScale(), k.dot), nil
}

func (k *DOT) TearDown(p suite.Pass) error {
	if k.accel != nil {
		k.accel.Free()
		k.accel = nil
	}
	k.a, k.b, k.partial = nil, nil, nil
	return nil
}
