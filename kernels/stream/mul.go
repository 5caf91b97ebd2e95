package stream

import (
	"github.com/notargets/gocca"
	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/runner/builder"
	"github.com/notargets/kernelperf/suite"
)

const mulBaseOKL = `{
	for (int ib = 0; ib < NBLOCKS; ++ib; @outer) {
		for (int it = 0; it < BLOCK_SIZE; ++it; @inner) {
			const int i = ib * BLOCK_SIZE + it;
			if (i < N) {
				b[i] = alpha * c[i];
			}
		}
	}
}`

const mulLibOKL = `{
	for (int i = 0; i < N; ++i; @tile(BLOCK_SIZE, @outer, @inner)) {
		b[i] = alpha * c[i];
	}
}`

// MUL computes b = alpha * c
type MUL struct {
	d      *suite.Descriptor
	params *suite.RunParams
	dev    *gocca.OCCADevice
	alpha  float64

	b, c  []float64
	accel *common.Accel
}

func NewMUL(p *suite.RunParams, dev *gocca.OCCADevice) *MUL {
	d := suite.NewDescriptor("MUL", suite.Stream)
	d.SetDefaultProblemSize(1000000)
	d.SetDefaultReps(1800)
	d.Configure(p)
	n := int64(d.ActualProblemSize())
	d.SetItsPerRep(n)
	d.SetKernelsPerRep(1)
	d.SetBytesPerRep(2 * 8 * n)
	d.SetFLOPsPerRep(n)
	d.SetUsesFeature(suite.FeatureForall)
	common.DefineVariants(d, dev, suite.BaseOCCA, suite.LibOCCA)
	return &MUL{d: d, params: p, dev: dev, alpha: 0.85}
}

func (k *MUL) Descriptor() *suite.Descriptor { return k.d }

func (k *MUL) Tunings(vid suite.VariantID, p *suite.RunParams) suite.TuningSet {
	return common.BlockTunings(vid, p)
}

func (k *MUL) SetUp(p suite.Pass) error {
	n := k.d.ActualProblemSize()
	k.b = make([]float64, n)
	k.c = make([]float64, n)
	common.InitData(k.c, false)

	if !p.Variant.Valid() {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}
	if p.Variant.Backend() != suite.BackendOCCA {
		return nil
	}

	bs, err := p.Tuning.BlockSize()
	if err != nil {
		return err
	}
	accel, err := common.NewAccel(k.d.Name(), k.dev, p, n, map[string]int{"NBLOCKS": common.NBlocks(n, bs)})
	if err != nil {
		return err
	}
	k.accel = accel
	if err := accel.Bind(
		builder.Input("c").Bind(k.c),
		builder.Output("b").Bind(k.b),
		builder.Scalar("alpha").Bind(k.alpha),
	); err != nil {
		return err
	}
	body := mulLibOKL
	if p.Variant == suite.BaseOCCA {
		body = mulBaseOKL
	}
	return accel.Build("mul", body, accel.Param("c"), accel.Param("b"), accel.Param("alpha"))
}

func (k *MUL) Run(p suite.Pass) error {
	reps := k.d.RunReps()
	b, c, alpha := k.b, k.c, k.alpha

	if k.accel != nil {
		for rep := 0; rep < reps; rep++ {
			if err := k.accel.Launch(); err != nil {
				return err
			}
		}
		return nil
	}

	loop, err := common.HostLoop(k.d.Name(), p.Variant, k.params, len(b),
		func(lo, hi int) {
			for i := lo; i < hi; i++ {
				b[i] = alpha * c[i]
			}
		},
		func(i int) { b[i] = alpha * c[i] })
	if err != nil {
		return err
	}
	return common.Repeat(reps, loop)
}

func (k *MUL) Checksum(p suite.Pass) (float64, error) {
	if k.accel != nil {
		if err := k.accel.Download("b"); err != nil {
			return 0, err
		}
	}
	return suite.Checksum(k.b, k.d.ChecksumScale()), nil
}

func (k *MUL) TearDown(p suite.Pass) error {
	if k.accel != nil {
		k.accel.Free()
		k.accel = nil
	}
	k.b, k.c = nil, nil
	return nil
}
