package stream

import (
	"github.com/notargets/gocca"
	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/suite"
)

const addBaseOKL = `{
	for (int ib = 0; ib < NBLOCKS; ++ib; @outer) {
		for (int it = 0; it < BLOCK_SIZE; ++it; @inner) {
			const int i = ib * BLOCK_SIZE + it;
			if (i < N) {
				c[i] = a[i] + b[i];
			}
		}
	}
}`

const addLibOKL = `{
	for (int i = 0; i < N; ++i; @tile(BLOCK_SIZE, @outer, @inner)) {
		c[i] = a[i] + b[i];
	}
}`

// ADD computes c = a + b
type ADD struct {
	d      *suite.Descriptor
	params *suite.RunParams
	dev    *gocca.OCCADevice

	a, b, c []float64
	accel   *common.Accel
}

// NewADD creates the ADD kernel. OCCA variants are defined only when dev
// is not nil.
func NewADD(p *suite.RunParams, dev *gocca.OCCADevice) *ADD {
	d := suite.NewDescriptor("ADD", suite.Stream)
	d.SetDefaultProblemSize(1000000)
	d.SetDefaultReps(1000)
	d.Configure(p)
	n := int64(d.ActualProblemSize())
	d.SetItsPerRep(n)
	d.SetKernelsPerRep(1)
	d.SetBytesPerRep(3 * 8 * n)
	d.SetFLOPsPerRep(n)
	d.SetUsesFeature(suite.FeatureForall)
	common.DefineVariants(d, dev, suite.BaseOCCA, suite.LibOCCA)
	return &ADD{d: d, params: p, dev: dev}
}

func (k *ADD) Descriptor() *suite.Descriptor { return k.d }

func (k *ADD) Tunings(vid suite.VariantID, p *suite.RunParams) suite.TuningSet {
	return common.BlockTunings(vid, p)
}

func (k *ADD) SetUp(p suite.Pass) error {
	n := k.d.ActualProblemSize()
	k.a = make([]float64, n)
	k.b = make([]float64, n)
	k.c = make([]float64, n)
	common.InitData(k.a, false)
	common.InitData(k.b, true)

	if !p.Variant.Valid() {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}
	if p.Variant.Backend() != suite.BackendOCCA {
		return nil
	}
	return k.setUpAccel(p)
}

func (k *ADD) setUpAccel(p suite.Pass) error {
	n := k.d.ActualProblemSize()
	bs, err := p.Tuning.BlockSize()
	if err != nil {
		return err
	}
	accel, err := common.NewAccel(k.d.Name(), k.dev, p, n, map[string]int{"NBLOCKS": common.NBlocks(n, bs)})
	if err != nil {
		return err
	}
	k.accel = accel
	if err := bindABC(accel, k.a, k.b, k.c); err != nil {
		return err
	}
	body := addLibOKL
	if p.Variant == suite.BaseOCCA {
		body = addBaseOKL
	}
	return accel.Build("add", body, accel.Param("a"), accel.Param("b"), accel.Param("c"))
}

func (k *ADD) Run(p suite.Pass) error {
	reps := k.d.RunReps()
	a, b, c := k.a, k.b, k.c

	if k.accel != nil {
		for rep := 0; rep < reps; rep++ {
			if err := k.accel.Launch(); err != nil {
				return err
			}
		}
		return nil
	}

	loop, err := common.HostLoop(k.d.Name(), p.Variant, k.params, len(c),
		func(lo, hi int) {
			for i := lo; i < hi; i++ {
				c[i] = a[i] + b[i]
			}
		},
		func(i int) { c[i] = a[i] + b[i] })
	if err != nil {
		return err
	}
	return common.Repeat(reps, loop)
}

func (k *ADD) Checksum(p suite.Pass) (float64, error) {
	if k.accel != nil {
		if err := k.accel.Download("c"); err != nil {
			return 0, err
		}
	}
	return suite.Checksum(k.c, k.d.ChecksumScale()), nil
}

func (k *ADD) TearDown(p suite.Pass) error {
	if k.accel != nil {
		k.accel.Free()
		k.accel = nil
	}
	k.a, k.b, k.c = nil, nil, nil
	return nil
}
