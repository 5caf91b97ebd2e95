// Package polybench holds kernels from the Polybench suite
package polybench

import (
	"math"

	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/suite"
	"gonum.org/v1/gonum/mat"
)

// FloydWarshall computes all-pairs shortest path lengths in place
type FloydWarshall struct {
	d      *suite.Descriptor
	params *suite.RunParams
	n      int

	dist *mat.Dense
}

func NewFloydWarshall(p *suite.RunParams) *FloydWarshall {
	d := suite.NewDescriptor("FLOYD_WARSHALL", suite.Polybench)
	d.SetDefaultProblemSize(1000 * 1000)
	d.SetDefaultReps(8)
	d.Configure(p)

	n := int(math.Sqrt(float64(d.ActualProblemSize())) + 0.5)
	if n < 1 {
		n = 1
	}
	d.SetActualProblemSize(n * n)
	nn := int64(n) * int64(n)
	d.SetItsPerRep(nn)
	d.SetKernelsPerRep(int64(n))
	d.SetBytesPerRep(2 * 8 * nn)
	d.SetFLOPsPerRep(int64(n) * nn)
	d.SetUsesFeature(suite.FeatureForall | suite.FeatureView)
	common.DefineVariants(d, nil)
	return &FloydWarshall{d: d, params: p, n: n}
}

func (k *FloydWarshall) Descriptor() *suite.Descriptor { return k.d }

func (k *FloydWarshall) SetUp(p suite.Pass) error {
	if !p.Variant.Valid() || p.Variant.Backend() == suite.BackendOCCA {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}
	n := k.n
	k.dist = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := float64((i*j)%7 + 1)
			if (i+j)%13 == 0 || (i+j)%7 == 0 || (i+j)%11 == 0 {
				v = 999
			}
			k.dist.Set(i, j, v)
		}
	}
	return nil
}

func (k *FloydWarshall) Run(p suite.Pass) error {
	n := k.n
	raw := k.dist.RawMatrix()
	data, stride := raw.Data, raw.Stride
	policy := common.Policy(p.Variant, k.params)

	// row kernel for one (k, i): relax every j through k
	base := func(kk, i int) {
		rowI := data[i*stride : i*stride+n]
		rowK := data[kk*stride : kk*stride+n]
		dik := rowI[kk]
		for j := range rowI {
			if d := dik + rowK[j]; d < rowI[j] {
				rowI[j] = d
			}
		}
	}
	body := func(kk, i, j int) {
		if d := data[i*stride+kk] + data[kk*stride+j]; d < data[i*stride+j] {
			data[i*stride+j] = d
		}
	}
	view := func(kk, i int) {
		rowI := k.dist.RawRowView(i)
		rowK := k.dist.RawRowView(kk)
		dik := k.dist.At(i, kk)
		for j, dkj := range rowK {
			if d := dik + dkj; d < rowI[j] {
				rowI[j] = d
			}
		}
	}

	var row func(kk, i int)
	switch p.Variant.Style() {
	case suite.StyleBase:
		row = base
	case suite.StyleLambda:
		row = func(kk, i int) {
			for j := 0; j < n; j++ {
				body(kk, i, j)
			}
		}
	default:
		row = view
	}

	for rep := 0; rep < k.d.RunReps(); rep++ {
		for kk := 0; kk < n; kk++ {
			if err := suite.Forall(policy, 0, n, func(i int) { row(kk, i) }); err != nil {
				return err
			}
		}
	}
	return nil
}

func (k *FloydWarshall) Checksum(p suite.Pass) (float64, error) {
	return suite.Checksum(k.dist.RawMatrix().Data, k.d.ChecksumScale()), nil
}

func (k *FloydWarshall) TearDown(p suite.Pass) error {
	k.dist = nil
	return nil
}
