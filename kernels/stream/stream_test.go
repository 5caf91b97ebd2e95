package stream

import (
	"bytes"
	"context"
	"testing"

	"github.com/notargets/kernelperf/suite"
	"github.com/notargets/kernelperf/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams() *suite.RunParams {
	p := suite.DefaultRunParams()
	p.Size = 1000
	p.RepFactor = 0.002
	p.Threads = 4
	p.BlockSizes = []int{64, 256}
	return &p
}

func runAll(t *testing.T, p *suite.RunParams, kernels ...suite.Kernel) *suite.Results {
	results, err := suite.NewExecutor(p, &bytes.Buffer{}).Run(context.Background(), kernels)
	require.NoError(t, err)
	assert.Empty(t, results.Diagnostics)
	return results
}

func TestStream_HostVariantsAgree(t *testing.T) {
	p := smallParams()
	results := runAll(t, p, NewADD(p, nil), NewMUL(p, nil), NewDOT(p, nil))

	for _, name := range []string{"ADD", "MUL", "DOT"} {
		recs := results.ForKernel(name)
		require.Len(t, recs, 6, name)
		for _, rec := range recs {
			assert.NotEqual(t, suite.BackendOCCA, rec.Variant.Backend())
			assert.NotZero(t, rec.Checksum, "%s %s", name, rec.Variant)
		}
	}
	assert.Empty(t, suite.CompareChecksums(results, 1e-10))
}

func TestStream_ADDValues(t *testing.T) {
	p := smallParams()
	k := NewADD(p, nil)
	pass := suite.Pass{Variant: suite.BaseOpenMP, Tuning: suite.DefaultTunings()[0]}
	require.NoError(t, k.SetUp(pass))
	require.NoError(t, k.Run(pass))
	for i := range k.c {
		require.Equal(t, k.a[i]+k.b[i], k.c[i])
	}
	require.NoError(t, k.TearDown(pass))

	assert.ErrorIs(t, k.SetUp(suite.Pass{Variant: suite.VariantID(77)}), suite.ErrUnknownVariant)
}

func TestStream_DOTReference(t *testing.T) {
	p := smallParams()
	k := NewDOT(p, nil)
	pass := suite.Pass{Variant: suite.LibSeq, Tuning: suite.DefaultTunings()[0]}
	require.NoError(t, k.SetUp(pass))
	var want float64
	for i := range k.a {
		want += k.a[i] * k.b[i]
	}
	require.NoError(t, k.Run(pass))
	assert.InDelta(t, want*float64(k.d.RunReps()), k.dot, 1e-9)
}

func TestStream_AcceleratorVariants(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles device kernels")
	}
	device := utils.CreateTestDevice()
	defer device.Free()

	p := smallParams()
	add, mul, dot := NewADD(p, device), NewMUL(p, device), NewDOT(p, device)
	assert.True(t, add.d.HasVariant(suite.LibOCCA))
	assert.False(t, dot.d.HasVariant(suite.LibOCCA))

	results := runAll(t, p, add, mul, dot)
	assert.Equal(t, []string{"block_64", "block_256"}, add.d.TuningNames(suite.BaseOCCA))
	assert.Len(t, results.ForKernel("ADD"), 6+2+2)
	assert.Len(t, results.ForKernel("DOT"), 6+2)
	assert.Empty(t, suite.CompareChecksums(results, 1e-9))
}
