package basic

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/notargets/kernelperf/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams() *suite.RunParams {
	p := suite.DefaultRunParams()
	p.Size = 2000
	p.RepFactor = 0.05
	p.Threads = 3
	return &p
}

func TestBasic_VariantsAgree(t *testing.T) {
	p := smallParams()
	rs, ti := NewReduceStruct(p), NewTrapInt(p)
	results, err := suite.NewExecutor(p, &bytes.Buffer{}).Run(context.Background(), []suite.Kernel{rs, ti})
	require.NoError(t, err)

	assert.Len(t, results.ForKernel("REDUCE_STRUCT"), 6)
	assert.Len(t, results.ForKernel("TRAP_INT"), 6)
	assert.True(t, rs.d.UsesFeature(suite.FeatureReduction))
	assert.Empty(t, suite.CompareChecksums(results, 1e-10))
}

func TestReduceStruct_Bounds(t *testing.T) {
	p := smallParams()
	k := NewReduceStruct(p)
	for _, vid := range []suite.VariantID{suite.BaseSeq, suite.LibOpenMP} {
		pass := suite.Pass{Variant: vid, Tuning: suite.DefaultTunings()[0]}
		require.NoError(t, k.SetUp(pass))
		require.NoError(t, k.Run(pass))
		assert.Equal(t, 0.0, k.result.xmin)
		assert.Equal(t, k.x[len(k.x)-1], k.result.xmax)
		assert.InDelta(t, 1.0, k.result.ymax, 1e-5)
		assert.InDelta(t, -1.0, k.result.ymin, 1e-5)
		require.NoError(t, k.TearDown(pass))
	}
	assert.ErrorIs(t, k.SetUp(suite.Pass{Variant: suite.BaseOCCA}), suite.ErrUnknownVariant)
}

func TestTrapInt_Integral(t *testing.T) {
	p := smallParams()
	p.RepFactor = 1.0 / 50
	k := NewTrapInt(p)
	pass := suite.Pass{Variant: suite.LambdaSeq, Tuning: suite.DefaultTunings()[0]}
	require.NoError(t, k.SetUp(pass))
	require.NoError(t, k.Run(pass))
	require.Equal(t, 1, k.d.RunReps())

	// closed form of the integral of 1/sqrt((x-xp)^2 + c^2) over [0,1]
	c := k.y - k.yp
	f := func(x float64) float64 { return math.Asinh((x - k.xp) / math.Abs(c)) }
	assert.InDelta(t, f(1)-f(0), k.sumx, 1e-6)
}
