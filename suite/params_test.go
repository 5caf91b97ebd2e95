package suite

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRunParams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := `
npasses: 2
size_factor: 0.25
block_sizes: [128, 256]
kernels: [ADD, Polybench]
variants: [Base_Seq, lib_occa]
device: none
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := LoadRunParams(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NPasses)
	assert.Equal(t, 0.25, p.SizeFactor)
	assert.Equal(t, 1.0, p.RepFactor, "unset keys keep defaults")
	assert.Equal(t, 2, p.NumValidBlockSizes())
	assert.True(t, p.ValidBlockSize(256))
	assert.False(t, p.AcceptBlockSize(512))
	assert.True(t, p.KernelSelected("add", Stream))
	assert.True(t, p.KernelSelected("FLOYD_WARSHALL", Polybench))
	assert.False(t, p.KernelSelected("DOT", Stream))
	assert.True(t, p.VariantSelected(LibOCCA))
	assert.False(t, p.VariantSelected(BaseOpenMP))
	assert.False(t, p.AcceleratorEnabled())
}

func TestLoadRunParams_Errors(t *testing.T) {
	_, err := LoadRunParams(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variants: [Nope_Seq]\n"), 0644))
	_, err = LoadRunParams(path)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestRunParams_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(p *RunParams)
	}{
		{"npasses", func(p *RunParams) { p.NPasses = 0 }},
		{"rep_factor", func(p *RunParams) { p.RepFactor = 0 }},
		{"size_factor", func(p *RunParams) { p.SizeFactor = -1 }},
		{"size", func(p *RunParams) { p.Size = -5 }},
		{"block_size", func(p *RunParams) { p.BlockSizes = []int{0} }},
		{"threads", func(p *RunParams) { p.Threads = -1 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultRunParams()
			require.NoError(t, p.Validate())
			tc.modify(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestRunParams_RepsAndSize(t *testing.T) {
	p := DefaultRunParams()
	p.RepFactor = 0.001
	assert.Equal(t, 1, p.Reps(100), "reps never drop below one")
	p.SizeFactor = 2
	assert.Equal(t, 200, p.ActualProblemSize(100))
}

func TestVariantID(t *testing.T) {
	assert.Equal(t, "Base_Seq", BaseSeq.String())
	assert.Equal(t, "Lib_OCCA", LibOCCA.String())
	assert.Equal(t, BackendOpenMP, LambdaOpenMP.Backend())
	assert.Equal(t, StyleLib, LibSeq.Style())
	assert.Equal(t, "Unknown_42", VariantID(42).String())
	assert.False(t, VariantID(-1).Valid())
	assert.Equal(t, Backend(0), VariantID(42).Backend())

	v, err := ParseVariant("lambda_openmp")
	require.NoError(t, err)
	assert.Equal(t, LambdaOpenMP, v)
	assert.Len(t, AllVariants(), int(NumVariants))
}

func TestFeature_String(t *testing.T) {
	f := FeatureForall | FeatureReduction
	assert.Equal(t, "Forall|Reduction", f.String())
	assert.True(t, f.Has(FeatureReduction))
	assert.False(t, f.Has(FeatureAtomic))
	assert.Equal(t, "none", Feature(0).String())
}

func TestForall(t *testing.T) {
	for _, threads := range []int{1, 2, 3, 8, 64} {
		const n = 1001
		var hits [n]int32
		require.NoError(t, Forall(ParExec(threads), 0, n, func(i int) {
			atomic.AddInt32(&hits[i], 1)
		}))
		for i := range hits {
			if hits[i] != 1 {
				t.Fatalf("threads=%d: index %d visited %d times", threads, i, hits[i])
			}
		}
	}

	var visited []int
	require.NoError(t, Forall(SeqExec, 3, 6, func(i int) { visited = append(visited, i) }))
	assert.Equal(t, []int{3, 4, 5}, visited)

	require.NoError(t, Forall(ParExec(4), 5, 5, func(i int) { t.Fatal("empty range must not call body") }))
}

func TestReduceSum(t *testing.T) {
	data := make([]float64, 999)
	for i := range data {
		data[i] = float64(i)
	}
	partial := func(lo, hi int) float64 {
		var s float64
		for i := lo; i < hi; i++ {
			s += data[i]
		}
		return s
	}
	want := 998.0 * 999.0 / 2
	for _, threads := range []int{1, 2, 7, 16} {
		got, err := ReduceSum(ParExec(threads), len(data), partial)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := ReduceSum(SeqExec, 0, partial)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestReduce_MinMax(t *testing.T) {
	data := []float64{3, -1, 7, 2, 9, -4, 5}
	type bounds struct{ lo, hi float64 }
	identity := bounds{lo: 1e300, hi: -1e300}
	partial := func(lo, hi int) bounds {
		b := identity
		for i := lo; i < hi; i++ {
			b.lo = min(b.lo, data[i])
			b.hi = max(b.hi, data[i])
		}
		return b
	}
	combine := func(a, b bounds) bounds { return bounds{min(a.lo, b.lo), max(a.hi, b.hi)} }
	for _, threads := range []int{1, 2, 3, 16} {
		got, err := Reduce(ParExec(threads), len(data), identity, partial, combine)
		require.NoError(t, err)
		assert.Equal(t, bounds{-4, 9}, got, "threads=%d", threads)
	}
	got, err := Reduce(ParExec(4), 0, identity, partial, combine)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestParallelFor_CoversRange(t *testing.T) {
	for _, threads := range []int{1, 3, 8} {
		var covered int64
		err := ParallelFor(threads, 100, func(lo, hi int) {
			atomic.AddInt64(&covered, int64(hi-lo))
		})
		require.NoError(t, err, "threads=%d", threads)
		assert.Equal(t, int64(100), covered, "threads=%d", threads)
	}
	assert.NoError(t, ParallelFor(4, 0, func(lo, hi int) { t.Fatal("empty range must not call body") }))
}

func TestDescribeHost(t *testing.T) {
	p := DefaultRunParams()
	p.Threads = 3
	info := DescribeHost(&p)
	assert.Equal(t, 3, info.Threads)
	assert.Greater(t, info.NumCPU, 0)
	assert.NotEmpty(t, info.GOARCH)
}
