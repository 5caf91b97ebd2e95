package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoNeighborFixture: lists of length 3 and 2, two variables
func twoNeighborFixture() (buffers [][]float64, lists [][]int, vars [][]float64) {
	lists = [][]int{{0, 2, 4}, {1, 3}}
	vars = [][]float64{
		{10, 11, 12, 13, 14},
		{20, 21, 22, 23, 24},
	}
	buffers = make([][]float64, len(lists))
	for l := range lists {
		buffers[l] = make([]float64, BufferLen(lists[l], len(vars)))
	}
	return
}

func TestPool_PackMatchesSequential(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			buffers, lists, vars := twoNeighborFixture()
			wantBuf, _, _ := twoNeighborFixture()
			RunNeighbors(Pack, wantBuf, lists, vars)

			pool, err := NewPool(s, 4)
			require.NoError(t, err)
			require.NoError(t, EnqueueNeighbors(pool, Pack, buffers, lists, vars))
			assert.Equal(t, 4, pool.Len())

			group, err := pool.Instantiate()
			require.NoError(t, err)
			require.NoError(t, group.Run())

			written := 0
			for l := range buffers {
				written += len(buffers[l])
			}
			assert.Equal(t, 3*2+2*2, written)
			assert.Equal(t, wantBuf, buffers)

			// enqueue order: (n0,v0), (n0,v1), (n1,v0), (n1,v1)
			assert.Equal(t, []float64{10, 12, 14, 20, 22, 24}, buffers[0])
			assert.Equal(t, []float64{11, 13, 21, 23}, buffers[1])
		})
	}
}

func TestPool_UnpackRoundTrip(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			buffers, lists, vars := twoNeighborFixture()
			RunNeighbors(Pack, buffers, lists, vars)

			cleared := [][]float64{make([]float64, 5), make([]float64, 5)}
			pool, err := NewPool(s, 4)
			require.NoError(t, err)
			require.NoError(t, EnqueueNeighbors(pool, Unpack, buffers, lists, cleared))
			group, err := pool.Instantiate()
			require.NoError(t, err)
			require.NoError(t, group.Run())

			// lists cover every index once, so unpack restores vars exactly
			assert.Equal(t, vars, cleared)
		})
	}
}

func TestGroup_RunParallel(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			buffers, lists, vars := twoNeighborFixture()
			wantBuf, _, _ := twoNeighborFixture()
			RunNeighbors(Pack, wantBuf, lists, vars)

			p, err := NewPool(s, 4)
			require.NoError(t, err)
			require.NoError(t, EnqueueNeighbors(p, Pack, buffers, lists, vars))
			g, err := p.Instantiate()
			require.NoError(t, err)
			require.NoError(t, g.RunParallel(3))
			assert.Equal(t, wantBuf, buffers)
			assert.ErrorIs(t, g.RunParallel(3), ErrGroupConsumed)
		})
	}
}

func TestPool_Contract(t *testing.T) {
	seg := Segment{Buffer: make([]float64, 1), List: []int{0}, Var: []float64{7}}

	t.Run("EnqueueAfterInstantiate", func(t *testing.T) {
		pool, err := NewPool(Direct, 1)
		require.NoError(t, err)
		require.NoError(t, pool.Enqueue(seg, Pack))
		_, err = pool.Instantiate()
		require.NoError(t, err)
		assert.ErrorIs(t, pool.Enqueue(seg, Pack), ErrInstantiated)
		_, err = pool.Instantiate()
		assert.ErrorIs(t, err, ErrInstantiated)
	})

	t.Run("GroupSingleUse", func(t *testing.T) {
		pool, err := NewPool(Virtual, 1)
		require.NoError(t, err)
		require.NoError(t, pool.Enqueue(seg, Pack))
		group, err := pool.Instantiate()
		require.NoError(t, err)
		require.NoError(t, group.Run())
		assert.ErrorIs(t, group.Run(), ErrGroupConsumed)
	})

	t.Run("ResetStartsFreshCycle", func(t *testing.T) {
		pool, err := NewPool(FuncPtr, 1)
		require.NoError(t, err)
		require.NoError(t, pool.Enqueue(seg, Pack))
		first, err := pool.Instantiate()
		require.NoError(t, err)
		pool.Reset()
		assert.Equal(t, 0, pool.Len())
		require.NoError(t, pool.Enqueue(seg, Unpack))
		require.NoError(t, pool.Enqueue(seg, Unpack))
		second, err := pool.Instantiate()
		require.NoError(t, err)
		assert.Equal(t, 1, first.Len())
		assert.Equal(t, 2, second.Len())
	})

	t.Run("ShortBuffer", func(t *testing.T) {
		pool, err := NewPool(Direct, 1)
		require.NoError(t, err)
		bad := Segment{Buffer: nil, List: []int{0, 1}, Var: []float64{1, 2}}
		assert.Error(t, pool.Enqueue(bad, Pack))
	})

	t.Run("UnknownStrategy", func(t *testing.T) {
		_, err := NewPool(Strategy(42), 1)
		assert.Error(t, err)
	})
}

func BenchmarkGroup_Pack(b *testing.B) {
	const nvars, nneighbors, seglen = 3, 26, 1024
	lists := make([][]int, nneighbors)
	buffers := make([][]float64, nneighbors)
	for l := range lists {
		lists[l] = make([]int, seglen)
		for i := range lists[l] {
			lists[l][i] = (i*7 + l) % (seglen * 4)
		}
		buffers[l] = make([]float64, seglen*nvars)
	}
	vars := make([][]float64, nvars)
	for v := range vars {
		vars[v] = make([]float64, seglen*4)
	}

	for _, s := range Strategies() {
		b.Run(s.String(), func(b *testing.B) {
			pool, err := NewPool(s, nneighbors*nvars)
			if err != nil {
				b.Fatalf("Failed to create pool: %v", err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				pool.Reset()
				if err := EnqueueNeighbors(pool, Pack, buffers, lists, vars); err != nil {
					b.Fatalf("Enqueue failed: %v", err)
				}
				group, _ := pool.Instantiate()
				group.Run()
			}
			b.ReportMetric(float64(nneighbors*nvars*seglen), "elements/op")
		})
	}
}

func TestStrategy_String(t *testing.T) {
	var names []string
	for _, s := range Strategies() {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"default", "funcptr", "virtfunc"}, names)
	assert.Equal(t, "Strategy(7)", Strategy(7).String())
}
