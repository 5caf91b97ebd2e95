package apps

import (
	"fmt"
	"math"

	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/suite"
	"github.com/notargets/kernelperf/suite/dispatch"
)

const (
	haloWidth = 1
	haloVars  = 3
)

// fusedItem is one (buffer, list, variable) segment of the manual fuser
type fusedItem struct {
	buf  []float64
	list []int
	v    []float64
}

// lambdaItem is one segment captured as a per-element closure
type lambdaItem struct {
	n    int
	body func(i int)
}

// HaloExchangeFused packs every variable's boundary slabs into per-neighbor
// buffers and unpacks them into the ghost layers, batching all segments of
// a phase into one fused launch
type HaloExchangeFused struct {
	d      *suite.Descriptor
	params *suite.RunParams
	grid   haloGrid

	vars         [][]float64
	buffers      [][]float64
	pack, unpack [][]int
	pool         *dispatch.Pool
}

func NewHaloExchangeFused(p *suite.RunParams) *HaloExchangeFused {
	d := suite.NewDescriptor("HALOEXCHANGE_FUSED", suite.Apps)
	d.SetDefaultProblemSize(100 * 100 * 100)
	d.SetDefaultReps(50)
	d.Configure(p)

	m := int(math.Cbrt(float64(d.ActualProblemSize())) + 0.5)
	if m < 1 {
		m = 1
	}
	grid := newHaloGrid(m, haloWidth)
	d.SetActualProblemSize(m * m * m)

	k := &HaloExchangeFused{d: d, params: p, grid: grid}
	k.pack, k.unpack = grid.indexLists()
	var elems int64
	for _, l := range k.pack {
		elems += int64(len(l) * haloVars)
	}
	d.SetItsPerRep(elems)
	d.SetKernelsPerRep(2)
	d.SetBytesPerRep(2 * elems * (8 + 8 + 8))
	d.SetFLOPsPerRep(0)
	d.SetUsesFeature(suite.FeatureWorkgroup)
	common.DefineVariants(d, nil)
	return k
}

func (k *HaloExchangeFused) Descriptor() *suite.Descriptor { return k.d }

// Tunings sweeps the dispatch strategy for the library-style variants
func (k *HaloExchangeFused) Tunings(vid suite.VariantID, p *suite.RunParams) suite.TuningSet {
	if vid.Style() == suite.StyleLib {
		return suite.NewTuningSet(dispatch.Strategies(), nil, dispatch.Strategy.String)
	}
	return suite.DefaultTunings()
}

func (k *HaloExchangeFused) SetUp(p suite.Pass) error {
	if !p.Variant.Valid() || p.Variant.Backend() == suite.BackendOCCA {
		return suite.UnknownVariant(k.d.Name(), p.Variant)
	}

	cells := k.grid.cells()
	k.vars = make([][]float64, haloVars)
	for v := range k.vars {
		k.vars[v] = make([]float64, cells)
		for i := range k.vars[v] {
			k.vars[v][i] = float64(v*cells+i) * 1e-3
		}
	}
	k.buffers = make([][]float64, len(k.pack))
	for l, list := range k.pack {
		k.buffers[l] = make([]float64, dispatch.BufferLen(list, haloVars))
	}

	if p.Variant.Style() == suite.StyleLib {
		strategy, ok := p.Tuning.Config.(dispatch.Strategy)
		if !ok {
			return fmt.Errorf("%s: tuning %q carries no dispatch strategy", k.d.Name(), p.Tuning.Name)
		}
		pool, err := dispatch.NewPool(strategy, len(k.pack)*haloVars)
		if err != nil {
			return err
		}
		k.pool = pool
	}
	return nil
}

func (k *HaloExchangeFused) Run(p suite.Pass) error {
	reps := k.d.RunReps()
	threads := 1
	if p.Variant.Backend() == suite.BackendOpenMP {
		threads = k.params.ThreadCount()
	}

	switch p.Variant.Style() {
	case suite.StyleBase:
		for rep := 0; rep < reps; rep++ {
			if err := k.runFused(k.fuse(k.pack), dispatch.Pack, threads); err != nil {
				return err
			}
			if err := k.runFused(k.fuse(k.unpack), dispatch.Unpack, threads); err != nil {
				return err
			}
		}
	case suite.StyleLambda:
		for rep := 0; rep < reps; rep++ {
			if err := runLambdas(k.lambdas(k.pack, dispatch.Pack), threads); err != nil {
				return err
			}
			if err := runLambdas(k.lambdas(k.unpack, dispatch.Unpack), threads); err != nil {
				return err
			}
		}
	default:
		for rep := 0; rep < reps; rep++ {
			if err := k.runPool(dispatch.Pack, k.pack, threads); err != nil {
				return err
			}
			if err := k.runPool(dispatch.Unpack, k.unpack, threads); err != nil {
				return err
			}
		}
	}
	return nil
}

// fuse gathers every segment of one phase, neighbors outer and variables
// inner
func (k *HaloExchangeFused) fuse(lists [][]int) []fusedItem {
	items := make([]fusedItem, 0, len(lists)*haloVars)
	for l, list := range lists {
		buf := k.buffers[l]
		for _, v := range k.vars {
			items = append(items, fusedItem{buf: buf[:len(list)], list: list, v: v})
			buf = buf[len(list):]
		}
	}
	return items
}

func (k *HaloExchangeFused) runFused(items []fusedItem, op dispatch.Op, threads int) error {
	run := func(j int) {
		it := &items[j]
		if op == dispatch.Pack {
			for i, idx := range it.list {
				it.buf[i] = it.v[idx]
			}
		} else {
			for i, idx := range it.list {
				it.v[idx] = it.buf[i]
			}
		}
	}
	return suite.Forall(suite.ParExec(threads), 0, len(items), run)
}

func (k *HaloExchangeFused) lambdas(lists [][]int, op dispatch.Op) []lambdaItem {
	items := make([]lambdaItem, 0, len(lists)*haloVars)
	for _, it := range k.fuse(lists) {
		buf, list, v := it.buf, it.list, it.v
		body := func(i int) { buf[i] = v[list[i]] }
		if op == dispatch.Unpack {
			body = func(i int) { v[list[i]] = buf[i] }
		}
		items = append(items, lambdaItem{n: len(list), body: body})
	}
	return items
}

func runLambdas(items []lambdaItem, threads int) error {
	return suite.Forall(suite.ParExec(threads), 0, len(items), func(j int) {
		it := items[j]
		for i := 0; i < it.n; i++ {
			it.body(i)
		}
	})
}

func (k *HaloExchangeFused) runPool(op dispatch.Op, lists [][]int, threads int) error {
	k.pool.Reset()
	if err := dispatch.EnqueueNeighbors(k.pool, op, k.buffers, lists, k.vars); err != nil {
		return err
	}
	g, err := k.pool.Instantiate()
	if err != nil {
		return err
	}
	if threads > 1 {
		return g.RunParallel(threads)
	}
	return g.Run()
}

func (k *HaloExchangeFused) Checksum(p suite.Pass) (float64, error) {
	var sum float64
	for _, v := range k.vars {
		sum += suite.Checksum(v, k.d.ChecksumScale())
	}
	return sum, nil
}

func (k *HaloExchangeFused) TearDown(p suite.Pass) error {
	k.vars, k.buffers, k.pool = nil, nil, nil
	return nil
}
