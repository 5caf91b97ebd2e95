// File: suite/dispatch/pool.go

package dispatch

import (
	"fmt"

	"github.com/grailbio/base/traverse"
)

// directItem is the homogeneous, fully resolved storage of the Direct strategy
type directItem struct {
	seg Segment
	op  Op
}

// fnItem pairs a segment with the function that processes one element
type fnItem struct {
	seg Segment
	fn  func(s *Segment, i int)
}

// Work is the polymorphic interface of the Virtual strategy
type Work interface {
	Exec(i int)
	Len() int
}

type packWork struct{ seg Segment }

func (w *packWork) Exec(i int) { w.seg.Buffer[i] = w.seg.Var[w.seg.List[i]] }
func (w *packWork) Len() int   { return w.seg.Len() }

type unpackWork struct{ seg Segment }

func (w *unpackWork) Exec(i int) { w.seg.Var[w.seg.List[i]] = w.seg.Buffer[i] }
func (w *unpackWork) Len() int   { return w.seg.Len() }

// Pool stages work items in enqueue order until Instantiate freezes them
type Pool struct {
	strategy Strategy
	frozen   bool

	direct []directItem
	fns    []fnItem
	virt   []Work
}

// NewPool creates a pool for strategy with room for reserve items
func NewPool(strategy Strategy, reserve int) (*Pool, error) {
	p := &Pool{strategy: strategy}
	switch strategy {
	case Direct:
		p.direct = make([]directItem, 0, reserve)
	case FuncPtr:
		p.fns = make([]fnItem, 0, reserve)
	case Virtual:
		p.virt = make([]Work, 0, reserve)
	default:
		return nil, fmt.Errorf("unknown dispatch strategy %d", int(strategy))
	}
	return p, nil
}

func (p *Pool) Strategy() Strategy { return p.strategy }

// Len is the number of staged items
func (p *Pool) Len() int {
	switch p.strategy {
	case Direct:
		return len(p.direct)
	case FuncPtr:
		return len(p.fns)
	default:
		return len(p.virt)
	}
}

// Enqueue stages one work item
func (p *Pool) Enqueue(seg Segment, op Op) error {
	if p.frozen {
		return ErrInstantiated
	}
	if err := seg.validate(); err != nil {
		return fmt.Errorf("enqueue %s: %w", op, err)
	}
	switch p.strategy {
	case Direct:
		p.direct = append(p.direct, directItem{seg: seg, op: op})
	case FuncPtr:
		fn := packElem
		if op == Unpack {
			fn = unpackElem
		}
		p.fns = append(p.fns, fnItem{seg: seg, fn: fn})
	case Virtual:
		var w Work = &packWork{seg: seg}
		if op == Unpack {
			w = &unpackWork{seg: seg}
		}
		p.virt = append(p.virt, w)
	}
	return nil
}

// Instantiate freezes the staged items into a Group. The pool accepts no
// more items until Reset.
func (p *Pool) Instantiate() (*Group, error) {
	if p.frozen {
		return nil, ErrInstantiated
	}
	p.frozen = true
	return &Group{
		strategy: p.strategy,
		direct:   p.direct,
		fns:      p.fns,
		virt:     p.virt,
	}, nil
}

// Reset starts a fresh staging cycle, reusing the pool's capacity. Groups
// already instantiated keep their own items.
func (p *Pool) Reset() {
	p.frozen = false
	if p.direct != nil {
		p.direct = make([]directItem, 0, cap(p.direct))
	}
	if p.fns != nil {
		p.fns = make([]fnItem, 0, cap(p.fns))
	}
	if p.virt != nil {
		p.virt = make([]Work, 0, cap(p.virt))
	}
}

// Group is an immutable, single-use batch of work items
type Group struct {
	strategy Strategy
	used     bool

	direct []directItem
	fns    []fnItem
	virt   []Work
}

func (g *Group) Strategy() Strategy { return g.strategy }

// Len is the number of items in the group
func (g *Group) Len() int {
	return len(g.direct) + len(g.fns) + len(g.virt)
}

// Run executes every item over its full segment in enqueue order
func (g *Group) Run() error {
	if g.used {
		return ErrGroupConsumed
	}
	g.used = true
	run := g.itemFunc()
	for j := 0; j < g.Len(); j++ {
		run(j)
	}
	return nil
}

// RunParallel spreads the items over up to threads workers. Items write
// disjoint elements, so the result matches Run. It returns once every
// item has completed.
func (g *Group) RunParallel(threads int) error {
	if g.used {
		return ErrGroupConsumed
	}
	g.used = true
	run := g.itemFunc()
	if threads < 1 {
		threads = 1
	}
	return traverse.Limit(threads).Each(g.Len(), func(j int) error {
		run(j)
		return nil
	})
}

// itemFunc resolves the strategy once per run; the per-item body is where
// the strategies differ
func (g *Group) itemFunc() func(j int) {
	switch g.strategy {
	case Direct:
		return g.runDirect
	case FuncPtr:
		return g.runFuncPtr
	default:
		return g.runVirtual
	}
}

func (g *Group) runDirect(j int) {
	item := &g.direct[j]
	buf, list, v := item.seg.Buffer, item.seg.List, item.seg.Var
	if item.op == Pack {
		for i, idx := range list {
			buf[i] = v[idx]
		}
	} else {
		for i, idx := range list {
			v[idx] = buf[i]
		}
	}
}

func (g *Group) runFuncPtr(j int) {
	item := &g.fns[j]
	n := item.seg.Len()
	for i := 0; i < n; i++ {
		item.fn(&item.seg, i)
	}
}

func (g *Group) runVirtual(j int) {
	w := g.virt[j]
	n := w.Len()
	for i := 0; i < n; i++ {
		w.Exec(i)
	}
}
