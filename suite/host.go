// File: suite/host.go

package suite

import (
	"github.com/grailbio/base/traverse"
)

// ExecPolicy selects how a Forall runs its iteration space
type ExecPolicy struct {
	// Threads is the worker count; <= 1 runs sequentially in the caller
	Threads int
}

// SeqExec is the sequential policy
var SeqExec = ExecPolicy{Threads: 1}

// ParExec is the fork-join policy with the given worker count
func ParExec(threads int) ExecPolicy {
	return ExecPolicy{Threads: threads}
}

// chunks splits [0,n) into at most threads contiguous ranges
func chunks(threads, n int) (count, size int) {
	if threads < 1 {
		threads = 1
	}
	if n <= 0 {
		return 0, 0
	}
	size = (n + threads - 1) / threads
	count = (n + size - 1) / size
	return count, size
}

// ParallelFor runs body over contiguous sub-ranges of [0,n) on up to threads
// workers. It returns after every worker has finished.
func ParallelFor(threads, n int, body func(lo, hi int)) error {
	count, size := chunks(threads, n)
	if count <= 1 {
		if n > 0 {
			body(0, n)
		}
		return nil
	}
	return traverse.Limit(count).Each(count, func(c int) error {
		lo := c * size
		hi := lo + size
		if hi > n {
			hi = n
		}
		body(lo, hi)
		return nil
	})
}

// Forall calls body for every index in [begin,end) under policy.
// No ordering between indices is guaranteed for parallel policies.
func Forall(policy ExecPolicy, begin, end int, body func(i int)) error {
	if policy.Threads <= 1 {
		for i := begin; i < end; i++ {
			body(i)
		}
		return nil
	}
	return ParallelFor(policy.Threads, end-begin, func(lo, hi int) {
		for i := begin + lo; i < begin+hi; i++ {
			body(i)
		}
	})
}

// Reduce evaluates partial results over sub-ranges in parallel and folds
// them with combine in range order, so the result does not depend on
// scheduling. identity is returned for an empty range.
func Reduce[T any](policy ExecPolicy, n int, identity T, partial func(lo, hi int) T, combine func(a, b T) T) (T, error) {
	if n <= 0 {
		return identity, nil
	}
	if policy.Threads <= 1 {
		return combine(identity, partial(0, n)), nil
	}
	count, size := chunks(policy.Threads, n)
	parts := make([]T, count)
	err := ParallelFor(policy.Threads, n, func(lo, hi int) {
		parts[lo/size] = partial(lo, hi)
	})
	if err != nil {
		return identity, err
	}
	acc := identity
	for _, v := range parts {
		acc = combine(acc, v)
	}
	return acc, nil
}

// ReduceSum is Reduce with addition
func ReduceSum(policy ExecPolicy, n int, partial func(lo, hi int) float64) (float64, error) {
	return Reduce(policy, n, 0.0, partial, func(a, b float64) float64 { return a + b })
}
