// File: suite/dispatch/neighbors.go

package dispatch

import "fmt"

// EnqueueNeighbors stages one item per (neighbor, variable) in canonical
// order: neighbors outer, variables inner. Each neighbor's buffer is laid
// out variable after variable, len(lists[l]) elements each.
func EnqueueNeighbors(p *Pool, op Op, buffers [][]float64, lists [][]int, vars [][]float64) error {
	if len(buffers) != len(lists) {
		return fmt.Errorf("got %d buffers for %d index lists", len(buffers), len(lists))
	}
	for l := range lists {
		list := lists[l]
		n := len(list)
		if need := n * len(vars); len(buffers[l]) < need {
			return fmt.Errorf("neighbor %d buffer holds %d elements, needs %d", l, len(buffers[l]), need)
		}
		offset := 0
		for v := range vars {
			seg := Segment{
				Buffer: buffers[l][offset : offset+n],
				List:   list,
				Var:    vars[v],
			}
			if err := p.Enqueue(seg, op); err != nil {
				return fmt.Errorf("neighbor %d var %d: %w", l, v, err)
			}
			offset += n
		}
	}
	return nil
}

// RunNeighbors is the plain sequential loop every strategy must match
func RunNeighbors(op Op, buffers [][]float64, lists [][]int, vars [][]float64) {
	for l := range lists {
		buf := buffers[l]
		for v := range vars {
			vr := vars[v]
			for i, idx := range lists[l] {
				if op == Pack {
					buf[i] = vr[idx]
				} else {
					vr[idx] = buf[i]
				}
			}
			buf = buf[len(lists[l]):]
		}
	}
}

// BufferLen is the buffer size neighbor lists need for nvars variables
func BufferLen(list []int, nvars int) int {
	return len(list) * nvars
}
