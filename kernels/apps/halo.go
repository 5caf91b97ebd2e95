// Package apps holds kernels lifted from application proxies
package apps

// haloGrid is a cubic box of m^3 interior cells wrapped in ghost layers of
// width w, stored x fastest
type haloGrid struct {
	m, w   int
	jp, kp int
}

func newHaloGrid(m, w int) haloGrid {
	ext := m + 2*w
	return haloGrid{m: m, w: w, jp: ext, kp: ext * ext}
}

// cells is the total cell count including ghosts
func (g haloGrid) cells() int {
	return g.kp * (g.m + 2*g.w)
}

// neighbors lists the 26 face, edge and corner directions in a fixed order
func neighbors() [][3]int {
	dirs := make([][3]int, 0, 26)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				dirs = append(dirs, [3]int{dx, dy, dz})
			}
		}
	}
	return dirs
}

// packRange is the interior slab sent towards direction d along one axis
func (g haloGrid) packRange(d int) (lo, hi int) {
	switch d {
	case -1:
		return g.w, 2 * g.w
	case 1:
		return g.m, g.m + g.w
	}
	return g.w, g.m + g.w
}

// unpackRange is the ghost slab received from direction d along one axis
func (g haloGrid) unpackRange(d int) (lo, hi int) {
	switch d {
	case -1:
		return 0, g.w
	case 1:
		return g.m + g.w, g.m + 2*g.w
	}
	return g.w, g.m + g.w
}

func (g haloGrid) list(dir [3]int, rng func(d int) (int, int)) []int {
	ilo, ihi := rng(dir[0])
	jlo, jhi := rng(dir[1])
	klo, khi := rng(dir[2])
	out := make([]int, 0, (ihi-ilo)*(jhi-jlo)*(khi-klo))
	for k := klo; k < khi; k++ {
		for j := jlo; j < jhi; j++ {
			for i := ilo; i < ihi; i++ {
				out = append(out, i+j*g.jp+k*g.kp)
			}
		}
	}
	return out
}

// indexLists builds pack and unpack lists for every neighbor
func (g haloGrid) indexLists() (pack, unpack [][]int) {
	for _, dir := range neighbors() {
		pack = append(pack, g.list(dir, g.packRange))
		unpack = append(unpack, g.list(dir, g.unpackRange))
	}
	return pack, unpack
}
