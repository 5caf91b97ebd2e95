// File: suite/checksum.go

package suite

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Checksum folds data into a scalar with position weights (i+1)/n.
// The weights are fixed per position so every variant producing the same
// values gets the same checksum regardless of the order it computed them in.
func Checksum(data []float64, scale float64) float64 {
	n := float64(len(data))
	if n == 0 {
		return 0
	}
	var sum, comp float64
	for i, v := range data {
		// Kahan summation keeps the fold stable for large arrays
		y := v*float64(i+1)/n - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}
	return sum * scale
}

// ChecksumInts is Checksum for integer outputs
func ChecksumInts(data []int, scale float64) float64 {
	n := float64(len(data))
	if n == 0 {
		return 0
	}
	var sum float64
	for i, v := range data {
		sum += float64(v) * float64(i+1) / n
	}
	return sum * scale
}

// ChecksumScalars folds a short list of reduction results in order
func ChecksumScalars(scale float64, vals ...float64) float64 {
	return floats.Sum(vals) * scale
}

// ChecksumsAgree compares two checksums with an absolute/relative tolerance
func ChecksumsAgree(a, b, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}

// Mismatch records a variant whose checksum strays from the kernel's reference
type Mismatch struct {
	Reference Record
	Record    Record
	Diff      float64
}

// CompareChecksums checks every record against the first record of the same
// kernel. It is the external cross-variant oracle; the executor never calls it.
func CompareChecksums(r *Results, tol float64) []Mismatch {
	var out []Mismatch
	for _, kernel := range r.Kernels() {
		recs := r.ForKernel(kernel)
		if len(recs) < 2 {
			continue
		}
		ref := recs[0]
		for _, rec := range recs[1:] {
			if !ChecksumsAgree(ref.Checksum, rec.Checksum, tol) {
				out = append(out, Mismatch{
					Reference: ref,
					Record:    rec,
					Diff:      rec.Checksum - ref.Checksum,
				})
			}
		}
	}
	return out
}
