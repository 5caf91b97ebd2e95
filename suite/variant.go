// File: suite/variant.go

package suite

import (
	"fmt"
	"strings"
)

// Backend is the execution substrate a variant targets
type Backend int

const (
	BackendSeq    Backend = iota + 1 // sequential host
	BackendOpenMP                    // fork-join host parallel
	BackendOCCA                      // accelerator device
)

func (b Backend) String() string {
	switch b {
	case BackendSeq:
		return "Seq"
	case BackendOpenMP:
		return "OpenMP"
	case BackendOCCA:
		return "OCCA"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// Style is the coding style a variant uses on its backend
type Style int

const (
	StyleBase   Style = iota + 1 // hand-written loops
	StyleLambda                  // loop body captured in a closure
	StyleLib                     // loop expressed through a portability abstraction
)

func (s Style) String() string {
	switch s {
	case StyleBase:
		return "Base"
	case StyleLambda:
		return "Lambda"
	case StyleLib:
		return "Lib"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// VariantID identifies one (backend, style) implementation of a kernel.
// Any integer is representable so that unknown ids can flow through the
// executor and be reported rather than rejected at parse time.
type VariantID int

const (
	BaseSeq VariantID = iota
	LambdaSeq
	LibSeq
	BaseOpenMP
	LambdaOpenMP
	LibOpenMP
	BaseOCCA
	LibOCCA
	NumVariants
)

var variantTable = [NumVariants]struct {
	backend Backend
	style   Style
}{
	BaseSeq:      {BackendSeq, StyleBase},
	LambdaSeq:    {BackendSeq, StyleLambda},
	LibSeq:       {BackendSeq, StyleLib},
	BaseOpenMP:   {BackendOpenMP, StyleBase},
	LambdaOpenMP: {BackendOpenMP, StyleLambda},
	LibOpenMP:    {BackendOpenMP, StyleLib},
	BaseOCCA:     {BackendOCCA, StyleBase},
	LibOCCA:      {BackendOCCA, StyleLib},
}

// Valid reports whether the id names a known variant
func (v VariantID) Valid() bool {
	return v >= 0 && v < NumVariants
}

// Backend returns the backend of a known variant, 0 otherwise
func (v VariantID) Backend() Backend {
	if !v.Valid() {
		return 0
	}
	return variantTable[v].backend
}

// Style returns the coding style of a known variant, 0 otherwise
func (v VariantID) Style() Style {
	if !v.Valid() {
		return 0
	}
	return variantTable[v].style
}

// String renders the variant as Style_Backend, e.g. "Base_Seq"
func (v VariantID) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Unknown_%d", int(v))
	}
	return v.Style().String() + "_" + v.Backend().String()
}

// AllVariants returns every known variant in canonical order
func AllVariants() []VariantID {
	out := make([]VariantID, 0, NumVariants)
	for v := VariantID(0); v < NumVariants; v++ {
		out = append(out, v)
	}
	return out
}

// ParseVariant resolves a variant name case-insensitively
func ParseVariant(name string) (VariantID, error) {
	for _, v := range AllVariants() {
		if strings.EqualFold(v.String(), name) {
			return v, nil
		}
	}
	return -1, fmt.Errorf("variant %q: %w", name, ErrUnknownVariant)
}
