// File: suite/errors.go

package suite

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVariant is returned by a kernel stage that has no
	// implementation for the requested variant. It is recoverable: the
	// executor reports it and skips the rest of that variant's sweep.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrLifecycle marks an out-of-order lifecycle transition
	ErrLifecycle = errors.New("lifecycle violation")
)

// BackendError wraps a failure inside a backend launch or transfer.
// Backend errors abort the whole run.
type BackendError struct {
	Kernel  string
	Variant VariantID
	Op      string // stage or primitive that failed
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error in %s %s (%s): %v", e.Kernel, e.Variant, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// UnknownVariant builds the standard error for a kernel stage that does not
// implement vid
func UnknownVariant(kernel string, vid VariantID) error {
	return fmt.Errorf("%s: %s: %w", kernel, vid, ErrUnknownVariant)
}
