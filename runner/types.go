package runner

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/notargets/kernelperf/runner/builder"
)

// hostPointer returns the address of the first element of a bound slice,
// or nil for a missing binding
func hostPointer(hostBinding interface{}) (unsafe.Pointer, error) {
	if hostBinding == nil {
		return nil, nil
	}
	v := reflect.ValueOf(hostBinding)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("host binding must be a slice, got %T", hostBinding)
	}
	if v.Len() == 0 {
		return nil, fmt.Errorf("host binding is empty")
	}
	return v.Index(0).Addr().UnsafePointer(), nil
}

// scalarTypeName returns the OKL type of a by-value parameter
func (kr *Runner) scalarTypeName(dt builder.DataType) string {
	if dt == kr.FloatType {
		return "real_t"
	}
	if dt == kr.IntType {
		return "int_t"
	}
	return builder.CTypeName(dt)
}
