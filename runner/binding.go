package runner

import (
	"fmt"

	"github.com/notargets/kernelperf/runner/builder"
)

// ActionFlags represents the memory operations to perform for a parameter
type ActionFlags int

const (
	NoAction ActionFlags = 0
	// CopyTo uploads host data before the kernel launches
	CopyTo ActionFlags = 1 << iota
	// CopyBack downloads device data after the kernel completes
	CopyBack
	Copy = CopyTo | CopyBack
)

// DeviceBinding represents a host↔device data binding
type DeviceBinding struct {
	Name        string
	HostBinding interface{} // []T or a scalar
	DataType    builder.DataType
	Size        int64 // elements
	ElementSize int64 // bytes
	IsScalar    bool
	IsTemp      bool
	IsOutput    bool

	ParamSpec *builder.ParamSpec
}

// Bytes returns the device footprint of the binding
func (b *DeviceBinding) Bytes() int64 {
	return b.Size * b.ElementSize
}

// ParameterUsage represents how a binding is used in a specific kernel
type ParameterUsage struct {
	Binding *DeviceBinding
	Actions ActionFlags
}

// HasAction checks if a specific action is set
func (pu *ParameterUsage) HasAction(action ActionFlags) bool {
	return pu.Actions&action != 0
}

// DefineBindings establishes host↔device data relationships. Bindings keep
// their definition order, which is also the order of AllocateDevice.
func (kr *Runner) DefineBindings(params ...*builder.ParamBuilder) error {
	if kr.IsAllocated {
		return fmt.Errorf("cannot define bindings after device allocation")
	}
	for _, p := range params {
		spec := p.Spec
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("invalid parameter: %w", err)
		}
		if _, exists := kr.Bindings[spec.Name]; exists {
			return fmt.Errorf("binding %s already defined", spec.Name)
		}
		kr.Bindings[spec.Name] = &DeviceBinding{
			Name:        spec.Name,
			HostBinding: spec.HostBinding,
			DataType:    spec.DataType,
			Size:        spec.Size,
			ElementSize: builder.SizeOfType(spec.DataType),
			IsScalar:    spec.Direction == builder.DirectionScalar,
			IsTemp:      spec.Direction == builder.DirectionTemp,
			IsOutput:    !spec.IsConst(),
			ParamSpec:   &spec,
		}
		kr.bindingOrder = append(kr.bindingOrder, spec.Name)
	}
	return nil
}

// GetBinding returns the binding for name or nil
func (kr *Runner) GetBinding(name string) *DeviceBinding {
	return kr.Bindings[name]
}

// AllocateDevice allocates device memory for all array bindings. Bound
// arrays are initialized from their host data.
func (kr *Runner) AllocateDevice() error {
	if kr.IsAllocated {
		return fmt.Errorf("device memory already allocated")
	}
	if len(kr.Bindings) == 0 {
		return fmt.Errorf("no bindings defined - call DefineBindings first")
	}

	for _, name := range kr.bindingOrder {
		binding := kr.Bindings[name]
		if binding.IsScalar {
			continue
		}
		ptr, err := hostPointer(binding.HostBinding)
		if err != nil {
			return fmt.Errorf("failed to allocate array %s: %w", name, err)
		}
		mem := kr.Device.Malloc(binding.Bytes(), ptr, nil)
		if mem == nil {
			return fmt.Errorf("failed to allocate %d bytes for %s", binding.Bytes(), name)
		}
		kr.PooledMemory[name] = mem
	}

	kr.IsAllocated = true
	return nil
}
