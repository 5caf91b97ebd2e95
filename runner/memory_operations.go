package runner

import (
	"fmt"
)

// CopyToDevice uploads the host data of a binding
func (kr *Runner) CopyToDevice(name string) error {
	binding := kr.GetBinding(name)
	if binding == nil {
		return fmt.Errorf("binding %s not found", name)
	}
	return kr.copyToDevice(binding)
}

// CopyFromDevice waits for outstanding work and downloads a binding into
// its host slice
func (kr *Runner) CopyFromDevice(name string) error {
	binding := kr.GetBinding(name)
	if binding == nil {
		return fmt.Errorf("binding %s not found", name)
	}
	kr.Device.Finish()
	return kr.copyFromDevice(binding)
}

func (kr *Runner) copyToDevice(binding *DeviceBinding) error {
	if binding.IsScalar || binding.HostBinding == nil {
		return nil
	}
	mem := kr.PooledMemory[binding.Name]
	if mem == nil {
		return fmt.Errorf("no device memory allocated for %s", binding.Name)
	}
	ptr, err := hostPointer(binding.HostBinding)
	if err != nil {
		return fmt.Errorf("failed to copy %s to device: %w", binding.Name, err)
	}
	mem.CopyFrom(ptr, binding.Bytes())
	return nil
}

func (kr *Runner) copyFromDevice(binding *DeviceBinding) error {
	if binding.IsScalar || binding.HostBinding == nil {
		return nil
	}
	mem := kr.PooledMemory[binding.Name]
	if mem == nil {
		return fmt.Errorf("no device memory allocated for %s", binding.Name)
	}
	ptr, err := hostPointer(binding.HostBinding)
	if err != nil {
		return fmt.Errorf("failed to copy %s from device: %w", binding.Name, err)
	}
	mem.CopyTo(ptr, binding.Bytes())
	return nil
}
