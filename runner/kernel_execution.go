package runner

import (
	"fmt"
)

// ExecuteKernel launches a configured kernel: uploads CopyTo bindings,
// runs, waits, then downloads CopyBack bindings. Scalar values override
// bound scalars in configuration order.
func (kr *Runner) ExecuteKernel(name string, scalarValues ...interface{}) error {
	config, exists := kr.KernelConfigs[name]
	if !exists {
		return fmt.Errorf("kernel %s not configured - use ConfigureKernel first", name)
	}
	kernel, exists := kr.Kernels[name]
	if !exists {
		return fmt.Errorf("kernel %s not compiled - use BuildKernel first", name)
	}

	for _, usage := range config.Parameters {
		if usage.HasAction(CopyTo) {
			if err := kr.copyToDevice(usage.Binding); err != nil {
				return fmt.Errorf("pre-kernel copy failed: %w", err)
			}
		}
	}

	args, err := kr.buildKernelArguments(config, scalarValues)
	if err != nil {
		return fmt.Errorf("failed to build arguments: %w", err)
	}

	if err := kernel.RunWithArgs(args...); err != nil {
		return fmt.Errorf("kernel execution failed: %w", err)
	}

	kr.Device.Finish()

	for _, usage := range config.Parameters {
		if usage.HasAction(CopyBack) {
			if err := kr.copyFromDevice(usage.Binding); err != nil {
				return fmt.Errorf("post-kernel copy failed: %w", err)
			}
		}
	}

	return nil
}

func (kr *Runner) buildKernelArguments(config *KernelConfig, scalarValues []interface{}) ([]interface{}, error) {
	args := make([]interface{}, 0, len(config.Parameters))
	scalarIdx := 0

	for _, usage := range config.Parameters {
		b := usage.Binding
		if b.IsScalar {
			if scalarIdx < len(scalarValues) {
				args = append(args, scalarValues[scalarIdx])
			} else if b.HostBinding != nil {
				args = append(args, b.HostBinding)
			} else {
				return nil, fmt.Errorf("scalar %s not provided", b.Name)
			}
			scalarIdx++
			continue
		}
		mem, exists := kr.PooledMemory[b.Name]
		if !exists {
			return nil, fmt.Errorf("memory for %s not found", b.Name)
		}
		args = append(args, mem)
	}

	return args, nil
}
