package runner

import (
	"fmt"

	"github.com/notargets/gocca"
	"github.com/notargets/kernelperf/runner/builder"
)

// Runner owns the device buffers and compiled kernels of one accelerator
// kernel variant. A Runner is built once per tuning so each block size
// gets its own compiled specialization.
type Runner struct {
	*builder.Builder
	Device        *gocca.OCCADevice
	Kernels       map[string]*gocca.OCCAKernel
	PooledMemory  map[string]*gocca.OCCAMemory
	Bindings      map[string]*DeviceBinding
	KernelConfigs map[string]*KernelConfig
	IsAllocated   bool

	bindingOrder []string
}

// NewRunner creates a new Runner instance
func NewRunner(device *gocca.OCCADevice, config builder.Config) *Runner {
	if device == nil {
		panic("device cannot be nil")
	}
	return &Runner{
		Builder:       builder.NewBuilder(config),
		Device:        device,
		Kernels:       make(map[string]*gocca.OCCAKernel),
		PooledMemory:  make(map[string]*gocca.OCCAMemory),
		Bindings:      make(map[string]*DeviceBinding),
		KernelConfigs: make(map[string]*KernelConfig),
	}
}

// BuildKernel compiles kernelSource behind the generated preamble and
// registers it under kernelName
func (kr *Runner) BuildKernel(kernelSource, kernelName string) (*gocca.OCCAKernel, error) {
	kr.GeneratePreamble()

	fullSource := kr.KernelPreamble + "\n" + kernelSource

	var kernel *gocca.OCCAKernel
	var err error

	if kr.Device.Mode() == "OpenMP" {
		// OCCA does not pass -O3 to the OpenMP backend by default
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		kernel, err = kr.Device.BuildKernelFromString(fullSource, kernelName, props)
	} else {
		kernel, err = kr.Device.BuildKernelFromString(fullSource, kernelName, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to build kernel %s: %w", kernelName, err)
	}
	if kernel == nil {
		return nil, fmt.Errorf("kernel build returned nil for %s", kernelName)
	}

	if old, exists := kr.Kernels[kernelName]; exists {
		old.Free()
	}
	kr.Kernels[kernelName] = kernel
	return kernel, nil
}

// GetMemory returns the device buffer for a binding
func (kr *Runner) GetMemory(name string) *gocca.OCCAMemory {
	return kr.PooledMemory[name]
}

// Finish blocks until all queued device work has completed
func (kr *Runner) Finish() {
	kr.Device.Finish()
}

// Free releases kernels and buffers. The device itself belongs to the caller.
func (kr *Runner) Free() {
	for _, kernel := range kr.Kernels {
		kernel.Free()
	}
	for _, mem := range kr.PooledMemory {
		mem.Free()
	}
	kr.Kernels = make(map[string]*gocca.OCCAKernel)
	kr.PooledMemory = make(map[string]*gocca.OCCAMemory)
	kr.IsAllocated = false
}
