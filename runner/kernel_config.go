package runner

import (
	"fmt"
	"strings"
)

// KernelConfig lists the bindings a kernel takes, in argument order, and
// the copies performed around each launch
type KernelConfig struct {
	Name       string
	Parameters []ParameterUsage
}

// ParamConfig is a lightweight builder for configuring parameter actions
type ParamConfig struct {
	name    string
	binding *DeviceBinding
	actions ActionFlags
}

// Param creates a parameter configuration for a named binding
func (kr *Runner) Param(name string) *ParamConfig {
	return &ParamConfig{name: name, binding: kr.GetBinding(name)}
}

// CopyTo uploads the binding before each launch
func (pc *ParamConfig) CopyTo() *ParamConfig {
	pc.actions |= CopyTo
	return pc
}

// CopyBack downloads the binding after each launch
func (pc *ParamConfig) CopyBack() *ParamConfig {
	pc.actions |= CopyBack
	return pc
}

// Copy sets both directions
func (pc *ParamConfig) Copy() *ParamConfig {
	pc.actions |= Copy
	return pc
}

// NoCopy clears all copy actions
func (pc *ParamConfig) NoCopy() *ParamConfig {
	pc.actions = NoAction
	return pc
}

// ConfigureKernel creates a kernel-specific parameter configuration
func (kr *Runner) ConfigureKernel(name string, params ...*ParamConfig) (*KernelConfig, error) {
	if !kr.IsAllocated {
		return nil, fmt.Errorf("device memory not allocated - call AllocateDevice first")
	}

	config := &KernelConfig{
		Name:       name,
		Parameters: make([]ParameterUsage, 0, len(params)),
	}
	for _, pc := range params {
		if pc.binding == nil {
			return nil, fmt.Errorf("parameter %s not found in bindings", pc.name)
		}
		if pc.actions != NoAction && (pc.binding.IsScalar || pc.binding.IsTemp) {
			return nil, fmt.Errorf("parameter %s cannot be copied", pc.name)
		}
		config.Parameters = append(config.Parameters, ParameterUsage{
			Binding: pc.binding,
			Actions: pc.actions,
		})
	}

	kr.KernelConfigs[name] = config
	return config, nil
}

// GetKernelSignature renders the OKL parameter list of a configured kernel
func (kr *Runner) GetKernelSignature(kernelName string) (string, error) {
	config, exists := kr.KernelConfigs[kernelName]
	if !exists {
		return "", fmt.Errorf("kernel %s not configured", kernelName)
	}

	params := make([]string, 0, len(config.Parameters))
	for _, usage := range config.Parameters {
		b := usage.Binding
		typeName := kr.scalarTypeName(b.DataType)
		switch {
		case b.IsScalar:
			params = append(params, fmt.Sprintf("const %s %s", typeName, b.Name))
		case b.IsOutput:
			params = append(params, fmt.Sprintf("%s *%s", typeName, b.Name))
		default:
			params = append(params, fmt.Sprintf("const %s *%s", typeName, b.Name))
		}
	}
	return strings.Join(params, ",\n\t"), nil
}
