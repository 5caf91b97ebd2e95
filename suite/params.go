// File: suite/params.go

package suite

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunParams carries the run configuration consumed by kernels and the executor
type RunParams struct {
	NPasses    int     `yaml:"npasses"`
	RepFactor  float64 `yaml:"rep_factor"`
	SizeFactor float64 `yaml:"size_factor"`
	// Size overrides every kernel's default problem size when > 0
	Size int `yaml:"size"`
	// BlockSizes restricts accelerator tunings; empty accepts every candidate
	BlockSizes []int    `yaml:"block_sizes"`
	Kernels    []string `yaml:"kernels"`
	Variants   []string `yaml:"variants"`
	Threads    int      `yaml:"threads"`
	// Device is the OCCA device property string, "none" disables the accelerator
	Device    string  `yaml:"device"`
	Tolerance float64 `yaml:"tolerance"`
}

// DefaultRunParams returns the configuration used when nothing is specified
func DefaultRunParams() RunParams {
	return RunParams{
		NPasses:    1,
		RepFactor:  1.0,
		SizeFactor: 1.0,
		Threads:    runtime.GOMAXPROCS(0),
		Device:     `{"mode": "Serial"}`,
		Tolerance:  1e-7,
	}
}

// LoadRunParams reads a YAML file over the defaults
func LoadRunParams(path string) (RunParams, error) {
	p := DefaultRunParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read run config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse run config %s: %w", path, err)
	}
	return p, p.Validate()
}

// Validate checks the configuration for values no kernel can honor
func (p *RunParams) Validate() error {
	if p.NPasses < 1 {
		return fmt.Errorf("npasses must be >= 1, got %d", p.NPasses)
	}
	if p.RepFactor <= 0 {
		return fmt.Errorf("rep_factor must be positive, got %g", p.RepFactor)
	}
	if p.SizeFactor <= 0 {
		return fmt.Errorf("size_factor must be positive, got %g", p.SizeFactor)
	}
	if p.Size < 0 {
		return fmt.Errorf("size must be >= 0, got %d", p.Size)
	}
	for _, bs := range p.BlockSizes {
		if bs <= 0 {
			return fmt.Errorf("block size must be positive, got %d", bs)
		}
	}
	for _, name := range p.Variants {
		if _, err := ParseVariant(name); err != nil {
			return err
		}
	}
	if p.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", p.Threads)
	}
	return nil
}

// Reps scales a kernel's default repetition count, never below 1
func (p *RunParams) Reps(defaultReps int) int {
	reps := int(math.Round(float64(defaultReps) * p.RepFactor))
	if reps < 1 {
		reps = 1
	}
	return reps
}

// ActualProblemSize resolves the problem size for a kernel
func (p *RunParams) ActualProblemSize(defaultSize int) int {
	if p.Size > 0 {
		return p.Size
	}
	size := int(math.Round(float64(defaultSize) * p.SizeFactor))
	if size < 1 {
		size = 1
	}
	return size
}

// NumValidBlockSizes is the number of explicitly requested block sizes
func (p *RunParams) NumValidBlockSizes() int {
	return len(p.BlockSizes)
}

// ValidBlockSize reports whether bs was explicitly requested
func (p *RunParams) ValidBlockSize(bs int) bool {
	for _, v := range p.BlockSizes {
		if v == bs {
			return true
		}
	}
	return false
}

// AcceptBlockSize is the tuning acceptance predicate for block sizes:
// everything when nothing was requested, otherwise only the requested set
func (p *RunParams) AcceptBlockSize(bs int) bool {
	return p.NumValidBlockSizes() == 0 || p.ValidBlockSize(bs)
}

// KernelSelected applies the kernel name filter. Entries match a kernel
// name or a group name, case-insensitively.
func (p *RunParams) KernelSelected(name string, group Group) bool {
	if len(p.Kernels) == 0 {
		return true
	}
	for _, k := range p.Kernels {
		if strings.EqualFold(k, name) || strings.EqualFold(k, group.String()) {
			return true
		}
	}
	return false
}

// VariantSelected applies the variant filter
func (p *RunParams) VariantSelected(vid VariantID) bool {
	if len(p.Variants) == 0 {
		return true
	}
	for _, name := range p.Variants {
		if strings.EqualFold(name, vid.String()) {
			return true
		}
	}
	return false
}

// ThreadCount is the worker count for host-parallel variants
func (p *RunParams) ThreadCount() int {
	if p.Threads <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return p.Threads
}

// AcceleratorEnabled reports whether accelerator variants should be defined
func (p *RunParams) AcceleratorEnabled() bool {
	return p.Device != "" && !strings.EqualFold(p.Device, "none")
}
