package builder

import (
	"fmt"
	"sort"
	"strings"
)

// DataType represents the precision of numerical data
type DataType int

const (
	Float32 DataType = iota + 1
	Float64
	INT32
	INT64
)

// SizeOfType returns the size in bytes of a data type
func SizeOfType(dt DataType) int64 {
	switch dt {
	case Float32, INT32:
		return 4
	default:
		return 8
	}
}

// CTypeName returns the OKL spelling of a data type
func CTypeName(dt DataType) string {
	switch dt {
	case Float32:
		return "float"
	case INT32:
		return "int"
	case INT64:
		return "long"
	default:
		return "double"
	}
}

// Config holds configuration for creating a Builder
type Config struct {
	FloatType DataType
	IntType   DataType
	// BlockSize is the work-group size baked into the kernel as BLOCK_SIZE.
	// Zero leaves BLOCK_SIZE undefined.
	BlockSize int
	// Defines are emitted as integer #define constants in name order.
	Defines map[string]int
}

// Builder generates the preamble shared by every kernel compiled for one
// tuning of one kernel variant
type Builder struct {
	FloatType DataType
	IntType   DataType
	BlockSize int
	Defines   map[string]int

	// Generated code
	KernelPreamble string
}

// NewBuilder creates a new Builder instance
func NewBuilder(cfg Config) *Builder {
	if cfg.BlockSize < 0 {
		panic(fmt.Sprintf("block size must not be negative, got %d", cfg.BlockSize))
	}
	floatType := cfg.FloatType
	if floatType == 0 {
		floatType = Float64
	}
	intType := cfg.IntType
	if intType == 0 {
		intType = INT64
	}
	kb := &Builder{
		FloatType: floatType,
		IntType:   intType,
		BlockSize: cfg.BlockSize,
		Defines:   make(map[string]int, len(cfg.Defines)),
	}
	for name, v := range cfg.Defines {
		kb.Defines[name] = v
	}
	return kb
}

// Define adds or replaces an integer constant in the preamble
func (kb *Builder) Define(name string, value int) {
	kb.Defines[name] = value
}

// GeneratePreamble generates the kernel preamble with types and constants
func (kb *Builder) GeneratePreamble() string {
	var sb strings.Builder

	sb.WriteString(kb.generateTypeDefinitions())
	sb.WriteString(kb.generateConstants())

	kb.KernelPreamble = sb.String()
	return kb.KernelPreamble
}

// generateTypeDefinitions creates type definitions based on precision settings
func (kb *Builder) generateTypeDefinitions() string {
	var sb strings.Builder

	floatSuffix := ""
	if kb.FloatType == Float32 {
		floatSuffix = "f"
	}

	sb.WriteString(fmt.Sprintf("typedef %s real_t;\n", CTypeName(kb.FloatType)))
	sb.WriteString(fmt.Sprintf("typedef %s int_t;\n", CTypeName(kb.IntType)))
	sb.WriteString(fmt.Sprintf("#define REAL_ZERO 0.0%s\n", floatSuffix))
	sb.WriteString(fmt.Sprintf("#define REAL_ONE 1.0%s\n", floatSuffix))
	sb.WriteString("\n")

	return sb.String()
}

// generateConstants emits BLOCK_SIZE followed by the user defines
func (kb *Builder) generateConstants() string {
	var sb strings.Builder

	if kb.BlockSize > 0 {
		sb.WriteString(fmt.Sprintf("#define BLOCK_SIZE %d\n", kb.BlockSize))
	}

	names := make([]string, 0, len(kb.Defines))
	for name := range kb.Defines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("#define %s %d\n", name, kb.Defines[name]))
	}
	if kb.BlockSize > 0 || len(names) > 0 {
		sb.WriteString("\n")
	}

	return sb.String()
}

// GetIntSize returns the size of the integer type in bytes
func (kb *Builder) GetIntSize() int {
	return int(SizeOfType(kb.IntType))
}
