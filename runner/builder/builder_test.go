package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePreamble(t *testing.T) {
	kb := NewBuilder(Config{
		BlockSize: 256,
		Defines:   map[string]int{"N": 1000, "ITS": 3},
	})
	want := "typedef double real_t;\n" +
		"typedef long int_t;\n" +
		"#define REAL_ZERO 0.0\n" +
		"#define REAL_ONE 1.0\n\n" +
		"#define BLOCK_SIZE 256\n" +
		"#define ITS 3\n" +
		"#define N 1000\n\n"
	assert.Equal(t, want, kb.GeneratePreamble())
	assert.Equal(t, want, kb.KernelPreamble)

	kb.Define("N", 7)
	assert.Contains(t, kb.GeneratePreamble(), "#define N 7\n")
}

func TestGeneratePreamble_Float32NoBlock(t *testing.T) {
	kb := NewBuilder(Config{FloatType: Float32, IntType: INT32})
	p := kb.GeneratePreamble()
	assert.Contains(t, p, "typedef float real_t;")
	assert.Contains(t, p, "typedef int int_t;")
	assert.Contains(t, p, "#define REAL_ONE 1.0f")
	assert.NotContains(t, p, "BLOCK_SIZE")
	assert.Equal(t, 4, kb.GetIntSize())
}

func TestNewBuilder_NegativeBlock(t *testing.T) {
	assert.Panics(t, func() { NewBuilder(Config{BlockSize: -1}) })
}

func TestParamSpec(t *testing.T) {
	testCases := []struct {
		name    string
		param   *ParamBuilder
		dt      DataType
		size    int64
		wantErr bool
	}{
		{"float64 slice", Input("a").Bind(make([]float64, 5)), Float64, 5, false},
		{"int32 slice", Output("b").Bind(make([]int32, 3)), INT32, 3, false},
		{"scalar", Scalar("alpha").Bind(1.5), Float64, 1, false},
		{"temp", Temp("t").Type(Float32).Size(8), Float32, 8, false},
		{"unbound array", Input("x").Type(Float64).Size(4), Float64, 4, true},
		{"temp with copy", Temp("t").Type(Float64).Size(2).CopyTo(), Float64, 2, true},
		{"untyped scalar", Scalar("s"), 0, 0, true},
		{"empty name", Input("").Bind([]float64{1}), Float64, 1, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := tc.param.Spec
			assert.Equal(t, tc.dt, spec.DataType)
			assert.Equal(t, tc.size, spec.Size)
			if tc.wantErr {
				assert.Error(t, spec.Validate())
			} else {
				assert.NoError(t, spec.Validate())
			}
		})
	}

	assert.True(t, Input("a").Spec.IsConst())
	assert.False(t, InOut("a").Spec.IsConst())
	p := InOut("a").Copy()
	assert.True(t, p.Spec.DoCopyTo && p.Spec.DoCopyBack)
	p.NoCopy()
	assert.False(t, p.Spec.DoCopyTo || p.Spec.DoCopyBack)
	assert.Equal(t, int64(4), SizeOfType(INT32))
	assert.Equal(t, "long", CTypeName(INT64))
}
