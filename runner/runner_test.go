package runner

import (
	"strings"
	"testing"

	"github.com/notargets/kernelperf/runner/builder"
	"github.com/notargets/kernelperf/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_NilDevice(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil Device")
		}
	}()
	NewRunner(nil, builder.Config{})
}

func TestRunner_Bindings(t *testing.T) {
	device := utils.CreateTestDevice()
	defer device.Free()

	kr := NewRunner(device, builder.Config{BlockSize: 64})
	defer kr.Free()

	a := make([]float64, 10)
	require.NoError(t, kr.DefineBindings(
		builder.Input("a").Bind(a),
		builder.Output("c").Bind(make([]float64, 10)),
		builder.Scalar("alpha").Bind(2.0),
		builder.Temp("scratch").Type(builder.Float64).Size(4),
	))
	assert.Error(t, kr.DefineBindings(builder.Input("a").Bind(a)), "duplicate binding")
	assert.Error(t, kr.DefineBindings(builder.Temp("bad").Bind(a)), "temp with host data")

	_, err := kr.ConfigureKernel("early", kr.Param("a"))
	assert.Error(t, err, "configure before allocation")

	require.NoError(t, kr.AllocateDevice())
	assert.Error(t, kr.AllocateDevice())
	assert.Len(t, kr.PooledMemory, 3, "scalars get no device memory")

	_, err = kr.ConfigureKernel("k", kr.Param("missing"))
	assert.Error(t, err)
	_, err = kr.ConfigureKernel("k", kr.Param("alpha").CopyTo())
	assert.Error(t, err, "scalars are passed by value")

	_, err = kr.ConfigureKernel("k",
		kr.Param("a").CopyTo(),
		kr.Param("c").CopyBack(),
		kr.Param("alpha"),
	)
	require.NoError(t, err)
	sig, err := kr.GetKernelSignature("k")
	require.NoError(t, err)
	assert.Equal(t, "const real_t *a,\n\treal_t *c,\n\tconst real_t alpha", sig)
}

func TestRunner_ScaleKernel(t *testing.T) {
	device := utils.CreateTestDevice()
	defer device.Free()

	const n = 1000
	for _, bs := range []int{32, 128} {
		kr := NewRunner(device, builder.Config{BlockSize: bs, Defines: map[string]int{"N": n}})

		a := make([]float64, n)
		c := make([]float64, n)
		for i := range a {
			a[i] = float64(i)
		}
		require.NoError(t, kr.DefineBindings(
			builder.Input("a").Bind(a),
			builder.Output("c").Bind(c),
			builder.Scalar("alpha").Bind(3.0),
		))
		require.NoError(t, kr.AllocateDevice())
		_, err := kr.ConfigureKernel("scale",
			kr.Param("a").CopyTo(),
			kr.Param("c").CopyBack(),
			kr.Param("alpha"),
		)
		require.NoError(t, err)
		sig, err := kr.GetKernelSignature("scale")
		require.NoError(t, err)

		src := `
@kernel void scale(` + sig + `) {
	for (int i = 0; i < N; ++i; @tile(BLOCK_SIZE, @outer, @inner)) {
		c[i] = alpha * a[i];
	}
}`
		_, err = kr.BuildKernel(src, "scale")
		require.NoError(t, err)
		assert.True(t, strings.Contains(kr.KernelPreamble, "#define BLOCK_SIZE"))

		require.NoError(t, kr.ExecuteKernel("scale"))
		for i := range c {
			if c[i] != 3*a[i] {
				t.Fatalf("block %d: c[%d] = %g, want %g", bs, i, c[i], 3*a[i])
			}
		}

		// explicit scalar overrides the bound value
		require.NoError(t, kr.ExecuteKernel("scale", 0.5))
		assert.Equal(t, 0.5*a[n-1], c[n-1])

		// host edits reach the device only through CopyTo
		a[0] = 42
		require.NoError(t, kr.CopyToDevice("a"))
		require.NoError(t, kr.ExecuteKernel("scale", 1.0))
		assert.Equal(t, 42.0, c[0])
		kr.Free()
	}
}

func TestRunner_ExecuteErrors(t *testing.T) {
	device := utils.CreateTestDevice()
	defer device.Free()

	kr := NewRunner(device, builder.Config{})
	defer kr.Free()

	assert.Error(t, kr.ExecuteKernel("none"))
	require.NoError(t, kr.DefineBindings(builder.InOut("x").Bind(make([]float64, 4))))
	require.NoError(t, kr.AllocateDevice())
	_, err := kr.ConfigureKernel("k", kr.Param("x").Copy())
	require.NoError(t, err)
	assert.Error(t, kr.ExecuteKernel("k"), "configured but not compiled")

	_, err = kr.BuildKernel("@kernel void k(this is not okl) {}", "k")
	assert.Error(t, err)
	assert.Error(t, kr.CopyFromDevice("missing"))
}
