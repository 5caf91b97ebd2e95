// Package stream holds the STREAM-style bandwidth kernels
package stream

import (
	"github.com/notargets/kernelperf/kernels/common"
	"github.com/notargets/kernelperf/runner/builder"
)

// bindABC binds the two inputs and the output shared by ADD-shaped kernels
func bindABC(accel *common.Accel, a, b, c []float64) error {
	return accel.Bind(
		builder.Input("a").Bind(a),
		builder.Input("b").Bind(b),
		builder.Output("c").Bind(c),
	)
}
