package kernels

import (
	"github.com/gomlx/reduceop/internal/optypes"
	"github.com/x448/float16"
)

// Float16 has no native Go arithmetic, so its kernels convert the buffers to
// float32, run the float32 kernels and convert the result back. The conversion
// from float16 to float32 is exact, so the equality comparison of the max/min
// gradient is unaffected.

func float16ToFloat32(values []float16.Float16) []float32 {
	converted := make([]float32, len(values))
	for i, v := range values {
		converted[i] = v.Float32()
	}
	return converted
}

func float32ToFloat16(values []float32, out []float16.Float16) {
	for i, v := range values {
		out[i] = float16.Fromfloat32(v)
	}
}

// ReduceFloat16 is the Float16 version of Reduce.
func ReduceFloat16(opType optypes.OpType, x []float16.Float16, dims []int, axis int, out []float16.Float16) error {
	out32 := make([]float32, len(out))
	if err := Reduce(opType, float16ToFloat32(x), dims, axis, out32); err != nil {
		return err
	}
	float32ToFloat16(out32, out)
	return nil
}

// ReduceGradFloat16 is the Float16 version of ReduceGrad.
func ReduceGradFloat16(opType optypes.OpType, x, out, outGrad []float16.Float16, dims []int, axis int, xGrad []float16.Float16) error {
	xGrad32 := make([]float32, len(xGrad))
	err := ReduceGrad(opType, float16ToFloat32(x), float16ToFloat32(out), float16ToFloat32(outGrad),
		dims, axis, xGrad32)
	if err != nil {
		return err
	}
	float32ToFloat16(xGrad32, xGrad)
	return nil
}
