package reduceop

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/reduceop/internal/optypes"
	"github.com/gomlx/reduceop/kernels"
	"github.com/gomlx/reduceop/tensor"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

// forwardKernel runs one forward reduction over x along the (already
// normalized) axis, writing into out, which has already been resized to the
// inferred output shape.
type forwardKernel func(opType optypes.OpType, x *tensor.Tensor, axis int, out *tensor.Tensor) error

// gradKernel runs one backward reduction: x is the forward input, out the
// forward output, outGrad the incoming gradient, and xGrad the destination,
// already resized to x's shape.
type gradKernel func(opType optypes.OpType, x, out, outGrad *tensor.Tensor, axis int, xGrad *tensor.Tensor) error

// Kernels are selected by operator and element dtype.
type kernelKey struct {
	opType optypes.OpType
	dtype  dtypes.DType
}

var (
	forwardKernels = make(map[kernelKey]forwardKernel)
	gradKernels    = make(map[kernelKey]gradKernel)
)

func registerForward(opType optypes.OpType, dtype dtypes.DType, kernel forwardKernel) {
	klog.V(1).Infof("registering %s kernel for dtype %s", opType.Identifier(), dtype)
	forwardKernels[kernelKey{opType, dtype}] = kernel
}

func registerGrad(opType optypes.OpType, dtype dtypes.DType, kernel gradKernel) {
	klog.V(1).Infof("registering %s kernel for dtype %s", opType.Identifier(), dtype)
	gradKernels[kernelKey{opType, dtype}] = kernel
}

func forwardKernelFor(opType optypes.OpType, dtype dtypes.DType) (forwardKernel, error) {
	kernel, found := forwardKernels[kernelKey{opType, dtype}]
	if !found {
		return nil, errors.Errorf("no %s kernel registered for dtype %s", opType.Identifier(), dtype)
	}
	return kernel, nil
}

func gradKernelFor(opType optypes.OpType, dtype dtypes.DType) (gradKernel, error) {
	kernel, found := gradKernels[kernelKey{opType, dtype}]
	if !found {
		return nil, errors.Errorf("no %s kernel registered for dtype %s", opType.Identifier(), dtype)
	}
	return kernel, nil
}

func forwardPOD[T kernels.FloatPOD](opType optypes.OpType, x *tensor.Tensor, axis int, out *tensor.Tensor) error {
	return kernels.Reduce(opType, tensor.Data[T](x), x.Shape().Dimensions, axis, tensor.Data[T](out))
}

func forwardFloat16(opType optypes.OpType, x *tensor.Tensor, axis int, out *tensor.Tensor) error {
	return kernels.ReduceFloat16(opType, tensor.Data[float16.Float16](x), x.Shape().Dimensions, axis,
		tensor.Data[float16.Float16](out))
}

func gradPOD[T kernels.FloatPOD](opType optypes.OpType, x, out, outGrad *tensor.Tensor, axis int, xGrad *tensor.Tensor) error {
	return kernels.ReduceGrad(opType, tensor.Data[T](x), tensor.Data[T](out), tensor.Data[T](outGrad),
		x.Shape().Dimensions, axis, tensor.Data[T](xGrad))
}

func gradFloat16(opType optypes.OpType, x, out, outGrad *tensor.Tensor, axis int, xGrad *tensor.Tensor) error {
	return kernels.ReduceGradFloat16(opType, tensor.Data[float16.Float16](x), tensor.Data[float16.Float16](out),
		tensor.Data[float16.Float16](outGrad), x.Shape().Dimensions, axis, tensor.Data[float16.Float16](xGrad))
}

func init() {
	for _, opType := range []optypes.OpType{
		optypes.ReduceSum, optypes.ReduceMean, optypes.ReduceMax, optypes.ReduceMin,
	} {
		registerForward(opType, dtypes.Float16, forwardFloat16)
		registerForward(opType, dtypes.Float32, forwardPOD[float32])
		registerForward(opType, dtypes.Float64, forwardPOD[float64])

		gradType := opType.Grad()
		registerGrad(gradType, dtypes.Float16, gradFloat16)
		registerGrad(gradType, dtypes.Float32, gradPOD[float32])
		registerGrad(gradType, dtypes.Float64, gradPOD[float64])
	}
}
