package reduceop

import (
	"github.com/gomlx/reduceop/internal/optypes"
	"github.com/gomlx/reduceop/tensor"
	"github.com/gomlx/reduceop/types/shapes"
)

// The convenience layer builds a one-shot scope per call, for users that
// don't manage scopes themselves.

func reduce(opType optypes.OpType, x *tensor.Tensor, axis int, keepDim bool) (*tensor.Tensor, error) {
	out, err := tensor.New(shapes.Make(x.DType()))
	if err != nil {
		return nil, err
	}
	scope := Scope{XName: x, OutName: out}
	attrs := Attributes{DimAttr: axis, KeepDimAttr: keepDim}
	if err := Run(opType, scope, attrs); err != nil {
		return nil, err
	}
	return out, nil
}

func reduceGrad(opType optypes.OpType, x, out, outGrad *tensor.Tensor, axis int) (*tensor.Tensor, error) {
	xGrad, err := tensor.New(shapes.Make(x.DType()))
	if err != nil {
		return nil, err
	}
	scope := Scope{
		XName:             x,
		GradName(OutName): outGrad,
		GradName(XName):   xGrad,
	}
	if out != nil {
		scope[OutName] = out
	}
	attrs := Attributes{DimAttr: axis}
	if err := Run(opType, scope, attrs); err != nil {
		return nil, err
	}
	return xGrad, nil
}

// ReduceSum sums x along the given axis (negative counts from the end). If
// keepDim the reduced axis is retained with dimension 1, otherwise it is
// removed -- except for rank-1 inputs, which always keep their single axis.
func ReduceSum(x *tensor.Tensor, axis int, keepDim bool) (*tensor.Tensor, error) {
	return reduce(optypes.ReduceSum, x, axis, keepDim)
}

// ReduceMean averages x along the given axis. See ReduceSum for the axis and
// keepDim conventions.
func ReduceMean(x *tensor.Tensor, axis int, keepDim bool) (*tensor.Tensor, error) {
	return reduce(optypes.ReduceMean, x, axis, keepDim)
}

// ReduceMax takes the maximum of x along the given axis. See ReduceSum for
// the axis and keepDim conventions.
func ReduceMax(x *tensor.Tensor, axis int, keepDim bool) (*tensor.Tensor, error) {
	return reduce(optypes.ReduceMax, x, axis, keepDim)
}

// ReduceMin takes the minimum of x along the given axis. See ReduceSum for
// the axis and keepDim conventions.
func ReduceMin(x *tensor.Tensor, axis int, keepDim bool) (*tensor.Tensor, error) {
	return reduce(optypes.ReduceMin, x, axis, keepDim)
}

// ReduceSumGrad returns the gradient of ReduceSum(x, axis, ...) with respect
// to x, given the gradient of its output: the incoming gradient broadcast
// along the reduced axis. out may be nil, the sum gradient doesn't read it.
func ReduceSumGrad(x, out, outGrad *tensor.Tensor, axis int) (*tensor.Tensor, error) {
	return reduceGrad(optypes.ReduceSumGrad, x, out, outGrad, axis)
}

// ReduceMeanGrad returns the gradient of ReduceMean(x, axis, ...) with
// respect to x: the incoming gradient divided by the axis length, broadcast
// along the reduced axis. out may be nil, the mean gradient doesn't read it.
func ReduceMeanGrad(x, out, outGrad *tensor.Tensor, axis int) (*tensor.Tensor, error) {
	return reduceGrad(optypes.ReduceMeanGrad, x, out, outGrad, axis)
}

// ReduceMaxGrad returns the gradient of ReduceMax(x, axis, ...) with respect
// to x. out is the forward output and is required: every position of x that
// equals it receives the full incoming gradient (ties included), the rest
// receive zero.
func ReduceMaxGrad(x, out, outGrad *tensor.Tensor, axis int) (*tensor.Tensor, error) {
	return reduceGrad(optypes.ReduceMaxGrad, x, out, outGrad, axis)
}

// ReduceMinGrad returns the gradient of ReduceMin(x, axis, ...) with respect
// to x. out is the forward output and is required; the tie policy matches
// ReduceMaxGrad.
func ReduceMinGrad(x, out, outGrad *tensor.Tensor, axis int) (*tensor.Tensor, error) {
	return reduceGrad(optypes.ReduceMinGrad, x, out, outGrad, axis)
}
