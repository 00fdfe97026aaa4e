// Package shapeinference calculates the shapes resulting from the reduction
// operators and validates their inputs.
//
// Reduce computes the output shape of a forward reduction (sum, mean, max or
// min) along a single axis, and ReduceGrad computes the shape of the gradient
// with respect to the input -- always the input's own shape.
//
// Both directions share the same validation of the operand and axis, so a
// failed call reports the same error regardless of direction.
package shapeinference

import (
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/reduceop/internal/optypes"
	"github.com/gomlx/reduceop/internal/utils"
	"github.com/gomlx/reduceop/types/shapes"
	"github.com/pkg/errors"
)

// MaxReduceRank is the largest operand rank the reduction operators support.
const MaxReduceRank = 6

var (
	// ErrUnsupportedRank is reported when the operand rank exceeds MaxReduceRank.
	ErrUnsupportedRank = errors.New("tensors with rank at most 6 are supported")

	// ErrInvalidAxis is reported when the reduction axis falls outside
	// [-rank, rank) -- after normalization, outside [0, rank).
	ErrInvalidAxis = errors.New("reduction axis out of range")
)

var (
	// ReduceOperations are the forward reduction operators.
	ReduceOperations = utils.SetWith(
		optypes.ReduceSum,
		optypes.ReduceMean,
		optypes.ReduceMax,
		optypes.ReduceMin,
	)

	// ReduceGradOperations are the gradient counterparts of ReduceOperations.
	ReduceGradOperations = utils.SetWith(
		optypes.ReduceSumGrad,
		optypes.ReduceMeanGrad,
		optypes.ReduceMaxGrad,
		optypes.ReduceMinGrad,
	)

	// FloatReduceDTypes are the data types the reduction kernels operate on.
	// Mean requires floating arithmetic, so the whole family is float-only.
	FloatReduceDTypes = utils.SetWith(
		dtypes.Float16,
		dtypes.Float32,
		dtypes.Float64,
	)
)

// AdjustAxisToRank returns a positive axis, adjusting negative numbers to the correct rank.
func AdjustAxisToRank(axis, rank int) (int, error) {
	if axis < -rank || axis >= rank {
		return -1, errors.Wrapf(ErrInvalidAxis, "axis %d is out of range for rank %d", axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis, nil
}

// checkReduceOperand validates the operand shape and axis shared by the forward
// and backward directions, and returns the normalized (non-negative) axis.
//
// Validation happens before any output is touched: on error, nothing else
// should be resized or written.
func checkReduceOperand(opType optypes.OpType, operand shapes.Shape, axis int) (adjustedAxis int, err error) {
	if !operand.Ok() {
		return -1, errors.Errorf("invalid operand shape %s for %s", operand, opType)
	}
	if !FloatReduceDTypes.Has(operand.DType) {
		return -1, errors.Errorf("%s must have a float (Float16, Float32, Float64) data type as input, got %s",
			opType, operand)
	}
	rank := operand.Rank()
	if rank == 0 {
		return -1, errors.Errorf("%s requires a non-scalar operand, got %s", opType, operand)
	}
	if rank > MaxReduceRank {
		return -1, errors.Wrapf(ErrUnsupportedRank, "operand for %s has shape %s (rank %d)",
			opType, operand, rank)
	}
	adjustedAxis, err = AdjustAxisToRank(axis, rank)
	if err != nil {
		return -1, errors.WithMessagef(err, "invalid reduction axis for %s, operand shape is %s", opType, operand)
	}
	return adjustedAxis, nil
}

// Reduce returns the output shape of a forward reduction of the operand along
// the given axis.
//
// The axis may be negative, in which case it counts from the last axis. If
// keepDim is true the reduced axis is retained with dimension 1; otherwise it
// is removed from the shape. A rank-1 operand always retains its single axis
// (with dimension 1), since the result must still be a tensor.
//
// It also returns the normalized (non-negative) axis, which callers need to
// decide LoD propagation and to drive the kernels.
func Reduce(opType optypes.OpType, operand shapes.Shape, axis int, keepDim bool) (output shapes.Shape, adjustedAxis int, err error) {
	if !ReduceOperations.Has(opType) {
		err = errors.Errorf("operation %s is not in the ReduceOperations set, cannot process it with Reduce", opType)
		return
	}
	adjustedAxis, err = checkReduceOperand(opType, operand, axis)
	if err != nil {
		return
	}

	output = shapes.Make(operand.DType, reducedDims(operand.Dimensions, adjustedAxis, keepDim)...)
	return
}

// reducedDims returns the dimensions left after reducing the given axis: set
// to 1 when kept (always for rank-1 operands), removed otherwise.
func reducedDims(dims []int, axis int, keepDim bool) []int {
	dims = slices.Clone(dims)
	if keepDim || len(dims) == 1 {
		dims[axis] = 1
		return dims
	}
	return slices.Delete(dims, axis, axis+1)
}

// ReduceGrad returns the shape of the gradient with respect to the operand of
// a reduction: always the operand's own shape, independent of keepDim.
//
// outputGrad is the shape of the incoming gradient (the gradient of the
// forward output); it must have the operand's dtype and a forward output's
// dimensions -- either the keepDim or the collapsed form is accepted.
func ReduceGrad(opType optypes.OpType, operand, outputGrad shapes.Shape, axis int) (gradient shapes.Shape, adjustedAxis int, err error) {
	if !ReduceGradOperations.Has(opType) {
		err = errors.Errorf("operation %s is not in the ReduceGradOperations set, cannot process it with ReduceGrad", opType)
		return
	}
	adjustedAxis, err = checkReduceOperand(opType, operand, axis)
	if err != nil {
		return
	}
	if outputGrad.DType != operand.DType {
		err = errors.Errorf("data types for %s must match, got operand %s and output gradient %s",
			opType, operand, outputGrad)
		return
	}
	// The incoming gradient must have the forward output's geometry -- with
	// the reduced axis either removed or kept with dimension 1.
	if !slices.Equal(outputGrad.Dimensions, reducedDims(operand.Dimensions, adjustedAxis, false)) &&
		!slices.Equal(outputGrad.Dimensions, reducedDims(operand.Dimensions, adjustedAxis, true)) {
		err = errors.Errorf("output gradient %s for %s doesn't match the output of reducing %s along axis %d",
			outputGrad, opType, operand, adjustedAxis)
		return
	}
	gradient = operand.Clone()
	return
}
