// Package kernels implements the single-threaded numeric kernels of the
// reduction operators: the forward pass that folds one axis of a row-major
// buffer into a scalar per slice, and the backward pass that broadcasts the
// incoming gradient back to the input positions.
//
// The kernels are pure functions over flat buffers: they view the input as
// outer × axisSize × inner, where axisSize is the dimension of the reduced
// axis, and visit each (outer, inner) combination independently. Elements of
// one axis slice sit `inner` positions apart in the flat buffer.
//
// Accumulation within a slice is in index order, so re-running a kernel on
// the same input produces bit-identical output.
//
// The reduction and gradient rules form closed sets (sum, mean, max, min and
// sumGrad, meanGrad, maxOrMinGrad), dispatched over optypes.OpType.
package kernels

import (
	"github.com/gomlx/reduceop/internal/optypes"
	"github.com/pkg/errors"
)

// FloatPOD are the Go native float types the kernels operate on directly.
// Float16 buffers reduce through float32, see ReduceFloat16.
type FloatPOD interface {
	float32 | float64
}

// reducer folds the elements of one axis slice into a single value.
//
// A fold starts with start(first element), combines the remaining elements in
// index order with accumulate, and ends with finalize, which receives the
// slice length (used by mean).
type reducer[T FloatPOD] interface {
	start(value T) T
	accumulate(acc, value T) T
	finalize(acc T, sliceLen int) T
}

type sumReducer[T FloatPOD] struct{}

func (sumReducer[T]) start(value T) T           { return value }
func (sumReducer[T]) accumulate(acc, value T) T { return acc + value }
func (sumReducer[T]) finalize(acc T, _ int) T   { return acc }

type meanReducer[T FloatPOD] struct{}

func (meanReducer[T]) start(value T) T                { return value }
func (meanReducer[T]) accumulate(acc, value T) T      { return acc + value }
func (meanReducer[T]) finalize(acc T, sliceLen int) T { return acc / T(sliceLen) }

type maxReducer[T FloatPOD] struct{}

func (maxReducer[T]) start(value T) T           { return value }
func (maxReducer[T]) accumulate(acc, value T) T { return max(acc, value) }
func (maxReducer[T]) finalize(acc T, _ int) T   { return acc }

type minReducer[T FloatPOD] struct{}

func (minReducer[T]) start(value T) T           { return value }
func (minReducer[T]) accumulate(acc, value T) T { return min(acc, value) }
func (minReducer[T]) finalize(acc T, _ int) T   { return acc }

// gradRouter distributes the incoming gradient of one reduced scalar back to
// one input position of the corresponding slice.
//
// x is the original input value at that position, y the forward output of the
// slice, gy the incoming gradient of y, and sliceLen the slice length.
type gradRouter[T FloatPOD] interface {
	route(x, y, gy T, sliceLen int) T
}

// sumGradRouter broadcasts gy unchanged: every element contributed with
// coefficient 1.
type sumGradRouter[T FloatPOD] struct{}

func (sumGradRouter[T]) route(_, _, gy T, _ int) T { return gy }

// meanGradRouter broadcasts gy divided by the slice length: every element
// contributed with coefficient 1/sliceLen.
type meanGradRouter[T FloatPOD] struct{}

func (meanGradRouter[T]) route(_, _, gy T, sliceLen int) T { return gy / T(sliceLen) }

// maxOrMinGradRouter routes the full gradient to every position whose input
// value equals the forward output, and zero elsewhere. On ties, all extremal
// positions receive the full (un-split) gradient -- gradient mass is not
// conserved in that case, by choice: every position that caused the result
// gets the gradient.
type maxOrMinGradRouter[T FloatPOD] struct{}

func (maxOrMinGradRouter[T]) route(x, y, gy T, _ int) T {
	if x == y {
		return gy
	}
	return 0
}

// sliceGeometry decomposes dims around the reduced axis: outer is the product
// of the dimensions before it, inner the product of the dimensions after it.
func sliceGeometry(dims []int, axis int) (outer, axisSize, inner int) {
	outer, inner = 1, 1
	for _, dim := range dims[:axis] {
		outer *= dim
	}
	for _, dim := range dims[axis+1:] {
		inner *= dim
	}
	return outer, dims[axis], inner
}

func checkGeometry(dims []int, axis int, inputLen, outputLen int) (outer, axisSize, inner int, err error) {
	if axis < 0 || axis >= len(dims) {
		return 0, 0, 0, errors.Errorf("axis %d out of range for dims %v -- it must be normalized by shape inference first",
			axis, dims)
	}
	outer, axisSize, inner = sliceGeometry(dims, axis)
	if inputLen != outer*axisSize*inner {
		return 0, 0, 0, errors.Errorf("input buffer has %d elements, but dims %v require %d",
			inputLen, dims, outer*axisSize*inner)
	}
	if outputLen != outer*inner {
		return 0, 0, 0, errors.Errorf("output buffer has %d elements, but reducing dims %v on axis %d requires %d",
			outputLen, dims, axis, outer*inner)
	}
	return outer, axisSize, inner, nil
}

// Reduce computes the forward reduction of x, shaped dims (row-major), along
// the given normalized axis, writing one scalar per slice into out.
//
// out must have exactly product(dims)/dims[axis] elements; its ordering is the
// row-major ordering of the non-reduced axes, which matches the output shape
// from shape inference with or without keepDim.
func Reduce[T FloatPOD](opType optypes.OpType, x []T, dims []int, axis int, out []T) error {
	outer, axisSize, inner, err := checkGeometry(dims, axis, len(x), len(out))
	if err != nil {
		return errors.WithMessagef(err, "Reduce(%s)", opType)
	}
	switch opType {
	case optypes.ReduceSum:
		reduceSlices(sumReducer[T]{}, x, out, outer, axisSize, inner)
	case optypes.ReduceMean:
		reduceSlices(meanReducer[T]{}, x, out, outer, axisSize, inner)
	case optypes.ReduceMax:
		reduceSlices(maxReducer[T]{}, x, out, outer, axisSize, inner)
	case optypes.ReduceMin:
		reduceSlices(minReducer[T]{}, x, out, outer, axisSize, inner)
	default:
		return errors.Errorf("operation %s is not a forward reduction, cannot process it with Reduce", opType)
	}
	return nil
}

func reduceSlices[T FloatPOD](r reducer[T], x, out []T, outer, axisSize, inner int) {
	for o := 0; o < outer; o++ {
		srcBase := o * axisSize * inner
		dstBase := o * inner
		for in := 0; in < inner; in++ {
			acc := r.start(x[srcBase+in])
			for k := 1; k < axisSize; k++ {
				acc = r.accumulate(acc, x[srcBase+k*inner+in])
			}
			out[dstBase+in] = r.finalize(acc, axisSize)
		}
	}
}

// ReduceGrad computes the gradient of a reduction with respect to its input.
//
// x is the original forward input (shaped dims, row-major), out the forward
// output and outGrad the incoming gradient (both with one element per slice).
// The result is written to xGrad, which must have len(x) elements; every
// position is written, so xGrad needs no zero-initialization.
//
// Max and min share one gradient rule: the full incoming gradient is routed to
// every position that equals the slice's extremum (all ties included), zero to
// the rest. Sum broadcasts the gradient unchanged and mean divides it by the
// slice length; neither inspects x or out.
func ReduceGrad[T FloatPOD](opType optypes.OpType, x, out, outGrad []T, dims []int, axis int, xGrad []T) error {
	outer, axisSize, inner, err := checkGeometry(dims, axis, len(x), len(out))
	if err != nil {
		return errors.WithMessagef(err, "ReduceGrad(%s)", opType)
	}
	if len(outGrad) != len(out) {
		return errors.Errorf("ReduceGrad(%s): output gradient has %d elements, but the forward output has %d",
			opType, len(outGrad), len(out))
	}
	if len(xGrad) != len(x) {
		return errors.Errorf("ReduceGrad(%s): input gradient buffer has %d elements, but the input has %d",
			opType, len(xGrad), len(x))
	}
	switch opType {
	case optypes.ReduceSumGrad:
		routeSlices(sumGradRouter[T]{}, x, out, outGrad, xGrad, outer, axisSize, inner)
	case optypes.ReduceMeanGrad:
		routeSlices(meanGradRouter[T]{}, x, out, outGrad, xGrad, outer, axisSize, inner)
	case optypes.ReduceMaxGrad, optypes.ReduceMinGrad:
		routeSlices(maxOrMinGradRouter[T]{}, x, out, outGrad, xGrad, outer, axisSize, inner)
	default:
		return errors.Errorf("operation %s is not a reduction gradient, cannot process it with ReduceGrad", opType)
	}
	return nil
}

func routeSlices[T FloatPOD](g gradRouter[T], x, out, outGrad, xGrad []T, outer, axisSize, inner int) {
	for o := 0; o < outer; o++ {
		srcBase := o * axisSize * inner
		dstBase := o * inner
		for in := 0; in < inner; in++ {
			y := out[dstBase+in]
			gy := outGrad[dstBase+in]
			for k := 0; k < axisSize; k++ {
				idx := srcBase + k*inner + in
				xGrad[idx] = g.route(x[idx], y, gy, axisSize)
			}
		}
	}
}
