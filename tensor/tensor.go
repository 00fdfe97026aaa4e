// Package tensor implements a dense tensor: a shape plus a contiguous flat
// buffer of the shape's dtype, with optional LoD (level-of-detail) sequence
// metadata attached.
//
// Tensors here are plain in-process buffers owned by the caller: the reduction
// operators receive borrowed references, resize outputs as needed, and never
// hold on to a tensor across calls.
//
// LoD marks variable-length sequence boundaries along axis 0 of a batch. It is
// propagated by reference (shared, not copied) between tensors, and dropped
// when an operation consumes axis 0, since the batch boundaries then stop
// being meaningful.
package tensor

import (
	"reflect"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/reduceop/types/shapes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Tensor is a shape plus a contiguous flat buffer with shape.Size() elements
// of the shape's dtype, in row-major order.
type Tensor struct {
	shape shapes.Shape

	// flat is one of []float16.Float16, []float32 or []float64, depending on
	// the shape's dtype. Access it with Data or Flat.
	flat any

	// lod holds the sequence boundaries, when set. Shared by reference.
	lod [][]int
}

// FloatPOD are the Go native float types tensors can hold, besides
// float16.Float16.
type FloatPOD interface {
	float32 | float64
}

// Supported are the element types a Tensor buffer can hold.
type Supported interface {
	float16.Float16 | float32 | float64
}

// New creates a zero-initialized tensor of the given shape.
//
// It returns an error if the shape's dtype is not one of the supported float
// types.
func New(shape shapes.Shape) (*Tensor, error) {
	flat, err := makeFlat(shape)
	if err != nil {
		return nil, err
	}
	return &Tensor{shape: shape, flat: flat}, nil
}

func makeFlat(shape shapes.Shape) (any, error) {
	if !shape.Ok() {
		return nil, errors.Errorf("cannot allocate a tensor for invalid shape %s", shape)
	}
	size := shape.Size()
	switch shape.DType {
	case dtypes.Float16:
		return make([]float16.Float16, size), nil
	case dtypes.Float32:
		return make([]float32, size), nil
	case dtypes.Float64:
		return make([]float64, size), nil
	default:
		return nil, errors.Errorf("tensors of dtype %s are not supported (only Float16, Float32 and Float64)",
			shape.DType)
	}
}

// FromFlat creates a tensor of the given shape wrapping the given flat data,
// which must have exactly shape.Size() elements of the shape's dtype.
// The data is not copied.
func FromFlat[T Supported](shape shapes.Shape, flat []T) (*Tensor, error) {
	if len(flat) != shape.Size() {
		return nil, errors.Errorf("flat data has %d elements, but shape %s requires %d",
			len(flat), shape, shape.Size())
	}
	var zero T
	if dtypes.FromGoType(reflect.TypeOf(zero)) != shape.DType {
		return nil, errors.Errorf("flat data of type %T doesn't match shape %s", flat, shape)
	}
	return &Tensor{shape: shape, flat: flat}, nil
}

// FromValue creates a tensor from a Go value: a float scalar or a (possibly
// nested) slice of floats. The shape is derived from the value.
//
// Example:
//
//	t, err := tensor.FromValue([][]float32{{1, 2, 3}, {4, 5, 6}}) // (Float32)[2 3]
func FromValue(value any) (*Tensor, error) {
	shape, err := shapes.FromAnyValue(value)
	if err != nil {
		return nil, err
	}
	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	dst := reflect.ValueOf(t.flat)
	if _, err := copyFlatRecursive(dst, 0, reflect.ValueOf(value)); err != nil {
		return nil, err
	}
	return t, nil
}

func copyFlatRecursive(dst reflect.Value, idx int, v reflect.Value) (int, error) {
	if v.Kind() != reflect.Slice {
		if !v.Type().ConvertibleTo(dst.Type().Elem()) {
			return 0, errors.Errorf("cannot convert element of type %s to %s", v.Type(), dst.Type().Elem())
		}
		dst.Index(idx).Set(v.Convert(dst.Type().Elem()))
		return idx + 1, nil
	}
	var err error
	for i := 0; i < v.Len(); i++ {
		idx, err = copyFlatRecursive(dst, idx, v.Index(i))
		if err != nil {
			return 0, err
		}
	}
	return idx, nil
}

// Shape of the tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the tensor's elements, a shortcut to Shape().DType.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Size returns the number of elements in the tensor's buffer.
func (t *Tensor) Size() int { return t.shape.Size() }

// String implements fmt.Stringer, printing only the shape, not the contents.
func (t *Tensor) String() string { return t.shape.String() }

// Flat returns the underlying flat buffer as an `any`: one of
// []float16.Float16, []float32 or []float64. The buffer is not copied.
func (t *Tensor) Flat() any { return t.flat }

// Data returns the tensor's flat buffer as a slice of the given type.
// It panics if T doesn't correspond to the tensor's dtype.
func Data[T Supported](t *Tensor) []T {
	flat, ok := t.flat.([]T)
	if !ok {
		exceptions.Panicf("tensor.Data[%T]: tensor has dtype %s", flat, t.shape.DType)
	}
	return flat
}

// Resize changes the tensor's shape. The dtype must not change.
//
// If the new shape has the same number of elements, the buffer is reused
// (its contents preserved); otherwise a new zero-initialized buffer is
// allocated.
func (t *Tensor) Resize(shape shapes.Shape) error {
	if shape.DType != t.shape.DType {
		return errors.Errorf("Resize cannot change the dtype of tensor %s to %s", t.shape, shape)
	}
	if shape.Size() != t.shape.Size() {
		flat, err := makeFlat(shape)
		if err != nil {
			return err
		}
		t.flat = flat
	}
	t.shape = shape.Clone()
	return nil
}

// LoD returns the tensor's sequence metadata, or nil if none is attached.
func (t *Tensor) LoD() [][]int { return t.lod }

// SetLoD attaches sequence metadata to the tensor.
func (t *Tensor) SetLoD(lod [][]int) { t.lod = lod }

// ShareLoD shares the source tensor's LoD by reference: both tensors point at
// the same underlying metadata afterwards.
func (t *Tensor) ShareLoD(source *Tensor) { t.lod = source.lod }

// ClearLoD detaches any sequence metadata from the tensor.
func (t *Tensor) ClearLoD() { t.lod = nil }
