package tensor

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/reduceop/types/shapes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestNew(t *testing.T) {
	tns := must.M1(New(shapes.Make(dtypes.Float32, 2, 3)))
	require.Equal(t, 6, tns.Size())
	require.Equal(t, dtypes.Float32, tns.DType())
	require.Equal(t, make([]float32, 6), Data[float32](tns))

	tns = must.M1(New(shapes.Make(dtypes.Float16, 2)))
	require.Len(t, Data[float16.Float16](tns), 2)

	// Only float dtypes are supported.
	_, err := New(shapes.Make(dtypes.Int32, 2))
	require.Error(t, err)
	_, err = New(shapes.Invalid())
	require.Error(t, err)
}

func TestFromFlat(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6}
	tns := must.M1(FromFlat(shapes.Make(dtypes.Float64, 2, 3), flat))
	require.Equal(t, flat, Data[float64](tns))

	// The buffer is wrapped, not copied.
	flat[0] = 7
	require.Equal(t, float64(7), Data[float64](tns)[0])

	// Element count and dtype must match the shape.
	_, err := FromFlat(shapes.Make(dtypes.Float64, 2, 2), flat)
	require.Error(t, err)
	_, err = FromFlat(shapes.Make(dtypes.Float32, 2, 3), flat)
	require.Error(t, err)
}

func TestFromValue(t *testing.T) {
	tns := must.M1(FromValue([][]float32{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, tns.Shape().Check(dtypes.Float32, 2, 3))
	require.Equal(t, []float32{1, 2, 3, 4, 5, 6}, Data[float32](tns))

	scalar := must.M1(FromValue(float64(3.5)))
	require.True(t, scalar.Shape().IsScalar())
	require.Equal(t, []float64{3.5}, Data[float64](scalar))

	// Irregular nested slices are rejected.
	_, err := FromValue([][]float32{{1, 2}, {3}})
	require.Error(t, err)
}

func TestData(t *testing.T) {
	tns := must.M1(FromValue([]float32{1, 2}))
	require.Equal(t, []float32{1, 2}, Data[float32](tns))
	require.Panics(t, func() { Data[float64](tns) })
}

func TestResize(t *testing.T) {
	tns := must.M1(FromValue([]float32{1, 2, 3, 4, 5, 6}))

	// Same element count: the buffer (and its contents) is reused.
	require.NoError(t, tns.Resize(shapes.Make(dtypes.Float32, 2, 3)))
	require.NoError(t, tns.Shape().Check(dtypes.Float32, 2, 3))
	require.Equal(t, []float32{1, 2, 3, 4, 5, 6}, Data[float32](tns))

	// Different element count: a fresh zero buffer.
	require.NoError(t, tns.Resize(shapes.Make(dtypes.Float32, 2)))
	require.Equal(t, []float32{0, 0}, Data[float32](tns))

	// The dtype cannot change.
	require.Error(t, tns.Resize(shapes.Make(dtypes.Float64, 2)))
}

func TestLoD(t *testing.T) {
	x := must.M1(FromValue([]float32{1, 2, 3}))
	require.Nil(t, x.LoD())

	lod := [][]int{{0, 1, 3}}
	x.SetLoD(lod)
	require.Equal(t, lod, x.LoD())

	// ShareLoD shares the same underlying metadata, it doesn't copy it.
	y := must.M1(FromValue([]float32{4, 5}))
	y.ShareLoD(x)
	require.Equal(t, lod, y.LoD())
	lod[0][1] = 2
	require.Equal(t, 2, y.LoD()[0][1])

	y.ClearLoD()
	require.Nil(t, y.LoD())
	require.Equal(t, lod, x.LoD())
}
