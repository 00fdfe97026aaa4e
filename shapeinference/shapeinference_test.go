package shapeinference

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/reduceop/internal/optypes"
	"github.com/gomlx/reduceop/types/shapes"
	"github.com/pkg/errors"
)

// Aliases
var (
	F32 = dtypes.Float32
	F64 = dtypes.Float64
	I32 = dtypes.Int32

	S = shapes.Make
)

func TestAdjustAxisToRank(t *testing.T) {
	for _, test := range []struct {
		axis, rank, want int
	}{
		{0, 3, 0},
		{2, 3, 2},
		{-1, 3, 2},
		{-3, 3, 0},
	} {
		got, err := AdjustAxisToRank(test.axis, test.rank)
		if err != nil {
			t.Errorf("AdjustAxisToRank(%d, %d) failed: %v", test.axis, test.rank, err)
			continue
		}
		if got != test.want {
			t.Errorf("AdjustAxisToRank(%d, %d) = %d, want %d", test.axis, test.rank, got, test.want)
		}
	}

	for _, test := range []struct{ axis, rank int }{
		{3, 3},
		{-4, 3},
		{0, 0},
	} {
		_, err := AdjustAxisToRank(test.axis, test.rank)
		if !errors.Is(err, ErrInvalidAxis) {
			t.Errorf("AdjustAxisToRank(%d, %d): expected ErrInvalidAxis, got %v", test.axis, test.rank, err)
		}
	}
}

func TestReduce(t *testing.T) {
	// Every rank from 1 to 6, every valid axis (including negative forms),
	// both keepDim values: the output rank is rank (keepDim or rank==1) or
	// rank-1, and every non-reduced dimension is unchanged.
	fullDims := []int{2, 3, 4, 5, 6, 7}
	for rank := 1; rank <= MaxReduceRank; rank++ {
		dims := fullDims[:rank]
		operand := S(F32, dims...)
		for axis := -rank; axis < rank; axis++ {
			adjusted := axis
			if adjusted < 0 {
				adjusted += rank
			}
			for _, keepDim := range []bool{false, true} {
				output, gotAxis, err := Reduce(optypes.ReduceSum, operand, axis, keepDim)
				if err != nil {
					t.Fatalf("Reduce(%s, axis=%d, keepDim=%v) failed: %v", operand, axis, keepDim, err)
				}
				if gotAxis != adjusted {
					t.Errorf("Reduce(%s, axis=%d) normalized axis to %d, want %d", operand, axis, gotAxis, adjusted)
				}
				wantRank := rank - 1
				if keepDim || rank == 1 {
					wantRank = rank
				}
				if output.Rank() != wantRank {
					t.Errorf("Reduce(%s, axis=%d, keepDim=%v) = %s, want rank %d",
						operand, axis, keepDim, output, wantRank)
					continue
				}
				// Non-reduced dimensions are unchanged, in order.
				wantDims := make([]int, 0, wantRank)
				for i, dim := range dims {
					if i == adjusted {
						if keepDim || rank == 1 {
							wantDims = append(wantDims, 1)
						}
						continue
					}
					wantDims = append(wantDims, dim)
				}
				if err := output.CheckDims(wantDims...); err != nil {
					t.Errorf("Reduce(%s, axis=%d, keepDim=%v) = %s, want dimensions %v: %v",
						operand, axis, keepDim, output, wantDims, err)
				}
			}
		}
	}
}

func TestReduceExamples(t *testing.T) {
	// (Float32)[2 3] reduced on axis 1 without keepDim collapses to [2].
	output, _, err := Reduce(optypes.ReduceMean, S(F32, 2, 3), 1, false)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if err := output.Check(F32, 2); err != nil {
		t.Errorf("Reduce((F32)[2 3], axis=1) = %s, want (F32)[2]: %v", output, err)
	}

	// With keepDim the axis is retained with dimension 1.
	output, _, err = Reduce(optypes.ReduceMax, S(F64, 2, 3), 1, true)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if err := output.Check(F64, 2, 1); err != nil {
		t.Errorf("Reduce((F64)[2 3], axis=1, keepDim) = %s, want (F64)[2 1]: %v", output, err)
	}

	// Rank-1 operands always keep their single axis.
	output, _, err = Reduce(optypes.ReduceMin, S(F32, 5), 0, false)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if err := output.Check(F32, 1); err != nil {
		t.Errorf("Reduce((F32)[5], axis=0) = %s, want (F32)[1]: %v", output, err)
	}

	// axis=-1 is equivalent to the last axis.
	negOutput, negAxis, err := Reduce(optypes.ReduceSum, S(F32, 2, 3, 4), -1, false)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	posOutput, posAxis, err := Reduce(optypes.ReduceSum, S(F32, 2, 3, 4), 2, false)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if negAxis != posAxis || !negOutput.Equal(posOutput) {
		t.Errorf("Reduce(axis=-1) = (%s, %d), want same as Reduce(axis=2) = (%s, %d)",
			negOutput, negAxis, posOutput, posAxis)
	}
}

func TestReduceErrors(t *testing.T) {
	// Rank above MaxReduceRank is rejected.
	_, _, err := Reduce(optypes.ReduceSum, S(F32, 1, 2, 3, 4, 5, 6, 7), 0, false)
	if !errors.Is(err, ErrUnsupportedRank) {
		t.Errorf("expected ErrUnsupportedRank for rank-7 operand, got %v", err)
	}

	// Axis out of [-rank, rank) is rejected, before and after normalization.
	_, _, err = Reduce(optypes.ReduceSum, S(F32, 2, 3, 4), -4, false)
	if !errors.Is(err, ErrInvalidAxis) {
		t.Errorf("expected ErrInvalidAxis for axis=-4 and rank 3, got %v", err)
	}
	_, _, err = Reduce(optypes.ReduceSum, S(F32, 2, 3, 4), 3, false)
	if !errors.Is(err, ErrInvalidAxis) {
		t.Errorf("expected ErrInvalidAxis for axis=3 and rank 3, got %v", err)
	}

	// Only forward reductions are accepted by Reduce.
	if _, _, err = Reduce(optypes.ReduceSumGrad, S(F32, 2, 3), 0, false); err == nil {
		t.Error("expected error for Reduce(ReduceSumGrad, ...), got nil")
	}

	// Non-float dtypes are rejected.
	if _, _, err = Reduce(optypes.ReduceSum, S(I32, 2, 3), 0, false); err == nil {
		t.Error("expected error for Reduce of an Int32 operand, got nil")
	}

	// Scalar operands are rejected.
	if _, _, err = Reduce(optypes.ReduceSum, S(F32), 0, false); err == nil {
		t.Error("expected error for Reduce of a scalar operand, got nil")
	}

	// Invalid shapes are rejected.
	if _, _, err = Reduce(optypes.ReduceSum, shapes.Invalid(), 0, false); err == nil {
		t.Error("expected error for Reduce of an invalid shape, got nil")
	}
}

func TestReduceGrad(t *testing.T) {
	// The gradient shape is always the operand shape, independent of how the
	// forward output was shaped (keepDim or not).
	operand := S(F32, 2, 3, 4)
	for _, outputGrad := range []shapes.Shape{S(F32, 2, 4), S(F32, 2, 1, 4)} {
		gradient, adjustedAxis, err := ReduceGrad(optypes.ReduceSumGrad, operand, outputGrad, 1)
		if err != nil {
			t.Fatalf("ReduceGrad(%s, %s) failed: %v", operand, outputGrad, err)
		}
		if adjustedAxis != 1 {
			t.Errorf("ReduceGrad normalized axis to %d, want 1", adjustedAxis)
		}
		if !gradient.Equal(operand) {
			t.Errorf("ReduceGrad(%s, %s) = %s, want the operand shape", operand, outputGrad, gradient)
		}
	}

	// Same axis validation as the forward direction.
	_, _, err := ReduceGrad(optypes.ReduceMaxGrad, operand, S(F32, 2, 4), -4)
	if !errors.Is(err, ErrInvalidAxis) {
		t.Errorf("expected ErrInvalidAxis, got %v", err)
	}
	_, _, err = ReduceGrad(optypes.ReduceMaxGrad, S(F32, 1, 2, 3, 4, 5, 6, 7), S(F32, 2), 0)
	if !errors.Is(err, ErrUnsupportedRank) {
		t.Errorf("expected ErrUnsupportedRank, got %v", err)
	}

	// Mismatched dtypes between operand and output gradient are rejected.
	if _, _, err = ReduceGrad(optypes.ReduceMeanGrad, operand, S(F64, 2, 4), 1); err == nil {
		t.Error("expected error for mismatched dtypes, got nil")
	}

	// An output gradient whose dimensions match neither form of the forward
	// output is rejected.
	for _, outputGrad := range []shapes.Shape{S(F32, 3), S(F32, 4, 2), S(F32, 2, 3, 4), S(F32, 2, 2, 4)} {
		if _, _, err = ReduceGrad(optypes.ReduceSumGrad, operand, outputGrad, 1); err == nil {
			t.Errorf("expected error for output gradient %s against operand %s on axis 1, got nil",
				outputGrad, operand)
		}
	}

	// Only gradient operators are accepted by ReduceGrad.
	if _, _, err = ReduceGrad(optypes.ReduceSum, operand, S(F32, 2, 4), 1); err == nil {
		t.Error("expected error for ReduceGrad(ReduceSum, ...), got nil")
	}
}
