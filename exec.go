package reduceop

import (
	"github.com/gomlx/reduceop/internal/optypes"
	"github.com/gomlx/reduceop/shapeinference"
	"github.com/pkg/errors"
)

// ErrMissingInput is reported when a required tensor slot is absent from the
// scope. Use errors.Is to test for it.
var ErrMissingInput = errors.New("required tensor missing from scope")

// Run executes one reduction operator (forward or backward) over the tensors
// in the scope, configured by attrs.
//
// Forward operators read XName, resize and fill OutName, and propagate LoD:
// the output shares the input's LoD by reference when the reduced axis is not
// 0, and carries none when axis 0 is reduced (the sequence boundaries are
// consumed by the reduction).
//
// Backward operators read XName and GradName(OutName) and fill
// GradName(XName). An absent GradName(XName) slot makes the call a no-op:
// the caller signalled the input's gradient is not needed. The max and min
// gradients additionally read the forward OutName.
//
// All validation -- slots, shapes, axis, kernel availability -- happens
// before any tensor is resized or written.
func Run(opType optypes.OpType, scope Scope, attrs Attributes) error {
	if opType.IsGrad() {
		return runBackward(opType, scope, attrs)
	}
	return runForward(opType, scope, attrs)
}

func runForward(opType optypes.OpType, scope Scope, attrs Attributes) error {
	def := Def(opType)
	x := scope[XName]
	if x == nil {
		return errors.Wrapf(ErrMissingInput, "%s requires input %q", def.Name, XName)
	}
	out := scope[OutName]
	if out == nil {
		return errors.Wrapf(ErrMissingInput, "%s requires output slot %q", def.Name, OutName)
	}
	axis := attrs.GetIntOr(DimAttr, 0)
	keepDim := attrs.GetBoolOr(KeepDimAttr, false)

	outputShape, adjustedAxis, err := shapeinference.Reduce(opType, x.Shape(), axis, keepDim)
	if err != nil {
		return errors.WithMessagef(err, "%s", def.Name)
	}
	kernel, err := forwardKernelFor(opType, x.DType())
	if err != nil {
		return err
	}

	if err := out.Resize(outputShape); err != nil {
		return errors.WithMessagef(err, "%s cannot resize output %q", def.Name, OutName)
	}
	if adjustedAxis != 0 {
		out.ShareLoD(x)
	} else {
		out.ClearLoD()
	}
	return kernel(opType, x, adjustedAxis, out)
}

func runBackward(opType optypes.OpType, scope Scope, attrs Attributes) error {
	def := Def(opType)
	x := scope[XName]
	if x == nil {
		return errors.Wrapf(ErrMissingInput, "%s requires input %q", def.Name, XName)
	}
	outGrad := scope[GradName(OutName)]
	if outGrad == nil {
		return errors.Wrapf(ErrMissingInput, "%s requires output gradient %q", def.Name, GradName(OutName))
	}
	xGrad := scope[GradName(XName)]
	if xGrad == nil {
		// Nobody asked for the input's gradient.
		return nil
	}

	out := scope[OutName]
	if opType == optypes.ReduceMaxGrad || opType == optypes.ReduceMinGrad {
		// Only the extremum gradients compare against the forward output.
		if out == nil {
			return errors.Wrapf(ErrMissingInput, "%s requires forward output %q", def.Name, OutName)
		}
	} else if out == nil {
		// Sum and mean gradients never read the forward output's values; the
		// output gradient stands in for its geometry.
		out = outGrad
	}

	axis := attrs.GetIntOr(DimAttr, 0)
	gradShape, adjustedAxis, err := shapeinference.ReduceGrad(opType, x.Shape(), outGrad.Shape(), axis)
	if err != nil {
		return errors.WithMessagef(err, "%s", def.Name)
	}
	kernel, err := gradKernelFor(opType, x.DType())
	if err != nil {
		return err
	}

	if err := xGrad.Resize(gradShape); err != nil {
		return errors.WithMessagef(err, "%s cannot resize input gradient %q", def.Name, GradName(XName))
	}
	// The input's gradient has the input's geometry, so it carries the
	// input's sequence metadata too.
	xGrad.ShareLoD(x)
	return kernel(opType, x, out, outGrad, adjustedAxis, xGrad)
}
