// Package reduceop implements the single-axis reduction operator family of a
// computation-graph runtime: sum, mean, max and min over one dimension of a
// dense float tensor, together with their gradients.
//
// The package is organized like a small operator framework:
//
//   - Operators are identified by optypes.OpType and described by an OpDef
//     (identifier, gradient counterpart, documentation).
//   - Inputs and outputs travel in a Scope, a map of named tensor slots. The
//     conventional names are "X" for the input, "Out" for the output, and
//     GradName(name) ("name@GRAD") for gradients.
//   - Attributes carries the per-call configuration: "dim", the reduction
//     axis (signed, negative counts from the end, default 0), and "keep_dim",
//     whether the reduced axis is retained with dimension 1 (default false).
//   - Run validates the request, infers the output shape (package
//     shapeinference), resizes the output, propagates LoD sequence metadata,
//     and dispatches the numeric kernel (package kernels) registered for the
//     operator and dtype.
//
// For direct use without scopes there is a convenience layer: ReduceSum,
// ReduceMean, ReduceMax, ReduceMin and their *Grad counterparts.
//
// Gradient semantics worth calling out: the max and min gradients route the
// full incoming gradient to every position that attained the extremum, so on
// ties each tied position receives the whole gradient, not a share of it.
package reduceop
