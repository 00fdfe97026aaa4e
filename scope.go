package reduceop

import (
	"github.com/gomlx/reduceop/tensor"
)

// Conventional slot names used by the reduction operators.
const (
	// XName is the input tensor slot.
	XName = "X"

	// OutName is the output tensor slot.
	OutName = "Out"

	// GradSuffix is appended to a slot name to form its gradient's name.
	GradSuffix = "@GRAD"
)

// GradName returns the conventional name of the gradient slot for the given
// tensor name: "X" -> "X@GRAD".
func GradName(name string) string { return name + GradSuffix }

// Scope maps slot names to tensors for one operator invocation. The caller
// owns the tensors; operators read inputs by name and resize and fill the
// output slots they find. A name missing from the scope means the slot was
// not provided -- for optional slots (like the input gradient in the backward
// pass) this disables the corresponding work.
type Scope map[string]*tensor.Tensor

// Has reports whether the named slot is present (with a non-nil tensor).
func (s Scope) Has(name string) bool { return s[name] != nil }
