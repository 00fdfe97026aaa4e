// Package optypes defines OpType and lists the reduction operators supported by the module.
package optypes

import (
	"github.com/gomlx/reduceop/internal/utils"
)

// OpType is an enum of the reduction operators and their gradient counterparts.
//
// The set is closed: the four reduction kinds (and three distinct gradient rules,
// since max and min share one) are fixed, so code dispatches over this enum
// instead of an open-ended interface.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota

	ReduceSum
	ReduceMean
	ReduceMax
	ReduceMin

	ReduceSumGrad
	ReduceMeanGrad
	ReduceMaxGrad
	ReduceMinGrad

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

// gradMappings maps each forward reduction to its gradient operator.
var gradMappings = map[OpType]OpType{
	ReduceSum:  ReduceSumGrad,
	ReduceMean: ReduceMeanGrad,
	ReduceMax:  ReduceMaxGrad,
	ReduceMin:  ReduceMinGrad,
}

// Grad returns the gradient operator for a forward reduction, or Invalid if op
// is not a forward reduction.
func (op OpType) Grad() OpType {
	return gradMappings[op]
}

// IsGrad reports whether op is one of the gradient operators.
func (op OpType) IsGrad() bool {
	return op >= ReduceSumGrad && op <= ReduceMinGrad
}

// Identifier returns the registry name of the operation, e.g. "reduce_sum" for
// ReduceSum and "reduce_sum_grad" for ReduceSumGrad.
func (op OpType) Identifier() string {
	return utils.ToSnakeCase(op.String())
}
