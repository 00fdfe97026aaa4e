package reduceop

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/reduceop/internal/optypes"
)

// OpDef is the static metadata of one operator: its snake_case identifier,
// its gradient counterpart (Invalid for operators that are themselves
// gradients) and its documentation.
//
// The forward operators share one documentation template, instantiated per
// operator -- so "reduce_min" documents min, "reduce_mean" documents mean,
// and so on.
type OpDef struct {
	Type optypes.OpType

	// Name is the operator identifier, e.g. "reduce_sum".
	Name string

	// GradType is the gradient counterpart, or optypes.Invalid if Type is
	// itself a gradient operator.
	GradType optypes.OpType

	// Doc is the human-readable operator documentation.
	Doc string
}

// docTemplate is shared by the forward operators; {ReduceOp} and {reduce} are
// substituted per operator.
const docTemplate = `{ReduceOp} Operator.

This operator computes the {reduce} of input tensor along the given dimension.
The result tensor has 1 fewer dimension than the input unless keep_dim is true.
`

var opDefs = make(map[optypes.OpType]OpDef)

func registerOpDef(opType optypes.OpType, reduceVerb string) {
	doc := strings.NewReplacer(
		"{ReduceOp}", opType.String(),
		"{reduce}", reduceVerb,
	).Replace(docTemplate)
	opDefs[opType] = OpDef{
		Type:     opType,
		Name:     opType.Identifier(),
		GradType: opType.Grad(),
		Doc:      doc,
	}
	gradType := opType.Grad()
	opDefs[gradType] = OpDef{
		Type: gradType,
		Name: gradType.Identifier(),
		Doc:  opType.Identifier() + " gradient operator.\n",
	}
}

func init() {
	registerOpDef(optypes.ReduceSum, "sum")
	registerOpDef(optypes.ReduceMean, "mean")
	registerOpDef(optypes.ReduceMax, "max")
	registerOpDef(optypes.ReduceMin, "min")
}

// Def returns the metadata of the given operator. It panics on operator types
// outside the reduction family.
func Def(opType optypes.OpType) OpDef {
	def, found := opDefs[opType]
	if !found {
		exceptions.Panicf("no operator definition for %s", opType)
	}
	return def
}
