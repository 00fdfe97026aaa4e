package reduceop

import (
	"github.com/gomlx/exceptions"
)

// Attribute names used by the reduction operators.
const (
	// DimAttr is the reduction axis: a signed int, negative values count from
	// the last axis. Defaults to 0.
	DimAttr = "dim"

	// KeepDimAttr selects whether the reduced axis is retained with dimension
	// 1 in the output. Defaults to false.
	KeepDimAttr = "keep_dim"
)

// Attributes is the per-call configuration of an operator, keyed by attribute
// name. Missing attributes take their documented defaults; a nil Attributes
// is valid and means all-defaults.
type Attributes map[string]any

// GetIntOr returns the named attribute as an int, or defaultValue if it is
// not set. It panics if the attribute is set to a non-int value, since that
// is a bug in the caller, not a runtime condition.
func (attrs Attributes) GetIntOr(name string, defaultValue int) int {
	raw, found := attrs[name]
	if !found {
		return defaultValue
	}
	value, ok := raw.(int)
	if !ok {
		exceptions.Panicf("attribute %q must be an int, got %T", name, raw)
	}
	return value
}

// GetBoolOr returns the named attribute as a bool, or defaultValue if it is
// not set. It panics if the attribute is set to a non-bool value.
func (attrs Attributes) GetBoolOr(name string, defaultValue bool) bool {
	raw, found := attrs[name]
	if !found {
		return defaultValue
	}
	value, ok := raw.(bool)
	if !ok {
		exceptions.Panicf("attribute %q must be a bool, got %T", name, raw)
	}
	return value
}
