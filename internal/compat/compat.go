package compat

import (
	"reflect"

	"construct-engine/descriptor"
	"construct-engine/internal/common"
)

// Verdict is the tri-state classification of one assignment.
type Verdict int

const (
	// VerdictUnable means the value provably cannot satisfy the type.
	VerdictUnable Verdict = iota
	// VerdictUnchecked means the value fits at the erased/raw level but the
	// declared type carries parameters that cannot be verified against it.
	VerdictUnchecked
	// VerdictSafe means the value is known at runtime to satisfy the type.
	VerdictSafe
)

// String returns a human-readable verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictSafe:
		return "safe"
	case VerdictUnchecked:
		return "unchecked"
	case VerdictUnable:
		return "unable"
	default:
		return common.UnknownStr
	}
}

// Score returns a numeric score for comparison (higher is better).
func (v Verdict) Score() int {
	return int(v)
}

// Binds returns true if the verdict allows binding the value.
func (v Verdict) Binds() bool {
	return v != VerdictUnable
}

// Classify determines whether value may be assigned to the declared type.
// Pure: identical arguments always yield the identical verdict.
//
// Rules, in order:
//   - an unresolved type variable resolves through vars and recurses;
//     a miss is VerdictUnchecked (safety cannot be proven, the value must
//     not be silently rejected)
//   - nil against a nullable type is VerdictSafe, against a non-nullable
//     type VerdictUnable
//   - a value whose runtime type is assignable to the declared type is
//     VerdictSafe; reflection sees the full concrete type, so assignability
//     covers the declared type's own parameters
//   - a value fitting only at the erased level (an interface-elemented
//     container against a parameterized container type) is VerdictUnchecked:
//     verifying the elements would need the deep traversal this engine
//     deliberately does not perform
//   - anything else is VerdictUnable
func Classify(value any, declared descriptor.Type, vars descriptor.VarMap) Verdict {
	if declared.IsVar() {
		rt, ok := vars.Resolve(declared.Var)
		if !ok {
			return VerdictUnchecked
		}

		return Classify(value, descriptor.TypeOf(rt), vars)
	}

	if declared.RType == nil {
		return VerdictUnable
	}

	if isNilValue(value) {
		if declared.Nullable() {
			return VerdictSafe
		}

		return VerdictUnable
	}

	rt := reflect.TypeOf(value)
	if rt.AssignableTo(declared.RType) {
		return VerdictSafe
	}

	if erasedAssignable(rt, declared.RType) {
		return VerdictUnchecked
	}

	return VerdictUnable
}

// isNilValue reports nil and typed-nil values (nil pointer/map/slice boxed
// into an interface).
func isNilValue(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map,
		reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// erasedAssignable reports raw-level compatibility: the value's container
// shape matches the declared container, but element types are hidden behind
// interfaces and cannot be verified without traversal.
func erasedAssignable(rt, declared reflect.Type) bool {
	switch declared.Kind() {
	case reflect.Slice:
		return rt.Kind() == reflect.Slice && erasedElem(rt.Elem(), declared.Elem())

	case reflect.Array:
		return rt.Kind() == reflect.Array &&
			rt.Len() == declared.Len() &&
			erasedElem(rt.Elem(), declared.Elem())

	case reflect.Map:
		return rt.Kind() == reflect.Map &&
			keyCompatible(rt.Key(), declared.Key()) &&
			erasedElem(rt.Elem(), declared.Elem())

	default:
		return false
	}
}

// erasedElem reports whether an element slot is compatible at the erased
// level: either verifiably assignable, unverifiable (interface-typed on the
// value side), or itself an erased container.
func erasedElem(rt, declared reflect.Type) bool {
	if rt.Kind() == reflect.Interface {
		return true
	}

	return rt.AssignableTo(declared) || erasedAssignable(rt, declared)
}

func keyCompatible(rt, declared reflect.Type) bool {
	return rt.Kind() == reflect.Interface || rt.AssignableTo(declared)
}
