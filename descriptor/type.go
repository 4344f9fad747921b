package descriptor

import (
	"reflect"

	"construct-engine/internal/common"
)

// Type describes the declared type of a constructor parameter or property.
// It is either a concrete runtime type (RType set) or an unresolved type
// variable (Var set) to be looked up through a VarMap.
type Type struct {
	// RType is the concrete runtime type. Nil when Var is set.
	RType reflect.Type
	// Var is the declared type-variable identifier, e.g. "T".
	Var string
}

// TypeOf returns the declared Type for a concrete runtime type.
func TypeOf(t reflect.Type) Type {
	return Type{RType: t}
}

// TypeFor returns the declared Type for the Go type T.
func TypeFor[T any]() Type {
	return Type{RType: reflect.TypeFor[T]()}
}

// TypeVar returns a declared Type referencing the type variable name.
func TypeVar(name string) Type {
	return Type{Var: name}
}

// IsVar returns true if the type is an unresolved type variable.
func (t Type) IsVar() bool {
	return t.Var != ""
}

// Nullable returns true if the declared type accepts a nil value.
func (t Type) Nullable() bool {
	if t.IsVar() || t.RType == nil {
		return false
	}

	switch t.RType.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map,
		reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// String returns a human-readable representation of the declared type.
func (t Type) String() string {
	if t.IsVar() {
		return t.Var
	}

	if t.RType == nil {
		return common.UnknownStr
	}

	return t.RType.String()
}

// VarMap maps declared type-variable identifiers to the concrete runtime
// types substituted for them at the call site. The mapping may be incomplete;
// lookups are allowed to miss.
type VarMap map[string]reflect.Type

// Resolve looks up the concrete type for a type variable.
func (m VarMap) Resolve(name string) (reflect.Type, bool) {
	t, ok := m[name]
	return t, ok
}
