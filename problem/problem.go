package problem

import (
	"fmt"
	"strings"

	"construct-engine/descriptor"
	"construct-engine/internal/common"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind discriminates the problem variants.
type Kind int

const (
	// KindMissingParameter - a required constructor parameter was not bound.
	KindMissingParameter Kind = iota
	// KindUncheckedAssignment - a value was bound without full type verification.
	KindUncheckedAssignment
	// KindUnknownData - an input key bound to nothing.
	KindUnknownData
)

// Problem is one advisory finding from a construction attempt.
type Problem struct {
	// Kind of the problem.
	Kind Kind
	// Name is the parameter, property, or data key the problem refers to.
	Name string
	// Type is the declared type involved. Zero for unknown data.
	Type descriptor.Type
	// Value is the offending value. Nil for missing parameters.
	Value any
}

// MissingParameter reports a required constructor parameter with no binding.
func MissingParameter(name string, typ descriptor.Type) Problem {
	return Problem{Kind: KindMissingParameter, Name: name, Type: typ}
}

// UncheckedAssignment reports a binding that could not be fully verified.
func UncheckedAssignment(name string, typ descriptor.Type, value any) Problem {
	return Problem{Kind: KindUncheckedAssignment, Name: name, Type: typ, Value: value}
}

// UnknownData reports an input key that bound to nothing.
func UnknownData(name string, value any) Problem {
	return Problem{Kind: KindUnknownData, Name: name, Value: value}
}

// String returns a formatted problem description.
func (p Problem) String() string {
	switch p.Kind {
	case KindMissingParameter:
		return fmt.Sprintf("[missing_parameter] %s: no value for required parameter of type %s", p.Name, p.Type)
	case KindUncheckedAssignment:
		return fmt.Sprintf("[unchecked_assignment] %s: value %v bound to %s without full verification", p.Name, p.Value, p.Type)
	case KindUnknownData:
		return fmt.Sprintf("[unknown_data] %s: value %v matched no parameter or property", p.Name, p.Value)
	default:
		return fmt.Sprintf("[%s] %s", p.Kind, p.Name)
	}
}

// List is an ordered collection of problems from one construction attempt.
type List []Problem

// HasKind returns true if any problem has the given kind.
func (l List) HasKind(kind Kind) bool {
	for _, p := range l {
		if p.Kind == kind {
			return true
		}
	}

	return false
}

// Count returns the number of problems with the given kind.
func (l List) Count(kind Kind) int {
	n := 0

	for _, p := range l {
		if p.Kind == kind {
			n++
		}
	}

	return n
}

// Names returns the names of all problems with the given kind, in order.
func (l List) Names(kind Kind) []string {
	var names []string

	for _, p := range l {
		if p.Kind == kind {
			names = append(names, p.Name)
		}
	}

	return names
}

// String joins all problem descriptions.
func (l List) String() string {
	if common.IsEmpty(l) {
		return "no problems"
	}

	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = p.String()
	}

	return strings.Join(parts, "; ")
}
