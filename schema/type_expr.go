package schema

import (
	"fmt"
	"reflect"
	"strings"

	"construct-engine/descriptor"
)

// basicTypes maps type-expression identifiers to runtime types.
var basicTypes = map[string]reflect.Type{
	"bool":    reflect.TypeFor[bool](),
	"string":  reflect.TypeFor[string](),
	"int":     reflect.TypeFor[int](),
	"int8":    reflect.TypeFor[int8](),
	"int16":   reflect.TypeFor[int16](),
	"int32":   reflect.TypeFor[int32](),
	"int64":   reflect.TypeFor[int64](),
	"uint":    reflect.TypeFor[uint](),
	"uint8":   reflect.TypeFor[uint8](),
	"uint16":  reflect.TypeFor[uint16](),
	"uint32":  reflect.TypeFor[uint32](),
	"uint64":  reflect.TypeFor[uint64](),
	"float32": reflect.TypeFor[float32](),
	"float64": reflect.TypeFor[float64](),
	"byte":    reflect.TypeFor[byte](),
	"rune":    reflect.TypeFor[rune](),
	"any":     reflect.TypeFor[any](),
}

// ParseTypeExpr resolves a type expression like:
// - "int", "string", "any" (basic)
// - "*bool" (pointer)
// - "[]int", "map[string]any" (containers)
// - "T" where T is listed in typeVars (declared type variable).
//
// Type variables are only recognized at the top level; the engine checks
// generic parameters one level deep and nesting a variable inside a
// container cannot be expressed as a runtime type.
func ParseTypeExpr(expr string, typeVars []string) (descriptor.Type, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return descriptor.Type{}, fmt.Errorf("empty type expression")
	}

	for _, v := range typeVars {
		if expr == v {
			return descriptor.TypeVar(v), nil
		}
	}

	rt, err := parseRuntimeType(expr, typeVars)
	if err != nil {
		return descriptor.Type{}, err
	}

	return descriptor.TypeOf(rt), nil
}

func parseRuntimeType(expr string, typeVars []string) (reflect.Type, error) {
	switch {
	case strings.HasPrefix(expr, "*"):
		elem, err := parseRuntimeType(expr[1:], typeVars)
		if err != nil {
			return nil, err
		}

		return reflect.PointerTo(elem), nil

	case strings.HasPrefix(expr, "[]"):
		elem, err := parseRuntimeType(expr[2:], typeVars)
		if err != nil {
			return nil, err
		}

		return reflect.SliceOf(elem), nil

	case strings.HasPrefix(expr, "map["):
		keyExpr, elemExpr, err := splitMapExpr(expr)
		if err != nil {
			return nil, err
		}

		key, err := parseRuntimeType(keyExpr, typeVars)
		if err != nil {
			return nil, err
		}

		elem, err := parseRuntimeType(elemExpr, typeVars)
		if err != nil {
			return nil, err
		}

		return reflect.MapOf(key, elem), nil
	}

	if rt, ok := basicTypes[expr]; ok {
		return rt, nil
	}

	for _, v := range typeVars {
		if expr == v {
			return nil, fmt.Errorf("type variable %q is only supported at the top level", v)
		}
	}

	return nil, fmt.Errorf("unknown type expression %q", expr)
}

// splitMapExpr splits "map[K]V" into K and V, honoring nested brackets in K.
func splitMapExpr(expr string) (key, elem string, err error) {
	rest := expr[len("map["):]

	depth := 1
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				if i+1 >= len(rest) {
					return "", "", fmt.Errorf("map expression %q has no value type", expr)
				}

				return rest[:i], rest[i+1:], nil
			}
		}
	}

	return "", "", fmt.Errorf("unbalanced brackets in map expression %q", expr)
}
