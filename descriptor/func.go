package descriptor

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotAFunction    = errors.New("provided constructor is not a function")
	ErrNotAConstructor = errors.New("provided function is not a recognizable constructor")
	ErrParamCount      = errors.New("parameter name count does not match the function signature")
)

// ParseConstructor inspects fn and returns a Constructor descriptor.
// Parameter names are supplied by the caller because runtime reflection does
// not retain them; they must match the function arity.
//
// Supported shapes:
//   - func(args...) T
//   - func(args...) (T, error)
func ParseConstructor(name string, fn any, paramNames ...string) (*Constructor, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return nil, ErrNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.IsVariadic() || fnType.NumOut() == 0 {
		return nil, ErrNotAConstructor
	}

	hasErr := false

	switch fnType.NumOut() {
	default:
		return nil, ErrNotAConstructor

	case 1:

	case 2:
		if !isError(fnType.Out(1)) {
			return nil, ErrNotAConstructor
		}

		hasErr = true
	}

	if fnType.NumIn() != len(paramNames) {
		return nil, fmt.Errorf("%w: %d names for %d parameters",
			ErrParamCount, len(paramNames), fnType.NumIn())
	}

	params := make([]Param, fnType.NumIn())
	for i := range params {
		params[i] = Param{
			Name: paramNames[i],
			Type: TypeOf(fnType.In(i)),
		}
	}

	return &Constructor{
		Name:   name,
		Params: params,
		Invoke: funcInvoker(fnVal, hasErr),
	}, nil
}

// funcInvoker wraps a constructor function value into an Invoke closure that
// coerces each argument to the function's runtime parameter type.
func funcInvoker(fnVal reflect.Value, hasErr bool) func(args []any) (any, error) {
	fnType := fnVal.Type()

	return func(args []any) (any, error) {
		if len(args) != fnType.NumIn() {
			return nil, fmt.Errorf("constructor expects %d arguments, got %d",
				fnType.NumIn(), len(args))
		}

		in := make([]reflect.Value, len(args))

		for i, arg := range args {
			v, err := CoerceValue(arg, fnType.In(i))
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}

			in[i] = v
		}

		out := fnVal.Call(in)
		if hasErr && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}

		return out[0].Interface(), nil
	}
}

// CoerceValue adapts a dynamically-typed value to the target runtime type.
// Nil becomes the zero value. Assignable values pass through unchanged.
// Erased containers ([]any, map[K]any) are rebuilt one level into the target
// container type; an element that does not fit is a hard error, the runtime
// analog of a deferred cast failure on a tolerated unchecked assignment.
func CoerceValue(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}

	switch {
	case rv.Kind() == reflect.Slice && target.Kind() == reflect.Slice:
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())

		for i := 0; i < rv.Len(); i++ {
			ev, err := CoerceValue(rv.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}

			out.Index(i).Set(ev)
		}

		return out, nil

	case rv.Kind() == reflect.Map && target.Kind() == reflect.Map:
		out := reflect.MakeMapWithSize(target, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			kv, err := CoerceValue(iter.Key().Interface(), target.Key())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
			}

			vv, err := CoerceValue(iter.Value().Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("value for key %v: %w", iter.Key(), err)
			}

			out.SetMapIndex(kv, vv)
		}

		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %s value as %s", rv.Type(), target)
}

func isError(t reflect.Type) bool {
	return t.Implements(reflect.TypeFor[error]())
}
