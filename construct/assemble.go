package construct

import (
	"fmt"
	"reflect"

	"construct-engine/internal/candidate"
)

// assemble invokes the selected constructor exactly once and then applies
// the candidate's property assignments in their recorded order. Resolution is
// advisory, application is direct: a failing write propagates as a fault and
// no rollback is attempted.
func (e *Engine) assemble(cand *candidate.Candidate) (any, error) {
	args := make([]any, len(cand.Ctor.Params))

	for i := range cand.Ctor.Params {
		param := &cand.Ctor.Params[i]

		if value, bound := cand.Args[param.Name]; bound {
			args[i] = value
			continue
		}

		// Unbound: either an omitted optional or a nullable parameter
		// treated as optional. Synthesize the registered default; nil
		// materializes as the parameter type's zero value.
		args[i] = param.Default
	}

	instance, err := cand.Ctor.Invoke(args)
	if err != nil {
		return nil, fmt.Errorf("constructor %s: %w", cand.Ctor.Name, err)
	}

	if len(cand.Props) == 0 {
		return instance, nil
	}

	return e.applyProps(instance, cand.Props)
}

// applyProps writes the resolved property assignments onto the instance.
// Struct instances returned by value are promoted to an addressable copy
// once, written through, and returned by value again.
func (e *Engine) applyProps(instance any, assigns []candidate.PropAssignment) (any, error) {
	rv := reflect.ValueOf(instance)

	var target reflect.Value

	promoted := false

	switch {
	case rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct:
		target = rv.Elem()

	case rv.Kind() == reflect.Struct:
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		target = ptr.Elem()
		promoted = true

	case rv.Kind() == reflect.Map:
		target = rv

	default:
		return nil, fmt.Errorf("cannot assign properties on %T instance", instance)
	}

	for _, assign := range assigns {
		if err := assign.Prop.Set(target, assign.Value); err != nil {
			return nil, fmt.Errorf("property %s: %w", assign.Prop.Name, err)
		}
	}

	if promoted {
		return target.Interface(), nil
	}

	return instance, nil
}
