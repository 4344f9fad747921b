package schema

import (
	"fmt"
	"reflect"

	"construct-engine/descriptor"
)

// Registry resolves schema type definitions into engine-consumable type
// metadata. A definition is bound either to registered Go constructor
// functions and a struct type, or materialized as a dynamic map-backed type.
type Registry struct {
	file *File
}

// NewRegistry validates the schema file and wraps it in a registry.
func NewRegistry(f *File) (*Registry, error) {
	if diags := Validate(f); diags.HasErrors() {
		return nil, fmt.Errorf("invalid schema: %w", diags.Error())
	}

	return &Registry{file: f}, nil
}

// Bind resolves the named type definition against a Go struct type and a set
// of constructor functions keyed by constructor name. The schema's declared
// parameter types are authoritative for classification; each function is
// cross-checked for arity and parameter compatibility.
func (r *Registry) Bind(
	typeName string,
	goType reflect.Type,
	ctorFuncs map[string]any,
) (*descriptor.TypeMeta, error) {
	td := r.file.TypeDef(typeName)
	if td == nil {
		return nil, fmt.Errorf("type %q not found in schema", typeName)
	}

	meta := &descriptor.TypeMeta{
		Name:   td.Name,
		GoType: goType,
	}

	for i := range td.Constructors {
		cd := &td.Constructors[i]

		fn, ok := ctorFuncs[cd.Name]
		if !ok {
			return nil, fmt.Errorf("type %q: no function registered for constructor %q",
				typeName, cd.Name)
		}

		ctor, err := r.bindConstructor(td, cd, fn)
		if err != nil {
			return nil, fmt.Errorf("type %q: constructor %q: %w", typeName, cd.Name, err)
		}

		meta.Constructors = append(meta.Constructors, ctor)
	}

	props, err := r.bindProperties(td, goType)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", typeName, err)
	}

	meta.Properties = props

	return meta, nil
}

func (r *Registry) bindConstructor(td *TypeDef, cd *CtorDef, fn any) (*descriptor.Constructor, error) {
	names := make([]string, len(cd.Params))
	for i, pd := range cd.Params {
		names[i] = pd.Name
	}

	ctor, err := descriptor.ParseConstructor(cd.Name, fn, names...)
	if err != nil {
		return nil, err
	}

	for i := range cd.Params {
		pd := &cd.Params[i]

		declared, err := ParseTypeExpr(pd.Type, td.Vars)
		if err != nil {
			return nil, err
		}

		fnParam := ctor.Params[i].Type

		// A concrete declared type must fit the function's actual
		// parameter; a type variable requires an interface-typed slot.
		if declared.IsVar() {
			if fnParam.RType.Kind() != reflect.Interface {
				return nil, fmt.Errorf("parameter %q: type variable %s requires an interface-typed function parameter, got %s",
					pd.Name, declared.Var, fnParam)
			}
		} else if !declared.RType.AssignableTo(fnParam.RType) {
			return nil, fmt.Errorf("parameter %q: declared type %s does not fit function parameter type %s",
				pd.Name, declared, fnParam)
		}

		ctor.Params[i].Type = declared
		ctor.Params[i].Optional = pd.Optional
		ctor.Params[i].Default = pd.Default
	}

	return ctor, nil
}

func (r *Registry) bindProperties(td *TypeDef, goType reflect.Type) ([]descriptor.Property, error) {
	if len(td.Properties) == 0 {
		derived, err := descriptor.StructMeta(td.Name, goType)
		if err != nil {
			return nil, err
		}

		return derived.Properties, nil
	}

	props := make([]descriptor.Property, 0, len(td.Properties))

	for i := range td.Properties {
		pd := &td.Properties[i]

		declared, err := ParseTypeExpr(pd.Type, td.Vars)
		if err != nil {
			return nil, err
		}

		field, ok := goType.FieldByName(pd.Name)
		if !ok || !field.IsExported() {
			return nil, fmt.Errorf("property %q has no exported field on %s", pd.Name, goType)
		}

		prop := descriptor.Property{
			Name: pd.Name,
			Type: declared,
		}

		if !pd.ReadOnly {
			index := field.Index
			prop.Set = func(instance reflect.Value, value any) error {
				v, err := descriptor.CoerceValue(value, instance.FieldByIndex(index).Type())
				if err != nil {
					return err
				}

				instance.FieldByIndex(index).Set(v)

				return nil
			}
		}

		props = append(props, prop)
	}

	return props, nil
}

// Dynamic materializes the named type definition as a map-backed type: the
// constructor collects its arguments into a map[string]any keyed by parameter
// name, and properties write keys on that map. Used by fully dynamic callers
// that have no Go type to bind.
func (r *Registry) Dynamic(typeName string) (*descriptor.TypeMeta, error) {
	td := r.file.TypeDef(typeName)
	if td == nil {
		return nil, fmt.Errorf("type %q not found in schema", typeName)
	}

	meta := &descriptor.TypeMeta{Name: td.Name}

	for i := range td.Constructors {
		cd := &td.Constructors[i]

		params := make([]descriptor.Param, len(cd.Params))

		for j := range cd.Params {
			pd := &cd.Params[j]

			declared, err := ParseTypeExpr(pd.Type, td.Vars)
			if err != nil {
				return nil, fmt.Errorf("type %q: constructor %q: %w", typeName, cd.Name, err)
			}

			params[j] = descriptor.Param{
				Name:     pd.Name,
				Type:     declared,
				Optional: pd.Optional,
				Default:  pd.Default,
			}
		}

		meta.Constructors = append(meta.Constructors, &descriptor.Constructor{
			Name:   cd.Name,
			Params: params,
			Invoke: dynamicInvoker(params),
		})
	}

	for i := range td.Properties {
		pd := &td.Properties[i]

		declared, err := ParseTypeExpr(pd.Type, td.Vars)
		if err != nil {
			return nil, fmt.Errorf("type %q: property %q: %w", typeName, pd.Name, err)
		}

		prop := descriptor.Property{
			Name: pd.Name,
			Type: declared,
		}

		if !pd.ReadOnly {
			prop.Set = dynamicSetter(pd.Name)
		}

		meta.Properties = append(meta.Properties, prop)
	}

	return meta, nil
}

func dynamicInvoker(params []descriptor.Param) func(args []any) (any, error) {
	return func(args []any) (any, error) {
		if len(args) != len(params) {
			return nil, fmt.Errorf("constructor expects %d arguments, got %d",
				len(params), len(args))
		}

		m := make(map[string]any, len(args))
		for i := range params {
			m[params[i].Name] = args[i]
		}

		return m, nil
	}
}

func dynamicSetter(name string) func(instance reflect.Value, value any) error {
	return func(instance reflect.Value, value any) error {
		if instance.Kind() != reflect.Map {
			return fmt.Errorf("dynamic property %q requires a map instance", name)
		}

		v := reflect.Zero(instance.Type().Elem())
		if value != nil {
			v = reflect.ValueOf(value)
		}

		instance.SetMapIndex(reflect.ValueOf(name), v)

		return nil
	}
}
