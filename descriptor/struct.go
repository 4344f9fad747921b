package descriptor

import (
	"fmt"
	"reflect"
)

// StructMeta builds the TypeMeta for a struct type. Settable properties are
// derived from the struct's exported, non-embedded fields in declaration
// order; constructors are attached as given.
func StructMeta(name string, goType reflect.Type, ctors ...*Constructor) (*TypeMeta, error) {
	if goType == nil || goType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("struct metadata requires a struct type, got %v", goType)
	}

	meta := &TypeMeta{
		Name:         name,
		GoType:       goType,
		Constructors: ctors,
	}

	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}

		meta.Properties = append(meta.Properties, Property{
			Name: field.Name,
			Type: TypeOf(field.Type),
			Set:  fieldSetter(field.Index),
		})
	}

	return meta, nil
}

// StructMetaFor is the generic convenience form of StructMeta.
func StructMetaFor[T any](name string, ctors ...*Constructor) (*TypeMeta, error) {
	return StructMeta(name, reflect.TypeFor[T](), ctors...)
}

func fieldSetter(index []int) func(instance reflect.Value, value any) error {
	return func(instance reflect.Value, value any) error {
		field := instance.FieldByIndex(index)

		v, err := CoerceValue(value, field.Type())
		if err != nil {
			return err
		}

		field.Set(v)

		return nil
	}
}
