package descriptor

import "reflect"

// Param describes one named constructor parameter.
type Param struct {
	// Name is unique within the constructor.
	Name string
	// Type is the declared parameter type.
	Type Type
	// Optional is true when a value can be synthesized for an omitted parameter.
	Optional bool
	// Default is the synthesized value for an omitted optional parameter.
	// Nil means the type's zero value.
	Default any
}

// Constructor describes one alternative constructor of a target type.
type Constructor struct {
	// Name labels the constructor (function name or schema label).
	Name string
	// Params is the ordered parameter list.
	Params []Param
	// Invoke calls the constructor with one argument per parameter, in
	// declaration order. A returned error is a hard construction fault.
	Invoke func(args []any) (any, error)
}

// Param returns the parameter with the given name, or nil.
func (c *Constructor) Param(name string) *Param {
	for i := range c.Params {
		if c.Params[i].Name == name {
			return &c.Params[i]
		}
	}

	return nil
}

// MarkOptional flags the named parameter as optional with the given default
// value (nil keeps the type's zero value). Returns false if no such parameter.
func (c *Constructor) MarkOptional(name string, def any) bool {
	p := c.Param(name)
	if p == nil {
		return false
	}

	p.Optional = true
	p.Default = def

	return true
}

// Property describes one mutable property of a target type.
type Property struct {
	// Name is the property name matched against data keys.
	Name string
	// Type is the declared property type.
	Type Type
	// Set writes value into the instance. For struct-backed types the
	// instance is an addressable struct value; for map-backed types it is
	// the map value itself. Nil means the property is not settable.
	Set func(instance reflect.Value, value any) error
}

// Settable returns true if the property participates in construction.
func (p *Property) Settable() bool {
	return p.Set != nil
}

// TypeMeta is the metadata handle for one target type: its alternative
// constructors in declaration order and its settable properties in
// declaration order. Immutable once built; safe for concurrent reads.
type TypeMeta struct {
	// Name identifies the target type.
	Name string
	// GoType is the runtime type of produced instances. Nil for map-backed
	// dynamic types.
	GoType reflect.Type
	// Constructors lists the alternative constructors in declaration order.
	Constructors []*Constructor
	// Properties lists the properties in declaration order.
	Properties []Property
}

// SettableProperties returns the properties that participate in construction.
func (m *TypeMeta) SettableProperties() []Property {
	out := make([]Property, 0, len(m.Properties))

	for _, p := range m.Properties {
		if p.Settable() {
			out = append(out, p)
		}
	}

	return out
}
