package schema

// File represents the root of a YAML type-schema definition file.
type File struct {
	// Version of the schema format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Types is the list of described target types.
	Types []TypeDef `yaml:"types"`
}

// TypeDef describes one target type.
type TypeDef struct {
	// Name identifies the type (e.g. "Person").
	Name string `yaml:"name"`

	// Vars lists the type's declared type-variable identifiers. Parameter
	// and property type expressions may reference them by name.
	Vars []string `yaml:"vars,omitempty"`

	// Constructors lists the alternative constructors in declaration order.
	Constructors []CtorDef `yaml:"constructors"`

	// Properties lists the type's properties. Empty means: derive from the
	// bound Go struct's exported fields.
	Properties []PropDef `yaml:"properties,omitempty"`
}

// CtorDef describes one constructor alternative.
type CtorDef struct {
	// Name labels the constructor, used as the binding key for registered
	// functions. Defaults to its positional label.
	Name string `yaml:"name,omitempty"`

	// Params is the ordered parameter list.
	Params []ParamDef `yaml:"params"`
}

// ParamDef describes one named constructor parameter.
type ParamDef struct {
	// Name is unique within the constructor.
	Name string `yaml:"name"`

	// Type is the declared type expression (e.g. "int", "*bool", "[]int",
	// "map[string]any", or a declared type variable).
	Type string `yaml:"type"`

	// Optional marks the parameter as omittable.
	Optional bool `yaml:"optional,omitempty"`

	// Default is the synthesized value for an omitted optional parameter.
	Default any `yaml:"default,omitempty"`
}

// PropDef describes one property.
type PropDef struct {
	// Name is the property name matched against data keys.
	Name string `yaml:"name"`

	// Type is the declared type expression.
	Type string `yaml:"type"`

	// ReadOnly excludes the property from construction.
	ReadOnly bool `yaml:"readonly,omitempty"`
}

// TypeDef lookup by name; nil if absent.
func (f *File) TypeDef(name string) *TypeDef {
	for i := range f.Types {
		if f.Types[i].Name == name {
			return &f.Types[i]
		}
	}

	return nil
}
