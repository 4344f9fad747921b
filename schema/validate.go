package schema

import "fmt"

// Validate performs structural validation of a schema file. This checks
// internal consistency only; whether a registered Go function actually fits
// a constructor definition is checked at bind time.
func Validate(f *File) *Diagnostics {
	res := &Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", "")
		return res
	}

	seenTypes := map[string]struct{}{}

	for i := range f.Types {
		td := &f.Types[i]

		if td.Name == "" {
			res.AddError("unnamed_type", fmt.Sprintf("type #%d has no name", i), "", "")
			continue
		}

		if _, ok := seenTypes[td.Name]; ok {
			res.AddError("duplicate_type", fmt.Sprintf("duplicate type %q", td.Name), td.Name, "")
			continue
		}

		seenTypes[td.Name] = struct{}{}

		validateTypeDef(td, res)
	}

	return res
}

func validateTypeDef(td *TypeDef, res *Diagnostics) {
	if len(td.Constructors) == 0 {
		res.AddError("no_constructors", "type declares no constructors", td.Name, "")
	}

	seenVars := map[string]struct{}{}

	for _, v := range td.Vars {
		if _, ok := seenVars[v]; ok {
			res.AddError("duplicate_var", fmt.Sprintf("duplicate type variable %q", v), td.Name, v)
		}

		seenVars[v] = struct{}{}
	}

	seenCtors := map[string]struct{}{}

	for i := range td.Constructors {
		cd := &td.Constructors[i]

		if _, ok := seenCtors[cd.Name]; ok {
			res.AddError("duplicate_constructor",
				fmt.Sprintf("duplicate constructor %q", cd.Name), td.Name, cd.Name)
		}

		seenCtors[cd.Name] = struct{}{}

		validateCtorDef(td, cd, res)
	}

	seenProps := map[string]struct{}{}

	for i := range td.Properties {
		pd := &td.Properties[i]

		if pd.Name == "" {
			res.AddError("unnamed_property",
				fmt.Sprintf("property #%d has no name", i), td.Name, "")
			continue
		}

		if _, ok := seenProps[pd.Name]; ok {
			res.AddError("duplicate_property",
				fmt.Sprintf("duplicate property %q", pd.Name), td.Name, pd.Name)
		}

		seenProps[pd.Name] = struct{}{}

		if _, err := ParseTypeExpr(pd.Type, td.Vars); err != nil {
			res.AddError("bad_property_type", err.Error(), td.Name, pd.Name)
		}
	}
}

func validateCtorDef(td *TypeDef, cd *CtorDef, res *Diagnostics) {
	seenParams := map[string]struct{}{}

	for i := range cd.Params {
		pd := &cd.Params[i]
		field := cd.Name + "." + pd.Name

		if pd.Name == "" {
			res.AddError("unnamed_parameter",
				fmt.Sprintf("parameter #%d of constructor %q has no name", i, cd.Name),
				td.Name, cd.Name)
			continue
		}

		if _, ok := seenParams[pd.Name]; ok {
			res.AddError("duplicate_parameter",
				fmt.Sprintf("duplicate parameter %q", pd.Name), td.Name, field)
		}

		seenParams[pd.Name] = struct{}{}

		if _, err := ParseTypeExpr(pd.Type, td.Vars); err != nil {
			res.AddError("bad_parameter_type", err.Error(), td.Name, field)
		}

		if pd.Default != nil && !pd.Optional {
			res.AddError("default_without_optional",
				fmt.Sprintf("parameter %q declares a default but is not optional", pd.Name),
				td.Name, field)
		}
	}
}
