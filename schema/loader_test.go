package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `
version: "1"
types:
  - name: Person
    constructors:
      - name: full
        params:
          - {name: name, type: string}
          - {name: age, type: int, optional: true, default: 21}
      - params:
          - {name: name, type: string}
    properties:
      - {name: Nickname, type: string}
      - {name: ID, type: int, readonly: true}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(personSchema))
	require.NoError(t, err)

	require.Len(t, f.Types, 1)

	td := f.TypeDef("Person")
	require.NotNil(t, td)
	require.Len(t, td.Constructors, 2)

	full := td.Constructors[0]
	assert.Equal(t, "full", full.Name)
	require.Len(t, full.Params, 2)
	assert.Equal(t, "age", full.Params[1].Name)
	assert.True(t, full.Params[1].Optional)
	assert.Equal(t, 21, full.Params[1].Default)

	require.Len(t, td.Properties, 2)
	assert.True(t, td.Properties[1].ReadOnly)
}

func TestParse_AppliesDefaults(t *testing.T) {
	f, err := Parse([]byte("types:\n  - name: T\n    constructors:\n      - params: []\n"))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "ctor0", f.Types[0].Constructors[0].Name)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("types: {not: a list}"))
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	f, err := Parse([]byte(personSchema))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestValidate(t *testing.T) {
	t.Run("valid schema", func(t *testing.T) {
		f, err := Parse([]byte(personSchema))
		require.NoError(t, err)

		diags := Validate(f)
		assert.True(t, diags.IsValid(), "unexpected: %v", diags.Error())
	})

	t.Run("nil schema", func(t *testing.T) {
		assert.True(t, Validate(nil).HasErrors())
	})

	tests := []struct {
		name string
		yaml string
		code string
	}{
		{
			name: "duplicate type",
			yaml: "types:\n  - name: A\n    constructors: [{params: []}]\n  - name: A\n    constructors: [{params: []}]\n",
			code: "duplicate_type",
		},
		{
			name: "no constructors",
			yaml: "types:\n  - name: A\n",
			code: "no_constructors",
		},
		{
			name: "duplicate parameter",
			yaml: "types:\n  - name: A\n    constructors:\n      - params:\n          - {name: x, type: int}\n          - {name: x, type: int}\n",
			code: "duplicate_parameter",
		},
		{
			name: "bad parameter type",
			yaml: "types:\n  - name: A\n    constructors:\n      - params:\n          - {name: x, type: wat}\n",
			code: "bad_parameter_type",
		},
		{
			name: "default without optional",
			yaml: "types:\n  - name: A\n    constructors:\n      - params:\n          - {name: x, type: int, default: 1}\n",
			code: "default_without_optional",
		},
		{
			name: "duplicate property",
			yaml: "types:\n  - name: A\n    constructors: [{params: []}]\n    properties:\n      - {name: p, type: int}\n      - {name: p, type: int}\n",
			code: "duplicate_property",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			diags := Validate(f)
			require.True(t, diags.HasErrors())

			codes := make([]string, len(diags.Errors))
			for i, d := range diags.Errors {
				codes[i] = d.Code
			}

			assert.Contains(t, codes, tt.code)
		})
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Code:     "duplicate_type",
		Message:  `duplicate type "A"`,
		Type:     "A",
	}

	assert.Equal(t, `[A]: [duplicate_type] duplicate type "A"`, d.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
}
