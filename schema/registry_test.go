package schema_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construct-engine/construct"
	"construct-engine/schema"
)

type profile struct {
	Name     string
	Age      int
	Nickname string
}

const profileSchema = `
types:
  - name: Profile
    constructors:
      - name: full
        params:
          - {name: name, type: string}
          - {name: age, type: int, optional: true, default: 21}
    properties:
      - {name: Nickname, type: string}
`

func newRegistry(t *testing.T, yaml string) *schema.Registry {
	t.Helper()

	f, err := schema.Parse([]byte(yaml))
	require.NoError(t, err)

	reg, err := schema.NewRegistry(f)
	require.NoError(t, err)

	return reg
}

func TestRegistry_Bind(t *testing.T) {
	reg := newRegistry(t, profileSchema)

	meta, err := reg.Bind("Profile", reflect.TypeFor[profile](), map[string]any{
		"full": func(name string, age int) profile {
			return profile{Name: name, Age: age}
		},
	})
	require.NoError(t, err)

	require.Len(t, meta.Constructors, 1)
	assert.True(t, meta.Constructors[0].Params[1].Optional)
	require.Len(t, meta.Properties, 1)
	assert.Equal(t, "Nickname", meta.Properties[0].Name)

	engine, err := construct.New(meta, nil, construct.DefaultOptions())
	require.NoError(t, err)

	result, err := engine.Construct(map[string]any{"name": "Ada", "Nickname": "ada"})
	require.NoError(t, err)
	require.True(t, result.Ok())
	assert.Equal(t, profile{Name: "Ada", Age: 21, Nickname: "ada"}, result.Instance)
}

func TestRegistry_BindErrors(t *testing.T) {
	reg := newRegistry(t, profileSchema)

	t.Run("unknown type", func(t *testing.T) {
		_, err := reg.Bind("Nope", reflect.TypeFor[profile](), nil)
		assert.Error(t, err)
	})

	t.Run("missing constructor function", func(t *testing.T) {
		_, err := reg.Bind("Profile", reflect.TypeFor[profile](), map[string]any{})
		assert.Error(t, err)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		_, err := reg.Bind("Profile", reflect.TypeFor[profile](), map[string]any{
			"full": func(name string) profile { return profile{Name: name} },
		})
		assert.Error(t, err)
	})

	t.Run("declared type does not fit function parameter", func(t *testing.T) {
		_, err := reg.Bind("Profile", reflect.TypeFor[profile](), map[string]any{
			"full": func(name int, age int) profile { return profile{} },
		})
		assert.Error(t, err)
	})

	t.Run("property without field", func(t *testing.T) {
		type bare struct{ Name string }

		_, err := reg.Bind("Profile", reflect.TypeFor[bare](), map[string]any{
			"full": func(name string, age int) bare { return bare{Name: name} },
		})
		assert.Error(t, err)
	})
}

func TestRegistry_Dynamic(t *testing.T) {
	reg := newRegistry(t, profileSchema)

	meta, err := reg.Dynamic("Profile")
	require.NoError(t, err)
	assert.Nil(t, meta.GoType)

	engine, err := construct.New(meta, nil, construct.DefaultOptions())
	require.NoError(t, err)

	result, err := engine.Construct(map[string]any{"name": "Ada", "Nickname": "ada"})
	require.NoError(t, err)
	require.True(t, result.Ok())

	instance, ok := result.Instance.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", instance["name"])
	assert.Equal(t, 21, instance["age"], "omitted optional takes its schema default")
	assert.Equal(t, "ada", instance["Nickname"])
}

func TestNewRegistry_RejectsInvalidSchema(t *testing.T) {
	f, err := schema.Parse([]byte("types:\n  - name: A\n"))
	require.NoError(t, err)

	_, err = schema.NewRegistry(f)
	assert.Error(t, err)
}
