package candidate

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construct-engine/descriptor"
	"construct-engine/problem"
)

func param(name string, typ descriptor.Type) descriptor.Param {
	return descriptor.Param{Name: name, Type: typ}
}

func ctor(name string, params ...descriptor.Param) *descriptor.Constructor {
	return &descriptor.Constructor{
		Name:   name,
		Params: params,
		Invoke: func(args []any) (any, error) { return nil, nil },
	}
}

func settableProp(name string, typ descriptor.Type) descriptor.Property {
	return descriptor.Property{
		Name: name,
		Type: typ,
		Set:  func(_ reflect.Value, _ any) error { return nil },
	}
}

var (
	intType    = descriptor.TypeFor[int]()
	strType    = descriptor.TypeFor[string]()
	strPtrType = descriptor.TypeFor[*string]()
)

func TestBuild_Completeness(t *testing.T) {
	c := ctor("c", param("a", intType), param("b", strType))
	props := []descriptor.Property{settableProp("p", intType)}

	data := map[string]any{
		"a":     1,
		"b":     "x",
		"p":     2,
		"extra": true,
		"more":  "y",
	}

	cand := Build(0, c, props, data, nil, Policy{})

	// Every input key lands in exactly one of: constructor argument,
	// property assignment, unknown-data problem.
	seen := map[string]bool{}

	for name := range cand.Args {
		assert.False(t, seen[name], "key %q attributed twice", name)
		seen[name] = true
	}

	for _, pa := range cand.Props {
		assert.False(t, seen[pa.Key], "key %q attributed twice", pa.Key)
		seen[pa.Key] = true
	}

	for _, name := range cand.Problems.Names(problem.KindUnknownData) {
		assert.False(t, seen[name], "key %q attributed twice", name)
		seen[name] = true
	}

	require.Len(t, seen, len(data))

	for key := range data {
		assert.True(t, seen[key], "key %q vanished", key)
	}
}

func TestBuild_ConstructorTakesPrecedenceOverProperty(t *testing.T) {
	c := ctor("c", param("shared", intType))
	props := []descriptor.Property{settableProp("shared", intType)}

	cand := Build(0, c, props, map[string]any{"shared": 7}, nil, Policy{})

	assert.Equal(t, 7, cand.Args["shared"])
	assert.Empty(t, cand.Props)
	assert.Empty(t, cand.Problems)
}

func TestBuild_MissingRequiredParameter(t *testing.T) {
	c := ctor("c", param("a", intType), param("b", strType))

	cand := Build(0, c, nil, map[string]any{"a": 1}, nil, Policy{})

	require.True(t, cand.Problems.HasKind(problem.KindMissingParameter))
	assert.Equal(t, []string{"b"}, cand.Problems.Names(problem.KindMissingParameter))
}

func TestBuild_OptionalParameterNotMissing(t *testing.T) {
	p := param("b", strType)
	p.Optional = true
	p.Default = "fallback"

	cand := Build(0, ctor("c", param("a", intType), p), nil, map[string]any{"a": 1}, nil, Policy{})

	assert.Empty(t, cand.Problems)
}

func TestBuild_NullableIsOptionalPolicy(t *testing.T) {
	c := ctor("c", param("opt", strPtrType))

	strict := Build(0, c, nil, map[string]any{}, nil, Policy{})
	assert.True(t, strict.Problems.HasKind(problem.KindMissingParameter),
		"nullable is not optional by default")

	relaxed := Build(0, c, nil, map[string]any{}, nil, Policy{NullableIsOptional: true})
	assert.Empty(t, relaxed.Problems)
}

func TestBuild_UnableBindingFallsThrough(t *testing.T) {
	// The key matches the parameter name but the value cannot satisfy the
	// parameter type: the parameter stays missing and the key falls through
	// to property resolution.
	c := ctor("c", param("a", intType))
	props := []descriptor.Property{settableProp("a", strType)}

	cand := Build(0, c, props, map[string]any{"a": "text"}, nil, Policy{})

	assert.Empty(t, cand.Args)
	require.Len(t, cand.Props, 1)
	assert.Equal(t, "a", cand.Props[0].Key)
	assert.Equal(t, []string{"a"}, cand.Problems.Names(problem.KindMissingParameter))
}

func TestBuild_UnknownDataSorted(t *testing.T) {
	cand := Build(0, ctor("c"), nil, map[string]any{"z": 1, "a": 2, "m": 3}, nil, Policy{})

	assert.Equal(t, []string{"a", "m", "z"}, cand.Problems.Names(problem.KindUnknownData))
}

func TestBuild_UncheckedAssignmentRecorded(t *testing.T) {
	c := ctor("c", param("list", descriptor.TypeFor[[]int]()))

	cand := Build(0, c, nil, map[string]any{"list": []any{1}}, nil, Policy{})

	assert.Contains(t, cand.Args, "list")
	assert.Equal(t, []string{"list"}, cand.Problems.Names(problem.KindUncheckedAssignment))
}

func TestEligible_PolicyFlags(t *testing.T) {
	unknown := Candidate{Problems: problem.List{problem.UnknownData("x", 1)}}
	unchecked := Candidate{Problems: problem.List{
		problem.UncheckedAssignment("x", intType, []any{1}),
	}}
	missing := Candidate{Problems: problem.List{problem.MissingParameter("x", intType)}}

	assert.False(t, unknown.Eligible(Policy{}))
	assert.True(t, unknown.Eligible(Policy{IgnoreUnknownData: true}))

	assert.False(t, unchecked.Eligible(Policy{}))
	assert.True(t, unchecked.Eligible(Policy{IgnoreUnchecked: true}))

	// Missing parameters are never recoverable by tolerance flags.
	assert.False(t, missing.Eligible(Policy{
		IgnoreUnknownData:  true,
		NullableIsOptional: true,
		IgnoreUnchecked:    true,
	}))
}

func TestSelect_PrefersFewerProblems(t *testing.T) {
	clean := Candidate{Index: 1}
	noisy := Candidate{Index: 0, Problems: problem.List{problem.UnknownData("x", 1)}}

	best, ok := Select(List{noisy, clean}, Policy{IgnoreUnknownData: true})

	require.True(t, ok)
	assert.Equal(t, 1, best.Index)
}

func TestSelect_TieBreakPrefersFewerPropertyAssignments(t *testing.T) {
	viaProps := Candidate{Index: 0, Props: []PropAssignment{{Key: "a"}, {Key: "b"}}}
	viaCtor := Candidate{Index: 1}

	best, ok := Select(List{viaProps, viaCtor}, Policy{})

	require.True(t, ok)
	assert.Equal(t, 1, best.Index, "constructor binding preferred over property binding")
}

func TestSelect_FullTieKeepsDeclarationOrder(t *testing.T) {
	first := Candidate{Index: 0}
	second := Candidate{Index: 1}

	best, ok := Select(List{first, second}, Policy{})

	require.True(t, ok)
	assert.Equal(t, 0, best.Index)
}

func TestSelect_NoneEligible(t *testing.T) {
	missing := Candidate{Problems: problem.List{problem.MissingParameter("x", intType)}}

	_, ok := Select(List{missing}, Policy{})

	assert.False(t, ok)
}

func TestProblemLists_AlignedByIndex(t *testing.T) {
	l := List{
		{Index: 0, Problems: problem.List{problem.MissingParameter("a", intType)}},
		{Index: 1, Problems: problem.List{problem.UnknownData("b", 2)}},
	}

	pls := l.ProblemLists()

	require.Len(t, pls, 2)
	assert.Equal(t, []string{"a"}, pls[0].Names(problem.KindMissingParameter))
	assert.Equal(t, []string{"b"}, pls[1].Names(problem.KindUnknownData))
}
