package construct

import (
	"errors"
	"fmt"

	"construct-engine/descriptor"
	"construct-engine/internal/candidate"
)

// Options are the engine's tolerance flags. The zero value is the strict
// default: any unknown data or unchecked assignment disqualifies a candidate.
type Options struct {
	// IgnoreUnknownData tolerates input keys that bind to nothing; they are
	// reported as problems on success instead of forcing failure.
	IgnoreUnknownData bool
	// NullableIsOptional treats unbound nullable parameters as omitted
	// optionals (synthesized nil) instead of missing.
	NullableIsOptional bool
	// IgnoreUncheckedAssignments tolerates erased-level bindings; they are
	// reported as problems on success instead of forcing failure.
	IgnoreUncheckedAssignments bool
}

// DefaultOptions returns the strict default configuration.
func DefaultOptions() Options {
	return Options{}
}

// Engine constructs instances of one target type. Immutable after creation
// and safe for concurrent use; each Construct call is an independent,
// bounded, synchronous computation.
type Engine struct {
	meta   *descriptor.TypeMeta
	vars   descriptor.VarMap
	policy candidate.Policy
}

// New creates an engine for the target type described by meta. vars supplies
// best-effort concrete types for the target's declared type variables and may
// be nil or incomplete.
func New(meta *descriptor.TypeMeta, vars descriptor.VarMap, opts Options) (*Engine, error) {
	if meta == nil {
		return nil, errors.New("type metadata is required")
	}

	if len(meta.Constructors) == 0 {
		return nil, fmt.Errorf("type %s declares no constructors", meta.Name)
	}

	return &Engine{
		meta: meta,
		vars: vars,
		policy: candidate.Policy{
			IgnoreUnknownData:  opts.IgnoreUnknownData,
			NullableIsOptional: opts.NullableIsOptional,
			IgnoreUnchecked:    opts.IgnoreUncheckedAssignments,
		},
	}, nil
}

// Construct attempts to build an instance from the field mapping. Advisory
// findings are carried in the Result; the returned error is reserved for
// genuine faults (constructor invocation or property-write failures), which
// are never masked as problems.
func (e *Engine) Construct(data map[string]any) (Result, error) {
	properties := e.meta.SettableProperties()

	candidates := make(candidate.List, 0, len(e.meta.Constructors))
	for i, ctor := range e.meta.Constructors {
		candidates = append(candidates,
			candidate.Build(i, ctor, properties, data, e.vars, e.policy))
	}

	best, ok := candidate.Select(candidates, e.policy)
	if !ok {
		return Result{Rejected: candidates.ProblemLists()}, nil
	}

	instance, err := e.assemble(best)
	if err != nil {
		return Result{}, err
	}

	return Result{Instance: instance, Problems: best.Problems, ok: true}, nil
}

// Pair is one key/value item of the varargs construction form.
type Pair struct {
	Key   string
	Value any
}

// P builds a Pair.
func P(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

// ConstructPairs is the varargs convenience form of Construct.
func (e *Engine) ConstructPairs(pairs ...Pair) (Result, error) {
	data := make(map[string]any, len(pairs))
	for _, p := range pairs {
		data[p.Key] = p.Value
	}

	return e.Construct(data)
}
