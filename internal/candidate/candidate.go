package candidate

import (
	"sort"

	"construct-engine/descriptor"
	"construct-engine/internal/compat"
	"construct-engine/problem"
)

// Policy holds the tolerance flags active for one construction attempt.
type Policy struct {
	// IgnoreUnknownData keeps candidates with unbound input keys eligible.
	IgnoreUnknownData bool
	// NullableIsOptional treats unbound nullable parameters as omitted
	// optionals instead of missing.
	NullableIsOptional bool
	// IgnoreUnchecked keeps candidates with unchecked assignments eligible.
	IgnoreUnchecked bool
}

// PropAssignment is one resolved property write.
type PropAssignment struct {
	// Prop is the target property.
	Prop *descriptor.Property
	// Key is the input key the value came from.
	Key string
	// Value to write.
	Value any
}

// Candidate is one constructor paired with the outcome of partitioning the
// input data against it. Built and discarded within one construction call.
type Candidate struct {
	// Index is the constructor's declaration-order position.
	Index int
	// Ctor is the constructor descriptor.
	Ctor *descriptor.Constructor
	// Args maps parameter names to their bound values.
	Args map[string]any
	// Props is the resolved property-assignment list, in stable order
	// (property declaration order).
	Props []PropAssignment
	// Problems accumulated while partitioning.
	Problems problem.List
}

// Build partitions data against one constructor. Every input key ends up in
// exactly one of: a constructor argument, a property assignment, or an
// unknown-data problem.
//
// Steps, per the partitioning contract:
//  1. keys matching parameter names are classified against the parameter
//     type; unable bindings are left for property resolution, unchecked
//     bindings are recorded as problems
//  2. unbound required parameters become missing-parameter problems, unless
//     nullable and the nullable-is-optional policy is active
//  3. leftover keys are matched against settable properties by name, with
//     the same classification rules; a key never binds to both a parameter
//     and a property
//  4. keys still unbound become unknown-data problems
func Build(
	index int,
	ctor *descriptor.Constructor,
	properties []descriptor.Property,
	data map[string]any,
	vars descriptor.VarMap,
	pol Policy,
) Candidate {
	cand := Candidate{
		Index: index,
		Ctor:  ctor,
		Args:  make(map[string]any, len(ctor.Params)),
	}

	claimed := make(map[string]bool, len(data))

	// Step 1: bind constructor parameters.
	for i := range ctor.Params {
		param := &ctor.Params[i]

		value, present := data[param.Name]
		if !present {
			continue
		}

		verdict := compat.Classify(value, param.Type, vars)
		if !verdict.Binds() {
			continue
		}

		cand.Args[param.Name] = value
		claimed[param.Name] = true

		if verdict == compat.VerdictUnchecked {
			cand.Problems = append(cand.Problems,
				problem.UncheckedAssignment(param.Name, param.Type, value))
		}
	}

	// Step 2: required parameters without a binding.
	for i := range ctor.Params {
		param := &ctor.Params[i]

		if _, bound := cand.Args[param.Name]; bound || param.Optional {
			continue
		}

		if pol.NullableIsOptional && param.Type.Nullable() {
			continue
		}

		cand.Problems = append(cand.Problems,
			problem.MissingParameter(param.Name, param.Type))
	}

	// Step 3: resolve leftover keys through settable properties.
	for i := range properties {
		prop := &properties[i]
		if !prop.Settable() {
			continue
		}

		value, present := data[prop.Name]
		if !present || claimed[prop.Name] {
			continue
		}

		verdict := compat.Classify(value, prop.Type, vars)
		if !verdict.Binds() {
			continue
		}

		cand.Props = append(cand.Props, PropAssignment{
			Prop:  prop,
			Key:   prop.Name,
			Value: value,
		})
		claimed[prop.Name] = true

		if verdict == compat.VerdictUnchecked {
			cand.Problems = append(cand.Problems,
				problem.UncheckedAssignment(prop.Name, prop.Type, value))
		}
	}

	// Step 4: whatever is left is unknown data. Sorted for determinism;
	// input insertion order is not observable through a Go map.
	var unknown []string

	for key := range data {
		if !claimed[key] {
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)

	for _, key := range unknown {
		cand.Problems = append(cand.Problems, problem.UnknownData(key, data[key]))
	}

	return cand
}

// Eligible returns true if the candidate survives the policy flags.
// A missing parameter always disqualifies, regardless of policy.
func (c *Candidate) Eligible(pol Policy) bool {
	if c.Problems.HasKind(problem.KindMissingParameter) {
		return false
	}

	if !pol.IgnoreUnknownData && c.Problems.HasKind(problem.KindUnknownData) {
		return false
	}

	if !pol.IgnoreUnchecked && c.Problems.HasKind(problem.KindUncheckedAssignment) {
		return false
	}

	return true
}

// List is the full candidate set for one construction attempt, in
// constructor declaration order.
type List []Candidate

// ProblemLists returns every candidate's problem list, aligned by
// constructor declaration order.
func (l List) ProblemLists() []problem.List {
	out := make([]problem.List, len(l))
	for i := range l {
		out[i] = l[i].Problems
	}

	return out
}

// Select picks the best eligible candidate: minimum by the lexicographic key
// (problem count, property-assignment count) ascending. Fewer residual
// problems wins; ties prefer the constructor that resolves fewer items via
// properties. Candidates equal on both counts keep constructor declaration
// order: the scan only replaces the best on a strictly smaller key, which is
// implementation-defined behavior rather than contract.
func Select(l List, pol Policy) (*Candidate, bool) {
	var best *Candidate

	for i := range l {
		cand := &l[i]
		if !cand.Eligible(pol) {
			continue
		}

		if best == nil || less(cand, best) {
			best = cand
		}
	}

	return best, best != nil
}

// less compares candidates by (problem count, property-assignment count).
func less(a, b *Candidate) bool {
	if len(a.Problems) != len(b.Problems) {
		return len(a.Problems) < len(b.Problems)
	}

	return len(a.Props) < len(b.Props)
}
