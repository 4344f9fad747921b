package construct

import "construct-engine/problem"

// Result is the outcome of one construction attempt.
//
// On success, Instance holds the constructed value and Problems the winning
// candidate's residual findings (tolerated unknown data or unchecked
// assignments; never a missing parameter). On failure, Rejected holds one
// problem list per candidate, aligned by constructor declaration order, so a
// caller can diagnose why each alternative was rejected.
type Result struct {
	// Instance is the constructed value. Nil on failure.
	Instance any
	// Problems are the winning candidate's residual findings.
	Problems problem.List
	// Rejected holds every candidate's problem list on failure, indexed by
	// constructor declaration order. Nil on success.
	Rejected []problem.List

	ok bool
}

// Ok returns true if an instance was constructed.
func (r Result) Ok() bool {
	return r.ok
}
