// Package problem defines the advisory construction problems the engine
// reports. Problems are pure data carried inside a construction result; they
// are never raised as errors.
//
// Kinds:
//   - missing parameter: a required constructor parameter had no usable data
//   - unchecked assignment: data was bound, but only erased-level compatible
//   - unknown data: an input key matched neither parameter nor property
package problem
