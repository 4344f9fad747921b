// Package construct implements the typed construction engine: given a field
// mapping of string keys to dynamically-typed values and the reflective
// metadata of a target type, it selects the alternative constructor that best
// matches the data, routes every data item to a constructor parameter, a
// property write, or an unknown-data finding, and produces either an instance
// or a per-constructor failure report.
//
// Key entry points:
//   - New: builds an Engine from metadata, type-variable bindings, and Options
//   - Engine.Construct: one construction attempt over a field mapping
//   - ConstructPairs: convenience wrapper over inline key/value pairs
package construct
