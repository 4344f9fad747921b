// Package descriptor defines the reflective metadata the construction engine
// consumes: constructor descriptors with named, typed, optionally-defaulted
// parameters, settable property descriptors, and the type-variable
// substitution map for partially-erased generic targets.
//
// Metadata can be populated three ways, all yielding the same shapes:
//   - ParseConstructor / StructMeta over ordinary Go values via reflection
//   - the schema package's YAML registry (manually-registered schema)
//   - hand-built records
package descriptor
