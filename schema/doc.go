// Package schema provides the manually-registered metadata provider for the
// construction engine: an authoritative, human-reviewed YAML description of a
// type's alternative constructors and settable properties, bound at runtime
// either to registered Go functions or to dynamic map-backed instances.
//
// Key capabilities:
//   - LoadFile / Parse: read a schema file and apply defaults
//   - Validate: structural diagnostics with stable codes
//   - Registry.Bind: attach registered Go constructor functions
//   - Registry.Dynamic: map-backed instances with no Go type at all
package schema
