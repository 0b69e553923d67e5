// Package registry provides the Namespace: the explicit configuration
// context that maps names to unit, esproducer, task and sequence
// definitions.
//
// A Namespace replaces an ambient, import-driven module scope. Loaders
// populate one Namespace per configuration, builders resolve references
// through it (it implements pipeline.Resolver), and the scheduler reads it to
// find conditions providers. Names share a single flat scope: defining a name
// twice is an error regardless of kind.
package registry
