// Package handlers maps unit types to the Go code that executes them.
//
// Configuration names a unit's type ("MTDRecHitProducer") but never says
// what the type does. Modules register a Handler per type; the executor
// looks the type up when it runs a unit. A fallback handler can stand in
// for every unregistered type, which is how opaque configuration
// fragments are dry-run.
package handlers
