// Package unit defines the value types for externally-defined processing
// steps: the ProcessingUnit (Unit) that runs once per event, and the
// ESProducer that supplies conditions records to units.
//
// Both are opaque to the rest of the system beyond their name, their type
// label (which selects a Go handler at run time), their parameters and their
// declared data dependencies. Values are immutable once constructed.
package unit
