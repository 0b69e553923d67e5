// Package executor runs an execution plan for a number of iterations.
//
// Each iteration gets its own eventstore.Event. External inputs are seeded
// from a Source, then every member unit executes exactly once, strictly
// after all the units whose products it consumes. Independent units run
// concurrently on a bounded pool of workers.
//
// A failing unit aborts its iteration: running units see a cancelled
// context, units that have not started are marked Skipped and no further
// iterations are started. The error names the failing unit.
package executor
