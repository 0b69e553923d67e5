// Package pipeline implements the task/sequence composition model.
//
// A Task is an unordered group of units that must all execute once per
// event; tasks may nest other tasks. A Sequence is an ordered chain of tasks
// (or other sequences) exposed as a single named, invokable entity. Both are
// built once, execute nothing when built, and are immutable afterwards.
//
// Two construction styles are offered. NewTask and NewSequence take values
// that the caller has already constructed, which keeps dependencies explicit.
// ResolveTask and ResolveSequence take names and look them up through a
// Resolver (normally a registry.Namespace); a name that is not defined makes
// construction fail with an *UnresolvedReferenceError.
//
// Execution order among members is not part of a Task: it is derived later
// from declared data dependencies by the scheduler package.
package pipeline
