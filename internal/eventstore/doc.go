// Package eventstore provides the ephemeral, thread-safe, per-iteration
// product store used by the executor.
//
// # Purpose
//
// Every iteration of a run gets a fresh Event. Units publish their products
// into it and read the products of their producers from it. The store also
// tracks each unit's execution status and failure.
//
// # Access control
//
// Handlers never see the Event itself. They receive a View bound to one
// unit, which only allows reading the tags the unit declares in consumes
// and only allows writing the instances it declares in produces. Any other
// access fails with ErrUndeclared.
//
// # Concurrency Model
//
// Products and statuses live in sync.Maps: keys are known up front and each
// is written by a single unit, while readers on other goroutines look them
// up concurrently.
package eventstore
