// Package scheduler turns a sequence into an execution plan.
//
// Task membership carries no ordering. The plan orders the full effective
// membership of a sequence strictly by declared data dependencies: a unit
// runs after every member that produces one of its inputs. Units with no
// path between them are independent and may run concurrently; among them
// the plan breaks ties by name so that Order is deterministic.
//
// The position of a task inside a sequence chain is not an ordering
// constraint. Wrapping a task in a sequence never changes the plan.
//
// # Waves
//
// Levels groups the order into waves. Every unit of a wave depends only on
// units of earlier waves, so a wave is the unit of parallelism an executor
// can exploit.
//
// # Conditions
//
// A unit's conditions records must each be provided by at least one ES
// producer in the namespace. Missing providers are reported together as
// ErrMissingCondition.
package scheduler
