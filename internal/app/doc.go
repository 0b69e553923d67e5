// Package app contains the core application logic. It wires the HCL loader,
// the handler registry, the planner, the executor and the run journal
// together behind the check, plan, run and history operations, decoupled
// from any specific entrypoint like a CLI.
package app
