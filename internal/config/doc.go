// Package config defines the format-agnostic interfaces for loading a
// configuration into a registry.Namespace and for binding unit parameters
// to the Go structs that handlers declare.
//
// Concrete implementations, such as the HCL one, live in separate packages.
package config
