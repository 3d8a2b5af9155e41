// Package config defines the format-agnostic configuration model for the
// resolution engine, along with the core Loader interface for reading raw
// override entries from physical source locations.
//
// The types here are the single source of truth for the `builder` and
// `engine` packages. Concrete implementations of the Loader interface, such
// as for HCL, are provided in separate packages.
package config
