// Package hcl provides the concrete HCL implementation of the configuration
// loading interface defined in the `config` package. It is responsible for
// all file parsing, workspace manifest decoding, and the translation of
// section attributes into flat override entries.
package hcl
