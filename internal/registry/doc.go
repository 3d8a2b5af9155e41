// Package registry provides the cell registry for a build workspace.
//
// The Registry maps logical cell identifiers to their declared roots and
// knows which cell is the workspace root. It is built once from the
// workspace manifest during startup and is read-only afterwards, which is
// what allows the resolution engine to be queried concurrently without
// synchronization.
package registry
