// Package app wires the loader, cell registry, override graph builder,
// resolution engine, and snapshot cache into a runnable application. The
// entire load phase happens synchronously inside NewApp, establishing the
// read-only baseline that makes concurrent querying in Run race-free by
// construction.
package app
