/*
Package engine implements the core configuration resolution algorithm.

Given a cell and a requested key set, the engine walks an ordered list of
layers per key, most specific first: local, then the cell's own layer, then
the global defaults. The first layer holding a value wins and tags the
result with its provenance. A layer holding a suppression marker stops the
walk without producing a value, so the key resolves to "unset" rather than
falling through to a default. Keys unset in every layer are simply absent
from the snapshot; absence is never an error.

Precedence is data-driven: the walk iterates layerOrder rather than
branching per layer, so adding a tier means extending the table, not the
logic.

The engine is a pure function over the immutable override graph built by
the 'builder' package and is safe for any number of concurrent callers.
*/
package engine
