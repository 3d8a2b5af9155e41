/*
Package builder constructs the layered override graph that the resolution
engine walks. It acts as the bridge between the flat entry stream produced
by a config.Loader and the per-key precedence walk in the 'engine' package.

The primary artifact produced by this package is an immutable *Graph.

Construction is a two-phase process:

 1. Validation: every cell-scoped entry is checked against the cell
    registry. An entry referencing an unregistered cell fails the build
    with an OrphanCellError, since it indicates a configuration authoring
    bug rather than a recoverable condition.

 2. Partitioning: entries are folded into one shared global layer plus a
    {cell, local} layer pair per cell. Within one layer the last entry for
    a given key wins, reflecting load order ("later file overrides earlier
    file"). Suppression markers are recorded verbatim.

No precedence decision across layers is made here; that is the engine's
job. Keeping the builder purely structural means new layers can be added by
extending the engine's ordered layer list without touching this package.
*/
package builder
