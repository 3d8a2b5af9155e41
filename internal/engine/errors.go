package engine

import (
	"fmt"

	"github.com/vk/cellconf/internal/config"
)

// AmbiguousKeyError reports more than one winning entry for a key within a
// single layer. The builder's last-wins collapsing makes this unreachable
// through the public API; if it ever surfaces it is an internal-consistency
// defect, not a user error.
type AmbiguousKeyError struct {
	Cell string
	Key  config.Key
}

// Error implements the error interface.
func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("internal: ambiguous resolution for key %q in cell %q", e.Key, e.Cell)
}
