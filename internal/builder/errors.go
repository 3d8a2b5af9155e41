package builder

import (
	"fmt"

	"github.com/vk/cellconf/internal/config"
)

// OrphanCellError reports an override entry that references a cell absent
// from the cell registry. It indicates a configuration authoring bug and is
// fatal to the build invocation.
type OrphanCellError struct {
	Cell string
	Key  config.Key
}

// Error implements the error interface.
func (e *OrphanCellError) Error() string {
	return fmt.Sprintf("entry for key %q references unregistered cell %q", e.Key, e.Cell)
}
