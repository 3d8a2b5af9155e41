package registry

import "fmt"

// DuplicateCellError reports an attempt to register a cell identifier that
// is already taken.
type DuplicateCellError struct {
	Identifier string
}

// Error implements the error interface.
func (e *DuplicateCellError) Error() string {
	return fmt.Sprintf("cell %q is already registered", e.Identifier)
}

// UnknownCellError reports a lookup of a cell identifier that was never
// registered.
type UnknownCellError struct {
	Identifier string
}

// Error implements the error interface.
func (e *UnknownCellError) Error() string {
	return fmt.Sprintf("unknown cell %q", e.Identifier)
}
