package config

import "fmt"

// ParseError reports a malformed entry in one configuration source. It
// identifies the offending file and line so the author can fix it.
type ParseError struct {
	File   string
	Line   int
	Detail string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Detail)
}
