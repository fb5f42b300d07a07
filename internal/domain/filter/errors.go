package filter

import (
	"errors"
	"fmt"
)

// Sentinel kinds for filter errors. These allow errors.Is from callers.
var (
	ErrInvalidSortColumn = errors.New("invalid sort column")
	ErrInvalidFilter     = errors.New("invalid filter")
)

// InvalidSortColumnError carries the text that failed to parse.
type InvalidSortColumnError struct {
	Text string
}

func (e *InvalidSortColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidSortColumn, e.Text)
}

// Is reports whether target is ErrInvalidSortColumn.
func (e *InvalidSortColumnError) Is(target error) bool {
	return target == ErrInvalidSortColumn
}
