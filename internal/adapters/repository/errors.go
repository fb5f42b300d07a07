package repository

import "errors"

// Sentinel kinds for score store errors.
var (
	ErrInvalidLimit  = errors.New("invalid score limit")
	ErrInvalidTable  = errors.New("invalid table name")
	ErrUnknownDriver = errors.New("unknown storage driver")
)
