package score

import "errors"

// ErrValidation marks a score rejected at ingestion.
var ErrValidation = errors.New("invalid score")
