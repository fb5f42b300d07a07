// Package score contains the benchmark score record passed between layers.
package score

import (
	"fmt"
	"math"
	"strings"
)

// Score is one benchmark result. Hash identifies the submitted artifact and
// never leaves the persistence boundary, so it is excluded from JSON.
type Score struct {
	Name     string  `json:"name" db:"name"`         // player identifier
	Command  string  `json:"command" db:"command"`   // benchmarked invocation
	TimeNS   float64 `json:"time_ns" db:"time_ns"`   // elapsed nanoseconds
	Hash     string  `json:"-" db:"hash"`            // content hash of the artifact
	Language string  `json:"language" db:"language"` // source language label
}

// New builds a Score from its fields.
func New(name, command string, timeNS float64, hash, language string) Score {
	return Score{
		Name:     name,
		Command:  command,
		TimeNS:   timeNS,
		Hash:     hash,
		Language: language,
	}
}

// Validate reports whether s can be stored. Times must be finite and
// non-negative so that ordering by time stays total.
func (s Score) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: missing name", ErrValidation)
	case strings.TrimSpace(s.Command) == "":
		return fmt.Errorf("%w: missing command", ErrValidation)
	case strings.TrimSpace(s.Language) == "":
		return fmt.Errorf("%w: missing language", ErrValidation)
	case math.IsNaN(s.TimeNS):
		return fmt.Errorf("%w: time_ns is NaN", ErrValidation)
	case math.IsInf(s.TimeNS, 0):
		return fmt.Errorf("%w: time_ns is infinite", ErrValidation)
	case s.TimeNS < 0:
		return fmt.Errorf("%w: time_ns %v is negative", ErrValidation, s.TimeNS)
	}
	return nil
}

// String renders the score as "{name} ran {command} ({language}) in {time}".
func (s Score) String() string {
	return s.Line(s.Name)
}

// Line renders the score with name substituted for the player identifier.
func (s Score) Line(name string) string {
	return fmt.Sprintf("%s ran %s (%s) in %s", name, s.Command, s.Language, NiceTime(s.TimeNS))
}
