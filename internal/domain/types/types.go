// Package types contains common types used across the application
package types

import "github.com/okian/benchboard/internal/domain/score"

// Entry is a ranked board row as served over the API.
type Entry struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Command  string  `json:"command"`
	TimeNS   float64 `json:"time_ns"`
	Time     string  `json:"time"`
	Language string  `json:"language"`
}

// Entries ranks scores in the order given, starting at 1.
func Entries(scores []score.Score) []Entry {
	out := make([]Entry, len(scores))
	for i, s := range scores {
		out[i] = Entry{
			Rank:     i + 1,
			Name:     s.Name,
			Command:  s.Command,
			TimeNS:   s.TimeNS,
			Time:     score.NiceTime(s.TimeNS).String(),
			Language: s.Language,
		}
	}
	return out
}
