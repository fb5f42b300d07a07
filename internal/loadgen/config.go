// Package loadgen submits generated scores to a running server and checks
// that the served board matches the best runs it submitted.
package loadgen

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Scores   int           // Number of scores to submit
	Players  int           // Distinct player names
	Commands int           // Distinct commands per player
	Workers  int           // Concurrent submitters
	Timeout  time.Duration // HTTP request timeout
	Seed     uint64        // Random seed; equal seeds generate equal runs
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Successful int
	Failed     int
	Verified   int
	StartTime  time.Time
	Duration   time.Duration
}
