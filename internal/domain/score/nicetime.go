package score

import "fmt"

// Unit thresholds in nanoseconds.
const (
	nsPerMicrosecond = 1_000.0
	nsPerMillisecond = 1_000_000.0
	nsPerSecond      = 1_000_000_000.0
)

// NiceTime is an elapsed duration in nanoseconds rendered with the largest
// unit that keeps the mantissa below 1000.
type NiceTime float64

// String formats t with three decimals. A value equal to a threshold moves
// to the next unit up.
func (t NiceTime) String() string {
	ns := float64(t)
	switch {
	case ns < nsPerMicrosecond:
		return fmt.Sprintf("%.3fns", ns)
	case ns < nsPerMillisecond:
		return fmt.Sprintf("%.3fus", ns/nsPerMicrosecond)
	case ns < nsPerSecond:
		return fmt.Sprintf("%.3fms", ns/nsPerMillisecond)
	default:
		return fmt.Sprintf("%.3fs", ns/nsPerSecond)
	}
}
