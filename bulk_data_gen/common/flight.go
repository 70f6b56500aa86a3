package common

import "time"

// TimeLayout is the timestamp form the engine reads: no zone, no fraction.
const TimeLayout = "2006-01-02T15:04:05"

// MaxStops is the largest number of stops a generated flight can have.
const MaxStops = 3

// Flight is one synthetic flight record.
type Flight struct {
	Origin      string
	Destination string
	Price       float64
	Seats       int
	Departure   time.Time
	Arrival     time.Time
	Stops       int
}

// Duration is the time between departure and arrival. The engine indexes
// it in whole seconds under the "dur" field.
func (f *Flight) Duration() time.Duration {
	return f.Arrival.Sub(f.Departure)
}

// Reset clears all fields so the value can be reused by a Simulator.
func (f *Flight) Reset() {
	*f = Flight{}
}

// FormatTime renders t in TimeLayout, in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp as UTC.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}
