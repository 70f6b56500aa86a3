package common

// Simulator simulates a flight dataset.
type Simulator interface {
	Total() int64
	SeenFlights() int64
	Finished() bool
	Next(*Flight)
}

// MakeUsableFlight allocates a new Flight ready for use by a Simulator.
func MakeUsableFlight() *Flight {
	return &Flight{}
}
