package flights

import (
	"math/rand"
	"time"

	. "github.com/flightbench/flightbench/bulk_data_gen/common"
)

// A FlightSimulator generates flight records within a Profile.
// It fulfills the Simulator interface.
type FlightSimulator struct {
	madeFlights int64
	maxFlights  int64

	rnd      *rand.Rand
	airports []string

	price     Distribution
	seats     *DiscreteUniformDistribution
	departure *DiscreteUniformDistribution
	duration  *DiscreteUniformDistribution
	stops     *DiscreteUniformDistribution

	departureStart time.Time
}

func (g *FlightSimulator) SeenFlights() int64 {
	return g.madeFlights
}

func (g *FlightSimulator) Total() int64 {
	return g.maxFlights
}

func (g *FlightSimulator) Finished() bool {
	return g.madeFlights >= g.maxFlights
}

// Type FlightSimulatorConfig is used to create a FlightSimulator.
type FlightSimulatorConfig struct {
	Profile Profile
	Count   int64
	Seed    int64
}

// ToSimulator validates the profile and builds the simulator. A zero Seed
// uses the current timestamp.
func (c *FlightSimulatorConfig) ToSimulator() (*FlightSimulator, error) {
	return c.ToSimulatorWithRand(NewRand(c.Seed))
}

// ToSimulatorWithRand is ToSimulator with a caller-owned random source, for
// drawing several datasets from one seeded stream.
func (c *FlightSimulatorConfig) ToSimulatorWithRand(rnd *rand.Rand) (*FlightSimulator, error) {
	p := c.Profile
	if err := p.Validate(); err != nil {
		return nil, err
	}
	step := int64(p.DurationStep / time.Second)
	span := int64(p.DepartureEnd.Sub(p.DepartureStart) / time.Second)
	// round the bounds inward to whole steps so every draw stays in range
	durLow := (int64(p.DurationMin/time.Second) + step - 1) / step * step
	durHigh := int64(p.DurationMax/time.Second) / step * step
	if durHigh < durLow {
		durLow, durHigh = int64(p.DurationMin/time.Second), int64(p.DurationMax/time.Second)
		step = 1
	}
	sim := &FlightSimulator{
		maxFlights:     c.Count,
		rnd:            rnd,
		airports:       append([]string(nil), p.Airports...),
		price:          RD(UD(rnd, p.PriceMin, p.PriceMax), 2, p.PriceMin, p.PriceMax),
		seats:          DUD(rnd, int64(p.SeatsMin), int64(p.SeatsMax), 1),
		departure:      DUD(rnd, 0, span, 1),
		duration:       DUD(rnd, durLow, durHigh, step),
		stops:          DUD(rnd, 0, MaxStops, 1),
		departureStart: p.DepartureStart.UTC(),
	}
	return sim, nil
}

// Next fills f with the next flight. Origin and destination are drawn
// independently and the destination is redrawn until they differ.
// Arrival is built from departure plus a positive duration.
func (g *FlightSimulator) Next(f *Flight) {
	f.Origin = RandChoice(g.rnd, g.airports)
	f.Destination = RandChoice(g.rnd, g.airports)
	for f.Destination == f.Origin {
		f.Destination = RandChoice(g.rnd, g.airports)
	}

	g.price.Advance()
	f.Price = g.price.Get()

	g.seats.Advance()
	f.Seats = int(g.seats.GetInt())

	g.departure.Advance()
	f.Departure = g.departureStart.Add(time.Duration(g.departure.GetInt()) * time.Second)

	g.duration.Advance()
	f.Arrival = f.Departure.Add(time.Duration(g.duration.GetInt()) * time.Second)

	g.stops.Advance()
	f.Stops = int(g.stops.GetInt())

	g.madeFlights++
}

// Generate runs the simulator to completion and returns every flight.
func Generate(sim Simulator) []Flight {
	out := make([]Flight, 0, sim.Total())
	f := MakeUsableFlight()
	for !sim.Finished() {
		sim.Next(f)
		out = append(out, *f)
		f.Reset()
	}
	return out
}
