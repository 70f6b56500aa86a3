// Generation profiles: the knobs that shape a synthetic flight dataset.
// Profiles can be overridden from the harness TOML file, see package config.

package common

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	ProfileThroughput = "throughput"
	ProfileGrammar    = "grammar"
)

var ProfileChoices = []string{ProfileThroughput, ProfileGrammar}

// Profile describes the value space of generated flights.
type Profile struct {
	Name string

	Airports []string

	PriceMin float64
	PriceMax float64

	SeatsMin int
	SeatsMax int

	// Departures are drawn from [DepartureStart, DepartureEnd], both inclusive.
	DepartureStart time.Time
	DepartureEnd   time.Time

	// Durations are multiples of DurationStep in [DurationMin, DurationMax].
	DurationMin  time.Duration
	DurationMax  time.Duration
	DurationStep time.Duration
}

func mustTime(s string) time.Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ThroughputProfile is used for the scale datasets fed to the engine's
// benchmark mode.
func ThroughputProfile() Profile {
	return Profile{
		Name: ProfileThroughput,
		Airports: []string{"ATL", "BOS", "CLT", "DFW", "DEN", "DTW", "EWR", "IAD",
			"JFK", "LAX", "LGA", "MIA", "OAK", "ORD", "PHL", "SFO"},
		PriceMin:       50,
		PriceMax:       1500,
		SeatsMin:       1,
		SeatsMax:       10,
		DepartureStart: mustTime("2022-01-01T00:00:00"),
		DepartureEnd:   mustTime("2024-12-31T23:59:59"),
		DurationMin:    time.Hour,
		DurationMax:    10 * time.Hour,
		DurationStep:   time.Minute,
	}
}

// GrammarProfile is used for the small datasets behind the query grammar
// regression tests.
func GrammarProfile() Profile {
	return Profile{
		Name:           ProfileGrammar,
		Airports:       []string{"ATL", "BOS", "LAX", "JFK", "ORD", "SFO", "MIA", "DFW", "DEN", "CLT"},
		PriceMin:       50,
		PriceMax:       1500,
		SeatsMin:       0,
		SeatsMax:       100,
		DepartureStart: mustTime("2025-01-01T00:00:00"),
		DepartureEnd:   mustTime("2025-12-31T00:00:00"),
		DurationMin:    time.Hour,
		DurationMax:    10 * time.Hour,
		DurationStep:   time.Hour,
	}
}

// DefaultProfiles returns the built-in profiles keyed by name.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileThroughput: ThroughputProfile(),
		ProfileGrammar:    GrammarProfile(),
	}
}

// IsAirportCode reports whether s is three uppercase ASCII letters.
func IsAirportCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Validate reports the first reason the profile cannot generate flights
// satisfying the record invariants.
func (p *Profile) Validate() error {
	distinct := make(map[string]struct{}, len(p.Airports))
	for _, code := range p.Airports {
		if !IsAirportCode(code) {
			return errors.Errorf("profile %q: invalid airport code %q", p.Name, code)
		}
		distinct[code] = struct{}{}
	}
	// destination redraw only terminates with a second code to land on
	if len(distinct) < 2 {
		return errors.Errorf("profile %q: need at least 2 distinct airports, have %d", p.Name, len(distinct))
	}
	if p.PriceMin <= 0 || p.PriceMax < p.PriceMin {
		return errors.Errorf("profile %q: invalid price range [%v, %v]", p.Name, p.PriceMin, p.PriceMax)
	}
	if p.SeatsMin < 0 || p.SeatsMax < p.SeatsMin {
		return errors.Errorf("profile %q: invalid seat range [%d, %d]", p.Name, p.SeatsMin, p.SeatsMax)
	}
	if p.DepartureEnd.Before(p.DepartureStart) {
		return errors.Errorf("profile %q: departure range ends before it starts", p.Name)
	}
	if p.DurationStep <= 0 || p.DurationStep%time.Second != 0 {
		return errors.Errorf("profile %q: duration step must be a positive whole number of seconds", p.Name)
	}
	if p.DurationMin < time.Second || p.DurationMax < p.DurationMin {
		return errors.Errorf("profile %q: invalid duration range [%v, %v]", p.Name, p.DurationMin, p.DurationMax)
	}
	return nil
}

func (p *Profile) String() string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("profile: %s\n", p.Name))
	buf.WriteString(fmt.Sprintf("  airports: %v\n", p.Airports))
	buf.WriteString(fmt.Sprintf("  price: [%.2f, %.2f]\n", p.PriceMin, p.PriceMax))
	buf.WriteString(fmt.Sprintf("  seats: [%d, %d]\n", p.SeatsMin, p.SeatsMax))
	buf.WriteString(fmt.Sprintf("  departure: [%s, %s]\n", FormatTime(p.DepartureStart), FormatTime(p.DepartureEnd)))
	buf.WriteString(fmt.Sprintf("  duration: [%v, %v] step %v\n", p.DurationMin, p.DurationMax, p.DurationStep))
	return buf.String()
}

// ProfileSpec is the on-disk form of a Profile. Unset fields keep the value
// of the profile it is applied to.
type ProfileSpec struct {
	Airports       []string `json:"airports"`
	PriceMin       *float64 `json:"price_min"`
	PriceMax       *float64 `json:"price_max"`
	SeatsMin       *int     `json:"seats_min"`
	SeatsMax       *int     `json:"seats_max"`
	DepartureStart string   `json:"departure_start"`
	DepartureEnd   string   `json:"departure_end"`
	DurationMin    string   `json:"duration_min"`
	DurationMax    string   `json:"duration_max"`
	DurationStep   string   `json:"duration_step"`
}

// Apply overlays s on base and returns the result.
func (s *ProfileSpec) Apply(base Profile) (Profile, error) {
	p := base
	if len(s.Airports) > 0 {
		p.Airports = append([]string(nil), s.Airports...)
	}
	if s.PriceMin != nil {
		p.PriceMin = *s.PriceMin
	}
	if s.PriceMax != nil {
		p.PriceMax = *s.PriceMax
	}
	if s.SeatsMin != nil {
		p.SeatsMin = *s.SeatsMin
	}
	if s.SeatsMax != nil {
		p.SeatsMax = *s.SeatsMax
	}
	var err error
	if s.DepartureStart != "" {
		if p.DepartureStart, err = ParseTime(s.DepartureStart); err != nil {
			return p, errors.Wrapf(err, "profile %q: departure_start", p.Name)
		}
	}
	if s.DepartureEnd != "" {
		if p.DepartureEnd, err = ParseTime(s.DepartureEnd); err != nil {
			return p, errors.Wrapf(err, "profile %q: departure_end", p.Name)
		}
	}
	for _, d := range []struct {
		key string
		src string
		dst *time.Duration
	}{
		{"duration_min", s.DurationMin, &p.DurationMin},
		{"duration_max", s.DurationMax, &p.DurationMax},
		{"duration_step", s.DurationStep, &p.DurationStep},
	} {
		if d.src == "" {
			continue
		}
		if *d.dst, err = time.ParseDuration(d.src); err != nil {
			return p, errors.Wrapf(err, "profile %q: %s", p.Name, d.key)
		}
	}
	return p, nil
}
