package testcase

import (
	"fmt"
	"io"
	"sort"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	bulkQueryGen "github.com/flightbench/flightbench/bulk_query_gen"
)

// Range is the closed interval of the values seen.
type Range struct {
	Min, Max float64
}

func (r *Range) push(v float64, first bool) {
	if first || v < r.Min {
		r.Min = v
	}
	if first || v > r.Max {
		r.Max = v
	}
}

// Summary describes a test case without reproducing it.
type Summary struct {
	Flights  int
	Origins  map[string]int
	Price    Range
	Seats    Range
	Duration Range // seconds
	Stops    [common.MaxStops + 1]int

	Queries        int
	InvalidQueries int
	FirstInvalid   error

	// Violations lists flights that break a record invariant, by 1-based
	// flight index.
	Violations []string
}

// Summarize scans tc once.
func Summarize(tc *TestCase) *Summary {
	s := &Summary{
		Flights: len(tc.Flights),
		Origins: make(map[string]int),
		Queries: len(tc.Queries),
	}
	for i := range tc.Flights {
		f := &tc.Flights[i]
		first := i == 0
		s.Origins[f.Origin]++
		s.Price.push(f.Price, first)
		s.Seats.push(float64(f.Seats), first)
		s.Duration.push(f.Duration().Seconds(), first)
		if f.Stops >= 0 && f.Stops <= common.MaxStops {
			s.Stops[f.Stops]++
		}
		s.check(i+1, f)
	}
	for _, q := range tc.Queries {
		if _, err := bulkQueryGen.ParseQuery(q); err != nil {
			s.InvalidQueries++
			if s.FirstInvalid == nil {
				s.FirstInvalid = err
			}
		}
	}
	return s
}

func (s *Summary) check(n int, f *common.Flight) {
	if !common.IsAirportCode(f.Origin) || !common.IsAirportCode(f.Destination) {
		s.Violations = append(s.Violations, fmt.Sprintf("flight %d: bad airport code %s -> %s", n, f.Origin, f.Destination))
	}
	if f.Origin == f.Destination {
		s.Violations = append(s.Violations, fmt.Sprintf("flight %d: origin equals destination %s", n, f.Origin))
	}
	if f.Duration() <= 0 {
		s.Violations = append(s.Violations, fmt.Sprintf("flight %d: arrival not after departure", n))
	}
	if f.Stops < 0 || f.Stops > common.MaxStops {
		s.Violations = append(s.Violations, fmt.Sprintf("flight %d: stops %d out of range", n, f.Stops))
	}
}

// OK reports whether every flight and query is valid.
func (s *Summary) OK() bool {
	return len(s.Violations) == 0 && s.InvalidQueries == 0
}

func (s *Summary) Print(w io.Writer) error {
	origins := make([]string, 0, len(s.Origins))
	for k := range s.Origins {
		origins = append(origins, k)
	}
	sort.Strings(origins)

	if _, err := fmt.Fprintf(w, "flights: %d\n", s.Flights); err != nil {
		return err
	}
	if s.Flights > 0 {
		fmt.Fprintf(w, "  price: [%.2f, %.2f]\n", s.Price.Min, s.Price.Max)
		fmt.Fprintf(w, "  seats: [%.0f, %.0f]\n", s.Seats.Min, s.Seats.Max)
		fmt.Fprintf(w, "  duration: [%.0fs, %.0fs]\n", s.Duration.Min, s.Duration.Max)
		fmt.Fprintf(w, "  stops: %v\n", s.Stops)
		for _, o := range origins {
			fmt.Fprintf(w, "  from %s: %d\n", o, s.Origins[o])
		}
	}
	fmt.Fprintf(w, "queries: %d (%d invalid)\n", s.Queries, s.InvalidQueries)
	if s.FirstInvalid != nil {
		fmt.Fprintf(w, "  first invalid: %v\n", s.FirstInvalid)
	}
	for _, v := range s.Violations {
		fmt.Fprintf(w, "  %s\n", v)
	}
	return nil
}
