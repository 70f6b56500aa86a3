package testcase

import (
	"bytes"
	"testing"
	"time"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/stretchr/testify/require"
)

func TestSummarizeGenerated(t *testing.T) {
	tc := grammarCase(t, 50)
	s := Summarize(tc)
	require.True(t, s.OK(), s.Violations)
	require.Equal(t, 50, s.Flights)
	require.Equal(t, 3, s.Queries)

	p := common.GrammarProfile()
	require.GreaterOrEqual(t, s.Price.Min, p.PriceMin)
	require.LessOrEqual(t, s.Price.Max, p.PriceMax)
	require.GreaterOrEqual(t, s.Duration.Min, p.DurationMin.Seconds())

	total := 0
	for _, n := range s.Origins {
		total += n
	}
	require.Equal(t, 50, total)
	total = 0
	for _, n := range s.Stops {
		total += n
	}
	require.Equal(t, 50, total)

	var buf bytes.Buffer
	require.NoError(t, s.Print(&buf))
	require.Contains(t, buf.String(), "flights: 50\n")
	require.Contains(t, buf.String(), "queries: 3 (0 invalid)\n")
}

func TestSummarizeViolations(t *testing.T) {
	dep, _ := common.ParseTime("2025-01-02T03:04:05")
	tc := &TestCase{
		Flights: []common.Flight{
			{Origin: "ATL", Destination: "ATL", Price: 100, Departure: dep, Arrival: dep.Add(time.Hour)},
			{Origin: "atl", Destination: "BOS", Price: 100, Departure: dep, Arrival: dep, Stops: 4},
		},
		Queries: []string{"4 pds (((prc>=600)||(dur<=5000)))", "0 p (sto==0)", "1 x (sto==0)"},
	}
	s := Summarize(tc)
	require.False(t, s.OK())
	require.Equal(t, 2, s.InvalidQueries)
	require.Error(t, s.FirstInvalid)
	require.Len(t, s.Violations, 4)
	require.Contains(t, s.Violations[0], "flight 1: origin equals destination")
	require.Contains(t, s.Violations[1], "flight 2: bad airport code")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(&TestCase{})
	require.True(t, s.OK())
	var buf bytes.Buffer
	require.NoError(t, s.Print(&buf))
	require.Equal(t, "flights: 0\nqueries: 0 (0 invalid)\n", buf.String())
}
