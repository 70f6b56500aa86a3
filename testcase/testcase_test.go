package testcase

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/flightbench/flightbench/bulk_data_gen/flights"
	bulkQueryGen "github.com/flightbench/flightbench/bulk_query_gen"
	"github.com/stretchr/testify/require"
)

func grammarCase(t *testing.T, n int64) *TestCase {
	cfg := &flights.FlightSimulatorConfig{Profile: common.GrammarProfile(), Count: n, Seed: 2025}
	sim, err := cfg.ToSimulator()
	require.NoError(t, err)
	return &TestCase{
		Flights: flights.Generate(sim),
		Queries: bulkQueryGen.Fixtures(),
	}
}

func TestWriteLayout(t *testing.T) {
	dep, _ := common.ParseTime("2025-01-02T03:04:05")
	arr, _ := common.ParseTime("2025-01-02T05:04:05")
	tc := &TestCase{
		Flights: []common.Flight{
			{Origin: "ATL", Destination: "BOS", Price: 100, Seats: 0, Departure: dep, Arrival: arr, Stops: 3},
			{Origin: "JFK", Destination: "LAX", Price: 1499.99, Seats: 100, Departure: dep, Arrival: arr, Stops: 0},
		},
		Queries: []string{"4 pds (((prc>=600)||(dur<=5000)))"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tc))
	require.Equal(t, "2\n"+
		"ATL BOS 100.00 0 2025-01-02T03:04:05 2025-01-02T05:04:05 3\n"+
		"JFK LAX 1499.99 100 2025-01-02T03:04:05 2025-01-02T05:04:05 0\n"+
		"1\n"+
		"4 pds (((prc>=600)||(dur<=5000)))\n", buf.String())
}

func TestWriteWithoutQueries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &TestCase{}))
	require.Equal(t, "0\n0\n", buf.String())
}

func TestWriteRejectsMultilineQuery(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Write(&buf, &TestCase{Queries: []string{"1 p (sto==0)\n1 p (sto==1)"}}))
}

func TestRoundTrip(t *testing.T) {
	tc := grammarCase(t, 200)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tc))
	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, tc, got)
}

func TestEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs", TestInputName)
	require.NoError(t, WriteFile(path, grammarCase(t, 10)))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got.Flights, 10)
	require.Len(t, got.Queries, 3)
	re := regexp.MustCompile(`^[0-9]+ [a-z]+ \(`)
	for _, q := range got.Queries {
		require.Regexp(t, re, q)
		_, err := bulkQueryGen.ParseQuery(q)
		require.NoError(t, err)
	}
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"bad count":       "x\n",
		"negative count":  "-1\n",
		"short":           "2\nATL BOS 1.00 1 2025-01-01T00:00:00 2025-01-01T01:00:00 0\n",
		"bad flight":      "1\nATL BOS 1.00 1 2025-01-01T00:00:00 0\n0\n",
		"no query count":  "0\n",
		"missing queries": "0\n2\n1 p (sto==0)\n",
	}
	for name, in := range cases {
		_, err := Read(strings.NewReader(in))
		require.Error(t, err, name)
	}

	_, err := Read(strings.NewReader("1\nATL BOS 1.00 1 2025-01-01T00:00:00 0\n0\n"))
	require.Contains(t, err.Error(), "line 2")
}

func TestReadCRLF(t *testing.T) {
	tc, err := Read(strings.NewReader("1\r\nATL BOS 1.00 1 2025-01-01T00:00:00 2025-01-01T01:00:00 0\r\n1\r\n1 p (sto==0)\r\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"1 p (sto==0)"}, tc.Queries)
}

func TestDatasetName(t *testing.T) {
	require.Equal(t, "flights_5000.txt", DatasetName(5000))
}
