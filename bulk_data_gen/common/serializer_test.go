package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testFlight(t *testing.T) Flight {
	dep, err := ParseTime("2022-03-01T10:00:00")
	require.NoError(t, err)
	arr, err := ParseTime("2022-03-01T12:30:05")
	require.NoError(t, err)
	return Flight{
		Origin:      "ATL",
		Destination: "BOS",
		Price:       123.4,
		Seats:       7,
		Departure:   dep,
		Arrival:     arr,
		Stops:       1,
	}
}

func TestSerializeFlight(t *testing.T) {
	f := testFlight(t)
	var buf bytes.Buffer
	require.NoError(t, SerializeFlight(&buf, &f))
	require.Equal(t, "ATL BOS 123.40 7 2022-03-01T10:00:00 2022-03-01T12:30:05 1\n", buf.String())
	require.Equal(t, 9005.0, f.Duration().Seconds())
}

func TestParseFlight(t *testing.T) {
	f, err := ParseFlight("ATL BOS 123.40 7 2022-03-01T10:00:00 2022-03-01T12:30:05 1")
	require.NoError(t, err)
	require.Equal(t, testFlight(t), f)

	// the engine reads with operator>>, so runs of whitespace are fine
	f, err = ParseFlight("  ATL\tBOS  123.4 7 2022-03-01T10:00:00 2022-03-01T12:30:05 1 ")
	require.NoError(t, err)
	require.Equal(t, testFlight(t), f)

	bad := []string{
		"",
		"ATL BOS 123.40 7 2022-03-01T10:00:00 2022-03-01T12:30:05",
		"ATL BOS abc 7 2022-03-01T10:00:00 2022-03-01T12:30:05 1",
		"ATL BOS 1.0 7.5 2022-03-01T10:00:00 2022-03-01T12:30:05 1",
		"ATL BOS 1.0 7 2022-03-01T10:00:00Z 2022-03-01T12:30:05 1",
		"ATL BOS 1.0 7 2022-03-01T10:00:00 2022-03-01 1",
		"ATL BOS 1.0 7 2022-03-01T10:00:00 2022-03-01T12:30:05 x",
	}
	for _, line := range bad {
		_, err := ParseFlight(line)
		require.Error(t, err, line)
	}
}

func TestRound(t *testing.T) {
	require.Equal(t, 1.24, Round(1.2351, 2))
	require.Equal(t, 50.0, Round(49.999, 2))
	require.Equal(t, 1499.99, Round(1499.994, 2))
}
