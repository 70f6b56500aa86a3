package common

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// FlightFields is the number of space-separated fields in a flight line.
const FlightFields = 7

var scratchBufPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 128)
	},
}

// AppendFlight appends the engine's text form of f to buf:
//
// <origin> <destination> <price> <seats> <departure> <arrival> <stops>
//
// For example:
// ATL BOS 123.40 7 2022-03-01T10:00:00 2022-03-01T12:30:00 1
func AppendFlight(buf []byte, f *Flight) []byte {
	buf = append(buf, f.Origin...)
	buf = append(buf, ' ')
	buf = append(buf, f.Destination...)
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, f.Price, 'f', 2, 64)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(f.Seats), 10)
	buf = append(buf, ' ')
	buf = f.Departure.UTC().AppendFormat(buf, TimeLayout)
	buf = append(buf, ' ')
	buf = f.Arrival.UTC().AppendFormat(buf, TimeLayout)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(f.Stops), 10)
	return buf
}

// SerializeFlight writes f followed by a newline.
func SerializeFlight(w io.Writer, f *Flight) error {
	buf := scratchBufPool.Get().([]byte)
	buf = AppendFlight(buf[:0], f)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	scratchBufPool.Put(buf[:0])
	return err
}

// ParseFlight parses a line produced by AppendFlight. Fields may be
// separated by any run of whitespace, as the engine's reader allows.
func ParseFlight(line string) (Flight, error) {
	var f Flight
	parts := strings.Fields(line)
	if len(parts) != FlightFields {
		return f, errors.Errorf("expected %d fields, got %d", FlightFields, len(parts))
	}
	f.Origin = parts[0]
	f.Destination = parts[1]
	var err error
	if f.Price, err = strconv.ParseFloat(parts[2], 64); err != nil {
		return f, errors.Wrap(err, "price")
	}
	if f.Seats, err = strconv.Atoi(parts[3]); err != nil {
		return f, errors.Wrap(err, "seats")
	}
	if f.Departure, err = ParseTime(parts[4]); err != nil {
		return f, errors.Wrap(err, "departure")
	}
	if f.Arrival, err = ParseTime(parts[5]); err != nil {
		return f, errors.Wrap(err, "arrival")
	}
	if f.Stops, err = strconv.Atoi(parts[6]); err != nil {
		return f, errors.Wrap(err, "stops")
	}
	return f, nil
}
