// Package testcase reads and writes the engine's input file: a flight
// count, one flight per line, a query count, one query per line.
package testcase

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/flightbench/flightbench/util/fsutil"
	"github.com/pkg/errors"
)

const (
	// TestInputName is the grammar regression input.
	TestInputName = "input_test.txt"
)

// DatasetName is the input file name for a dataset of n flights.
func DatasetName(n int) string {
	return "flights_" + strconv.Itoa(n) + ".txt"
}

// TestCase is the unit serialized to one engine input file.
type TestCase struct {
	Flights []common.Flight
	Queries []string
}

// Write serializes tc. Queries are written verbatim and must not contain
// newlines.
func Write(w io.Writer, tc *TestCase) error {
	out := bufio.NewWriterSize(w, 1<<20)
	if err := writeCount(out, len(tc.Flights)); err != nil {
		return err
	}
	for i := range tc.Flights {
		if err := common.SerializeFlight(out, &tc.Flights[i]); err != nil {
			return err
		}
	}
	if err := writeCount(out, len(tc.Queries)); err != nil {
		return err
	}
	for i, q := range tc.Queries {
		if strings.ContainsAny(q, "\r\n") {
			return errors.Errorf("query %d contains a line break", i+1)
		}
		if _, err := out.WriteString(q); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}
	return out.Flush()
}

func writeCount(w *bufio.Writer, n int) error {
	var buf [20]byte
	b := strconv.AppendInt(buf[:0], int64(n), 10)
	b = append(b, '\n')
	_, err := w.Write(b)
	return err
}

// WriteFile writes tc to path, creating the parent directory.
func WriteFile(path string, tc *TestCase) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating input directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating input file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return errors.Wrapf(Write(f, tc), "writing %s", path)
}

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *lineReader) next(what string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", errors.Wrapf(err, "line %d", r.line+1)
		}
		return "", errors.Errorf("line %d: unexpected end of input, want %s", r.line+1, what)
	}
	r.line++
	return strings.TrimSuffix(r.sc.Text(), "\r"), nil
}

func (r *lineReader) count(what string) (int, error) {
	s, err := r.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "line %d: %s", r.line, what)
	}
	if n < 0 {
		return 0, errors.Errorf("line %d: negative %s %d", r.line, what, n)
	}
	return n, nil
}

// Read parses the format written by Write. Query lines are returned
// verbatim; use bulk_query_gen.ParseQuery to check them.
func Read(r io.Reader) (*TestCase, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16<<20)
	lr := &lineReader{sc: sc}

	n, err := lr.count("flight count")
	if err != nil {
		return nil, err
	}
	tc := &TestCase{Flights: make([]common.Flight, 0, n)}
	for i := 0; i < n; i++ {
		s, err := lr.next("flight")
		if err != nil {
			return nil, err
		}
		f, err := common.ParseFlight(s)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lr.line)
		}
		tc.Flights = append(tc.Flights, f)
	}
	m, err := lr.count("query count")
	if err != nil {
		return nil, err
	}
	tc.Queries = make([]string, 0, m)
	for i := 0; i < m; i++ {
		s, err := lr.next("query")
		if err != nil {
			return nil, err
		}
		tc.Queries = append(tc.Queries, s)
	}
	return tc, nil
}

// ReadFile reads the test case stored at path, or at path.gz.
func ReadFile(path string) (*TestCase, error) {
	f, err := fsutil.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tc, err := Read(f)
	return tc, errors.Wrapf(err, "reading %s", path)
}
