// Package verify compares engine output files against golden references.
package verify

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/flightbench/flightbench/util/fsutil"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/pkg/errors"
)

const (
	passMark = "\u2705"
	failMark = "\u274C"
)

// Status is the outcome for one test id.
type Status int

const (
	// Match: contents are byte-identical. In lenient mode a missing file
	// counts as empty, so a missing file next to an empty one matches too.
	Match Status = iota
	Mismatch
	// BothMissing: neither file exists. Lenient mode passes it as
	// "no output produced, none expected"; strict mode fails it, since it
	// usually means a missing fixture.
	BothMissing
	ActualMissing
	ExpectedMissing
	ReadError
)

var statusNames = [...]string{"match", "mismatch", "both-missing", "actual-missing", "expected-missing", "read-error"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// OutputName is the file name for test id i, the same in both directories.
func OutputName(i int) string {
	return "output_" + strconv.Itoa(i) + ".txt"
}

// Result is the verdict for one test id.
type Result struct {
	ID     int
	Name   string
	Status Status
	Passed bool
	// FirstDiffLine is the 1-based line where contents first differ, or 0.
	FirstDiffLine int
	Err           error
}

// Summary collects every Result of a run.
type Summary struct {
	Results    []Result
	Mismatches int
}

// OK reports whether every id passed.
func (s *Summary) OK() bool {
	return s.Mismatches == 0
}

// ExitCode is the completion status for scripts: 0 when OK, 1 otherwise.
func (s *Summary) ExitCode() int {
	if s.OK() {
		return 0
	}
	return 1
}

// Print writes one marker line per id and a totals line.
func (s *Summary) Print(w io.Writer) error {
	for _, r := range s.Results {
		mark := passMark
		if !r.Passed {
			mark = failMark
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", r.Name, mark); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d/%d passed\n", len(s.Results)-s.Mismatches, len(s.Results))
	return err
}

// Verifier compares OutputDir/output_<i>.txt with ExpectedDir/output_<i>.txt
// for i in [First, Last]. Expected files may be stored as output_<i>.txt.gz.
type Verifier struct {
	OutputDir   string
	ExpectedDir string
	First       int
	Last        int
	Strict      bool
}

// Run checks every id. Per-id problems are recorded in the Summary and never
// stop the run; the only error is an inverted id range.
func (v *Verifier) Run() (*Summary, error) {
	if v.Last < v.First {
		return nil, errors.Errorf("invalid test range [%d, %d]", v.First, v.Last)
	}
	s := &Summary{Results: make([]Result, 0, v.Last-v.First+1)}
	for i := v.First; i <= v.Last; i++ {
		r := v.Check(i)
		if !r.Passed {
			s.Mismatches++
		}
		s.Results = append(s.Results, r)
	}
	return s, nil
}

// Check compares the files of a single id.
func (v *Verifier) Check(i int) Result {
	name := OutputName(i)
	r := Result{ID: i, Name: name}

	actual, actualOK, err := fsutil.ReadFile(filepath.Join(v.OutputDir, name))
	if err == nil {
		var expected []byte
		var expectedOK bool
		expected, expectedOK, err = fsutil.ReadFile(filepath.Join(v.ExpectedDir, name))
		if err == nil {
			r.Status, r.FirstDiffLine = compare(actual, actualOK, expected, expectedOK)
		}
	}
	if err != nil {
		r.Status = ReadError
		r.Err = err
		logging.Logger.Warnf("%s: %v", name, err)
	}

	switch r.Status {
	case Match:
		r.Passed = true
	case BothMissing:
		r.Passed = !v.Strict
	case ActualMissing, ExpectedMissing:
		// contents already compared as empty
		r.Passed = !v.Strict && r.FirstDiffLine == 0
	}
	return r
}

func compare(actual []byte, actualOK bool, expected []byte, expectedOK bool) (Status, int) {
	if !actualOK && !expectedOK {
		return BothMissing, 0
	}
	line := firstDiffLine(actual, expected)
	switch {
	case !actualOK:
		return ActualMissing, line
	case !expectedOK:
		return ExpectedMissing, line
	case line == 0:
		return Match, 0
	}
	return Mismatch, line
}

// firstDiffLine returns the 1-based line of the first differing byte, or 0
// when a and b are identical.
func firstDiffLine(a, b []byte) int {
	if bytes.Equal(a, b) {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return bytes.Count(a[:i], []byte{'\n'}) + 1
}
