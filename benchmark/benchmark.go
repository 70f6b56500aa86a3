// Package benchmark collects the timing files the engine writes per input
// size into parallel series, in the configured size order.
package benchmark

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flightbench/flightbench/util/fsutil"
	"github.com/flightbench/flightbench/util/logging"
	"github.com/pkg/errors"
)

// RowFields is the number of tab-separated fields in a timing row.
const RowFields = 4

// FileName is the benchmark file for one input size.
func FileName(size int) string {
	return "benchmark_" + strconv.Itoa(size) + ".txt"
}

// Row is one timing sample.
type Row struct {
	Size           int
	AVLInsertMs    float64
	LinearInsertMs float64
	SortMs         float64
}

// Series holds four parallel sequences; index i of each describes one row.
type Series struct {
	Sizes        []int
	AVLInsert    []float64
	LinearInsert []float64
	Sort         []float64
}

func (s *Series) Len() int {
	return len(s.Sizes)
}

func (s *Series) Empty() bool {
	return s.Len() == 0
}

// Append adds one row to every sequence.
func (s *Series) Append(r Row) {
	s.Sizes = append(s.Sizes, r.Size)
	s.AVLInsert = append(s.AVLInsert, r.AVLInsertMs)
	s.LinearInsert = append(s.LinearInsert, r.LinearInsertMs)
	s.Sort = append(s.Sort, r.SortMs)
}

// Check reports whether the four sequences have equal length.
func (s *Series) Check() error {
	n := len(s.Sizes)
	if len(s.AVLInsert) != n || len(s.LinearInsert) != n || len(s.Sort) != n {
		return errors.Errorf("series length mismatch: sizes=%d avl=%d linear=%d sort=%d",
			n, len(s.AVLInsert), len(s.LinearInsert), len(s.Sort))
	}
	return nil
}

// Stats counts what happened to every file and line.
type Stats struct {
	FilesRead     int
	FilesMissing  int
	FilesFailed   int
	RowsKept      int
	RowsMalformed int // wrong field count
	RowsInvalid   int // right field count, bad value
}

// ErrMalformed marks a row without exactly RowFields fields.
var ErrMalformed = errors.New("malformed row")

// ParseRow parses one tab-separated timing row. Surrounding whitespace is
// ignored. Size must be a positive integer and timings non-negative finite
// numbers.
func ParseRow(line string) (Row, error) {
	var r Row
	parts := strings.Split(strings.TrimSpace(line), "\t")
	if len(parts) != RowFields {
		return r, errors.Wrapf(ErrMalformed, "%d fields", len(parts))
	}
	size, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return r, errors.Wrap(err, "size")
	}
	if size <= 0 {
		return r, errors.Errorf("size must be positive, got %d", size)
	}
	r.Size = size
	dst := []*float64{&r.AVLInsertMs, &r.LinearInsertMs, &r.SortMs}
	names := []string{"avl insert", "linear insert", "sort"}
	for i, p := range dst {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
		if err != nil {
			return r, errors.Wrap(err, names[i])
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return r, errors.Errorf("%s: want a non-negative time, got %v", names[i], v)
		}
		*p = v
	}
	return r, nil
}

// Aggregator reads Dir/benchmark_<size>.txt for each of Sizes.
type Aggregator struct {
	Dir   string
	Sizes []int
	// Average collapses the rows of one file by size into their mean.
	// Otherwise every row is kept as an independent trial.
	Average bool
}

// Aggregate visits Sizes in order, skipping absent files. Bad rows and
// unreadable files are logged and counted, never fatal.
func (a *Aggregator) Aggregate() (*Series, *Stats) {
	series := &Series{}
	stats := &Stats{}
	for _, size := range a.Sizes {
		path := filepath.Join(a.Dir, FileName(size))
		rc, err := fsutil.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				logging.Logger.Debugf("no benchmark for size %d", size)
				stats.FilesMissing++
			} else {
				logging.Logger.Warnf("skipping %s: %v", path, err)
				stats.FilesFailed++
			}
			continue
		}
		rows, err := readRows(rc, path, stats)
		rc.Close()
		if err != nil {
			logging.Logger.Warnf("skipping %s: %v", path, err)
			stats.FilesFailed++
			continue
		}
		stats.FilesRead++
		if a.Average {
			rows = averageBySize(rows)
		}
		for _, r := range rows {
			series.Append(r)
		}
		stats.RowsKept += len(rows)
	}
	return series, stats
}

func readRows(r io.Reader, path string, stats *Stats) ([]Row, error) {
	var rows []Row
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		row, err := ParseRow(sc.Text())
		if err != nil {
			if errors.Cause(err) == ErrMalformed {
				stats.RowsMalformed++
			} else {
				stats.RowsInvalid++
			}
			logging.Logger.Warnf("%s:%d: discarding row: %v", path, line, err)
			continue
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// averageBySize merges rows sharing a size into their mean, keeping the
// order in which sizes first appear.
func averageBySize(rows []Row) []Row {
	type acc struct {
		sum Row
		n   int
	}
	var order []int
	sums := make(map[int]*acc)
	for _, r := range rows {
		a, ok := sums[r.Size]
		if !ok {
			a = &acc{sum: Row{Size: r.Size}}
			sums[r.Size] = a
			order = append(order, r.Size)
		}
		a.sum.AVLInsertMs += r.AVLInsertMs
		a.sum.LinearInsertMs += r.LinearInsertMs
		a.sum.SortMs += r.SortMs
		a.n++
	}
	out := make([]Row, 0, len(order))
	for _, size := range order {
		a := sums[size]
		n := float64(a.n)
		out = append(out, Row{
			Size:           size,
			AVLInsertMs:    a.sum.AVLInsertMs / n,
			LinearInsertMs: a.sum.LinearInsertMs / n,
			SortMs:         a.sum.SortMs / n,
		})
	}
	return out
}
