package benchmark

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatGroupPush(t *testing.T) {
	var s StatGroup
	for _, v := range []float64{4, 1, 7} {
		s.Push(v)
	}
	require.Equal(t, int64(3), s.Count)
	require.Equal(t, 1.0, s.Min)
	require.Equal(t, 7.0, s.Max)
	require.InDelta(t, 4.0, s.Mean, 1e-9)
	require.Equal(t, 7.0, s.Spread())
	require.Equal(t, "min: 1.000ms, max: 7.000ms, mean: 4.000ms, spread: 7.0x, count: 3", s.String())
}

func TestSummarize(t *testing.T) {
	s := &Series{}
	s.Append(Row{Size: 100, AVLInsertMs: 2, LinearInsertMs: 0.5, SortMs: 1})
	s.Append(Row{Size: 1000, AVLInsertMs: 6, LinearInsertMs: 1.5, SortMs: 3})

	sum := Summarize(s)
	require.Equal(t, int64(2), sum.AVLInsert.Count)
	require.InDelta(t, 4.0, sum.AVLInsert.Mean, 1e-9)
	require.Equal(t, 1.5, sum.LinearInsert.Max)
	require.Equal(t, 1.0, sum.Sort.Min)

	empty := Summarize(&Series{})
	require.Zero(t, empty.Sort.Count)
	require.Zero(t, empty.Sort.Spread())
}
