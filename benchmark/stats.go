package benchmark

import (
	"fmt"
	"math"
)

// StatGroup tracks the range and running mean of one timing column.
type StatGroup struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int64
}

// Push adds one timing in milliseconds.
func (s *StatGroup) Push(ms float64) {
	s.Count++
	if s.Count == 1 {
		s.Min, s.Max, s.Mean = ms, ms, ms
		return
	}
	s.Min = math.Min(s.Min, ms)
	s.Max = math.Max(s.Max, ms)
	s.Mean += (ms - s.Mean) / float64(s.Count)
}

// Spread is Max over Min, how much slower the worst row was than the best.
// It is 0 when nothing was pushed or Min is 0.
func (s *StatGroup) Spread() float64 {
	if s.Count == 0 || s.Min == 0 {
		return 0
	}
	return s.Max / s.Min
}

func (s *StatGroup) String() string {
	return fmt.Sprintf("min: %.3fms, max: %.3fms, mean: %.3fms, spread: %.1fx, count: %d", s.Min, s.Max, s.Mean, s.Spread(), s.Count)
}

// Summary holds one StatGroup per timing column.
type Summary struct {
	AVLInsert    StatGroup
	LinearInsert StatGroup
	Sort         StatGroup
}

// Summarize pushes every row of s into its column's StatGroup.
func Summarize(s *Series) *Summary {
	sum := &Summary{}
	for i := 0; i < s.Len(); i++ {
		sum.AVLInsert.Push(s.AVLInsert[i])
		sum.LinearInsert.Push(s.LinearInsert[i])
		sum.Sort.Push(s.Sort[i])
	}
	return sum
}
