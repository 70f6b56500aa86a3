package common

import (
	"math"
	"math/rand"
	"time"
)

// Distribution provides an interface to model a statistical distribution.
type Distribution interface {
	Advance()
	Get() float64 // should be idempotent
}

// NewRand returns an unsynchronized random source. A zero seed uses the
// current timestamp.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// UniformDistribution models a continuous uniform distribution over
// [Low, High).
type UniformDistribution struct {
	Low  float64
	High float64

	rnd   *rand.Rand
	value float64
}

func UD(rnd *rand.Rand, low, high float64) *UniformDistribution {
	return &UniformDistribution{Low: low, High: high, rnd: rnd}
}

// Advance advances this distribution. Since a uniform distribution is
// stateless, this is just overwrites the internal cache value.
func (d *UniformDistribution) Advance() {
	x := d.rnd.Float64() // uniform
	x *= d.High - d.Low
	x += d.Low
	d.value = x
}

// Get returns the last computed value for this distribution.
func (d *UniformDistribution) Get() float64 {
	return d.value
}

// DiscreteUniformDistribution draws Low, Low+Step, ..., up to High
// (inclusive) with equal probability.
type DiscreteUniformDistribution struct {
	Low  int64
	High int64
	Step int64

	rnd   *rand.Rand
	value int64
}

func DUD(rnd *rand.Rand, low, high, step int64) *DiscreteUniformDistribution {
	if step <= 0 {
		step = 1
	}
	return &DiscreteUniformDistribution{Low: low, High: high, Step: step, rnd: rnd}
}

func (d *DiscreteUniformDistribution) Advance() {
	n := (d.High-d.Low)/d.Step + 1
	d.value = d.Low + d.rnd.Int63n(n)*d.Step
}

func (d *DiscreteUniformDistribution) Get() float64 {
	return float64(d.value)
}

// GetInt returns the last computed value without a float conversion.
func (d *DiscreteUniformDistribution) GetInt() int64 {
	return d.value
}

// RoundedDistribution rounds the underlying value half away from zero to a
// fixed number of decimal places, then clamps it into [Min, Max].
type RoundedDistribution struct {
	Dist     Distribution
	Decimals int
	Min      float64
	Max      float64

	value float64
}

func RD(dist Distribution, decimals int, min, max float64) *RoundedDistribution {
	return &RoundedDistribution{Dist: dist, Decimals: decimals, Min: min, Max: max}
}

func (d *RoundedDistribution) Advance() {
	d.Dist.Advance()
	d.value = Round(d.Dist.Get(), d.Decimals)
	if d.value > d.Max {
		d.value = d.Max
	}
	if d.value < d.Min {
		d.value = d.Min
	}
}

func (d *RoundedDistribution) Get() float64 {
	return d.value
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func RandChoice(rnd *rand.Rand, choices []string) string {
	idx := rnd.Int63n(int64(len(choices)))
	return choices[idx]
}
