package bulk_query_gen

import (
	"math/rand"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/pkg/errors"
)

const (
	ModeFixture = "fixture"
	ModeRandom  = "random"
)

var ModeChoices = []string{ModeFixture, ModeRandom}

// QueryGenerator describes a generator of queries, typically according to a
// use case.
type QueryGenerator interface {
	Dispatch(int) Query
}

type QueryGeneratorMaker func(rnd *rand.Rand, profile common.Profile) (QueryGenerator, error)

var generatorMakers = map[string]QueryGeneratorMaker{
	ModeFixture: func(*rand.Rand, common.Profile) (QueryGenerator, error) { return FixtureGenerator{}, nil },
	ModeRandom: func(rnd *rand.Rand, profile common.Profile) (QueryGenerator, error) {
		g, err := NewRandomGenerator(rnd, profile)
		if err != nil {
			return nil, err
		}
		return g, nil
	},
}

// NewGenerator returns the generator for mode. The fixture mode ignores rnd
// and profile.
func NewGenerator(mode string, rnd *rand.Rand, profile common.Profile) (QueryGenerator, error) {
	maker, ok := generatorMakers[mode]
	if !ok {
		return nil, errors.Errorf("unknown query mode %q (choices: %v)", mode, ModeChoices)
	}
	return maker(rnd, profile)
}

// Workload dispatches n queries and returns their lines.
func Workload(g QueryGenerator, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = g.Dispatch(i).String()
	}
	return out
}
