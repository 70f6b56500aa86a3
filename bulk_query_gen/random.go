package bulk_query_gen

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
)

const (
	DefaultMaxDepth = 3
	DefaultMaxLimit = 10
)

// RandomGenerator builds syntactically valid queries with values drawn from
// a generation profile. The queries are not meant to select anything in
// particular; they load the engine's parser and evaluator.
type RandomGenerator struct {
	MaxDepth int
	MaxLimit int

	rnd     *rand.Rand
	profile common.Profile
}

// NewRandomGenerator rejects profiles that fail Validate, since values are
// drawn straight from their ranges.
func NewRandomGenerator(rnd *rand.Rand, profile common.Profile) (*RandomGenerator, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	g := &RandomGenerator{
		MaxDepth: DefaultMaxDepth,
		MaxLimit: DefaultMaxLimit,
		rnd:      rnd,
		profile:  profile,
	}
	return g, nil
}

func (g *RandomGenerator) Dispatch(int) Query {
	limit := 1
	if g.MaxLimit > 1 {
		limit += g.rnd.Intn(g.MaxLimit)
	}
	return Query{
		HumanLabel: "random",
		Limit:      limit,
		Order:      RandOrder(g.rnd),
		Expr:       g.RandExpr(g.MaxDepth).String(),
	}
}

// RandExpr returns an expression at most depth connectives deep.
func (g *RandomGenerator) RandExpr(depth int) Expr {
	if depth <= 0 || g.rnd.Float64() < 0.3 {
		return g.randPredicate()
	}
	switch g.rnd.Intn(5) {
	case 0:
		return &Not{X: g.RandExpr(depth - 1)}
	case 1, 2:
		return &Binary{Op: And, L: g.RandExpr(depth - 1), R: g.RandExpr(depth - 1)}
	default:
		return &Binary{Op: Or, L: g.RandExpr(depth - 1), R: g.RandExpr(depth - 1)}
	}
}

func (g *RandomGenerator) randPredicate() *Predicate {
	field := Fields[g.rnd.Intn(len(Fields))]
	return &Predicate{
		Field: field,
		Op:    ops[g.rnd.Intn(len(ops))],
		Value: g.randValue(field),
	}
}

func (g *RandomGenerator) between(low, high int64) int64 {
	if high <= low {
		return low
	}
	return low + g.rnd.Int63n(high-low+1)
}

func (g *RandomGenerator) randValue(field Field) string {
	p := &g.profile
	switch field {
	case FieldOrigin, FieldDestination:
		return common.RandChoice(g.rnd, p.Airports)
	case FieldPrice:
		x := p.PriceMin + g.rnd.Float64()*(p.PriceMax-p.PriceMin)
		return strconv.FormatFloat(common.Round(x, 2), 'f', 2, 64)
	case FieldSeats:
		return strconv.FormatInt(g.between(int64(p.SeatsMin), int64(p.SeatsMax)), 10)
	case FieldDeparture, FieldArrival:
		span := int64(p.DepartureEnd.Sub(p.DepartureStart) / time.Second)
		t := p.DepartureStart.Add(time.Duration(g.between(0, span)) * time.Second)
		if field == FieldArrival {
			t = t.Add(p.DurationMin)
		}
		return common.FormatTime(t)
	case FieldDuration:
		// the engine compares durations in seconds
		return strconv.FormatInt(g.between(int64(p.DurationMin/time.Second), int64(p.DurationMax/time.Second)), 10)
	case FieldStops:
		return strconv.FormatInt(g.between(0, common.MaxStops), 10)
	}
	panic("unreachable")
}
