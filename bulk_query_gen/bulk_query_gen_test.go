package bulk_query_gen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/flightbench/flightbench/bulk_data_gen/common"
	"github.com/stretchr/testify/require"
)

var queryLineRE = regexp.MustCompile(`^[0-9]+ [a-z]+ \(`)

func newGenerator(t *testing.T, mode string, seed int64, p common.Profile) QueryGenerator {
	g, err := NewGenerator(mode, common.NewRand(seed), p)
	require.NoError(t, err)
	return g
}

func TestFixturesDeterministic(t *testing.T) {
	first := strings.Join(Fixtures(), "\n")
	second := strings.Join(Workload(newGenerator(t, ModeFixture, 1, common.Profile{}), 3), "\n")
	require.Equal(t, first, second)
	require.Equal(t, "4 pds (((prc>=600)||(dur<=5000)))\n"+
		"2 dps (((! (org==BOS))&&(sto==0)))\n"+
		"3 pds (((prc<=800)||( ! (dst==JFK) ))&&(sea>=10))", first)
}

func TestFixturesCoverGrammar(t *testing.T) {
	var sawOr, sawNot, sawAll bool
	for _, line := range Fixtures() {
		require.Regexp(t, queryLineRE, line)
		q, err := ParseQuery(line)
		require.NoError(t, err, line)
		e, err := ParseExpr(q.Expr)
		require.NoError(t, err)
		var or, not, and bool
		Walk(e, func(n Expr) {
			switch n := n.(type) {
			case *Not:
				not = true
			case *Binary:
				or = or || n.Op == Or
				and = and || n.Op == And
			}
		})
		sawOr = sawOr || or
		sawNot = sawNot || not
		sawAll = sawAll || (or && not && and)
	}
	require.True(t, sawOr)
	require.True(t, sawNot)
	require.True(t, sawAll)
}

func TestFixtureDispatchCycles(t *testing.T) {
	g := FixtureGenerator{}
	require.Equal(t, g.Dispatch(0), g.Dispatch(3))
	require.Equal(t, "or-not-and", g.Dispatch(5).HumanLabel)
}

func TestParseExprPrecedence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"prc>=600", "(prc>=600)"},
		{"a", ""},
		{"(org==BOS)||(dst!=JFK)&&(sto<2)", "((org==BOS)||((dst!=JFK)&&(sto<2)))"},
		{"!(org==BOS)&&(sto==0)", "((!(org==BOS))&&(sto==0))"},
		{"! ! sea > 3", "(!(!(sea>3)))"},
		{"( ( dur <= 5000 ) )", "(dur<=5000)"},
		{"(dep>=2025-01-01T00:00:00)&&(arr<2025-02-01T10:00:00)", "((dep>=2025-01-01T00:00:00)&&(arr<2025-02-01T10:00:00))"},
		{"( dep>=2025-01-01T00:00:00 ) && arr<2025-02-01T10:00:00", "((dep>=2025-01-01T00:00:00)&&(arr<2025-02-01T10:00:00))"},
		{"prc<=800.50 || sea>=10 || sto==1", "(((prc<=800.50)||(sea>=10))||(sto==1))"},
	}
	for _, c := range cases {
		e, err := ParseExpr(c.in)
		if c.want == "" {
			require.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, e.String(), c.in)
	}
}

func TestParseExprErrors(t *testing.T) {
	bad := []string{
		"",
		"(prc>=600",
		"prc>=600)",
		"prc=600",
		"prc>=",
		"prc>=abc",
		"prc>=1.2.3",
		"foo==1",
		"org==123",
		"dep>=2025-01-01",
		// a timestamp runs to the next space or ')', as the engine scans it
		"dep>=2025-01-01T00:00:00&&arr<2025-02-01T10:00:00",
		"(prc>=600)||",
		"(prc>=600) (sto==1)",
	}
	for _, in := range bad {
		_, err := ParseExpr(in)
		require.Error(t, err, in)
		_, ok := err.(*SyntaxError)
		require.True(t, ok, in)
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("  12   sp   ((sto==0))  ")
	require.NoError(t, err)
	require.Equal(t, 12, q.Limit)
	require.Equal(t, "sp", q.Order)
	require.Equal(t, "((sto==0))", q.Expr)

	for _, in := range []string{"", "4", "4 pds", "x pds (sto==0)", "0 pds (sto==0)", "4 pdx (sto==0)", "4 pds (sto==0"} {
		_, err := ParseQuery(in)
		require.Error(t, err, in)
	}
}

func TestValidateOrder(t *testing.T) {
	for _, ok := range []string{"p", "d", "s", "pds", "dps", "sp"} {
		require.NoError(t, ValidateOrder(ok))
	}
	for _, bad := range []string{"", "x", "pp", "pdsp", "P"} {
		require.Error(t, ValidateOrder(bad))
	}
}

func TestRandomWorkloadIsValid(t *testing.T) {
	for _, p := range common.DefaultProfiles() {
		g := newGenerator(t, ModeRandom, 17, p)
		for i, line := range Workload(g, 500) {
			require.Regexp(t, queryLineRE, line)
			q, err := ParseQuery(line)
			require.NoError(t, err, "query %d: %s", i, line)
			require.GreaterOrEqual(t, q.Limit, 1)
			require.LessOrEqual(t, q.Limit, DefaultMaxLimit)
			e, err := ParseExpr(q.Expr)
			require.NoError(t, err)
			// rendering is fully parenthesized, so it survives a round trip
			require.Equal(t, q.Expr, e.String())
		}
	}
}

func TestRandomWorkloadSeeded(t *testing.T) {
	p := common.GrammarProfile()
	a := Workload(newGenerator(t, ModeRandom, 5, p), 50)
	b := Workload(newGenerator(t, ModeRandom, 5, p), 50)
	require.Equal(t, a, b)
}

func TestUnknownMode(t *testing.T) {
	g, err := NewGenerator("bogus", nil, common.Profile{})
	require.Error(t, err)
	require.Nil(t, g)
}

func TestRandomGeneratorRejectsInvalidProfile(t *testing.T) {
	g, err := NewGenerator(ModeRandom, common.NewRand(1), common.Profile{})
	require.Error(t, err)
	require.Nil(t, g)

	p := common.GrammarProfile()
	p.Airports = []string{"ATL"}
	_, err = NewRandomGenerator(common.NewRand(1), p)
	require.Error(t, err)
}
