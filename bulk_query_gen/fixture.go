package bulk_query_gen

// fixtures exercise each grammar feature at least once. They are kept
// byte-for-byte, odd spacing included, because golden outputs were captured
// against exactly these lines.
var fixtures = []Query{
	{HumanLabel: "or", Limit: 4, Order: "pds", Expr: "(((prc>=600)||(dur<=5000)))"},
	{HumanLabel: "not", Limit: 2, Order: "dps", Expr: "(((! (org==BOS))&&(sto==0)))"},
	{HumanLabel: "or-not-and", Limit: 3, Order: "pds", Expr: "(((prc<=800)||( ! (dst==JFK) ))&&(sea>=10))"},
}

// FixtureGenerator round-robins through the fixed regression queries.
// It uses no randomness.
type FixtureGenerator struct{}

func (FixtureGenerator) Dispatch(i int) Query {
	return fixtures[i%len(fixtures)]
}

// Fixtures returns one line per fixture query, in order.
func Fixtures() []string {
	return Workload(FixtureGenerator{}, len(fixtures))
}
