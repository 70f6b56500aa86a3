package bulk_query_gen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Query is one line of the engine's query section:
//
// <limit> <order> <expression>
type Query struct {
	// HumanLabel names the kind of query, for stats and debugging.
	HumanLabel string
	Limit      int
	Order      string
	Expr       string
}

func (q Query) String() string {
	return strconv.Itoa(q.Limit) + " " + q.Order + " " + q.Expr
}

// ParseQuery splits a query line and checks each part. The expression is
// kept verbatim (minus leading whitespace) in Expr.
func ParseQuery(line string) (Query, error) {
	var q Query
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	limit, rest := nextToken(rest)
	order, rest := nextToken(rest)
	if limit == "" || order == "" {
		return q, errors.Errorf("query %q: want <limit> <order> <expression>", line)
	}
	n, err := strconv.Atoi(limit)
	if err != nil {
		return q, errors.Wrapf(err, "query %q: limit", line)
	}
	if n <= 0 {
		return q, errors.Errorf("query %q: limit must be positive, got %d", line, n)
	}
	if err := ValidateOrder(order); err != nil {
		return q, errors.Wrapf(err, "query %q", line)
	}
	q.Limit = n
	q.Order = order
	q.Expr = strings.TrimRightFunc(rest, unicode.IsSpace)
	if _, err := ParseExpr(q.Expr); err != nil {
		return q, errors.Wrapf(err, "query %q", line)
	}
	return q, nil
}

func nextToken(s string) (tok, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
