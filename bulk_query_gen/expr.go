package bulk_query_gen

import "strings"

// Field is a three letter field code of the filter grammar.
type Field string

const (
	FieldOrigin      Field = "org"
	FieldDestination Field = "dst"
	FieldPrice       Field = "prc"
	FieldSeats       Field = "sea"
	FieldDeparture   Field = "dep"
	FieldArrival     Field = "arr"
	FieldDuration    Field = "dur"
	FieldStops       Field = "sto"
)

var Fields = []Field{
	FieldOrigin, FieldDestination, FieldPrice, FieldSeats,
	FieldDeparture, FieldArrival, FieldDuration, FieldStops,
}

// ValueKind tells what a predicate on the field compares against.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindString
	KindNumber
	KindTime
)

func (f Field) Kind() ValueKind {
	switch f {
	case FieldOrigin, FieldDestination:
		return KindString
	case FieldDeparture, FieldArrival:
		return KindTime
	case FieldPrice, FieldSeats, FieldDuration, FieldStops:
		return KindNumber
	}
	return KindInvalid
}

// Op is a comparison operator.
type Op string

const (
	OpEQ Op = "=="
	OpNE Op = "!="
	OpLT Op = "<"
	OpLE Op = "<="
	OpGT Op = ">"
	OpGE Op = ">="
)

// ops is ordered so that two-character operators match before their
// one-character prefixes.
var ops = []Op{OpEQ, OpNE, OpLE, OpGE, OpLT, OpGT}

// Connective joins two expressions.
type Connective string

const (
	And Connective = "&&"
	Or  Connective = "||"
)

// Expr is a node of a filter expression. String renders it fully
// parenthesized with no spaces.
type Expr interface {
	String() string
	appendTo(*strings.Builder)
}

// Predicate compares one field against a literal value. Value is kept as
// the literal token.
type Predicate struct {
	Field Field
	Op    Op
	Value string
}

type Not struct {
	X Expr
}

type Binary struct {
	Op   Connective
	L, R Expr
}

func (p *Predicate) appendTo(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(string(p.Field))
	b.WriteString(string(p.Op))
	b.WriteString(p.Value)
	b.WriteByte(')')
}

func (n *Not) appendTo(b *strings.Builder) {
	b.WriteString("(!")
	n.X.appendTo(b)
	b.WriteByte(')')
}

func (e *Binary) appendTo(b *strings.Builder) {
	b.WriteByte('(')
	e.L.appendTo(b)
	b.WriteString(string(e.Op))
	e.R.appendTo(b)
	b.WriteByte(')')
}

func render(e Expr) string {
	var b strings.Builder
	e.appendTo(&b)
	return b.String()
}

func (p *Predicate) String() string { return render(p) }
func (n *Not) String() string       { return render(n) }
func (e *Binary) String() string    { return render(e) }

// Walk calls fn for e and every node below it, parents first.
func Walk(e Expr, fn func(Expr)) {
	fn(e)
	switch e := e.(type) {
	case *Not:
		Walk(e.X, fn)
	case *Binary:
		Walk(e.L, fn)
		Walk(e.R, fn)
	}
}
