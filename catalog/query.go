package catalog

import (
	"strconv"
	"strings"
)

// SortOrder is the direction of a sort clause.
type SortOrder string

// Sort directions.
const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// QueryBuilder assembles an IGDB query-language body.
//
// Clauses are emitted in the order fields, where, sort, limit, each terminated
// by a semicolon. Unset clauses are omitted.
type QueryBuilder struct {
	fields []string
	where  string
	sort   string
	limit  int
}

// NewQuery returns an empty QueryBuilder.
func NewQuery() *QueryBuilder {
	return &QueryBuilder{}
}

// Fields appends to the projection. Nested fields use dot notation, e.g. "cover.image_id".
func (q *QueryBuilder) Fields(fields ...string) *QueryBuilder {
	q.fields = append(q.fields, fields...)
	return q
}

// Where sets the filter expression. It is emitted verbatim.
// String literals inside it must be built with Quote.
func (q *QueryBuilder) Where(expr string) *QueryBuilder {
	q.where = expr
	return q
}

// Sort sets the sort field and direction.
func (q *QueryBuilder) Sort(field string, order SortOrder) *QueryBuilder {
	q.sort = field + " " + string(order)
	return q
}

// Limit caps the number of returned records. Zero or negative omits the clause.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

// String renders the query body.
func (q *QueryBuilder) String() string {
	var b strings.Builder

	if len(q.fields) > 0 {
		b.WriteString("fields ")
		b.WriteString(strings.Join(q.fields, ","))
		b.WriteString(";")
	}
	if q.where != "" {
		writeSep(&b)
		b.WriteString("where ")
		b.WriteString(q.where)
		b.WriteString(";")
	}
	if q.sort != "" {
		writeSep(&b)
		b.WriteString("sort ")
		b.WriteString(q.sort)
		b.WriteString(";")
	}
	if q.limit > 0 {
		writeSep(&b)
		b.WriteString("limit ")
		b.WriteString(strconv.Itoa(q.limit))
		b.WriteString(";")
	}

	return b.String()
}

func writeSep(b *strings.Builder) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
}

// Quote renders s as a double-quoted IGDB string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n', '\r', '\t':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
