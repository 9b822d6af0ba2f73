package filter

import (
	"net/url"
	"strings"

	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

// SearchBuilder composes the OData style filter expression understood by the
// REST backend, e.g. `priority eq '3' and contains(name, 'login')`.
// Keys may be relation paths such as "caseToCaseResult/priority".
type SearchBuilder struct {
	parts []string
}

// NewSearchBuilder returns an empty builder
func NewSearchBuilder() *SearchBuilder {
	return &SearchBuilder{}
}

// Eq is a shorthand for a single quoted equality clause
func Eq(key, value string) string {
	return NewSearchBuilder().Eq(key, value).Build()
}

// Contains is a shorthand for a single contains clause
func Contains(key, value string) string {
	return NewSearchBuilder().Contains(key, value).Build()
}

// QueryValue prepares a context value for a quoted filter literal that is
// embedded in a URL query: quotes are doubled, then the result is query
// escaped so the value cannot end its parameter or add another one.
func QueryValue(value string) string {
	return url.QueryEscape(strings.ReplaceAll(value, "'", "''"))
}

// EqParam is Eq for a clause placed in a resource path
func EqParam(key, value string) string {
	return key + " eq '" + QueryValue(value) + "'"
}

func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func clause(op types.Operator, key, value string, quoted bool) string {
	v := value
	if quoted {
		v = quote(value)
	}
	if op == types.OperatorContains {
		return "contains(" + key + ", " + v + ")"
	}
	return key + " " + op.OrDefault().String() + " " + v
}

// Compare appends `key op value`; quoted wraps the value in single quotes
func (b *SearchBuilder) Compare(op types.Operator, key, value string, quoted bool) *SearchBuilder {
	b.parts = append(b.parts, clause(op, key, value, quoted))
	return b
}

// Eq appends a quoted equality clause
func (b *SearchBuilder) Eq(key, value string) *SearchBuilder {
	return b.Compare(types.OperatorEq, key, value, true)
}

// Ne appends a quoted inequality clause
func (b *SearchBuilder) Ne(key, value string) *SearchBuilder {
	return b.Compare(types.OperatorNe, key, value, true)
}

// Contains appends a contains(key, 'value') clause
func (b *SearchBuilder) Contains(key, value string) *SearchBuilder {
	return b.Compare(types.OperatorContains, key, value, true)
}

// Gt appends an unquoted greater-than clause
func (b *SearchBuilder) Gt(key, value string) *SearchBuilder {
	return b.Compare(types.OperatorGt, key, value, false)
}

// Ge appends an unquoted greater-or-equal clause
func (b *SearchBuilder) Ge(key, value string) *SearchBuilder {
	return b.Compare(types.OperatorGe, key, value, false)
}

// Lt appends an unquoted less-than clause
func (b *SearchBuilder) Lt(key, value string) *SearchBuilder {
	return b.Compare(types.OperatorLt, key, value, false)
}

// Le appends an unquoted less-or-equal clause
func (b *SearchBuilder) Le(key, value string) *SearchBuilder {
	return b.Compare(types.OperatorLe, key, value, false)
}

// In appends one clause per value joined by "or". More than one value is
// wrapped in parentheses so the group composes with "and".
func (b *SearchBuilder) In(op types.Operator, key string, values []string, quoted bool) *SearchBuilder {
	switch len(values) {
	case 0:
		return b
	case 1:
		return b.Compare(op, key, values[0], quoted)
	}

	clauses := make([]string, len(values))
	for i, v := range values {
		clauses[i] = clause(op, key, v, quoted)
	}
	b.parts = append(b.parts, "("+strings.Join(clauses, " or ")+")")
	return b
}

// And appends the "and" conjunction
func (b *SearchBuilder) And() *SearchBuilder {
	b.parts = append(b.parts, "and")
	return b
}

// Or appends the "or" conjunction
func (b *SearchBuilder) Or() *SearchBuilder {
	b.parts = append(b.parts, "or")
	return b
}

// Group appends the expression built by fn inside parentheses. Nothing is
// appended when fn builds nothing.
func (b *SearchBuilder) Group(fn func(g *SearchBuilder)) *SearchBuilder {
	g := NewSearchBuilder()
	fn(g)
	if !g.IsEmpty() {
		b.parts = append(b.parts, "("+g.Build()+")")
	}
	return b
}

// Raw appends an already built expression
func (b *SearchBuilder) Raw(expr string) *SearchBuilder {
	b.parts = append(b.parts, expr)
	return b
}

// IsEmpty reports whether nothing was appended yet
func (b *SearchBuilder) IsEmpty() bool {
	return len(b.parts) == 0
}

// Build returns the expression
func (b *SearchBuilder) Build() string {
	return strings.Join(b.parts, " ")
}
