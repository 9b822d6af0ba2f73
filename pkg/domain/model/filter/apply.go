package filter

import (
	"strings"

	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

// FilterVariables is what a view's filter builder receives when the user
// applies the filter form
type FilterVariables struct {
	// Applied maps a field name to the values entered for it
	Applied map[string][]string

	// Default is a filter that is always part of the listing query
	Default string

	Schema *Schema
}

// Apply builds the search filter for the applied values, using the view's
// OnApply when it has one
func (s *Schema) Apply(applied map[string][]string, defaultFilter string) string {
	vars := FilterVariables{
		Applied: applied,
		Default: defaultFilter,
		Schema:  s,
	}
	if s.OnApply != nil {
		return s.OnApply(vars)
	}
	return BuildFilter(vars)
}

// BuildFilter emits one clause per field that has values, in field order,
// all joined by "and". A field name ending in "$" targets the same attribute
// as the name without it, which lets a view carry a min/max pair.
func BuildFilter(vars FilterVariables) string {
	b := NewSearchBuilder()

	for _, field := range vars.Schema.Fields {
		values := nonEmpty(vars.Applied[field.Name])
		if len(values) == 0 {
			continue
		}

		if !b.IsEmpty() {
			b.And()
		}
		key := strings.TrimSuffix(field.Name, "$")
		b.In(field.Operator.OrDefault(), key, values, quoted(field))
	}

	if vars.Default == "" {
		return b.Build()
	}
	if b.IsEmpty() {
		return vars.Default
	}
	return NewSearchBuilder().
		Group(func(g *SearchBuilder) { g.Raw(vars.Default) }).
		And().
		Raw(b.Build()).
		Build()
}

func quoted(field Field) bool {
	if field.RemoveQuoteMark {
		return false
	}
	switch field.Type {
	case types.FieldTypeNumber, types.FieldTypeDate:
		return false
	default:
		return true
	}
}

func nonEmpty(values []string) []string {
	var result []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			result = append(result, v)
		}
	}
	return result
}
