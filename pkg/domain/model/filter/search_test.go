package filter_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

func TestSearchBuilder(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *filter.SearchBuilder) *filter.SearchBuilder
		want  string
	}{
		{
			name:  "eq quotes the value",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder { return b.Eq("projectId", "42") },
			want:  "projectId eq '42'",
		},
		{
			name:  "single quotes are doubled",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder { return b.Eq("name", "it's") },
			want:  "name eq 'it''s'",
		},
		{
			name:  "contains",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder { return b.Contains("runToCaseResult/name", "linux") },
			want:  "contains(runToCaseResult/name, 'linux')",
		},
		{
			name: "comparisons are unquoted",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder {
				return b.Gt("dateCreated", "2022-01-01").And().Lt("dateCreated", "2022-02-01")
			},
			want: "dateCreated gt 2022-01-01 and dateCreated lt 2022-02-01",
		},
		{
			name: "ge le ne",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder {
				return b.Ge("warnings", "1").And().Le("warnings", "5").Or().Ne("status", "OPEN")
			},
			want: "warnings ge 1 and warnings le 5 or status ne 'OPEN'",
		},
		{
			name: "in groups several values",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder {
				return b.In(types.OperatorEq, "priority", []string{"1", "2"}, false)
			},
			want: "(priority eq 1 or priority eq 2)",
		},
		{
			name: "in with one value has no parentheses",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder {
				return b.In(types.OperatorEq, "priority", []string{"1"}, true)
			},
			want: "priority eq '1'",
		},
		{
			name: "in with no values appends nothing",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder {
				return b.In(types.OperatorEq, "priority", nil, true)
			},
			want: "",
		},
		{
			name: "group",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder {
				return b.Eq("a", "1").And().Group(func(g *filter.SearchBuilder) {
					g.Eq("b", "2").Or().Eq("c", "3")
				})
			},
			want: "a eq '1' and (b eq '2' or c eq '3')",
		},
		{
			name: "empty group appends nothing",
			build: func(b *filter.SearchBuilder) *filter.SearchBuilder {
				return b.Eq("a", "1").Group(func(g *filter.SearchBuilder) {})
			},
			want: "a eq '1'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.build(filter.NewSearchBuilder()).Build()).Equal(tt.want)
		})
	}
}

func TestSearchShorthands(t *testing.T) {
	gt.Value(t, filter.Eq("projectId", "7")).Equal("projectId eq '7'")
	gt.Value(t, filter.Contains("name", "x")).Equal("contains(name, 'x')")
	gt.B(t, filter.NewSearchBuilder().IsEmpty()).True()
}

func TestEqParam(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain value is readable", value: "42", want: "projectId eq '42'"},
		{name: "delimiters are escaped", value: "1&pageSize=9", want: "projectId eq '1%26pageSize%3D9'"},
		{name: "quote is doubled before escaping", value: "it's", want: "projectId eq 'it%27%27s'"},
		{name: "percent and plus", value: "5%+1", want: "projectId eq '5%25%2B1'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, filter.EqParam("projectId", tc.value)).Equal(tc.want)
		})
	}
}
