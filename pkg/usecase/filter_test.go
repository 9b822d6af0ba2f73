package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/schema"
	"github.com/secmon-lab/filterschema/pkg/usecase"
)

const teamsPath = "/teams?fields=id,name&sort=name:asc&pageSize=100&filter=projectId eq '42'"

func TestLoadOptions_Static(t *testing.T) {
	rest := newMockREST()
	uc := newUseCases(t, rest)

	options, err := uc.Filter.LoadOptions(context.Background(), schema.Cases, "priority", nil)
	gt.NoError(t, err).Required()
	gt.Array(t, options).Length(5)
	gt.Value(t, options[0]).Equal(filter.Option{Label: "1", Value: "1"})
	gt.Value(t, rest.total()).Equal(0)
}

func TestLoadOptions_ResourceTakesPrecedence(t *testing.T) {
	rest := newMockREST()
	rest.bodies["/teams"] = `{"items":[{"id":7,"name":"Echo"},{"id":9,"name":"Lima"}]}`
	uc := newUseCases(t, rest)

	options, err := uc.Filter.LoadOptions(context.Background(), schema.BuildComponents, "teamId", project42)
	gt.NoError(t, err).Required()
	gt.Value(t, options).Equal([]filter.Option{
		{Label: "Echo", Value: "7"},
		{Label: "Lima", Value: "9"},
	})
	gt.Value(t, rest.count(teamsPath)).Equal(1)
}

func TestLoadOptions_Errors(t *testing.T) {
	uc := newUseCases(t, newMockREST())
	ctx := context.Background()

	_, err := uc.Filter.LoadOptions(ctx, schema.BuildComponents, "teamId", filter.ResourceContext{})
	gt.Error(t, err).Is(filter.ErrMissingContextKey)

	_, err = uc.Filter.LoadOptions(ctx, "nope", "teamId", project42)
	gt.Error(t, err).Is(filter.ErrViewNotFound)

	_, err = uc.Filter.LoadOptions(ctx, schema.BuildComponents, "nope", project42)
	gt.Error(t, err).Is(filter.ErrFieldNotFound)
}

func TestLoadOptions_NoREST(t *testing.T) {
	uc := newUseCases(t, nil)
	_, err := uc.Filter.LoadOptions(context.Background(), schema.BuildComponents, "teamId", project42)
	gt.Error(t, err).Is(usecase.ErrNoRESTClient)
}

func TestLoadOptions_MalformedResponse(t *testing.T) {
	rest := newMockREST()
	rest.bodies["/runs"] = `<html>oops</html>`
	uc := newUseCases(t, rest)

	_, err := uc.Filter.LoadOptions(context.Background(), schema.BuildComponents, "run", nil)
	gt.Error(t, err).Is(filter.ErrMalformedResponse)
}

func TestLoadOptions_MissingItems(t *testing.T) {
	rest := newMockREST()
	rest.bodies["/runs"] = `{"totalCount":0}`
	uc := newUseCases(t, rest)

	options, err := uc.Filter.LoadOptions(context.Background(), schema.BuildComponents, "run", nil)
	gt.NoError(t, err).Required()
	gt.Array(t, options).Length(0)
}

func TestLoadOptions_Transform(t *testing.T) {
	rest := newMockREST()
	rest.bodies["/user-accounts"] = `{"items":[{"givenName":"Ada","additionalName":"Lovelace"}]}`
	uc := newUseCases(t, rest)

	options, err := uc.Filter.LoadOptions(context.Background(), schema.Testflow, "assignedUsers", nil)
	gt.NoError(t, err).Required()
	gt.Value(t, options).Equal([]filter.Option{{Label: "Ada Lovelace", Value: "Ada"}})
}

func TestLoadOptions_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses body within TTL", func(t *testing.T) {
		rest := newMockREST()
		uc := newUseCases(t, rest)
		for range 3 {
			_, err := uc.Filter.LoadOptions(ctx, schema.BuildComponents, "teamId", project42)
			gt.NoError(t, err).Required()
		}
		gt.Value(t, rest.count(teamsPath)).Equal(1)
	})

	t.Run("different context is a different entry", func(t *testing.T) {
		rest := newMockREST()
		uc := newUseCases(t, rest)
		_, err := uc.Filter.LoadOptions(ctx, schema.BuildComponents, "teamId", project42)
		gt.NoError(t, err).Required()
		_, err = uc.Filter.LoadOptions(ctx, schema.BuildComponents, "teamId", filter.ResourceContext{filter.ContextProjectID: "43"})
		gt.NoError(t, err).Required()
		gt.Value(t, rest.total()).Equal(2)
	})

	t.Run("zero TTL disables caching", func(t *testing.T) {
		rest := newMockREST()
		uc := newUseCases(t, rest, usecase.WithCacheTTL(0))
		for range 2 {
			_, err := uc.Filter.LoadOptions(ctx, schema.BuildComponents, "teamId", project42)
			gt.NoError(t, err).Required()
		}
		gt.Value(t, rest.count(teamsPath)).Equal(2)
	})

	t.Run("entries expire", func(t *testing.T) {
		rest := newMockREST()
		uc := newUseCases(t, rest, usecase.WithCacheTTL(time.Nanosecond))
		_, err := uc.Filter.LoadOptions(ctx, schema.BuildComponents, "teamId", project42)
		gt.NoError(t, err).Required()
		time.Sleep(time.Millisecond)
		_, err = uc.Filter.LoadOptions(ctx, schema.BuildComponents, "teamId", project42)
		gt.NoError(t, err).Required()
		gt.Value(t, rest.count(teamsPath)).Equal(2)
	})
}

func TestLoadAllOptions(t *testing.T) {
	rest := newMockREST()
	rest.bodies["/casetypes"] = `{"items":[{"id":1,"name":"Automated Functional Test"}]}`
	rest.fail["/components"] = true
	uc := newUseCases(t, rest, usecase.WithConcurrency(2))

	results, err := uc.Filter.LoadAllOptions(context.Background(), schema.Cases, project42)
	gt.NoError(t, err).Required()

	byField := map[string]usecase.FieldOptions{}
	names := make([]string, len(results))
	for i, r := range results {
		byField[r.Field] = r
		names[i] = r.Field
	}
	gt.Value(t, names).Equal([]string{
		"priority",
		"r_caseTypeToCases_c_caseTypeId",
		"componentToCases/r_teamToComponents_c_teamId",
		"componentId",
		"caseToRequirementsCases",
	})

	gt.Array(t, byField["priority"].Options).Length(5)
	gt.Value(t, byField["r_caseTypeToCases_c_caseTypeId"].Options[0].Label).Equal("Automated Functional Test")
	gt.S(t, byField["componentId"].Error).Contains("backend unavailable")
	gt.Array(t, byField["componentId"].Options).Length(0)
	gt.Value(t, byField["caseToRequirementsCases"].Error).Equal("")
}

func TestLoadAllOptions_MissingContext(t *testing.T) {
	rest := newMockREST()
	uc := newUseCases(t, rest)

	_, err := uc.Filter.LoadAllOptions(context.Background(), schema.Cases, nil)
	gt.Error(t, err).Is(filter.ErrMissingContextKey)
	gt.Value(t, rest.total()).Equal(0)
}

func TestBuildFilter(t *testing.T) {
	uc := newUseCases(t, nil)

	got, err := uc.Filter.BuildFilter(schema.BuildResultsHistory, map[string][]string{
		"dateCreated":  {"2024-01-01"},
		"dateCreated$": {"2024-02-01"},
		"dueStatus":    {"FAILED", "BLOCKED"},
	}, "buildId eq '1'")
	gt.NoError(t, err).Required()
	gt.Value(t, got).Equal("(buildId eq '1') and (dueStatus eq 'FAILED' or dueStatus eq 'BLOCKED') and dateCreated gt 2024-01-01 and dateCreated lt 2024-02-01")

	_, err = uc.Filter.BuildFilter("nope", nil, "")
	gt.Error(t, err).Is(filter.ErrViewNotFound)
}

func TestWarmOptions(t *testing.T) {
	rest := newMockREST()
	uc := newUseCases(t, rest)

	<-uc.Filter.WarmOptions(context.Background())
	warmed := rest.total()
	gt.N(t, warmed).Greater(0)
	gt.Value(t, rest.count("/runs?fields=id,name")).Equal(1)

	for path := range rest.calls {
		gt.S(t, path).NotContains("projectId")
	}

	_, err := uc.Filter.LoadOptions(context.Background(), schema.BuildComponents, "run", nil)
	gt.NoError(t, err).Required()
	gt.Value(t, rest.total()).Equal(warmed)
}

func TestValidateRegistry(t *testing.T) {
	uc := newUseCases(t, nil)

	result := uc.Filter.ValidateRegistry(nil)
	gt.Value(t, result.Views).Equal(16)
	gt.B(t, result.HasIssues()).True()
	for _, issue := range result.Issues {
		gt.Value(t, issue.MissingKeys).Equal([]string{filter.ContextProjectID})
		gt.S(t, issue.Message).Contains("incomplete")
	}

	result = uc.Filter.ValidateRegistry(project42)
	gt.B(t, result.HasIssues()).False()
}
