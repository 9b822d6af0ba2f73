// Package schema holds the Testray field catalog and view registry.
package schema

import (
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/secmon-lab/filterschema/pkg/i18n"
	"github.com/tidwall/gjson"
)

// Catalog keys
const (
	Assignee        types.CatalogKey = "assignee"
	CaseType        types.CatalogKey = "caseType"
	Component       types.CatalogKey = "component"
	Description     types.CatalogKey = "description"
	DueStatus       types.CatalogKey = "dueStatus"
	Errors          types.CatalogKey = "errors"
	HasRequirements types.CatalogKey = "hasRequirements"
	Issues          types.CatalogKey = "issues"
	Priority        types.CatalogKey = "priority"
	ProductVersion  types.CatalogKey = "productVersion"
	Project         types.CatalogKey = "project"
	Routine         types.CatalogKey = "routine"
	Run             types.CatalogKey = "run"
	Steps           types.CatalogKey = "steps"
	Team            types.CatalogKey = "team"
)

// projectScoped returns a resource for path whose filter is restricted to the
// project in the context
func projectScoped(path string) filter.Resource {
	return filter.Dynamic(func(rc filter.ResourceContext) string {
		return path + "&filter=" + filter.EqParam("projectId", rc[filter.ContextProjectID])
	}, filter.ContextProjectID)
}

func userAccountOption(item gjson.Result) filter.Option {
	return filter.Option{
		Label: item.Get("givenName").String() + " " + item.Get("additionalName").String(),
		Value: item.Get("givenName").String(),
	}
}

// CatalogEntries returns the base field descriptors shared by the views
func CatalogEntries(tr i18n.Translator) []filter.CatalogEntry {
	return []filter.CatalogEntry{
		filter.Entry(Assignee, filter.Field{
			Label:     tr.Translate("assignee"),
			Name:      "assignedUsers",
			Type:      types.FieldTypeSelect,
			Resource:  filter.Literal("/user-accounts"),
			Transform: userAccountOption,
		}),
		filter.Entry(CaseType, filter.Field{
			Label:    tr.Translate("case-type"),
			Name:     "caseType",
			Type:     types.FieldTypeMultiSelect,
			Resource: filter.Literal("/casetypes?fields=id,name&sort=name:asc&pageSize=100"),
		}),
		filter.Entry(Component, filter.Field{
			Label:    tr.Translate("component"),
			Name:     "componentId",
			Type:     types.FieldTypeSelect,
			Resource: projectScoped("/components?fields=id,name&sort=name:asc&pageSize=200"),
		}),
		filter.Entry(Description, filter.Field{
			Label: tr.Translate("description"),
			Name:  "description",
			Type:  types.FieldTypeTextarea,
		}),
		filter.Entry(DueStatus, filter.Field{
			Label: tr.Translate("status"),
			Name:  "dueStatus",
			Type:  types.FieldTypeCheckbox,
		}),
		filter.Entry(Errors, filter.Field{
			Label: tr.Translate("errors"),
			Name:  "errors",
			Type:  types.FieldTypeTextarea,
		}),
		filter.Entry(HasRequirements, filter.Field{
			Label:    tr.Translate("has-requirements"),
			Name:     "caseToRequirementsCases",
			Type:     types.FieldTypeSelect,
			Options:  filter.Values("true", "false"),
			Disabled: true,
		}),
		filter.Entry(Issues, filter.Field{
			Label: tr.Translate("issues"),
			Name:  "issues",
			Type:  types.FieldTypeTextarea,
		}),
		filter.Entry(Priority, filter.Field{
			Label:   tr.Translate("priority"),
			Name:    "priority",
			Type:    types.FieldTypeMultiSelect,
			Options: filter.Values("1", "2", "3", "4", "5"),
		}),
		filter.Entry(ProductVersion, filter.Field{
			Label:    tr.Translate("product-version"),
			Name:     "productVersion",
			Type:     types.FieldTypeSelect,
			Resource: projectScoped("/productversions?fields=id,name&sort=name:asc&pageSize=100"),
		}),
		filter.Entry(Project, filter.Field{
			Label:    tr.Translate("project"),
			Name:     "projectId",
			Type:     types.FieldTypeSelect,
			Resource: filter.Literal("/projects?fields=id,name"),
		}),
		filter.Entry(Routine, filter.Field{
			Label:    tr.Translate("routines"),
			Name:     "routines",
			Type:     types.FieldTypeSelect,
			Resource: projectScoped("/routines?fields=id,name&pageSize=100"),
		}),
		filter.Entry(Run, filter.Field{
			Label:    tr.Translate("run"),
			Name:     "run",
			Type:     types.FieldTypeSelect,
			Resource: filter.Literal("/runs?fields=id,name"),
		}),
		filter.Entry(Steps, filter.Field{
			Label: tr.Translate("steps"),
			Name:  "steps",
			Type:  types.FieldTypeTextarea,
		}),
		filter.Entry(Team, filter.Field{
			Label:    tr.Translate("team"),
			Name:     "teamId",
			Type:     types.FieldTypeSelect,
			Options:  []filter.Option{{Label: "Solutions", Value: "solutions"}},
			Resource: projectScoped("/teams?fields=id,name&sort=name:asc&pageSize=100"),
		}),
	}
}

// NewCatalog builds the Testray field catalog
func NewCatalog(tr i18n.Translator) (*filter.Catalog, error) {
	return filter.NewCatalog(CatalogEntries(tr)...)
}
