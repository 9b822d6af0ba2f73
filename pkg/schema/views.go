package schema

import (
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/secmon-lab/filterschema/pkg/i18n"
)

// View keys
const (
	BuildCaseTypes      types.ViewKey = "buildCaseTypes"
	BuildComponents     types.ViewKey = "buildComponents"
	BuildResults        types.ViewKey = "buildResults"
	BuildResultsHistory types.ViewKey = "buildResultsHistory"
	BuildRuns           types.ViewKey = "buildRuns"
	BuildTeams          types.ViewKey = "buildTeams"
	BuildTemplates      types.ViewKey = "buildTemplates"
	Builds              types.ViewKey = "builds"
	Cases               types.ViewKey = "cases"
	RequirementCases    types.ViewKey = "requirementCases"
	Requirements        types.ViewKey = "requirements"
	Routines            types.ViewKey = "routines"
	Subtasks            types.ViewKey = "subtasks"
	Suites              types.ViewKey = "suites"
	Teams               types.ViewKey = "teams"
	Testflow            types.ViewKey = "testflow"
)

func caseResultStatusOptions() []filter.Option {
	return []filter.Option{
		{Label: "Blocked", Value: types.CaseResultStatusBlocked.String()},
		{Label: "Failed", Value: types.CaseResultStatusFailed.String()},
		{Label: "In Progress", Value: types.CaseResultStatusInProgress.String()},
		{Label: "Passed", Value: types.CaseResultStatusPassed.String()},
		{Label: "Test Fix", Value: types.CaseResultStatusTestFix.String()},
		{Label: "Untested", Value: types.CaseResultStatusUntested.String()},
	}
}

func taskStatusOptions() []filter.Option {
	return []filter.Option{
		{Label: "Abandoned", Value: types.TaskStatusAbandoned.String()},
		{Label: "Complete", Value: types.TaskStatusComplete.String()},
		{Label: "In Analysis", Value: types.TaskStatusInAnalysis.String()},
	}
}

func text(label, name string, op types.Operator) filter.FieldSource {
	return filter.Inline(filter.Field{
		Label:    label,
		Name:     name,
		Type:     types.FieldTypeText,
		Operator: op,
	})
}

func fieldType(t types.FieldType) *types.FieldType {
	return &t
}

// Views returns the authored definitions of every Testray view
func Views(tr i18n.Translator) []filter.ViewDef {
	contains := types.OperatorContains

	return []filter.ViewDef{
		filter.View(BuildCaseTypes,
			filter.Base(Priority),
			filter.Base(Team),
		),
		filter.View(BuildComponents,
			filter.Base(Priority),
			filter.Override(CaseType, filter.Patch{Disabled: filter.Ptr(false)}),
			filter.Base(Team),
			filter.Base(Run),
		),
		filter.View(BuildResults,
			filter.Override(CaseType, filter.Patch{
				Name: filter.Ptr("caseToCaseResult/r_caseTypeToCases_c_caseTypeId"),
				Type: fieldType(types.FieldTypeMultiSelect),
			}),
			filter.Override(Priority, filter.Patch{
				Name:            filter.Ptr("caseToCaseResult/priority"),
				RemoveQuoteMark: filter.Ptr(true),
				Type:            fieldType(types.FieldTypeSelect),
			}),
			filter.Override(Team, filter.Patch{
				Name: filter.Ptr("componentToCaseResult/r_teamToComponents_c_teamId"),
				Type: fieldType(types.FieldTypeMultiSelect),
			}),
			filter.Override(Component, filter.Patch{
				Name: filter.Ptr("componentToCaseResult/id"),
				Type: fieldType(types.FieldTypeMultiSelect),
			}),
			text(tr.Translate("environment"), "runToCaseResult/name", contains),
			filter.Override(Run, filter.Patch{Name: filter.Ptr("runToCaseResult/id")}),
			text(tr.Translate("case-name"), "caseToCaseResult/name", contains),
			filter.Override(Assignee, filter.Patch{Name: filter.Ptr("userId")}),
			filter.Override(DueStatus, filter.Patch{Options: caseResultStatusOptions()}),
			filter.Override(Issues, filter.Patch{Operator: &contains}),
			filter.Override(Errors, filter.Patch{Operator: &contains}),
			filter.Inline(filter.Field{
				Label:    tr.Translate("comments"),
				Name:     "comment",
				Type:     types.FieldTypeTextarea,
				Operator: contains,
			}),
		),
		filter.View(BuildResultsHistory,
			filter.Override(ProductVersion, filter.Patch{
				Label: filter.Ptr(tr.Translate("product-version-name")),
				Name:  filter.Ptr("buildToCaseResult/r_productVersionToBuilds_c_productVersionId"),
				Type:  fieldType(types.FieldTypeMultiSelect),
			}),
			text(tr.Translate("environment"), "runToCaseResult/name", contains),
			filter.Override(Routine, filter.Patch{Name: filter.Ptr("buildToCaseResult/routineId")}),
			filter.Override(Assignee, filter.Patch{Name: filter.Ptr("userId")}),
			filter.Override(DueStatus, filter.Patch{Options: caseResultStatusOptions()}),
			filter.Override(Issues, filter.Patch{Operator: &contains}),
			filter.Override(Errors, filter.Patch{Operator: &contains}),
			filter.Inline(filter.Field{
				Label: tr.Translate("case-result-warning"),
				Name:  "warnings",
				Type:  types.FieldTypeNumber,
			}),
			filter.Inline(filter.Field{
				Label:    tr.Sub("x-create-date", "min"),
				Name:     "dateCreated",
				Type:     types.FieldTypeDate,
				Operator: types.OperatorGt,
			}),
			filter.Inline(filter.Field{
				Label:    tr.Sub("x-create-date", "max"),
				Name:     "dateCreated$",
				Type:     types.FieldTypeDate,
				Operator: types.OperatorLt,
			}),
			filter.Override(Team, filter.Patch{
				Name: filter.Ptr("componentToCaseResult/r_teamToComponents_c_teamId"),
				Type: fieldType(types.FieldTypeMultiSelect),
			}),
		),
		filter.View(BuildRuns,
			filter.Base(Priority),
			filter.Base(CaseType),
			filter.Base(Team),
		),
		filter.View(BuildTeams,
			filter.Base(Priority),
			filter.Base(CaseType),
			filter.Base(Team),
			filter.Base(Run),
		),
		filter.View(BuildTemplates,
			text(tr.Translate("template-name"), "template-name", ""),
			filter.Inline(filter.Field{
				Label: tr.Translate("status"),
				Name:  "status",
				Type:  types.FieldTypeSelect,
			}),
		),
		filter.View(Builds,
			filter.Base(Priority),
			filter.Base(ProductVersion),
			filter.Base(CaseType),
			text(tr.Translate("build-name"), "buildName", ""),
			filter.Inline(filter.Field{
				Label:   tr.Translate("status"),
				Name:    "status",
				Type:    types.FieldTypeCheckbox,
				Options: filter.Values("Open", "Abandoned", "Complete", "In Analysis"),
			}),
			filter.Base(Team),
		),
		filter.View(Cases,
			filter.Override(Priority, filter.Patch{
				RemoveQuoteMark: filter.Ptr(true),
				Type:            fieldType(types.FieldTypeSelect),
			}),
			filter.Override(CaseType, filter.Patch{Name: filter.Ptr("r_caseTypeToCases_c_caseTypeId")}),
			text(tr.Translate("case-name"), "name", contains),
			filter.Override(Team, filter.Patch{
				Name: filter.Ptr("componentToCases/r_teamToComponents_c_teamId"),
				Type: fieldType(types.FieldTypeMultiSelect),
			}),
			filter.Override(Component, filter.Patch{
				Name: filter.Ptr("componentId"),
				Type: fieldType(types.FieldTypeMultiSelect),
			}),
			filter.Base(Description),
			filter.Base(Steps),
			filter.Base(Issues),
			filter.Base(HasRequirements),
		),
		filter.View(RequirementCases,
			filter.Base(Priority),
			filter.Base(CaseType),
			text(tr.Translate("case-name"), "caseName", ""),
			filter.Base(Team),
			text(tr.Translate("component"), "component", ""),
		),
		filter.View(Requirements,
			text(tr.Translate("key"), "key", contains),
			text(tr.Translate("link"), "linkURL", contains),
			filter.Override(Team, filter.Patch{
				Name: filter.Ptr("componentToRequirements/r_teamToComponents_c_teamId"),
				Type: fieldType(types.FieldTypeMultiSelect),
			}),
			filter.Override(Component, filter.Patch{Type: fieldType(types.FieldTypeMultiSelect)}),
			text(tr.Translate("jira-components"), "components", contains),
			text(tr.Translate("summary"), "summary", contains),
			filter.Inline(filter.Field{
				Label:    tr.Translate("case"),
				Name:     "case",
				Type:     types.FieldTypeTextarea,
				Disabled: true,
			}),
		),
		filter.View(Routines,
			filter.Base(Priority),
			filter.Base(CaseType),
			filter.Base(Team),
		),
		filter.View(Subtasks,
			text(tr.Translate("subtask-name"), "subtaskName", ""),
			text(tr.Translate("errors"), "errors", ""),
			filter.Base(Assignee),
			filter.Inline(filter.Field{
				Label:   tr.Translate("status"),
				Name:    "status",
				Type:    types.FieldTypeCheckbox,
				Options: filter.Values("Complete", "In Analysis", "Open"),
			}),
			filter.Base(Team),
			text(tr.Translate("component"), "component", ""),
		),
		filter.View(Suites,
			text(tr.Translate("suite-name"), "suiteName", ""),
			text(tr.Translate("description"), "description", ""),
		),
		filter.View(Teams,
			text(tr.Translate("team-name"), "name", contains),
		),
		filter.View(Testflow,
			text(tr.Sub("task-x", "name"), "name", contains),
			filter.Override(Project, filter.Patch{
				Label: filter.Ptr(tr.Translate("project-name")),
				Name:  filter.Ptr("buildToTasks/r_projectToBuilds_c_projectId"),
				Type:  fieldType(types.FieldTypeMultiSelect),
			}),
			filter.Override(Routine, filter.Patch{
				Label:    filter.Ptr(tr.Translate("routine-name")),
				Name:     filter.Ptr("buildToTasks/r_routineToBuilds_c_routineId"),
				Resource: filter.Literal("/routines?fields=id,name&sort=name:asc&pageSize=100"),
				Type:     fieldType(types.FieldTypeMultiSelect),
			}),
			filter.Inline(filter.Field{
				Label:           tr.Translate("build-name"),
				Name:            "buildToTasks/name",
				Type:            types.FieldTypeText,
				Operator:        contains,
				RemoveQuoteMark: false,
			}),
			filter.Override(DueStatus, filter.Patch{Options: taskStatusOptions()}),
			filter.Override(Assignee, filter.Patch{
				Operator: &contains,
				Type:     fieldType(types.FieldTypeSelect),
			}),
		),
	}
}

// NewRegistry assembles the Testray views, followed by extra definitions,
// against a fresh catalog
func NewRegistry(tr i18n.Translator, extra ...filter.ViewDef) (*filter.Registry, error) {
	catalog, err := NewCatalog(tr)
	if err != nil {
		return nil, err
	}

	defs := append(Views(tr), extra...)
	return filter.NewRegistry(catalog, defs...)
}
