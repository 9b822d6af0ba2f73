package usecase

import (
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

// ValidationIssue is one view that cannot be served with the given context
type ValidationIssue struct {
	View        types.ViewKey
	MissingKeys []string
	Message     string
}

// ValidationResult holds the results of registry validation
type ValidationResult struct {
	Views  int
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateRegistry checks every view against rc, so that a deployment
// lacking a context key fails before any request is served
func (uc *FilterUseCase) ValidateRegistry(rc filter.ResourceContext) *ValidationResult {
	result := &ValidationResult{}

	for _, schema := range uc.registry.List() {
		result.Views++

		var missing []string
		for _, key := range schema.RequiredContextKeys() {
			if rc[key] == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) == 0 {
			continue
		}

		issue := ValidationIssue{
			View:        schema.Key,
			MissingKeys: missing,
			Message:     "context is incomplete",
		}
		if err := schema.ValidateContext(rc); err != nil {
			issue.Message = err.Error()
		}
		result.AddIssue(issue)
	}

	return result
}
