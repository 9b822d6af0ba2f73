package filter

import "github.com/secmon-lab/filterschema/pkg/domain/types"

// Patch is a partial Field used by WithOverrides.
//
// Scalar members are pointers so that an explicit zero value (for example
// Disabled: Ptr(false)) can be told apart from "not set". Options, Resource and
// Transform are kept when nil. A non-nil Options replaces the base list as a
// whole; lists are never merged element by element.
type Patch struct {
	Label           *string
	Name            *string
	Type            *types.FieldType
	Operator        *types.Operator
	Options         []Option
	Resource        Resource
	Transform       Transform
	Disabled        *bool
	RemoveQuoteMark *bool
}

// Ptr returns a pointer to v, for filling Patch members inline
func Ptr[T any](v T) *T {
	return &v
}

// WithOverrides returns a new field made of base with every member set in
// patch replacing the base value. base is not modified and the result shares
// no slices with base or patch.
func WithOverrides(base Field, patch Patch) Field {
	merged := base.Clone()

	if patch.Label != nil {
		merged.Label = *patch.Label
	}
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Type != nil {
		merged.Type = *patch.Type
	}
	if patch.Operator != nil {
		merged.Operator = *patch.Operator
	}
	if patch.Options != nil {
		merged.Options = make([]Option, len(patch.Options))
		copy(merged.Options, patch.Options)
	}
	if patch.Resource != nil {
		merged.Resource = patch.Resource
	}
	if patch.Transform != nil {
		merged.Transform = patch.Transform
	}
	if patch.Disabled != nil {
		merged.Disabled = *patch.Disabled
	}
	if patch.RemoveQuoteMark != nil {
		merged.RemoveQuoteMark = *patch.RemoveQuoteMark
	}

	return merged
}
