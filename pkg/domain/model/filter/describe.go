package filter

import "github.com/secmon-lab/filterschema/pkg/domain/types"

// Descriptor is the serializable form of a field handed to a form renderer.
// Resource is the resolved path; it is empty when the context given to
// Describe cannot resolve it, and RequiredContext then tells what is missing.
type Descriptor struct {
	Label           string          `json:"label"`
	Name            string          `json:"name"`
	Type            types.FieldType `json:"type"`
	Operator        types.Operator  `json:"operator,omitempty"`
	Options         []Option        `json:"options,omitempty"`
	Resource        string          `json:"resource,omitempty"`
	RequiredContext []string        `json:"requiredContext,omitempty"`
	Disabled        bool            `json:"disabled,omitempty"`
	RemoveQuoteMark bool            `json:"removeQuoteMark,omitempty"`
}

// SchemaDescriptor is the serializable form of a view
type SchemaDescriptor struct {
	Key             types.ViewKey `json:"key"`
	Name            string        `json:"name,omitempty"`
	Fields          []Descriptor  `json:"fields"`
	RequiredContext []string      `json:"requiredContext,omitempty"`
	CustomApply     bool          `json:"customApply,omitempty"`
}

// Describe returns the descriptor of f with its resource resolved against rc
func (f Field) Describe(rc ResourceContext) Descriptor {
	d := Descriptor{
		Label:           f.Label,
		Name:            f.Name,
		Type:            f.Type,
		Operator:        f.Operator,
		Options:         f.Clone().Options,
		Disabled:        f.Disabled,
		RemoveQuoteMark: f.RemoveQuoteMark,
	}
	if f.Resource != nil {
		d.RequiredContext = f.Resource.RequiredKeys()
		if path, err := f.Resource.Resolve(rc); err == nil {
			d.Resource = path
		}
	}
	return d
}

// Describe returns the descriptor of every field of s, in order
func (s *Schema) Describe(rc ResourceContext) SchemaDescriptor {
	d := SchemaDescriptor{
		Key:             s.Key,
		Name:            s.Name,
		Fields:          make([]Descriptor, len(s.Fields)),
		RequiredContext: s.RequiredContextKeys(),
		CustomApply:     s.OnApply != nil,
	}
	for i, f := range s.Fields {
		d.Fields[i] = f.Describe(rc)
	}
	return d
}
