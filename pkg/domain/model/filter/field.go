package filter

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

// Option is one choice of a select, checkbox or radio field
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Values builds options whose label equals their value
func Values(values ...string) []Option {
	options := make([]Option, len(values))
	for i, v := range values {
		options[i] = Option{Label: v, Value: v}
	}
	return options
}

// Field describes one renderable filter input and how it maps to a query parameter.
//
// Name is the request parameter or relation path ("caseToCaseResult/priority").
// Options and Resource are alternative sources of choices; when both are set the
// remote resource wins. A nil Transform means DefaultTransform.
type Field struct {
	Label           string
	Name            string
	Type            types.FieldType
	Operator        types.Operator
	Options         []Option
	Resource        Resource
	Transform       Transform
	Disabled        bool
	RemoveQuoteMark bool
}

// Clone returns a copy of the field that shares no slices with f
func (f Field) Clone() Field {
	cloned := f
	if f.Options != nil {
		cloned.Options = make([]Option, len(f.Options))
		copy(cloned.Options, f.Options)
	}
	return cloned
}

// HasResource reports whether the field loads its options remotely
func (f Field) HasResource() bool {
	return f.Resource != nil
}

// validate checks the parts of a field that can be checked without context
func (f Field) validate() error {
	if f.Name == "" {
		return goerr.Wrap(ErrMissingFieldName, "field has no name", goerr.V("label", f.Label))
	}
	if !f.Type.IsValid() {
		return goerr.Wrap(ErrInvalidFieldType, "unsupported field type",
			goerr.V(FieldNameKey, f.Name), goerr.V(FieldTypeKey, f.Type))
	}
	if !f.Operator.IsValid() {
		return goerr.Wrap(ErrInvalidOperator, "unsupported operator",
			goerr.V(FieldNameKey, f.Name), goerr.V(OperatorKey, f.Operator))
	}
	return nil
}
