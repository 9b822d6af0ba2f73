package types

import "github.com/m-mizutani/goerr/v2"

// FieldType selects the input widget a renderer uses for a filter field
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
)

// AllFieldTypes returns all valid field types
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeSelect,
		FieldTypeMultiSelect,
		FieldTypeCheckbox,
		FieldTypeRadio,
		FieldTypeNumber,
		FieldTypeDate,
	}
}

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText,
		FieldTypeTextarea,
		FieldTypeSelect,
		FieldTypeMultiSelect,
		FieldTypeCheckbox,
		FieldTypeRadio,
		FieldTypeNumber,
		FieldTypeDate:
		return true
	default:
		return false
	}
}

// IsChoice reports whether the widget picks from a list of options
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeMultiSelect, FieldTypeCheckbox, FieldTypeRadio:
		return true
	default:
		return false
	}
}

// IsMulti reports whether the widget can hold more than one value
func (t FieldType) IsMulti() bool {
	return t == FieldTypeMultiSelect || t == FieldTypeCheckbox
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}

// ParseFieldType parses a string into a FieldType
func ParseFieldType(s string) (FieldType, error) {
	ft := FieldType(s)
	if !ft.IsValid() {
		return "", goerr.New("invalid field type", goerr.V("type", s))
	}
	return ft, nil
}
