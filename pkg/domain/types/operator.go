package types

import "github.com/m-mizutani/goerr/v2"

// Operator is the comparison used when a field value becomes a search clause.
// The zero value means the default comparison (OperatorEq).
type Operator string

const (
	OperatorEq       Operator = "eq"
	OperatorNe       Operator = "ne"
	OperatorContains Operator = "contains"
	OperatorGt       Operator = "gt"
	OperatorGe       Operator = "ge"
	OperatorLt       Operator = "lt"
	OperatorLe       Operator = "le"
)

// AllOperators returns all valid operators
func AllOperators() []Operator {
	return []Operator{
		OperatorEq,
		OperatorNe,
		OperatorContains,
		OperatorGt,
		OperatorGe,
		OperatorLt,
		OperatorLe,
	}
}

// IsValid checks if the operator is valid. The empty operator is valid.
func (o Operator) IsValid() bool {
	switch o {
	case "",
		OperatorEq,
		OperatorNe,
		OperatorContains,
		OperatorGt,
		OperatorGe,
		OperatorLt,
		OperatorLe:
		return true
	default:
		return false
	}
}

// OrDefault returns OperatorEq for the empty operator
func (o Operator) OrDefault() Operator {
	if o == "" {
		return OperatorEq
	}
	return o
}

// String returns the string representation of the operator
func (o Operator) String() string {
	return string(o)
}

// ParseOperator parses a string into an Operator
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if !op.IsValid() {
		return "", goerr.New("invalid operator", goerr.V("operator", s))
	}
	return op, nil
}
