package models

type Operator string

const (
	OperatorGT  Operator = "GT"
	OperatorLT  Operator = "LT"
	OperatorGTE Operator = "GTE"
	OperatorLTE Operator = "LTE"
	OperatorEQ  Operator = "EQ"
)

var Operators = []Operator{OperatorGT, OperatorLT, OperatorGTE, OperatorLTE, OperatorEQ}

func (o Operator) Valid() bool {
	switch o {
	case OperatorGT, OperatorLT, OperatorGTE, OperatorLTE, OperatorEQ:
		return true
	}
	return false
}

// Compare applies the operator to (value, threshold). An unknown operator compares
// for equality and reports known=false so the caller can flag the rule.
func (o Operator) Compare(value, threshold float64) (matched bool, known bool) {
	switch o {
	case OperatorGT:
		return value > threshold, true
	case OperatorLT:
		return value < threshold, true
	case OperatorGTE:
		return value >= threshold, true
	case OperatorLTE:
		return value <= threshold, true
	case OperatorEQ:
		return value == threshold, true
	default:
		return value == threshold, false
	}
}

func (o Operator) Symbol() string {
	switch o {
	case OperatorGT:
		return ">"
	case OperatorLT:
		return "<"
	case OperatorGTE:
		return ">="
	case OperatorLTE:
		return "<="
	default:
		return "=="
	}
}
