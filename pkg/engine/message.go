package engine

import (
	"fmt"
	"strconv"
	"strings"

	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func comparisonPhrase(op models.Operator, value float64) string {
	v := formatValue(value)
	switch op {
	case models.OperatorGTE:
		return v + " or higher"
	case models.OperatorLTE:
		return v + " or lower"
	case models.OperatorGT:
		return "above " + v
	case models.OperatorLT:
		return "below " + v
	default:
		return "exactly " + v
	}
}

// RenderThresholdMessage builds the text stored on a condition. It is rendered once when
// the condition is written and never regenerated at evaluation time.
func RenderThresholdMessage(tankName string, c models.ThresholdCondition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s is %s.", tankName, upperFirst(c.Sensor.DisplayName()), comparisonPhrase(c.Operator, c.Value))

	switch c.Category {
	case models.ConditionCategoryFeeding:
		if rec := strings.TrimSpace(c.Recommendation); rec != "" {
			fmt.Fprintf(&b, " Dosing %s is recommended.", rec)
		}
	default:
		b.WriteString(" Action required.")
	}
	return b.String()
}

func RenderFeedReminder(tankName string, feedPerTime float64) string {
	return fmt.Sprintf("Feeding Alert: Please feed approximately %.2f units to Tank %q.", feedPerTime, tankName)
}

func upperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
