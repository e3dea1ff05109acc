package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

func TestRenderThresholdMessage(t *testing.T) {
	feeding := models.ThresholdCondition{
		Sensor:         models.SensorWaterTemperature,
		Operator:       models.OperatorGTE,
		Value:          30,
		Category:       models.ConditionCategoryFeeding,
		Recommendation: "vitamin C",
	}
	assert.Equal(t,
		"Nursery: Water temperature is 30 or higher. Dosing vitamin C is recommended.",
		RenderThresholdMessage("Nursery", feeding))

	alert := models.ThresholdCondition{
		Sensor:   models.SensorPH,
		Operator: models.OperatorLT,
		Value:    6.5,
		Category: models.ConditionCategoryAlert,
	}
	assert.Equal(t, "Nursery: pH is below 6.5. Action required.", RenderThresholdMessage("Nursery", alert))

	alert.Operator = models.OperatorEQ
	alert.Sensor = models.SensorAmmonium
	assert.Equal(t, "Nursery: Ammonium is exactly 6.5. Action required.", RenderThresholdMessage("Nursery", alert))
}

func TestRenderFeedReminder(t *testing.T) {
	msg := RenderFeedReminder("Nursery", 132.0/4)
	assert.Equal(t, `Feeding Alert: Please feed approximately 33.00 units to Tank "Nursery".`, msg)
	assert.Contains(t, msg, "33.0")
}
