package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorCompare(t *testing.T) {
	cases := []struct {
		op        Operator
		value     float64
		threshold float64
		want      bool
	}{
		{OperatorGT, 31, 30, true},
		{OperatorGT, 30, 30, false},
		{OperatorLT, 4.9, 5, true},
		{OperatorGTE, 30, 30, true},
		{OperatorLTE, 30.1, 30, false},
		{OperatorEQ, 7, 7, true},
		{OperatorEQ, 7.01, 7, false},
	}

	for _, c := range cases {
		got, known := c.op.Compare(c.value, c.threshold)
		assert.True(t, known, c.op)
		assert.Equal(t, c.want, got, "%s %v %v", c.op, c.value, c.threshold)
	}
}

func TestOperatorCompareUnknownFallsBackToEquality(t *testing.T) {
	matched, known := Operator("BETWEEN").Compare(5, 5)
	assert.True(t, matched)
	assert.False(t, known)

	matched, known = Operator("").Compare(5, 6)
	assert.False(t, matched)
	assert.False(t, known)
}

func TestFeedingHoursWrapAround(t *testing.T) {
	rule := FeedIncreaseRule{ReferenceHour: 21}
	assert.Equal(t, [4]int{21, 3, 9, 15}, rule.FeedingHours())
	assert.True(t, rule.IsFeedingHour(3))
	assert.False(t, rule.IsFeedingHour(4))

	rule.ExpectedFeedAmount = 132
	assert.InDelta(t, 33.0, rule.FeedPerTime(), 1e-9)
}

func TestAddInterval(t *testing.T) {
	base := time.Date(2025, 1, 31, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 3, 1, 30, 0, 0, time.UTC), AddInterval(base, IntervalDays, 3))
	assert.Equal(t, time.Date(2025, 2, 14, 1, 30, 0, 0, time.UTC), AddInterval(base, IntervalWeeks, 2))
	assert.Equal(t, time.Date(2025, 2, 28, 1, 30, 0, 0, time.UTC), AddInterval(base, IntervalMonths, 1))
	assert.Equal(t, time.Date(2025, 4, 30, 1, 30, 0, 0, time.UTC), AddInterval(base, IntervalMonths, 3))

	leap := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), AddInterval(leap, IntervalYears, 1))
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), AddInterval(leap, IntervalYears, 4))
}

func TestRecurringRuleNextTriggerUsesLocalCalendar(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 2025-01-31 01:00 local is still January 30th in UTC
	last := time.Date(2025, 1, 31, 1, 0, 0, 0, seoul).UTC()
	monthly := RecurringRule{IntervalType: IntervalMonths, IntervalValue: 1, LastMessageSent: last}

	next := monthly.NextTrigger(seoul)
	assert.True(t, next.Equal(time.Date(2025, 2, 28, 1, 0, 0, 0, seoul)), "got %v", next.In(seoul))

	yearly := RecurringRule{IntervalType: IntervalYears, IntervalValue: 1, LastMessageSent: time.Date(2024, 2, 29, 3, 0, 0, 0, seoul).UTC()}
	assert.True(t, yearly.NextTrigger(seoul).Equal(time.Date(2025, 2, 28, 3, 0, 0, 0, seoul)))

	daily := RecurringRule{IntervalType: IntervalDays, IntervalValue: 2, LastMessageSent: last}
	assert.True(t, daily.NextTrigger(seoul).Equal(last.Add(48*time.Hour)))
}

func TestRecurringRuleRetired(t *testing.T) {
	now := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	three := 3

	open := RecurringRule{TotalMessageSent: 100}
	assert.False(t, open.Retired(now))

	counted := RecurringRule{EndingCount: &three, TotalMessageSent: 2}
	assert.False(t, counted.Retired(now))
	counted.TotalMessageSent = 3
	assert.True(t, counted.Retired(now))

	end := now.Add(-time.Minute)
	dated := RecurringRule{EndDate: &end}
	assert.True(t, dated.Retired(now))
	assert.False(t, dated.Retired(end))
}

func TestHusbandryRecordSensorAccessors(t *testing.T) {
	var r HusbandryRecord
	v := 7.2
	r.SetSensor(SensorPH, &v)
	r.SetSensor(SensorKind("TURBIDITY"), &v)

	assert.Equal(t, &v, r.PH)
	assert.Nil(t, r.Sensor(SensorNitrite))
	assert.Equal(t, SensorValues{SensorPH: &v}, r.SensorValues())
	assert.Equal(t, "dissolved oxygen", SensorDissolvedOxygen.DisplayName())
}
