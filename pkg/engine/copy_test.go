package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
	"liyu1981.xyz/aqua-condition-service/pkg/notify"
)

func TestCopyThresholdRerendersForTarget(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	source := te.seedTank(t, testUser, "Nursery")
	target := te.seedTank(t, testUser, "Grow-out")
	c := te.seedCondition(t, source, models.SensorPH, models.OperatorLT, 6.5, models.ConditionCategoryAlert)

	result, err := te.Rules.CopyRule(context.Background(), testUser, models.CopyRequest{
		RuleID:       c.ID,
		Kind:         models.RuleKindAlert,
		TargetTankID: target.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Threshold)
	assert.Equal(t, models.RuleKindAlert, result.Kind)
	assert.NotEqual(t, c.ID, result.Threshold.ID)
	assert.Equal(t, target.ID, result.Threshold.TankID)
	assert.Equal(t, "Grow-out: pH is below 6.5. Action required.", result.Threshold.Message)
}

func TestCopyThresholdWrongKindIsNotFound(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	source := te.seedTank(t, testUser, "Nursery")
	target := te.seedTank(t, testUser, "Grow-out")
	c := te.seedCondition(t, source, models.SensorPH, models.OperatorLT, 6.5, models.ConditionCategoryAlert)

	_, err := te.Rules.CopyRule(context.Background(), testUser, models.CopyRequest{
		RuleID:       c.ID,
		Kind:         models.RuleKindFeeding,
		TargetTankID: target.ID,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCopyRejectsSameTankAndForeignTarget(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	source := te.seedTank(t, testUser, "Nursery")
	foreign := te.seedTank(t, "user-2", "Elsewhere")
	c := te.seedCondition(t, source, models.SensorPH, models.OperatorLT, 6.5, models.ConditionCategoryAlert)
	ctx := context.Background()

	_, err := te.Rules.CopyRule(ctx, testUser, models.CopyRequest{RuleID: c.ID, Kind: models.RuleKindAlert, TargetTankID: source.ID})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = te.Rules.CopyRule(ctx, testUser, models.CopyRequest{RuleID: c.ID, Kind: models.RuleKindAlert, TargetTankID: foreign.ID})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = te.Rules.CopyRule(ctx, testUser, models.CopyRequest{RuleID: c.ID, Kind: "SOMETHING", TargetTankID: foreign.ID})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCopyRecurringFiresOnTarget(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	source := te.seedTank(t, testUser, "Nursery")
	target := te.seedTank(t, testUser, "Grow-out")
	ctx := context.Background()

	var tankNames []string
	te.fanout.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d notify.Dispatch) error {
		tankNames = append(tankNames, d.TankName)
		return nil
	}).Times(2)

	rule, err := te.Rules.CreateRecurringRule(ctx, testUser, models.RecurringInput{
		TankID:        source.ID,
		IntervalType:  models.IntervalMonths,
		IntervalValue: 1,
		Message:       "Replace carbon",
		EndDate:       common.Ptr("2025-12-31"),
	})
	require.NoError(t, err)

	result, err := te.Rules.CopyRule(ctx, testUser, models.CopyRequest{RuleID: rule.ID, Kind: models.RuleKindRecurring, TargetTankID: target.ID})
	require.NoError(t, err)
	require.NotNil(t, result.Recurring)
	assert.Equal(t, target.ID, result.Recurring.TankID)
	require.NotNil(t, result.Recurring.EndDate)
	assert.True(t, rule.EndDate.Equal(*result.Recurring.EndDate))
	assert.Equal(t, []string{"Nursery", "Grow-out"}, tankNames)
	assert.EqualValues(t, 1, te.countTasks(t, target.ID))
}

func TestCopyFeedIncreaseKeepsExpectation(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	source := te.seedTank(t, testUser, "Nursery")
	target := te.seedTank(t, testUser, "Grow-out")
	ctx := context.Background()

	rule, err := te.Rules.CreateFeedIncreaseRule(ctx, testUser, models.FeedIncreaseInput{TankID: source.ID, ReferenceHour: 7, ExpectedFeedAmount: common.Ptr(88.0)})
	require.NoError(t, err)

	req := models.CopyRequest{RuleID: rule.ID, Kind: models.RuleKindFeedIncrease, TargetTankID: target.ID}
	result, err := te.Rules.CopyRule(ctx, testUser, req)
	require.NoError(t, err)
	assert.Equal(t, 88.0, result.FeedIncrease.ExpectedFeedAmount)
	assert.Equal(t, 7, result.FeedIncrease.ReferenceHour)

	_, err = te.Rules.CopyRule(ctx, testUser, req)
	assert.ErrorIs(t, err, common.ErrDuplicateRule)
}
