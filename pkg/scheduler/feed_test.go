package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/engine"
	"liyu1981.xyz/aqua-condition-service/pkg/engine/mocks"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
	"liyu1981.xyz/aqua-condition-service/pkg/notify"
)

// KST is UTC+9: 00:10 UTC is 09:10 local.
var referenceHourNow = time.Date(2025, 5, 10, 0, 10, 0, 0, time.UTC)

func (h *harness) seedFeedRule(t *testing.T, tank *models.Tank, referenceHour int, expected float64) *models.FeedIncreaseRule {
	t.Helper()
	rule, err := h.engine.Rules.CreateFeedIncreaseRule(context.Background(), testUser, models.FeedIncreaseInput{
		TankID:             tank.ID,
		ReferenceHour:      referenceHour,
		ExpectedFeedAmount: common.Ptr(expected),
	})
	require.NoError(t, err)
	return rule
}

func (h *harness) seedFeeding(t *testing.T, tank *models.Tank, at time.Time, amounts ...float64) {
	t.Helper()
	in := models.HusbandryInput{TankID: tank.ID, Timestamp: at}
	for _, a := range amounts {
		in.Feedings = append(in.Feedings, models.FeedingInput{Type: "pellet", Amount: a})
	}
	_, err := h.engine.Husbandry.AddHusbandryRecord(context.Background(), testUser, in)
	require.NoError(t, err)
}

func (h *harness) feedRule(t *testing.T, id uint) models.FeedIncreaseRule {
	t.Helper()
	var rule models.FeedIncreaseRule
	require.NoError(t, h.engine.Db.Conn.First(&rule, id).Error)
	return rule
}

func TestFeedRecalibrationUsesYesterdayWhenHigher(t *testing.T) {
	h := newHarness(t, referenceHourNow)
	tank := h.seedTank(t, "Nursery")
	rule := h.seedFeedRule(t, tank, 9, 100)

	// 2025-05-09 12:00 and 20:00 local
	h.seedFeeding(t, tank, time.Date(2025, 5, 9, 3, 0, 0, 0, time.UTC), 70)
	h.seedFeeding(t, tank, time.Date(2025, 5, 9, 11, 0, 0, 0, time.UTC), 50)
	// today, outside yesterday's window
	h.seedFeeding(t, tank, time.Date(2025, 5, 10, 0, 5, 0, 0, time.UTC), 999)

	job := NewFeedIncreaseJob(h.engine, 2)
	require.NoError(t, job.Tick(context.Background()))

	stored := h.feedRule(t, rule.ID)
	assert.InDelta(t, 132.0, stored.ExpectedFeedAmount, 1e-9)
	assert.Zero(t, stored.DailyMessageSentCount)
	require.NotNil(t, stored.LastMessageSent)
	assert.True(t, stored.LastMessageSent.Equal(referenceHourNow))
	assert.Empty(t, h.tasks(t, tank.ID), "recalibration creates no task")

	// a second pass in the same hour must not compound
	h.clock.Advance(20 * time.Minute)
	require.NoError(t, job.Tick(context.Background()))
	assert.InDelta(t, 132.0, h.feedRule(t, rule.ID).ExpectedFeedAmount, 1e-9)
}

func TestFeedRecalibrationUsesExpectationWhenHigher(t *testing.T) {
	h := newHarness(t, referenceHourNow)
	tank := h.seedTank(t, "Nursery")
	rule := h.seedFeedRule(t, tank, 9, 100)
	h.seedFeeding(t, tank, time.Date(2025, 5, 9, 3, 0, 0, 0, time.UTC), 80)

	require.NoError(t, NewFeedIncreaseJob(h.engine, 1).Tick(context.Background()))
	assert.InDelta(t, 110.0, h.feedRule(t, rule.ID).ExpectedFeedAmount, 1e-9)
}

func TestFeedReminderOncePerFeedingHour(t *testing.T) {
	// 15:05 local, the second feeding hour of a 9 o'clock rule
	h := newHarness(t, time.Date(2025, 5, 10, 6, 5, 0, 0, time.UTC))
	tank := h.seedTank(t, "Nursery")
	rule := h.seedFeedRule(t, tank, 9, 132)

	var dispatched []notify.Dispatch
	h.fanout.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d notify.Dispatch) error {
		dispatched = append(dispatched, d)
		return nil
	}).Times(2)

	job := NewFeedIncreaseJob(h.engine, 4)
	require.NoError(t, job.Tick(context.Background()))

	tasks := h.tasks(t, tank.ID)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskTypeFeedIncrease, tasks[0].Type)
	assert.Equal(t, `Feeding Alert: Please feed approximately 33.00 units to Tank "Nursery".`, tasks[0].Message)

	stored := h.feedRule(t, rule.ID)
	assert.Equal(t, 1, stored.DailyMessageSentCount)
	assert.Equal(t, 1, stored.TotalMessageSent)

	h.clock.Advance(30 * time.Minute)
	require.NoError(t, job.Tick(context.Background()))
	assert.Len(t, h.tasks(t, tank.ID), 1, "same local hour")

	// 21:05 local
	h.clock.Advance(5*time.Hour + 30*time.Minute)
	require.NoError(t, job.Tick(context.Background()))
	assert.Len(t, h.tasks(t, tank.ID), 2)

	require.Len(t, dispatched, 2)
	assert.Equal(t, testUser, dispatched[0].UserID)
	assert.Equal(t, "Nursery", dispatched[0].TankName)
}

func TestFeedOutsideFeedingHoursIsQuiet(t *testing.T) {
	// 11:00 local
	h := newHarness(t, time.Date(2025, 5, 10, 2, 0, 0, 0, time.UTC))
	tank := h.seedTank(t, "Nursery")
	rule := h.seedFeedRule(t, tank, 9, 132)

	require.NoError(t, NewFeedIncreaseJob(h.engine, 1).Tick(context.Background()))
	assert.Empty(t, h.tasks(t, tank.ID))
	assert.Nil(t, h.feedRule(t, rule.ID).LastMessageSent)
}

func TestFeedRuleFailuresAreIsolated(t *testing.T) {
	h := newHarness(t, referenceHourNow)
	broken := h.seedTank(t, "Broken")
	healthy := h.seedTank(t, "Healthy")
	brokenRule := h.seedFeedRule(t, broken, 9, 100)
	healthyRule := h.seedFeedRule(t, healthy, 9, 100)

	husbandry := mocks.NewMockIHusbandry(h.ctrl)
	h.engine.WithServices(engine.ServiceOpts{Husbandry: husbandry})
	husbandry.EXPECT().FeedingRollup(gomock.Any(), broken.ID, gomock.Any(), gomock.Any()).
		Return(models.FeedingRollup{}, errors.New("disk I/O error"))
	husbandry.EXPECT().FeedingRollup(gomock.Any(), healthy.ID, gomock.Any(), gomock.Any()).
		Return(models.FeedingRollup{Total: 120, Max: 60, Count: 2}, nil)

	require.NoError(t, NewFeedIncreaseJob(h.engine, 2).Tick(context.Background()))

	assert.Equal(t, 100.0, h.feedRule(t, brokenRule.ID).ExpectedFeedAmount)
	assert.InDelta(t, 132.0, h.feedRule(t, healthyRule.ID).ExpectedFeedAmount, 1e-9)
}

func TestFeedReminderRollsBackWhenTaskFails(t *testing.T) {
	// 15:05 local, a feeding hour of a 9 o'clock rule
	h := newHarness(t, time.Date(2025, 5, 10, 6, 5, 0, 0, time.UTC))
	tank := h.seedTank(t, "Nursery")
	rule := h.seedFeedRule(t, tank, 9, 132)
	h.fanout.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	mockILedger := mocks.NewMockILedger(h.ctrl)
	mockILedger.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Eq(tank.ID), gomock.Any(), gomock.Eq(models.TaskTypeFeedIncrease)).
		Return(nil, errors.New("disk full")).
		Times(1)
	h.engine.WithServices(engine.ServiceOpts{Ledger: mockILedger})

	require.NoError(t, NewFeedIncreaseJob(h.engine, 1).Tick(context.Background()))

	stored := h.feedRule(t, rule.ID)
	assert.Nil(t, stored.LastMessageSent)
	assert.Zero(t, stored.DailyMessageSentCount)
	assert.Zero(t, stored.TotalMessageSent)
	assert.Equal(t, rule.Version, stored.Version)
	assert.Empty(t, h.tasks(t, tank.ID))
}
