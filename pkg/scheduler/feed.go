package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/engine"
	"liyu1981.xyz/aqua-condition-service/pkg/metrics"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

const feedIncreaseFactor = 1.1

// FeedIncreaseJob recalibrates each tank's daily ration at its reference hour and
// reminds the keeper at the four feeding hours of the day.
type FeedIncreaseJob struct {
	engine  *engine.Engine
	workers int
}

func NewFeedIncreaseJob(e *engine.Engine, workers int) *FeedIncreaseJob {
	return &FeedIncreaseJob{engine: e, workers: max(workers, 1)}
}

func (j *FeedIncreaseJob) Name() string {
	return "feed_increase"
}

func feedLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameScheduler,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryFeedIncrease),
	)
}

func (j *FeedIncreaseJob) Tick(ctx context.Context) error {
	rules, err := j.engine.Rules.ListFeedIncreaseRules(ctx)
	if err != nil {
		return err
	}
	now := j.engine.Zone.Now()

	var g errgroup.Group
	g.SetLimit(j.workers)
	for _, rule := range rules {
		g.Go(func() error {
			if err := j.process(ctx, rule, now); err != nil {
				metrics.RuleFailuresTotal.WithLabelValues(j.Name()).Inc()
				feedLogger().Error("Feed-increase rule failed", zap.Uint("ruleId", rule.ID), zap.String("tankId", rule.TankID), zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

// sentThisHour is the per-hour guard shared by both branches.
func (j *FeedIncreaseJob) sentThisHour(rule *models.FeedIncreaseRule, now time.Time) bool {
	return rule.LastMessageSent != nil && j.engine.Zone.SameLocalHour(*rule.LastMessageSent, now)
}

func (j *FeedIncreaseJob) process(ctx context.Context, rule models.FeedIncreaseRule, now time.Time) error {
	hour := j.engine.Zone.Hour(now)
	if hour == rule.ReferenceHour {
		return j.recalibrate(ctx, rule, now)
	}
	if !rule.IsFeedingHour(hour) || j.sentThisHour(&rule, now) {
		return nil
	}
	return j.remind(ctx, rule, now)
}

// recalibrate raises tomorrow's expectation by ten percent over the larger of what was
// expected and what was actually fed during the previous local day.
func (j *FeedIncreaseJob) recalibrate(ctx context.Context, rule models.FeedIncreaseRule, now time.Time) error {
	e := j.engine
	start, end := e.Zone.YesterdayBounds(now)
	rollup, err := e.Husbandry.FeedingRollup(ctx, rule.TankID, start, end)
	if err != nil {
		return err
	}

	var updated *models.FeedIncreaseRule
	err = engine.RetryOnConflict(ctx, func() error {
		var current models.FeedIncreaseRule
		if err := e.Db.Conn.WithContext(ctx).First(&current, rule.ID).Error; err != nil {
			return err
		}
		if j.sentThisHour(&current, now) {
			return nil
		}

		expected := current.ExpectedFeedAmount * feedIncreaseFactor
		if rollup.Total > current.ExpectedFeedAmount {
			expected = rollup.Total * feedIncreaseFactor
		}

		err := engine.UpdateVersioned(e.Db.Conn.WithContext(ctx), &models.FeedIncreaseRule{}, current.ID, current.Version, map[string]any{
			"expected_feed_amount":     expected,
			"daily_message_sent_count": 0,
			"last_message_sent":        now,
		})
		if err != nil {
			return err
		}
		current.ExpectedFeedAmount = expected
		current.DailyMessageSentCount = 0
		current.LastMessageSent = &now
		current.Version++
		updated = &current
		return nil
	})
	if err != nil {
		return err
	}

	if updated != nil {
		feedLogger().Info("Feed expectation recalibrated",
			zap.Reflect("rule", updated),
			zap.Float64("previousExpected", rule.ExpectedFeedAmount),
			zap.Float64("fedYesterday", rollup.Total),
		)
	}
	return nil
}

// remind stamps the rule and creates the reminder in one transaction, then announces
// the reminder once it is committed.
func (j *FeedIncreaseJob) remind(ctx context.Context, rule models.FeedIncreaseRule, now time.Time) error {
	e := j.engine
	tank := rule.Tank
	if tank == nil {
		var err error
		if tank, err = e.Tanks.GetTank(ctx, rule.TankID); err != nil {
			return err
		}
	}

	var task *models.Task
	err := engine.RetryOnConflict(ctx, func() error {
		task = nil
		return e.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var current models.FeedIncreaseRule
			if err := tx.First(&current, rule.ID).Error; err != nil {
				return err
			}
			if j.sentThisHour(&current, now) {
				return nil
			}

			err := engine.UpdateVersioned(tx, &models.FeedIncreaseRule{}, current.ID, current.Version, map[string]any{
				"last_message_sent":        now,
				"daily_message_sent_count": current.DailyMessageSentCount + 1,
				"total_message_sent":       current.TotalMessageSent + 1,
			})
			if err != nil {
				return err
			}

			message := engine.RenderFeedReminder(tank.Name, current.FeedPerTime())
			task, err = e.Ledger.Create(ctx, tx, tank.ID, message, models.TaskTypeFeedIncrease)
			return err
		})
	})
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	feedLogger().Info("Feeding reminder found", zap.Reflect("task", task))
	if err := e.Announce(ctx, *task, *tank); err != nil {
		feedLogger().Warn("Feeding reminder fan-out failed", zap.Uint("taskId", task.ID), zap.Error(err))
	}
	return nil
}
