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

// RecurrenceJob fires every recurring rule whose next occurrence has passed.
type RecurrenceJob struct {
	engine  *engine.Engine
	workers int
}

func NewRecurrenceJob(e *engine.Engine, workers int) *RecurrenceJob {
	return &RecurrenceJob{engine: e, workers: max(workers, 1)}
}

func (j *RecurrenceJob) Name() string {
	return "recurrence"
}

func recurrenceLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameScheduler,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRecurrence),
	)
}

func (j *RecurrenceJob) Tick(ctx context.Context) error {
	rules, err := j.engine.Rules.ListRecurringRules(ctx)
	if err != nil {
		return err
	}
	now := j.engine.Zone.Now()

	var g errgroup.Group
	g.SetLimit(j.workers)
	for _, rule := range rules {
		if rule.Retired(now) || !now.After(rule.NextTrigger(j.engine.Zone.Location())) {
			continue
		}
		g.Go(func() error {
			if err := j.fire(ctx, rule, now); err != nil {
				metrics.RuleFailuresTotal.WithLabelValues(j.Name()).Inc()
				recurrenceLogger().Error("Recurring rule failed", zap.Uint("ruleId", rule.ID), zap.String("tankId", rule.TankID), zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

// fire re-checks the rule inside the transaction, so a rule that another tick or an
// edit already advanced is left alone.
func (j *RecurrenceJob) fire(ctx context.Context, rule models.RecurringRule, now time.Time) error {
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
			var current models.RecurringRule
			if err := tx.First(&current, rule.ID).Error; err != nil {
				return err
			}
			if current.Retired(now) || !now.After(current.NextTrigger(e.Zone.Location())) {
				return nil
			}

			err := engine.UpdateVersioned(tx, &models.RecurringRule{}, current.ID, current.Version, map[string]any{
				"last_message_sent":  now,
				"total_message_sent": current.TotalMessageSent + 1,
			})
			if err != nil {
				return err
			}

			task, err = e.Ledger.Create(ctx, tx, tank.ID, current.Message, models.TaskTypeRecurring)
			return err
		})
	})
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	recurrenceLogger().Info("Recurring task found", zap.Uint("ruleId", rule.ID), zap.Reflect("task", task))
	if err := e.Announce(ctx, *task, *tank); err != nil {
		recurrenceLogger().Warn("Recurring task fan-out failed", zap.Uint("taskId", task.ID), zap.Error(err))
	}
	return nil
}
