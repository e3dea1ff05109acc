package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

const feedIncreaseFactor = 1.1

func ruleLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameEngineCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRule),
	)
}

func (e *Engine) listThresholdConditions(ctx context.Context, tankID string, sensor models.SensorKind) ([]models.ThresholdCondition, error) {
	var conditions []models.ThresholdCondition
	err := e.Db.Conn.WithContext(ctx).
		Where("tank_id = ? AND sensor = ?", tankID, sensor).
		Order("id").
		Find(&conditions).Error
	return conditions, err
}

func (e *Engine) getFeedIncreaseRule(ctx context.Context, tankID string) (*models.FeedIncreaseRule, error) {
	var rule models.FeedIncreaseRule
	err := e.Db.Conn.WithContext(ctx).First(&rule, "tank_id = ?", tankID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFound("feed-increase rule for tank %s not found", tankID)
	}
	return &rule, err
}

func (e *Engine) listFeedIncreaseRules(ctx context.Context) ([]models.FeedIncreaseRule, error) {
	var rules []models.FeedIncreaseRule
	err := e.Db.Conn.WithContext(ctx).Preload("Tank").Order("id").Find(&rules).Error
	return rules, err
}

func (e *Engine) listRecurringRules(ctx context.Context) ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	err := e.Db.Conn.WithContext(ctx).Preload("Tank").Order("id").Find(&rules).Error
	return rules, err
}

func (e *Engine) listTankRules(ctx context.Context, userID, tankID string) (*models.TankRules, error) {
	if _, err := e.getOwnedTank(ctx, userID, tankID); err != nil {
		return nil, err
	}

	conn := e.Db.Conn.WithContext(ctx)
	rules := &models.TankRules{
		Feeding:   []models.ThresholdCondition{},
		Alert:     []models.ThresholdCondition{},
		Recurring: []models.RecurringRule{},
	}

	var conditions []models.ThresholdCondition
	if err := conn.Where("tank_id = ?", tankID).Order("id").Find(&conditions).Error; err != nil {
		return nil, err
	}
	for _, c := range conditions {
		if c.Category == models.ConditionCategoryFeeding {
			rules.Feeding = append(rules.Feeding, c)
		} else {
			rules.Alert = append(rules.Alert, c)
		}
	}

	if err := conn.Where("tank_id = ?", tankID).Order("id").Find(&rules.Recurring).Error; err != nil {
		return nil, err
	}

	var feedIncrease []models.FeedIncreaseRule
	if err := conn.Where("tank_id = ?", tankID).Limit(1).Find(&feedIncrease).Error; err != nil {
		return nil, err
	}
	if len(feedIncrease) > 0 {
		rules.FeedIncrease = &feedIncrease[0]
	}
	return rules, nil
}

func validateThresholdInput(in models.ThresholdInput) error {
	if !in.Sensor.Valid() {
		return common.Validation("unknown sensor %q", in.Sensor)
	}
	if !in.Operator.Valid() {
		return common.Validation("unknown operator %q", in.Operator)
	}
	if in.Category != models.ConditionCategoryFeeding && in.Category != models.ConditionCategoryAlert {
		return common.Validation("unknown condition category %q", in.Category)
	}
	return nil
}

func (e *Engine) createThresholdCondition(ctx context.Context, userID string, in models.ThresholdInput) (*models.ThresholdCondition, error) {
	if err := validateThresholdInput(in); err != nil {
		return nil, err
	}
	tank, err := e.getOwnedTank(ctx, userID, in.TankID)
	if err != nil {
		return nil, err
	}

	condition := models.ThresholdCondition{
		TankID:         tank.ID,
		Name:           strings.TrimSpace(in.Name),
		Sensor:         in.Sensor,
		Operator:       in.Operator,
		Value:          in.Value,
		Category:       in.Category,
		Recommendation: strings.TrimSpace(in.Recommendation),
		Version:        1,
	}
	condition.Message = RenderThresholdMessage(tank.Name, condition)

	if err := e.Db.Conn.WithContext(ctx).Create(&condition).Error; err != nil {
		return nil, err
	}

	ruleLogger().Info("Threshold condition saved", zap.Reflect("condition", condition))
	return &condition, nil
}

// loadOwned loads a rule by id and checks the caller owns its tank.
func loadOwned[T any](ctx context.Context, e *Engine, userID string, id uint, tankOf func(*T) string, what string) (*T, *models.Tank, error) {
	var rule T
	err := e.Db.Conn.WithContext(ctx).First(&rule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, common.NotFound("%s %d not found", what, id)
	}
	if err != nil {
		return nil, nil, err
	}
	tank, err := e.getOwnedTank(ctx, userID, tankOf(&rule))
	if err != nil {
		return nil, nil, common.NotFound("%s %d not found", what, id)
	}
	return &rule, tank, nil
}

func thresholdTank(c *models.ThresholdCondition) string  { return c.TankID }
func feedIncreaseTank(r *models.FeedIncreaseRule) string { return r.TankID }
func recurringTank(r *models.RecurringRule) string       { return r.TankID }

func (e *Engine) updateThresholdCondition(ctx context.Context, userID string, id uint, in models.ThresholdInput) (*models.ThresholdCondition, error) {
	if err := validateThresholdInput(in); err != nil {
		return nil, err
	}

	var updated *models.ThresholdCondition
	err := RetryOnConflict(ctx, func() error {
		condition, tank, err := loadOwned(ctx, e, userID, id, thresholdTank, "threshold condition")
		if err != nil {
			return err
		}

		condition.Name = strings.TrimSpace(in.Name)
		condition.Sensor = in.Sensor
		condition.Operator = in.Operator
		condition.Value = in.Value
		condition.Category = in.Category
		condition.Recommendation = strings.TrimSpace(in.Recommendation)
		condition.Message = RenderThresholdMessage(tank.Name, *condition)

		err = UpdateVersioned(e.Db.Conn.WithContext(ctx), &models.ThresholdCondition{}, condition.ID, condition.Version, map[string]any{
			"name":           condition.Name,
			"sensor":         condition.Sensor,
			"operator":       condition.Operator,
			"value":          condition.Value,
			"category":       condition.Category,
			"recommendation": condition.Recommendation,
			"message":        condition.Message,
		})
		if err != nil {
			return err
		}
		condition.Version++
		updated = condition
		return nil
	})
	if err != nil {
		return nil, err
	}

	ruleLogger().Info("Threshold condition updated", zap.Reflect("condition", updated))
	return updated, nil
}

func (e *Engine) deleteThresholdCondition(ctx context.Context, userID string, id uint) error {
	condition, _, err := loadOwned(ctx, e, userID, id, thresholdTank, "threshold condition")
	if err != nil {
		return err
	}
	if err := e.Db.Conn.WithContext(ctx).Delete(&models.ThresholdCondition{}, condition.ID).Error; err != nil {
		return err
	}
	ruleLogger().Info("Threshold condition deleted", zap.Reflect("condition", condition))
	return nil
}

// initialExpectedFeed derives the starting ration from the 24h before the latest
// reference hour: the larger of the total fed and four times the largest single feeding,
// plus ten percent.
func (e *Engine) initialExpectedFeed(ctx context.Context, tankID string, referenceHour int) (float64, error) {
	end := e.Zone.LastOccurrenceOfHour(e.Zone.Now(), referenceHour)
	start := end.AddDate(0, 0, -1)

	rollup, err := e.feedingRollup(ctx, tankID, start, end)
	if err != nil {
		return 0, err
	}
	return max(rollup.Total, 4*rollup.Max) * feedIncreaseFactor, nil
}

func validateReferenceHour(hour int) error {
	if hour < 0 || hour > 23 {
		return common.Validation("reference hour must be between 0 and 23, got %d", hour)
	}
	return nil
}

func (e *Engine) createFeedIncreaseRule(ctx context.Context, userID string, in models.FeedIncreaseInput) (*models.FeedIncreaseRule, error) {
	if err := validateReferenceHour(in.ReferenceHour); err != nil {
		return nil, err
	}
	if in.ExpectedFeedAmount != nil && *in.ExpectedFeedAmount < 0 {
		return nil, common.Validation("expected feed amount must not be negative")
	}

	tank, err := e.getOwnedTank(ctx, userID, in.TankID)
	if err != nil {
		return nil, err
	}

	duplicate := common.NewError(common.ErrorCategoryDuplicateRule, "tank %s already has a feed-increase rule", tank.ID)

	var existing int64
	if err := e.Db.Conn.WithContext(ctx).Model(&models.FeedIncreaseRule{}).Where("tank_id = ?", tank.ID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, duplicate
	}

	expected := 0.0
	if in.ExpectedFeedAmount != nil {
		expected = *in.ExpectedFeedAmount
	} else if expected, err = e.initialExpectedFeed(ctx, tank.ID, in.ReferenceHour); err != nil {
		return nil, err
	}

	rule := models.FeedIncreaseRule{
		TankID:             tank.ID,
		Name:               strings.TrimSpace(in.Name),
		ReferenceHour:      in.ReferenceHour,
		ExpectedFeedAmount: expected,
		Version:            1,
	}
	if err := e.Db.Conn.WithContext(ctx).Create(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicate
		}
		return nil, err
	}

	ruleLogger().Info("Feed-increase rule saved", zap.Reflect("rule", rule))
	return &rule, nil
}

func (e *Engine) updateFeedIncreaseRule(ctx context.Context, userID string, id uint, in models.FeedIncreaseInput) (*models.FeedIncreaseRule, error) {
	if err := validateReferenceHour(in.ReferenceHour); err != nil {
		return nil, err
	}

	var updated *models.FeedIncreaseRule
	err := RetryOnConflict(ctx, func() error {
		rule, _, err := loadOwned(ctx, e, userID, id, feedIncreaseTank, "feed-increase rule")
		if err != nil {
			return err
		}

		rule.Name = strings.TrimSpace(in.Name)
		rule.ReferenceHour = in.ReferenceHour
		updates := map[string]any{
			"name":           rule.Name,
			"reference_hour": rule.ReferenceHour,
		}
		if in.ExpectedFeedAmount != nil {
			rule.ExpectedFeedAmount = *in.ExpectedFeedAmount
			updates["expected_feed_amount"] = rule.ExpectedFeedAmount
		}

		if err := UpdateVersioned(e.Db.Conn.WithContext(ctx), &models.FeedIncreaseRule{}, rule.ID, rule.Version, updates); err != nil {
			return err
		}
		rule.Version++
		updated = rule
		return nil
	})
	if err != nil {
		return nil, err
	}

	ruleLogger().Info("Feed-increase rule updated", zap.Reflect("rule", updated))
	return updated, nil
}

func (e *Engine) deleteFeedIncreaseRule(ctx context.Context, userID string, id uint) error {
	rule, _, err := loadOwned(ctx, e, userID, id, feedIncreaseTank, "feed-increase rule")
	if err != nil {
		return err
	}
	if err := e.Db.Conn.WithContext(ctx).Delete(&models.FeedIncreaseRule{}, rule.ID).Error; err != nil {
		return err
	}
	ruleLogger().Info("Feed-increase rule deleted", zap.Reflect("rule", rule))
	return nil
}

// recurringEnd resolves the end condition. When both an end date and an ending count
// are given the end date wins and the count is dropped.
func (e *Engine) recurringEnd(in models.RecurringInput) (endDate *time.Time, endingCount *int, err error) {
	if in.EndingCount != nil && *in.EndingCount < 1 {
		return nil, nil, common.Validation("ending count must be at least 1")
	}

	if in.EndDate != nil && strings.TrimSpace(*in.EndDate) != "" {
		end, err := e.Zone.EndOfLocalDate(*in.EndDate)
		if err != nil {
			return nil, nil, common.Validation("invalid end date: %v", err)
		}
		if in.EndingCount != nil {
			ruleLogger().Warn("Recurring rule end condition corrected",
				zap.String("correction", string(common.ErrorCategoryInvalidRule)),
				zap.String("endDate", *in.EndDate),
				zap.Int("droppedEndingCount", *in.EndingCount),
			)
		}
		return &end, nil, nil
	}
	return nil, in.EndingCount, nil
}

func validateRecurringInput(in models.RecurringInput) error {
	if !in.IntervalType.Valid() {
		return common.Validation("unknown interval type %q", in.IntervalType)
	}
	if in.IntervalValue <= 0 {
		return common.Validation("interval value must be positive, got %d", in.IntervalValue)
	}
	if strings.TrimSpace(in.Message) == "" {
		return common.Validation("message must not be empty")
	}
	return nil
}

// createRecurringRule stores the rule and its first firing in one transaction, then
// announces the task after commit. Creation counts as the first occurrence.
func (e *Engine) createRecurringRule(ctx context.Context, userID string, in models.RecurringInput) (*models.RecurringRule, error) {
	if err := validateRecurringInput(in); err != nil {
		return nil, err
	}
	tank, err := e.getOwnedTank(ctx, userID, in.TankID)
	if err != nil {
		return nil, err
	}
	endDate, endingCount, err := e.recurringEnd(in)
	if err != nil {
		return nil, err
	}

	rule := models.RecurringRule{
		TankID:           tank.ID,
		Name:             strings.TrimSpace(in.Name),
		IntervalType:     in.IntervalType,
		IntervalValue:    in.IntervalValue,
		Message:          strings.TrimSpace(in.Message),
		EndDate:          endDate,
		EndingCount:      endingCount,
		LastMessageSent:  e.Zone.Now(),
		TotalMessageSent: 1,
		Version:          1,
	}

	var task *models.Task
	err = e.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rule).Error; err != nil {
			return err
		}
		var err error
		task, err = e.Ledger.Create(ctx, tx, tank.ID, rule.Message, models.TaskTypeRecurring)
		return err
	})
	if err != nil {
		return nil, err
	}

	ruleLogger().Info("Recurring rule saved", zap.Reflect("rule", rule))
	e.announceLogged(ctx, *task, *tank, ruleLogger())
	return &rule, nil
}

func (e *Engine) updateRecurringRule(ctx context.Context, userID string, id uint, in models.RecurringInput) (*models.RecurringRule, error) {
	if err := validateRecurringInput(in); err != nil {
		return nil, err
	}
	endDate, endingCount, err := e.recurringEnd(in)
	if err != nil {
		return nil, err
	}

	var updated *models.RecurringRule
	err = RetryOnConflict(ctx, func() error {
		rule, _, err := loadOwned(ctx, e, userID, id, recurringTank, "recurring rule")
		if err != nil {
			return err
		}

		rule.Name = strings.TrimSpace(in.Name)
		rule.IntervalType = in.IntervalType
		rule.IntervalValue = in.IntervalValue
		rule.Message = strings.TrimSpace(in.Message)
		rule.EndDate = endDate
		rule.EndingCount = endingCount

		err = UpdateVersioned(e.Db.Conn.WithContext(ctx), &models.RecurringRule{}, rule.ID, rule.Version, map[string]any{
			"name":           rule.Name,
			"interval_type":  rule.IntervalType,
			"interval_value": rule.IntervalValue,
			"message":        rule.Message,
			"end_date":       rule.EndDate,
			"ending_count":   rule.EndingCount,
		})
		if err != nil {
			return err
		}
		rule.Version++
		updated = rule
		return nil
	})
	if err != nil {
		return nil, err
	}

	ruleLogger().Info("Recurring rule updated", zap.Reflect("rule", updated))
	return updated, nil
}

func (e *Engine) deleteRecurringRule(ctx context.Context, userID string, id uint) error {
	rule, _, err := loadOwned(ctx, e, userID, id, recurringTank, "recurring rule")
	if err != nil {
		return err
	}
	if err := e.Db.Conn.WithContext(ctx).Delete(&models.RecurringRule{}, rule.ID).Error; err != nil {
		return err
	}
	ruleLogger().Info("Recurring rule deleted", zap.Reflect("rule", rule))
	return nil
}

type IRulesImpl struct {
	engine *Engine
}

func (ir *IRulesImpl) ListThresholdConditions(ctx context.Context, tankID string, sensor models.SensorKind) ([]models.ThresholdCondition, error) {
	return ir.engine.listThresholdConditions(ctx, tankID, sensor)
}

func (ir *IRulesImpl) GetFeedIncreaseRule(ctx context.Context, tankID string) (*models.FeedIncreaseRule, error) {
	return ir.engine.getFeedIncreaseRule(ctx, tankID)
}

func (ir *IRulesImpl) ListFeedIncreaseRules(ctx context.Context) ([]models.FeedIncreaseRule, error) {
	return ir.engine.listFeedIncreaseRules(ctx)
}

func (ir *IRulesImpl) ListRecurringRules(ctx context.Context) ([]models.RecurringRule, error) {
	return ir.engine.listRecurringRules(ctx)
}

func (ir *IRulesImpl) ListTankRules(ctx context.Context, userID, tankID string) (*models.TankRules, error) {
	return ir.engine.listTankRules(ctx, userID, tankID)
}

func (ir *IRulesImpl) CreateThresholdCondition(ctx context.Context, userID string, in models.ThresholdInput) (*models.ThresholdCondition, error) {
	return ir.engine.createThresholdCondition(ctx, userID, in)
}

func (ir *IRulesImpl) UpdateThresholdCondition(ctx context.Context, userID string, id uint, in models.ThresholdInput) (*models.ThresholdCondition, error) {
	return ir.engine.updateThresholdCondition(ctx, userID, id, in)
}

func (ir *IRulesImpl) DeleteThresholdCondition(ctx context.Context, userID string, id uint) error {
	return ir.engine.deleteThresholdCondition(ctx, userID, id)
}

func (ir *IRulesImpl) CreateFeedIncreaseRule(ctx context.Context, userID string, in models.FeedIncreaseInput) (*models.FeedIncreaseRule, error) {
	return ir.engine.createFeedIncreaseRule(ctx, userID, in)
}

func (ir *IRulesImpl) UpdateFeedIncreaseRule(ctx context.Context, userID string, id uint, in models.FeedIncreaseInput) (*models.FeedIncreaseRule, error) {
	return ir.engine.updateFeedIncreaseRule(ctx, userID, id, in)
}

func (ir *IRulesImpl) DeleteFeedIncreaseRule(ctx context.Context, userID string, id uint) error {
	return ir.engine.deleteFeedIncreaseRule(ctx, userID, id)
}

func (ir *IRulesImpl) CreateRecurringRule(ctx context.Context, userID string, in models.RecurringInput) (*models.RecurringRule, error) {
	return ir.engine.createRecurringRule(ctx, userID, in)
}

func (ir *IRulesImpl) UpdateRecurringRule(ctx context.Context, userID string, id uint, in models.RecurringInput) (*models.RecurringRule, error) {
	return ir.engine.updateRecurringRule(ctx, userID, id, in)
}

func (ir *IRulesImpl) DeleteRecurringRule(ctx context.Context, userID string, id uint) error {
	return ir.engine.deleteRecurringRule(ctx, userID, id)
}

func (ir *IRulesImpl) CopyRule(ctx context.Context, userID string, req models.CopyRequest) (*models.CopyResult, error) {
	return ir.engine.copyRule(ctx, userID, req)
}

func (e *Engine) GetIRules() IRules {
	return &IRulesImpl{engine: e}
}
