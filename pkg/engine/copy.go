package engine

import (
	"context"

	"go.uber.org/zap"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

// ruleCopier duplicates one rule kind onto target by re-running that kind's creation path.
type ruleCopier func(ctx context.Context, e *Engine, userID string, ruleID uint, target *models.Tank) (*models.CopyResult, error)

var ruleCopiers = map[models.RuleKind]ruleCopier{
	models.RuleKindFeeding:      copyThreshold(models.ConditionCategoryFeeding),
	models.RuleKindAlert:        copyThreshold(models.ConditionCategoryAlert),
	models.RuleKindRecurring:    copyRecurring,
	models.RuleKindFeedIncrease: copyFeedIncrease,
}

func rejectSameTank(sourceTankID string, target *models.Tank) error {
	if sourceTankID == target.ID {
		return common.Validation("cannot copy a rule onto the tank it belongs to")
	}
	return nil
}

func copyThreshold(category models.ConditionCategory) ruleCopier {
	return func(ctx context.Context, e *Engine, userID string, ruleID uint, target *models.Tank) (*models.CopyResult, error) {
		source, _, err := loadOwned(ctx, e, userID, ruleID, thresholdTank, "threshold condition")
		if err != nil {
			return nil, err
		}
		if source.Category != category {
			return nil, common.NotFound("%s condition %d not found", category, ruleID)
		}
		if err := rejectSameTank(source.TankID, target); err != nil {
			return nil, err
		}

		created, err := e.createThresholdCondition(ctx, userID, models.ThresholdInput{
			TankID:         target.ID,
			Name:           source.Name,
			Sensor:         source.Sensor,
			Operator:       source.Operator,
			Value:          source.Value,
			Category:       source.Category,
			Recommendation: source.Recommendation,
		})
		if err != nil {
			return nil, err
		}
		return &models.CopyResult{Kind: models.RuleKind(category), Threshold: created}, nil
	}
}

func copyRecurring(ctx context.Context, e *Engine, userID string, ruleID uint, target *models.Tank) (*models.CopyResult, error) {
	source, _, err := loadOwned(ctx, e, userID, ruleID, recurringTank, "recurring rule")
	if err != nil {
		return nil, err
	}
	if err := rejectSameTank(source.TankID, target); err != nil {
		return nil, err
	}

	in := models.RecurringInput{
		TankID:        target.ID,
		Name:          source.Name,
		IntervalType:  source.IntervalType,
		IntervalValue: source.IntervalValue,
		Message:       source.Message,
		EndingCount:   source.EndingCount,
	}
	if source.EndDate != nil {
		date := e.Zone.LocalDate(*source.EndDate)
		in.EndDate = &date
	}

	created, err := e.createRecurringRule(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return &models.CopyResult{Kind: models.RuleKindRecurring, Recurring: created}, nil
}

func copyFeedIncrease(ctx context.Context, e *Engine, userID string, ruleID uint, target *models.Tank) (*models.CopyResult, error) {
	source, _, err := loadOwned(ctx, e, userID, ruleID, feedIncreaseTank, "feed-increase rule")
	if err != nil {
		return nil, err
	}
	if err := rejectSameTank(source.TankID, target); err != nil {
		return nil, err
	}

	expected := source.ExpectedFeedAmount
	created, err := e.createFeedIncreaseRule(ctx, userID, models.FeedIncreaseInput{
		TankID:             target.ID,
		Name:               source.Name,
		ReferenceHour:      source.ReferenceHour,
		ExpectedFeedAmount: &expected,
	})
	if err != nil {
		return nil, err
	}
	return &models.CopyResult{Kind: models.RuleKindFeedIncrease, FeedIncrease: created}, nil
}

func (e *Engine) copyRule(ctx context.Context, userID string, req models.CopyRequest) (*models.CopyResult, error) {
	copier, ok := ruleCopiers[req.Kind]
	if !ok {
		return nil, common.Validation("unknown rule kind %q", req.Kind)
	}
	target, err := e.getOwnedTank(ctx, userID, req.TargetTankID)
	if err != nil {
		return nil, err
	}

	result, err := copier(ctx, e, userID, req.RuleID, target)
	if err != nil {
		return nil, err
	}

	ruleLogger().Info("Rule copied",
		zap.String("kind", string(req.Kind)),
		zap.Uint("sourceId", req.RuleID),
		zap.String("targetTankId", target.ID),
	)
	return result, nil
}
