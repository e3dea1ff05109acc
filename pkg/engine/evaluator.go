package engine

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/metrics"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

// evaluate fires one task per matching condition. Two matching conditions on the same
// reading produce two tasks; de-duplication over time belongs to the callers.
func (e *Engine) evaluate(ctx context.Context, tankID string, sensor models.SensorKind, value *float64) ([]models.Task, error) {
	if value == nil {
		return nil, nil
	}

	logger := common.GetLoggerWith(
		common.LoggerNameEngineCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEvaluator),
	)

	tank, err := e.Tanks.GetTank(ctx, tankID)
	if err != nil {
		return nil, err
	}

	conditions, err := e.Rules.ListThresholdConditions(ctx, tankID, sensor)
	if err != nil {
		return nil, err
	}

	var fired []models.Task
	var merr *multierror.Error
	for _, condition := range conditions {
		matched, known := condition.Operator.Compare(*value, condition.Value)
		if !known {
			metrics.ThresholdEvaluationsTotal.WithLabelValues(string(sensor), "unknown_operator").Inc()
			logger.Warn("Unknown operator compared as equality", zap.Reflect("condition", condition))
		}
		if !matched {
			metrics.ThresholdEvaluationsTotal.WithLabelValues(string(sensor), "quiet").Inc()
			continue
		}
		metrics.ThresholdEvaluationsTotal.WithLabelValues(string(sensor), "fired").Inc()

		logger.Info("Threshold match found", zap.Reflect("condition", condition), zap.Float64("value", *value))

		task, err := e.Ledger.Create(ctx, nil, tankID, condition.Message, models.TaskType(condition.Category))
		if err != nil {
			logger.Error("Threshold task not saved", zap.Uint("conditionId", condition.ID), zap.Error(err))
			merr = multierror.Append(merr, err)
			continue
		}
		fired = append(fired, *task)

		e.announceLogged(ctx, *task, *tank, logger)
	}

	return fired, merr.ErrorOrNil()
}

type IEvaluatorImpl struct {
	engine *Engine
}

func (ie *IEvaluatorImpl) Evaluate(ctx context.Context, tankID string, sensor models.SensorKind, value *float64) ([]models.Task, error) {
	return ie.engine.evaluate(ctx, tankID, sensor, value)
}

func (e *Engine) GetIEvaluator() IEvaluator {
	return &IEvaluatorImpl{engine: e}
}
