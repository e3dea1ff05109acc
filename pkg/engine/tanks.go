package engine

import (
	"context"
	"errors"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

// getTank reads through a short-lived cache; the tank registry is owned elsewhere and
// tanks change rarely compared to how often ingestion and fan-out look them up.
func (e *Engine) getTank(ctx context.Context, tankID string) (*models.Tank, error) {
	if cached, found := e.tankCache.Get(tankID); found {
		tank := cached.(models.Tank)
		return &tank, nil
	}

	var tank models.Tank
	err := e.Db.Conn.WithContext(ctx).First(&tank, "id = ?", tankID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFound("tank %s not found", tankID)
	}
	if err != nil {
		return nil, err
	}

	e.tankCache.Set(tankID, tank, cache.DefaultExpiration)
	return &tank, nil
}

// getOwnedTank hides other users' tanks behind NotFound.
func (e *Engine) getOwnedTank(ctx context.Context, userID, tankID string) (*models.Tank, error) {
	tank, err := e.getTank(ctx, tankID)
	if err != nil {
		return nil, err
	}
	if tank.UserID != userID {
		common.GetLoggerWith(
			common.LoggerNameEngineCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryTank),
		).Info("Foreign tank access denied", zap.String("tankId", tankID), zap.String("userId", userID))
		return nil, common.NotFound("tank %s not found", tankID)
	}
	return tank, nil
}

func (e *Engine) invalidateTank(tankID string) {
	e.tankCache.Delete(tankID)
}

type ITanksImpl struct {
	engine *Engine
}

func (it *ITanksImpl) GetTank(ctx context.Context, tankID string) (*models.Tank, error) {
	return it.engine.getTank(ctx, tankID)
}

func (it *ITanksImpl) GetOwnedTank(ctx context.Context, userID, tankID string) (*models.Tank, error) {
	return it.engine.getOwnedTank(ctx, userID, tankID)
}

func (it *ITanksImpl) Invalidate(tankID string) {
	it.engine.invalidateTank(tankID)
}

func (e *Engine) GetITanks() ITanks {
	return &ITanksImpl{engine: e}
}
