package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

func (e *Engine) listTokens(ctx context.Context, userID string) ([]string, error) {
	var tokens []string
	err := e.Db.Conn.WithContext(ctx).
		Model(&models.DeviceToken{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("token", &tokens).Error
	return tokens, err
}

func (e *Engine) pruneToken(ctx context.Context, token string) error {
	return e.Db.Conn.WithContext(ctx).Where("token = ?", token).Delete(&models.DeviceToken{}).Error
}

// registerToken moves an existing token to userID, since a device belongs to whoever
// signed in on it last.
func (e *Engine) registerToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.Validation("device token must not be empty")
	}

	dt := models.DeviceToken{UserID: userID, Token: token, CreatedAt: e.Zone.Now()}
	err := e.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id"}),
	}).Create(&dt).Error

	if err == nil {
		common.GetLoggerWith(
			common.LoggerNameNotify,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryPush),
		).Info("Device token saved", zap.String("userId", userID))
	}
	return err
}

type ITokensImpl struct {
	engine *Engine
}

func (it *ITokensImpl) ListTokens(ctx context.Context, userID string) ([]string, error) {
	return it.engine.listTokens(ctx, userID)
}

func (it *ITokensImpl) PruneToken(ctx context.Context, token string) error {
	return it.engine.pruneToken(ctx, token)
}

func (it *ITokensImpl) RegisterToken(ctx context.Context, userID, token string) error {
	return it.engine.registerToken(ctx, userID, token)
}

func (e *Engine) GetITokens() ITokens {
	return &ITokensImpl{engine: e}
}
