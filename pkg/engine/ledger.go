package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/metrics"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

// createTask appends one task. It carries no de-duplication key; exactly-once lives
// in the callers' guards. Pass tx to take part in the caller's transaction.
func (e *Engine) createTask(ctx context.Context, tx *gorm.DB, tankID, message string, taskType models.TaskType) (*models.Task, error) {
	task := models.Task{
		TankID:    tankID,
		Message:   message,
		Type:      taskType,
		CreatedAt: e.Zone.Now(),
	}

	if err := e.conn(ctx, tx).Create(&task).Error; err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(taskType)).Inc()
	common.GetLoggerWith(
		common.LoggerNameEngineCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryLedger),
	).Info("Task saved", zap.Reflect("task", task))

	return &task, nil
}

func (e *Engine) deleteTask(ctx context.Context, userID string, taskID uint) (*models.Retraction, error) {
	var task models.Task
	err := e.Db.Conn.WithContext(ctx).Preload("Tank").First(&task, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFound("task %d not found", taskID)
	}
	if err != nil {
		return nil, err
	}
	if task.Tank == nil || task.Tank.UserID != userID {
		return nil, common.NotFound("task %d not found", taskID)
	}

	if err := e.Db.Conn.WithContext(ctx).Delete(&models.Task{}, task.ID).Error; err != nil {
		return nil, err
	}

	metrics.TasksDeletedTotal.Inc()
	r := &models.Retraction{Task: task, UserID: task.Tank.UserID, TankName: task.Tank.Name}
	r.Task.Tank = nil

	common.GetLoggerWith(
		common.LoggerNameEngineCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryLedger),
	).Info("Task deleted", zap.Reflect("retraction", r))

	return r, nil
}

func (e *Engine) listTankTasks(ctx context.Context, userID, tankID string) ([]models.Task, error) {
	if _, err := e.getOwnedTank(ctx, userID, tankID); err != nil {
		return nil, err
	}
	var tasks []models.Task
	err := e.Db.Conn.WithContext(ctx).
		Where("tank_id = ?", tankID).
		Order("created_at desc, id desc").
		Find(&tasks).Error
	return tasks, err
}

// countUnresolved counts every task on every tank the user owns. Tasks are resolved by deletion.
func (e *Engine) countUnresolved(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := e.Db.Conn.WithContext(ctx).
		Model(&models.Task{}).
		Joins("JOIN tanks ON tanks.id = tasks.tank_id").
		Where("tanks.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

type ILedgerImpl struct {
	engine *Engine
}

func (il *ILedgerImpl) Create(ctx context.Context, tx *gorm.DB, tankID, message string, taskType models.TaskType) (*models.Task, error) {
	return il.engine.createTask(ctx, tx, tankID, message, taskType)
}

func (il *ILedgerImpl) Delete(ctx context.Context, userID string, taskID uint) (*models.Retraction, error) {
	return il.engine.deleteTask(ctx, userID, taskID)
}

func (il *ILedgerImpl) ListTankTasks(ctx context.Context, userID, tankID string) ([]models.Task, error) {
	return il.engine.listTankTasks(ctx, userID, tankID)
}

func (il *ILedgerImpl) CountUnresolved(ctx context.Context, userID string) (int64, error) {
	return il.engine.countUnresolved(ctx, userID)
}

func (e *Engine) GetILedger() ILedger {
	return &ILedgerImpl{engine: e}
}
