package engine

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/db"
	"liyu1981.xyz/aqua-condition-service/pkg/localtime"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
	"liyu1981.xyz/aqua-condition-service/pkg/notify"
)

type ITanks interface {
	GetTank(ctx context.Context, tankID string) (*models.Tank, error)
	GetOwnedTank(ctx context.Context, userID, tankID string) (*models.Tank, error)
	Invalidate(tankID string)
}

type ITokens interface {
	ListTokens(ctx context.Context, userID string) ([]string, error)
	PruneToken(ctx context.Context, token string) error
	RegisterToken(ctx context.Context, userID, token string) error
}

type IRules interface {
	ListThresholdConditions(ctx context.Context, tankID string, sensor models.SensorKind) ([]models.ThresholdCondition, error)
	GetFeedIncreaseRule(ctx context.Context, tankID string) (*models.FeedIncreaseRule, error)
	ListFeedIncreaseRules(ctx context.Context) ([]models.FeedIncreaseRule, error)
	ListRecurringRules(ctx context.Context) ([]models.RecurringRule, error)
	ListTankRules(ctx context.Context, userID, tankID string) (*models.TankRules, error)

	CreateThresholdCondition(ctx context.Context, userID string, in models.ThresholdInput) (*models.ThresholdCondition, error)
	UpdateThresholdCondition(ctx context.Context, userID string, id uint, in models.ThresholdInput) (*models.ThresholdCondition, error)
	DeleteThresholdCondition(ctx context.Context, userID string, id uint) error

	CreateFeedIncreaseRule(ctx context.Context, userID string, in models.FeedIncreaseInput) (*models.FeedIncreaseRule, error)
	UpdateFeedIncreaseRule(ctx context.Context, userID string, id uint, in models.FeedIncreaseInput) (*models.FeedIncreaseRule, error)
	DeleteFeedIncreaseRule(ctx context.Context, userID string, id uint) error

	CreateRecurringRule(ctx context.Context, userID string, in models.RecurringInput) (*models.RecurringRule, error)
	UpdateRecurringRule(ctx context.Context, userID string, id uint, in models.RecurringInput) (*models.RecurringRule, error)
	DeleteRecurringRule(ctx context.Context, userID string, id uint) error

	CopyRule(ctx context.Context, userID string, req models.CopyRequest) (*models.CopyResult, error)
}

type IEvaluator interface {
	Evaluate(ctx context.Context, tankID string, sensor models.SensorKind, value *float64) ([]models.Task, error)
}

type ILedger interface {
	Create(ctx context.Context, tx *gorm.DB, tankID, message string, taskType models.TaskType) (*models.Task, error)
	Delete(ctx context.Context, userID string, taskID uint) (*models.Retraction, error)
	ListTankTasks(ctx context.Context, userID, tankID string) ([]models.Task, error)
	CountUnresolved(ctx context.Context, userID string) (int64, error)
}

type IHusbandry interface {
	IngestSensorReading(ctx context.Context, tankID string, timestamp time.Time, values models.SensorValues) (*models.IngestResult, error)
	AddHusbandryRecord(ctx context.Context, userID string, in models.HusbandryInput) (*models.IngestResult, error)
	FeedingRollup(ctx context.Context, tankID string, from, to time.Time) (models.FeedingRollup, error)
}

type Engine struct {
	Db        db.DB
	Zone      *localtime.Zone
	Tanks     ITanks
	Tokens    ITokens
	Rules     IRules
	Ledger    ILedger
	Evaluator IEvaluator
	Husbandry IHusbandry
	Fanout    notify.IDispatcher

	tankCache *cache.Cache
}

type ServiceOpts struct {
	Tanks     ITanks
	Tokens    ITokens
	Rules     IRules
	Ledger    ILedger
	Evaluator IEvaluator
	Husbandry IHusbandry
	Fanout    notify.IDispatcher
}

// NewEngine wires the default services. The fan-out is left empty until WithServices
// supplies one, because the dispatcher itself depends on the engine's token store and ledger.
func NewEngine(database db.DB, zone *localtime.Zone, tankCacheTTL time.Duration) *Engine {
	e := &Engine{
		Db:        database,
		Zone:      zone,
		tankCache: cache.New(tankCacheTTL, 2*tankCacheTTL),
	}
	return e.WithServices(ServiceOpts{
		Tanks:     e.GetITanks(),
		Tokens:    e.GetITokens(),
		Rules:     e.GetIRules(),
		Ledger:    e.GetILedger(),
		Evaluator: e.GetIEvaluator(),
		Husbandry: e.GetIHusbandry(),
	})
}

func (e *Engine) WithServices(opts ServiceOpts) *Engine {
	if opts.Tanks != nil {
		e.Tanks = opts.Tanks
	}
	if opts.Tokens != nil {
		e.Tokens = opts.Tokens
	}
	if opts.Rules != nil {
		e.Rules = opts.Rules
	}
	if opts.Ledger != nil {
		e.Ledger = opts.Ledger
	}
	if opts.Evaluator != nil {
		e.Evaluator = opts.Evaluator
	}
	if opts.Husbandry != nil {
		e.Husbandry = opts.Husbandry
	}
	if opts.Fanout != nil {
		e.Fanout = opts.Fanout
	}
	return e
}

func (e *Engine) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return e.Db.Conn.WithContext(ctx)
}

// Announce hands a freshly committed task to the fan-out. Callers must only announce
// after the transaction that created the task has committed.
func (e *Engine) Announce(ctx context.Context, task models.Task, tank models.Tank) error {
	if e.Fanout == nil {
		return nil
	}
	return e.Fanout.Dispatch(ctx, notify.Dispatch{
		UserID:    tank.UserID,
		TankID:    tank.ID,
		TankName:  tank.Name,
		TaskID:    task.ID,
		Message:   task.Message,
		CreatedAt: task.CreatedAt,
	})
}

func (e *Engine) Retract(ctx context.Context, r models.Retraction) error {
	if e.Fanout == nil {
		return nil
	}
	return e.Fanout.Dispatch(ctx, notify.Dispatch{
		UserID:    r.UserID,
		TankID:    r.Task.TankID,
		TankName:  r.TankName,
		TaskID:    r.Task.ID,
		Message:   r.Task.Message,
		CreatedAt: r.Task.CreatedAt,
		Deleted:   true,
	})
}

// announceLogged is Announce for paths where a sink failure must not fail the caller.
func (e *Engine) announceLogged(ctx context.Context, task models.Task, tank models.Tank, logger *zap.Logger) {
	if err := e.Announce(ctx, task, tank); err != nil {
		logger.Warn("Task fan-out failed", zap.Reflect("task", task), zap.Error(err))
	}
}

// DeleteTask removes an owned task and emits the retraction. The task stays deleted
// even when the retraction cannot be delivered; that case returns a SinkFailure.
func (e *Engine) DeleteTask(ctx context.Context, userID string, taskID uint) (*models.Retraction, error) {
	r, err := e.Ledger.Delete(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := e.Retract(ctx, *r); err != nil {
		common.GetLoggerWith(
			common.LoggerNameEngineCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryLedger),
		).Warn("Task retraction fan-out failed", zap.Reflect("retraction", r), zap.Error(err))
		return r, err
	}
	return r, nil
}
