package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/metrics"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

func husbandryLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameEngineCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryHusbandry),
	)
}

func (e *Engine) checkRecordTime(tank *models.Tank, timestamp time.Time) error {
	if timestamp.IsZero() {
		return common.Validation("timestamp is required")
	}
	if timestamp.Before(tank.CreatedAt) {
		return common.Validation("timestamp %s precedes creation of tank %s", timestamp.Format(time.RFC3339), tank.ID)
	}
	return nil
}

func findRecord(tx *gorm.DB, tankID string, timestamp time.Time) (*models.HusbandryRecord, error) {
	var record models.HusbandryRecord
	err := tx.Where("tank_id = ? AND timestamp = ?", tankID, timestamp).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ingestSensorReading upserts the record at exactly timestamp. Stored values win over
// incoming ones, so only sensors that were empty before can change, and only those are
// evaluated. A first insert evaluates everything provided.
func (e *Engine) ingestSensorReading(ctx context.Context, tankID string, timestamp time.Time, values models.SensorValues) (*models.IngestResult, error) {
	result, err := e.ingestSensorReadingTx(ctx, tankID, timestamp, values)
	status := "ok"
	if err != nil {
		status = "rejected"
	}
	metrics.IngestionRequestsTotal.WithLabelValues("sensor", status).Inc()
	return result, err
}

func (e *Engine) ingestSensorReadingTx(ctx context.Context, tankID string, timestamp time.Time, values models.SensorValues) (*models.IngestResult, error) {
	tank, err := e.Tanks.GetTank(ctx, tankID)
	if err != nil {
		return nil, err
	}
	timestamp = timestamp.UTC()
	if err := e.checkRecordTime(tank, timestamp); err != nil {
		return nil, err
	}

	result := &models.IngestResult{}
	changed := models.SensorValues{}

	err = e.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findRecord(tx, tank.ID, timestamp)
		if err != nil {
			return err
		}

		if record == nil {
			record = &models.HusbandryRecord{TankID: tank.ID, Timestamp: timestamp}
			for kind, v := range values {
				if v != nil && kind.Valid() {
					record.SetSensor(kind, v)
					changed[kind] = v
				}
			}
			result.Created = true
			result.Record = record
			return tx.Create(record).Error
		}

		for kind, v := range values {
			if v == nil || !kind.Valid() || record.Sensor(kind) != nil {
				continue
			}
			record.SetSensor(kind, v)
			changed[kind] = v
		}
		result.Record = record
		if len(changed) == 0 {
			return nil
		}
		return tx.Save(record).Error
	})
	if err != nil {
		return nil, err
	}

	husbandryLogger().Info("Sensor reading saved",
		zap.Reflect("record", result.Record),
		zap.Bool("created", result.Created),
		zap.Int("changed", len(changed)),
	)

	e.evaluateAll(ctx, tank.ID, changed, result)
	return result, nil
}

// addHusbandryRecord is the manual entry path: provided values overwrite stored ones,
// feedings and supplements are replaced when given, and every provided sensor is evaluated.
func (e *Engine) addHusbandryRecord(ctx context.Context, userID string, in models.HusbandryInput) (*models.IngestResult, error) {
	result, err := e.addHusbandryRecordTx(ctx, userID, in)
	status := "ok"
	if err != nil {
		status = "rejected"
	}
	metrics.IngestionRequestsTotal.WithLabelValues("husbandry", status).Inc()
	return result, err
}

func (e *Engine) addHusbandryRecordTx(ctx context.Context, userID string, in models.HusbandryInput) (*models.IngestResult, error) {
	tank, err := e.Tanks.GetOwnedTank(ctx, userID, in.TankID)
	if err != nil {
		return nil, err
	}
	timestamp := in.Timestamp.UTC()
	if err := e.checkRecordTime(tank, timestamp); err != nil {
		return nil, err
	}
	for _, f := range in.Feedings {
		if f.Amount < 0 {
			return nil, common.Validation("feeding amount must not be negative")
		}
	}

	result := &models.IngestResult{}
	provided := models.SensorValues{}

	err = e.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findRecord(tx, tank.ID, timestamp)
		if err != nil {
			return err
		}
		if record == nil {
			record = &models.HusbandryRecord{TankID: tank.ID, Timestamp: timestamp}
			result.Created = true
		}

		for kind, v := range in.Values {
			if v != nil && kind.Valid() {
				record.SetSensor(kind, v)
				provided[kind] = v
			}
		}
		if in.IsClean != nil {
			record.IsClean = in.IsClean
		}

		if err := tx.Omit("Feedings", "Supplements").Save(record).Error; err != nil {
			return err
		}

		if in.Feedings != nil {
			if err := tx.Where("husbandry_record_id = ?", record.ID).Delete(&models.FeedingRecord{}).Error; err != nil {
				return err
			}
			feedings := make([]models.FeedingRecord, 0, len(in.Feedings))
			for _, f := range in.Feedings {
				feedings = append(feedings, models.FeedingRecord{
					HusbandryRecordID: record.ID,
					TankID:            tank.ID,
					Type:              f.Type,
					Amount:            f.Amount,
					CreatedAt:         timestamp,
				})
			}
			if len(feedings) > 0 {
				if err := tx.Create(&feedings).Error; err != nil {
					return err
				}
			}
		}

		if in.Supplements != nil {
			if err := tx.Where("husbandry_record_id = ?", record.ID).Delete(&models.SupplementDosing{}).Error; err != nil {
				return err
			}
			supplements := make([]models.SupplementDosing, 0, len(in.Supplements))
			for _, s := range in.Supplements {
				supplements = append(supplements, models.SupplementDosing{
					HusbandryRecordID: record.ID,
					Name:              s.Name,
					Dosage:            s.Dosage,
				})
			}
			if len(supplements) > 0 {
				if err := tx.Create(&supplements).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Preload("Feedings").Preload("Supplements").First(record, record.ID).Error; err != nil {
			return err
		}
		result.Record = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	husbandryLogger().Info("Husbandry record saved", zap.Reflect("record", result.Record), zap.Bool("created", result.Created))

	e.evaluateAll(ctx, tank.ID, provided, result)
	return result, nil
}

// evaluateAll runs one evaluation per sensor concurrently and waits for all of them.
// Per-sensor failures are reported in the result, never as a call failure.
func (e *Engine) evaluateAll(ctx context.Context, tankID string, values models.SensorValues, result *models.IngestResult) {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	result.Tasks = []models.Task{}
	result.Evaluated = []models.SensorKind{}

	for _, kind := range models.SensorKinds {
		v, ok := values[kind]
		if !ok || v == nil {
			continue
		}
		result.Evaluated = append(result.Evaluated, kind)

		g.Go(func() error {
			tasks, err := e.Evaluator.Evaluate(ctx, tankID, kind, v)

			mu.Lock()
			defer mu.Unlock()
			result.Tasks = append(result.Tasks, tasks...)
			if err != nil {
				if result.Errors == nil {
					result.Errors = map[models.SensorKind]string{}
				}
				result.Errors[kind] = err.Error()
				husbandryLogger().Warn("Sensor evaluation failed", zap.String("sensor", string(kind)), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Engine) feedingRollup(ctx context.Context, tankID string, from, to time.Time) (models.FeedingRollup, error) {
	var rollup models.FeedingRollup
	err := e.Db.Conn.WithContext(ctx).
		Model(&models.FeedingRecord{}).
		Select("COALESCE(SUM(amount), 0) AS total, COALESCE(MAX(amount), 0) AS max, COUNT(*) AS count").
		Where("tank_id = ? AND created_at BETWEEN ? AND ?", tankID, from.UTC(), to.UTC()).
		Scan(&rollup).Error
	return rollup, err
}

type IHusbandryImpl struct {
	engine *Engine
}

func (ih *IHusbandryImpl) IngestSensorReading(ctx context.Context, tankID string, timestamp time.Time, values models.SensorValues) (*models.IngestResult, error) {
	return ih.engine.ingestSensorReading(ctx, tankID, timestamp, values)
}

func (ih *IHusbandryImpl) AddHusbandryRecord(ctx context.Context, userID string, in models.HusbandryInput) (*models.IngestResult, error) {
	return ih.engine.addHusbandryRecord(ctx, userID, in)
}

func (ih *IHusbandryImpl) FeedingRollup(ctx context.Context, tankID string, from, to time.Time) (models.FeedingRollup, error) {
	return ih.engine.feedingRollup(ctx, tankID, from, to)
}

func (e *Engine) GetIHusbandry() IHusbandry {
	return &IHusbandryImpl{engine: e}
}
