package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/engine/mocks"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

var readingAt = time.Date(2025, 5, 10, 6, 0, 0, 0, time.UTC)

func TestIngestSensorReadingFirstInsertEvaluatesAll(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	tank := te.seedTank(t, testUser, "Nursery")
	te.seedCondition(t, tank, models.SensorWaterTemperature, models.OperatorGT, 28, models.ConditionCategoryAlert)
	te.seedCondition(t, tank, models.SensorPH, models.OperatorLT, 6.5, models.ConditionCategoryAlert)

	te.fanout.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	result, err := te.Husbandry.IngestSensorReading(context.Background(), tank.ID, readingAt, models.SensorValues{
		models.SensorWaterTemperature: common.Ptr(29.0),
		models.SensorPH:               common.Ptr(6.0),
		models.SensorAlkalinity:       nil,
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.ElementsMatch(t, []models.SensorKind{models.SensorWaterTemperature, models.SensorPH}, result.Evaluated)
	assert.Len(t, result.Tasks, 2)
	assert.Empty(t, result.Errors)
	assert.Nil(t, result.Record.Alkalinity)
}

func TestIngestSensorReadingFillsOnlyMissingValues(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	tank := te.seedTank(t, testUser, "Nursery")
	te.seedCondition(t, tank, models.SensorWaterTemperature, models.OperatorGT, 28, models.ConditionCategoryAlert)
	ctx := context.Background()

	te.fanout.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := te.Husbandry.IngestSensorReading(ctx, tank.ID, readingAt, models.SensorValues{
		models.SensorWaterTemperature: common.Ptr(29.0),
	})
	require.NoError(t, err)

	result, err := te.Husbandry.IngestSensorReading(ctx, tank.ID, readingAt, models.SensorValues{
		models.SensorWaterTemperature: common.Ptr(31.0),
		models.SensorDissolvedOxygen:  common.Ptr(6.2),
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, []models.SensorKind{models.SensorDissolvedOxygen}, result.Evaluated)
	assert.Equal(t, 29.0, *result.Record.WaterTemperature)
	assert.Equal(t, 6.2, *result.Record.DissolvedOxygen)
	assert.EqualValues(t, 1, te.countTasks(t, tank.ID))

	var records int64
	require.NoError(t, te.Db.Conn.Model(&models.HusbandryRecord{}).Where("tank_id = ?", tank.ID).Count(&records).Error)
	assert.EqualValues(t, 1, records)
}

func TestIngestSensorReadingRejectsEarlyTimestampAndUnknownTank(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	tank := te.seedTank(t, testUser, "Nursery")
	ctx := context.Background()

	_, err := te.Husbandry.IngestSensorReading(ctx, tank.ID, tank.CreatedAt.Add(-time.Second), models.SensorValues{
		models.SensorPH: common.Ptr(7.0),
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = te.Husbandry.IngestSensorReading(ctx, "missing", readingAt, models.SensorValues{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAddHusbandryRecordOverwritesAndReplacesChildren(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	tank := te.seedTank(t, testUser, "Nursery")
	ctx := context.Background()

	first, err := te.Husbandry.AddHusbandryRecord(ctx, testUser, models.HusbandryInput{
		TankID:      tank.ID,
		Timestamp:   readingAt,
		IsClean:     common.Ptr(false),
		Values:      models.SensorValues{models.SensorPH: common.Ptr(7.0)},
		Feedings:    []models.FeedingInput{{Type: "pellet", Amount: 12}, {Type: "krill", Amount: 4}},
		Supplements: []models.SupplementInput{{Name: "vitamin C", Dosage: 1.5}},
	})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Len(t, first.Record.Feedings, 2)
	assert.Len(t, first.Record.Supplements, 1)

	second, err := te.Husbandry.AddHusbandryRecord(ctx, testUser, models.HusbandryInput{
		TankID:    tank.ID,
		Timestamp: readingAt,
		Values:    models.SensorValues{models.SensorPH: common.Ptr(7.4)},
		Feedings:  []models.FeedingInput{{Type: "pellet", Amount: 20}},
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Record.ID, second.Record.ID)
	assert.Equal(t, 7.4, *second.Record.PH)
	require.NotNil(t, second.Record.IsClean)
	assert.False(t, *second.Record.IsClean)
	require.Len(t, second.Record.Feedings, 1)
	assert.Equal(t, 20.0, second.Record.Feedings[0].Amount)
	assert.True(t, second.Record.Feedings[0].CreatedAt.Equal(readingAt))
	assert.Len(t, second.Record.Supplements, 1, "nil supplements keep the stored rows")
	assert.Equal(t, []models.SensorKind{models.SensorPH}, second.Evaluated)

	rollup, err := te.Husbandry.FeedingRollup(ctx, tank.ID, readingAt.Add(-time.Hour), readingAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 20.0, rollup.Total)
	assert.Equal(t, 20.0, rollup.Max)
	assert.EqualValues(t, 1, rollup.Count)
}

func TestAddHusbandryRecordOwnershipAndValidation(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	tank := te.seedTank(t, testUser, "Nursery")
	ctx := context.Background()

	_, err := te.Husbandry.AddHusbandryRecord(ctx, "user-2", models.HusbandryInput{TankID: tank.ID, Timestamp: readingAt})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = te.Husbandry.AddHusbandryRecord(ctx, testUser, models.HusbandryInput{
		TankID:    tank.ID,
		Timestamp: readingAt,
		Feedings:  []models.FeedingInput{{Amount: -1}},
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestFeedingRollupEmptyWindow(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	tank := te.seedTank(t, testUser, "Nursery")

	rollup, err := te.Husbandry.FeedingRollup(context.Background(), tank.ID, readingAt.Add(-time.Hour), readingAt)
	require.NoError(t, err)
	assert.Equal(t, models.FeedingRollup{}, rollup)
}

func TestIngestReportsPerSensorEvaluationErrors(t *testing.T) {
	te := GetTestEngineWithIsolatedSqlite(t)
	tank := te.seedTank(t, testUser, "Nursery")

	evaluator := mocks.NewMockIEvaluator(te.ctrl)
	te.WithServices(ServiceOpts{Evaluator: evaluator})

	evaluator.EXPECT().Evaluate(gomock.Any(), tank.ID, models.SensorPH, gomock.Any()).
		Return(nil, errors.New("condition store unavailable"))
	evaluator.EXPECT().Evaluate(gomock.Any(), tank.ID, models.SensorNitrite, gomock.Any()).
		Return([]models.Task{{ID: 7, TankID: tank.ID}}, nil)

	result, err := te.Husbandry.IngestSensorReading(context.Background(), tank.ID, readingAt, models.SensorValues{
		models.SensorPH:      common.Ptr(6.0),
		models.SensorNitrite: common.Ptr(0.4),
	})
	require.NoError(t, err)
	assert.Equal(t, "condition store unavailable", result.Errors[models.SensorPH])
	assert.NotContains(t, result.Errors, models.SensorNitrite)
	require.Len(t, result.Tasks, 1)
	assert.EqualValues(t, 7, result.Tasks[0].ID)
}
