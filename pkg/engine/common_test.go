package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/db"
	"liyu1981.xyz/aqua-condition-service/pkg/localtime"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
	notifymocks "liyu1981.xyz/aqua-condition-service/pkg/notify/mocks"
	_ "liyu1981.xyz/aqua-condition-service/pkg/testing"
)

const testUser = "user-1"

// 2025-05-10 15:30 in Asia/Seoul.
var testNow = time.Date(2025, 5, 10, 6, 30, 0, 0, time.UTC)

type testEngine struct {
	*Engine
	ctrl   *gomock.Controller
	clock  *localtime.FixedClock
	fanout *notifymocks.MockIDispatcher
}

// GetTestEngineWithIsolatedSqlite returns an engine over a private in-memory database,
// a fixed Asia/Seoul clock and a mocked fan-out.
func GetTestEngineWithIsolatedSqlite(t *testing.T) *testEngine {
	t.Helper()
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	database, err := db.NewInstance(db.UseIsolatedMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	clock := localtime.NewFixedClock(testNow)
	zone := localtime.MustZone("Asia/Seoul", clock)
	fanout := notifymocks.NewMockIDispatcher(ctrl)

	e := NewEngine(*database, zone, time.Minute).WithServices(ServiceOpts{Fanout: fanout})
	return &testEngine{Engine: e, ctrl: ctrl, clock: clock, fanout: fanout}
}

func (te *testEngine) seedTank(t *testing.T, userID, name string) *models.Tank {
	t.Helper()
	tank := models.Tank{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    userID,
		CreatedAt: testNow.AddDate(0, 0, -30),
	}
	require.NoError(t, te.Db.Conn.Create(&tank).Error)
	return &tank
}

func (te *testEngine) seedCondition(t *testing.T, tank *models.Tank, sensor models.SensorKind, op models.Operator, value float64, category models.ConditionCategory) *models.ThresholdCondition {
	t.Helper()
	c, err := te.createThresholdCondition(context.Background(), tank.UserID, models.ThresholdInput{
		TankID:   tank.ID,
		Name:     string(sensor) + " " + string(op),
		Sensor:   sensor,
		Operator: op,
		Value:    value,
		Category: category,
	})
	require.NoError(t, err)
	return c
}

func (te *testEngine) countTasks(t *testing.T, tankID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, te.Db.Conn.Model(&models.Task{}).Where("tank_id = ?", tankID).Count(&n).Error)
	return n
}
