package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/db"
	"liyu1981.xyz/aqua-condition-service/pkg/engine"
	"liyu1981.xyz/aqua-condition-service/pkg/localtime"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
	notifymocks "liyu1981.xyz/aqua-condition-service/pkg/notify/mocks"
	_ "liyu1981.xyz/aqua-condition-service/pkg/testing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"),
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)
}

const testUser = "user-1"

type harness struct {
	engine *engine.Engine
	ctrl   *gomock.Controller
	clock  *localtime.FixedClock
	fanout *notifymocks.MockIDispatcher
}

func newHarness(t *testing.T, now time.Time) *harness {
	t.Helper()
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	database, err := db.NewInstance(db.UseIsolatedMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	clock := localtime.NewFixedClock(now)
	fanout := notifymocks.NewMockIDispatcher(ctrl)
	e := engine.NewEngine(*database, localtime.MustZone("Asia/Seoul", clock), time.Minute).
		WithServices(engine.ServiceOpts{Fanout: fanout})

	return &harness{engine: e, ctrl: ctrl, clock: clock, fanout: fanout}
}

func (h *harness) seedTank(t *testing.T, name string) *models.Tank {
	t.Helper()
	tank := models.Tank{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    testUser,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, h.engine.Db.Conn.Create(&tank).Error)
	return &tank
}

func (h *harness) tasks(t *testing.T, tankID string) []models.Task {
	t.Helper()
	var tasks []models.Task
	require.NoError(t, h.engine.Db.Conn.Where("tank_id = ?", tankID).Order("id").Find(&tasks).Error)
	return tasks
}
