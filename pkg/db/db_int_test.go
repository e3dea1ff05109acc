package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}
}

func TestWithEnvPath(t *testing.T) {
	common.SetTestLoggerNop()
	skipUnlessIntegration(t)

	testPath := filepath.Join(t.TempDir(), "test.db")
	t.Setenv(common.EnvKeyAquaDbPath, testPath)

	instance, err := NewInstance(UseSqliteDialector())
	require.NoError(t, err)
	defer instance.Close()

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("Expected database file to be created at %s", testPath)
	}
}

func TestWithMysqlContainer(t *testing.T) {
	common.SetTestLoggerNop()
	skipUnlessIntegration(t)

	ctx := context.Background()
	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("aqua"),
		tcmysql.WithUsername("aqua"),
		tcmysql.WithPassword("aqua"),
	)
	defer func() {
		_ = testcontainers.TerminateContainer(container)
	}()
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	instance, err := NewInstance(UseMysqlDialectorWithDSN(dsn))
	require.NoError(t, err)
	defer instance.Close()

	require.NoError(t, instance.Conn.Create(&models.Tank{ID: "tank-1", Name: "T", UserID: "u1"}).Error)
	require.NoError(t, instance.Conn.Create(&models.Task{TankID: "tank-1", Message: "m", Type: models.TaskTypeRecurring}).Error)

	var tasks []models.Task
	require.NoError(t, instance.Conn.Where("tank_id = ?", "tank-1").Find(&tasks).Error)
	assert.Len(t, tasks, 1)
}
