package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

// GetInstance returns the process-wide database, opening and migrating it on first use.
func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		if instance, err = NewInstance(dialector); err != nil {
			log.Fatal("Failed to open database: ", err)
		}
	})
	return instance
}

// NewInstance opens and migrates a database that is not shared with GetInstance.
func NewInstance(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameEngineCore, zap.String(common.LoggerFieldCategory, "db"))

	conn, err := gorm.Open(dialector, &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if dialector.Name() == "sqlite" {
		if err := tuneSqlite(conn); err != nil {
			return nil, err
		}
	}

	if err := conn.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	return &DB{Conn: conn}, nil
}

func tuneSqlite(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	// sqlite allows one writer; a single connection serialises transactions instead of
	// failing them with SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("enable sqlite foreign key support: %w", err)
	}
	if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		return fmt.Errorf("set sqlite journal mode: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(common.EnvKeyAquaDbPath); !found {
		dbPath = "aqua.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

// UseIsolatedMemorySqliteDialector names a private in-memory database, so each caller
// (typically each test) starts from empty tables.
func UseIsolatedMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func UseMysqlDialector() gorm.Dialector {
	return UseMysqlDialectorWithDSN(os.Getenv(common.EnvKeyAquaMysqlDSN))
}

func UseMysqlDialectorWithDSN(dsn string) gorm.Dialector {
	if !strings.Contains(dsn, "parseTime=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "parseTime=true&loc=UTC"
	}
	return mysql.Open(dsn)
}

// UseDialector picks the dialector for a configured database type.
func UseDialector(cfg common.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case common.DBTypeFile:
		return sqlite.Open(cfg.DBPath), nil
	case common.DBTypeMemory:
		return UseMemorySqliteDialector(), nil
	case common.DBTypeMysql:
		return UseMysqlDialectorWithDSN(cfg.MysqlDSN), nil
	}
	return nil, fmt.Errorf("unknown %s: %s", common.EnvKeyAquaDBType, cfg.DBType)
}
