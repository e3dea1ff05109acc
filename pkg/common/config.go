package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

type Config struct {
	DBType   string
	DBPath   string
	MysqlDSN string

	HttpHostPort string
	DefaultRate  float64
	DefaultBurst int

	LocalTimezone    string
	FeedTick         time.Duration
	RecurrenceTick   time.Duration
	SchedulerWorkers int
	TankCacheTTL     time.Duration

	PushProvider       string
	FcmProjectID       string
	FcmCredentialsFile string
	PushTitle          string
	PushTTLSeconds     int
	ShoutrrrTimeout    time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	SocketMaxConnections int
}

const (
	DBTypeFile   = "file"
	DBTypeMemory = "memory"
	DBTypeMysql  = "mysql"

	PushProviderFCM      = "fcm"
	PushProviderShoutrrr = "shoutrrr"
	PushProviderNone     = "none"

	DefaultPushTitle = "긴급 작업이 있습니다"
)

func DefaultConfig() Config {
	return Config{
		DBType:               DBTypeFile,
		DBPath:               "aqua.db",
		HttpHostPort:         ":1080",
		DefaultRate:          5,
		DefaultBurst:         10,
		LocalTimezone:        "Asia/Seoul",
		FeedTick:             time.Hour,
		RecurrenceTick:       5 * time.Minute,
		SchedulerWorkers:     4,
		TankCacheTTL:         5 * time.Minute,
		PushProvider:         PushProviderNone,
		PushTitle:            DefaultPushTitle,
		PushTTLSeconds:       7 * 24 * 60 * 60,
		ShoutrrrTimeout:      10 * time.Second,
		KafkaTopic:           "aqua-tasks",
		SocketMaxConnections: 8,
	}
}

// LoadConfig reads .env when present, then overlays the process environment on the defaults.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return Config{}, fmt.Errorf("loading env files %v: %w", envFiles, err)
	}
	return ConfigFromEnv()
}

func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var merr *multierror.Error

	readString(EnvKeyAquaDBType, &cfg.DBType)
	readString(EnvKeyAquaDbPath, &cfg.DBPath)
	readString(EnvKeyAquaMysqlDSN, &cfg.MysqlDSN)
	readString(EnvKeyAquaHttpHostPort, &cfg.HttpHostPort)
	readString(EnvKeyAquaLocalTimezone, &cfg.LocalTimezone)
	readString(EnvKeyAquaPushProvider, &cfg.PushProvider)
	readString(EnvKeyAquaFcmProjectID, &cfg.FcmProjectID)
	readString(EnvKeyAquaFcmCredentialsFile, &cfg.FcmCredentialsFile)
	readString(EnvKeyAquaPushTitle, &cfg.PushTitle)
	readString(EnvKeyAquaKafkaTopic, &cfg.KafkaTopic)

	merr = multierror.Append(merr,
		readFloat(EnvKeyAquaDefaultRate, &cfg.DefaultRate),
		readInt(EnvKeyAquaDefaultBurst, &cfg.DefaultBurst),
		readDuration(EnvKeyAquaFeedTick, &cfg.FeedTick),
		readDuration(EnvKeyAquaRecurrenceTick, &cfg.RecurrenceTick),
		readInt(EnvKeyAquaSchedulerWorkers, &cfg.SchedulerWorkers),
		readDuration(EnvKeyAquaTankCacheTTL, &cfg.TankCacheTTL),
		readInt(EnvKeyAquaPushTTLSeconds, &cfg.PushTTLSeconds),
		readDuration(EnvKeyAquaShoutrrrTimeout, &cfg.ShoutrrrTimeout),
		readInt(EnvKeyAquaSocketMaxConnection, &cfg.SocketMaxConnections),
	)

	if brokers := strings.TrimSpace(os.Getenv(EnvKeyAquaKafkaBrokers)); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	merr = multierror.Append(merr, cfg.Validate())
	if err := merr.ErrorOrNil(); err != nil {
		return cfg, WrapError(ErrorCategoryValidation, err, "invalid configuration")
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var merr *multierror.Error

	switch c.DBType {
	case DBTypeFile, DBTypeMemory:
	case DBTypeMysql:
		if c.MysqlDSN == "" {
			merr = multierror.Append(merr, fmt.Errorf("%s is required when %s=mysql", EnvKeyAquaMysqlDSN, EnvKeyAquaDBType))
		}
	default:
		merr = multierror.Append(merr, fmt.Errorf("unknown %s: %q", EnvKeyAquaDBType, c.DBType))
	}

	switch c.PushProvider {
	case PushProviderNone, PushProviderShoutrrr:
	case PushProviderFCM:
		if c.FcmProjectID == "" {
			merr = multierror.Append(merr, fmt.Errorf("%s is required when %s=fcm", EnvKeyAquaFcmProjectID, EnvKeyAquaPushProvider))
		}
	default:
		merr = multierror.Append(merr, fmt.Errorf("unknown %s: %q", EnvKeyAquaPushProvider, c.PushProvider))
	}

	if _, err := time.LoadLocation(c.LocalTimezone); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", EnvKeyAquaLocalTimezone, err))
	}
	if c.FeedTick <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("%s must be positive", EnvKeyAquaFeedTick))
	}
	if c.RecurrenceTick <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("%s must be positive", EnvKeyAquaRecurrenceTick))
	}
	if c.SchedulerWorkers < 1 {
		merr = multierror.Append(merr, fmt.Errorf("%s must be at least 1", EnvKeyAquaSchedulerWorkers))
	}
	if c.PushTTLSeconds < 0 {
		merr = multierror.Append(merr, fmt.Errorf("%s must not be negative", EnvKeyAquaPushTTLSeconds))
	}

	return merr.ErrorOrNil()
}

func readString(key string, dst *string) {
	if v, found := os.LookupEnv(key); found && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func readFloat(key string, dst *float64) error {
	v, found := os.LookupEnv(key)
	if !found || strings.TrimSpace(v) == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("invalid %s, should be a float64 value: %w", key, err)
	}
	*dst = f
	return nil
}

func readInt(key string, dst *int) error {
	v, found := os.LookupEnv(key)
	if !found || strings.TrimSpace(v) == "" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s, should be an int value: %w", key, err)
	}
	*dst = i
	return nil
}

func readDuration(key string, dst *time.Duration) error {
	v, found := os.LookupEnv(key)
	if !found || strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s, should be a duration like 5m: %w", key, err)
	}
	*dst = d
	return nil
}
