package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyAquaDBType   string = "AQUA_DB_TYPE"
	EnvKeyAquaDbPath   string = "AQUA_DB_PATH"
	EnvKeyAquaMysqlDSN string = "AQUA_MYSQL_DSN"

	EnvKeyAquaHttpHostPort string = "AQUA_HTTP_HOST_PORT"

	EnvKeyAquaDefaultRate  string = "AQUA_DEFAULT_RATE"
	EnvKeyAquaDefaultBurst string = "AQUA_DEFAULT_BURST"

	EnvKeyAquaLocalTimezone    string = "AQUA_LOCAL_TIMEZONE"
	EnvKeyAquaFeedTick         string = "AQUA_FEED_TICK"
	EnvKeyAquaRecurrenceTick   string = "AQUA_RECURRENCE_TICK"
	EnvKeyAquaSchedulerWorkers string = "AQUA_SCHEDULER_WORKERS"
	EnvKeyAquaTankCacheTTL     string = "AQUA_TANK_CACHE_TTL"

	EnvKeyAquaPushProvider        string = "AQUA_PUSH_PROVIDER"
	EnvKeyAquaFcmProjectID        string = "AQUA_FCM_PROJECT_ID"
	EnvKeyAquaFcmCredentialsFile  string = "AQUA_FCM_CREDENTIALS_FILE"
	EnvKeyAquaPushTitle           string = "AQUA_PUSH_TITLE"
	EnvKeyAquaPushTTLSeconds      string = "AQUA_PUSH_TTL_SECONDS"
	EnvKeyAquaShoutrrrTimeout     string = "AQUA_SHOUTRRR_TIMEOUT"
	EnvKeyAquaKafkaBrokers        string = "AQUA_KAFKA_BROKERS"
	EnvKeyAquaKafkaTopic          string = "AQUA_KAFKA_TOPIC"
	EnvKeyAquaSocketMaxConnection string = "AQUA_SOCKET_MAX_CONNECTIONS"

	EnvKeyAquaLogDir string = "AQUA_LOG_DIR"

	LoggerNameEngineCore    string = "engine_core"
	LoggerNameScheduler     string = "scheduler"
	LoggerNameNotify        string = "notify"
	LoggerNameRestfulServer string = "restful_server"

	LoggerFieldCategory string = "category"

	LoggerCategoryRule         string = "rule"
	LoggerCategoryEvaluator    string = "evaluator"
	LoggerCategoryLedger       string = "ledger"
	LoggerCategoryHusbandry    string = "husbandry"
	LoggerCategoryTank         string = "tank"
	LoggerCategoryFeedIncrease string = "feed_increase"
	LoggerCategoryRecurrence   string = "recurrence"
	LoggerCategoryRunner       string = "runner"
	LoggerCategoryFanout       string = "fanout"
	LoggerCategoryPush         string = "push"
	LoggerCategorySocket       string = "socket"
	LoggerCategoryStream       string = "stream"
)
