package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyCareDBType string = "CARE_DB_TYPE"
	EnvKeyCareDbPath string = "CARE_DB_PATH"

	EnvKeyCareWsHostPort   string = "CARE_WS_HOST_PORT"
	EnvKeyCareLivePeriodMs string = "CARE_LIVE_PERIOD_MS"

	EnvKeyCareJwtSecret      string = "CARE_JWT_SECRET"
	EnvKeyCareScriptsDir     string = "CARE_SCRIPTS_DIR"
	EnvKeyCareReportsDir     string = "CARE_REPORTS_DIR"
	EnvKeyCareReportEndpoint string = "CARE_REPORT_ENDPOINT"

	EnvKeyCareDefaultRate  string = "CARE_DEFAULT_RATE"
	EnvKeyCareDefaultBurst string = "CARE_DEFAULT_BURST"

	LoggerNameCareStore    string = "care_store"
	LoggerNameWsServer     string = "ws_server"
	LoggerNameScheduler    string = "scheduler"
	LoggerNameScriptRunner string = "script_runner"
	LoggerNameRowSource    string = "row_source"

	LoggerFieldCareCategory     string = "category"
	LoggerCategoryCareBuild     string = "build"
	LoggerCategoryCareNotify    string = "notify"
	LoggerCategoryCareSession   string = "session"
	LoggerCategoryCareDispatch  string = "dispatch"
	LoggerCategoryCareBroadcast string = "broadcast"
)
