package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/db"
	"danmiz.net/care-setting-service/pkg/scheduler"
	"danmiz.net/care-setting-service/pkg/scripts"
	"danmiz.net/care-setting-service/pkg/ws"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	careDbType := os.Getenv(common.EnvKeyCareDBType)
	switch careDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown CARE_DB_TYPE: " + careDbType)
	}

	wsHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyCareWsHostPort))
	if wsHostPort == "" {
		// fallback to default port
		wsHostPort = ":3413"
	}

	jwtSecret := os.Getenv(common.EnvKeyCareJwtSecret)
	if jwtSecret == "" {
		log.Fatal("CARE_JWT_SECRET not set, refusing to sign tokens without a secret")
	}

	var livePeriodMs int64
	if livePeriodMs, err = strconv.ParseInt(os.Getenv(common.EnvKeyCareLivePeriodMs), 10, 64); err != nil {
		log.Fatal("Invalid CARE_LIVE_PERIOD_MS, or not set in .env, should be an int value")
	}

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyCareDefaultRate), 64); err != nil {
		log.Fatal("Invalid CARE_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyCareDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid CARE_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	source := db.NewGormRowSource(dbInstance)
	runner := &scripts.ExecRunner{
		ScriptsDir: os.Getenv(common.EnvKeyCareScriptsDir),
		ReportsDir: os.Getenv(common.EnvKeyCareReportsDir),
	}

	sched := &scheduler.Scheduler{
		Source: source,
		Runner: runner,
		Period: time.Duration(livePeriodMs) * time.Millisecond,
	}

	// No partial dashboard: the first pull must succeed before any client
	// can connect.
	logger.Info("Running initial refresh")
	if err := sched.RefreshOnce(context.Background()); err != nil {
		log.Fatalf("initial refresh failed: %v", err)
	}
	logger.Info("Initial snapshot built")

	server := &ws.WSServer{
		Server:           gin.Default(),
		Source:           source,
		Runner:           runner,
		Snapshots:        sched,
		RateLimiterStore: ws.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
		TokenSecret:      []byte(jwtSecret),
		ReportEndpoint:   os.Getenv(common.EnvKeyCareReportEndpoint),
		ReportsDir:       os.Getenv(common.EnvKeyCareReportsDir),
	}
	server.Setup()
	sched.Broadcaster = server

	go sched.Run(context.Background())
	logger.Info("Broadcast scheduler started", zap.Int64("period_ms", livePeriodMs))

	logger.Info("Starting ws server on: " + wsHostPort)
	if err := server.Server.Run(wsHostPort); err != nil {
		log.Fatalf("ws server failed to serve: %v", err)
	}
}
