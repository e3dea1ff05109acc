package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/db"
	"liyu1981.xyz/aqua-condition-service/pkg/engine"
	aquaHttp "liyu1981.xyz/aqua-condition-service/pkg/http"
	"liyu1981.xyz/aqua-condition-service/pkg/localtime"
	"liyu1981.xyz/aqua-condition-service/pkg/notify"
	"liyu1981.xyz/aqua-condition-service/pkg/scheduler"
)

func pushSink(ctx context.Context, cfg common.Config) (notify.PushSink, error) {
	switch cfg.PushProvider {
	case common.PushProviderFCM:
		var opts []option.ClientOption
		if cfg.FcmCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FcmCredentialsFile))
		}
		return notify.InitFCM(ctx, cfg.FcmProjectID, opts...)
	case common.PushProviderShoutrrr:
		return notify.NewShoutrrrSink(cfg.ShoutrrrTimeout), nil
	default:
		return notify.NopPushSink{}, nil
	}
}

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal("Invalid configuration, copy .env.example to .env first if in development: ", err)
	}

	logger := common.GetLogger()

	dialector, err := db.UseDialector(cfg)
	if err != nil {
		log.Fatal(err)
	}
	dbInstance, err := db.NewInstance(dialector)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	zone, err := localtime.NewZone(cfg.LocalTimezone, localtime.SystemClock{})
	if err != nil {
		log.Fatalf("invalid AQUA_LOCAL_TIMEZONE: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	push, err := pushSink(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create push sink: %v", err)
	}

	hub := notify.NewHub(cfg.SocketMaxConnections)

	aquaCore := engine.NewEngine(*dbInstance, zone, cfg.TankCacheTTL)
	dispatcherOpts := notify.DispatcherOpts{
		Push:       push,
		Socket:     hub,
		Tokens:     aquaCore.Tokens,
		Counter:    aquaCore.Ledger,
		Title:      cfg.PushTitle,
		TTLSeconds: cfg.PushTTLSeconds,
	}

	var stream *notify.KafkaStream
	if len(cfg.KafkaBrokers) > 0 {
		if stream, err = notify.NewKafkaStream(cfg.KafkaBrokers, cfg.KafkaTopic); err != nil {
			log.Fatalf("failed to create kafka stream: %v", err)
		}
		dispatcherOpts.Stream = stream
	}

	aquaCore.WithServices(engine.ServiceOpts{
		Fanout: notify.NewDispatcher(dispatcherOpts),
	})

	logger.Info("engine created with:",
		zap.String("db_type", cfg.DBType),
		zap.String("timezone", cfg.LocalTimezone),
		zap.String("push_provider", push.Name()),
		zap.Bool("stream", stream != nil),
	)

	runners := []*scheduler.Runner{
		scheduler.NewRunner(scheduler.NewFeedIncreaseJob(aquaCore, cfg.SchedulerWorkers), cfg.FeedTick),
		scheduler.NewRunner(scheduler.NewRecurrenceJob(aquaCore, cfg.SchedulerWorkers), cfg.RecurrenceTick),
	}
	wg := sync.WaitGroup{}
	for _, r := range runners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Run(ctx)
		}()
	}

	rs := &aquaHttp.RestfulServer{
		Server:           gin.New(),
		Engine:           aquaCore,
		Hub:              hub,
		RateLimiterStore: engine.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
	}
	rs.Server.Use(aquaHttp.RequestLoggingMiddleware(), gin.Recovery())
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst)))

	srv := &http.Server{
		Addr:    cfg.HttpHostPort,
		Handler: rs.Server,
	}
	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	wg.Wait()
	hub.Close()
	if stream != nil {
		if err := stream.Close(); err != nil {
			logger.Error("kafka stream close failed", zap.Error(err))
		}
	}
	if err := dbInstance.Close(); err != nil {
		logger.Error("database close failed", zap.Error(err))
	}
	_ = logger.Sync()
}
