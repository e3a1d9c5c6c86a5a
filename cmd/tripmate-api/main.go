// README: Entry point; loads config, wires stores and services, starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/assistant"
	"tripmate/internal/config"
	httptransport "tripmate/internal/http"
	"tripmate/internal/http/middleware"
	"tripmate/internal/infra"
	"tripmate/internal/logger"
	"tripmate/internal/modules/session"
	"tripmate/internal/modules/transcript"
	"tripmate/internal/service"
	"tripmate/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []service.Option{service.WithReplyDelay(cfg.HTTP.ReplyDelay)}

	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			zlog.Fatal("redis init", zap.Error(err))
		}
		defer redisClient.Close()
		opts = append(opts, service.WithSessions(session.NewService(session.NewStore(redisClient), cfg.Redis.SessionTTL)))
	} else {
		zlog.Info("redis.addr empty; conversation sessions disabled")
	}

	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			zlog.Fatal("postgres init", zap.Error(err))
		}
		defer dbPool.Close()
		opts = append(opts, service.WithTranscripts(transcript.NewService(transcript.NewStore(dbPool))))
	} else {
		zlog.Info("db.dsn empty; transcripts disabled")
	}

	validator, err := validation.New()
	if err != nil {
		zlog.Fatal("validation init", zap.Error(err))
	}

	planner := service.NewTripPlanner(assistant.Engine{}, zlog, opts...)
	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	go limiter.Run(ctx.Done())

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:     planner,
		Validator:   validator,
		Log:         zlog,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		RateLimiter: limiter,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("http shutdown", zap.Error(err))
		}
	}()

	zlog.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("http server", zap.Error(err))
	}
	zlog.Info("http server stopped")
}
