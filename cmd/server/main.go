package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tonelab-collective/booking/internal/bootstrap"
	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/infra/cache"
	"github.com/tonelab-collective/booking/internal/infra/db"
	"github.com/tonelab-collective/booking/internal/modules/handler"
	"github.com/tonelab-collective/booking/internal/modules/service"
	"github.com/tonelab-collective/booking/internal/router"
	"github.com/tonelab-collective/booking/internal/telemetry"
	"github.com/tonelab-collective/booking/internal/worker"
)

//	@title						Tonelab Booking API
//	@version					1.0
//	@description				Bookings, site content and admin dashboard for the Tonelab Pilates event.
//	@BasePath					/api
//	@securityDefinitions.apikey	AdminCookie
//	@in							cookie
//	@name						admin_auth

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else if tp != nil {
		log.Sugar().Infow("tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint, "sample_ratio", cfg.Telemetry.SampleRatio)
	}
	if _, err := telemetry.SetupMetrics(cfg); err != nil {
		log.Warn("metrics setup failed", zap.Error(err))
	}

	d := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)
	if tp != nil {
		if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
			log.Warn("gorm tracing plugin", zap.Error(err))
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Warn("redis tracing plugin", zap.Error(err))
		}
	}

	if err := bootstrap.EnsureDefaultContent(context.Background(), do.MustInvoke[service.ContentService](inj), log); err != nil {
		log.Fatal("seed site content", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumerDone := make(chan struct{})
	if cfg.RabbitMQ.Enabled {
		consumer, err := do.Invoke[*worker.BookingConsumer](inj)
		if err != nil {
			log.Warn("booking.created consumer not started", zap.Error(err))
			close(consumerDone)
		} else {
			go func() {
				defer close(consumerDone)
				if err := consumer.Run(ctx); err != nil {
					log.Error("booking.created consumer stopped", zap.Error(err))
				}
			}()
		}
	} else {
		close(consumerDone)
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		Sessions:       do.MustInvoke[service.AdminService](inj),
		BookingHandler: do.MustInvoke[*handler.BookingHandler](inj),
		ContentHandler: do.MustInvoke[*handler.ContentHandler](inj),
		AdminHandler:   do.MustInvoke[*handler.AdminHandler](inj),
		ReceiptHandler: do.MustInvoke[*handler.ReceiptHandler](inj),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Sugar().Infow("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		log.Warn("consumer did not stop in time")
	}

	// Only services that were built get shut down; nothing dials here.
	if err := inj.Shutdown(); err != nil {
		log.Warn("injector shutdown", zap.Error(err))
	}
	if err := cache.Close(rdb); err != nil {
		log.Warn("redis close", zap.Error(err))
	}
	if sqlDB, err := d.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := telemetry.ShutdownMetrics(shutdownCtx); err != nil {
		log.Warn("metrics shutdown", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		log.Warn("tracing shutdown", zap.Error(err))
	}
	log.Info("stopped")
}
