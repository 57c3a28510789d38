package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	contractservice "realty/internal/contract/service"
	"realty/internal/contract/store"
	"realty/internal/notify"
	"realty/internal/platform/config"
	"realty/internal/platform/database"
	"realty/internal/platform/logger"
	"realty/internal/platform/metrics"
	platformredis "realty/internal/platform/redis"
	"realty/internal/platform/tracer"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg       config.Server
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
	notifier  notify.Notifier
	redis     *platformredis.Client
	store     *store.Store
	contracts *contractservice.Service
	closers   []func() error
}

func newApp(ctx context.Context, cfg config.Server, reg prometheus.Registerer, logOut io.Writer) *app {
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: logOut,
	})
	a := &app{
		cfg:     cfg,
		logger:  log,
		metrics: metrics.New(reg),
		tracer:  tracer.NewOTel(),
	}

	sinks := notify.Fanout{notify.NewLogNotifier(log)}
	rc, err := platformredis.New(ctx, cfg.Redis, reg)
	switch {
	case err != nil:
		log.WarnContext(ctx, "redis unavailable, notifications are only logged", "error", err)
	case rc != nil:
		a.redis = rc
		a.closers = append(a.closers, rc.Close)
		sinks = append(sinks, notify.NewRedisNotifier(rc.Client, cfg.Redis.Channel, log))
	}
	a.notifier = notify.Scoped(notify.Counted(sinks, a.metrics))

	dbCfg := database.DefaultConfig(cfg.Database.Path)
	if cfg.Database.BusyTimeout > 0 {
		dbCfg.BusyTimeout = cfg.Database.BusyTimeout
	}
	a.store = store.New(dbCfg, a.notifier, log)
	a.closers = append(a.closers, a.store.Close)
	a.contracts = contractservice.New(a.store,
		contractservice.WithLogger(log),
		contractservice.WithMetrics(a.metrics),
		contractservice.WithTracer(a.tracer),
	)
	return a
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
