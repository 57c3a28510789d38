package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	contracthandler "realty/internal/contract/handler"
	contractmodels "realty/internal/contract/models"
	"realty/internal/participant/analyzer"
	participanthandler "realty/internal/participant/handler"
	participantservice "realty/internal/participant/service"
	"realty/internal/participant/submitter"
	"realty/internal/platform/health"
	"realty/internal/platform/httpserver"
	"realty/internal/platform/kafka/producer"
	httptransport "realty/internal/transport/http"
	request "realty/pkg/platform/middleware/request"
)

const (
	shutdownTimeout   = 10 * time.Second
	poolStatsInterval = 15 * time.Second
)

func serveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.cfg.Addr, "addr", opts.cfg.Addr, "listen address")
	return cmd
}

func serve(ctx context.Context, opts *rootOptions) error {
	a := newApp(ctx, opts.cfg, opts.registry, os.Stdout)
	defer func() {
		if err := a.close(); err != nil {
			a.logger.Error("shutdown cleanup failed", "error", err)
		}
	}()
	cfg := a.cfg

	a.logger.InfoContext(ctx, "initializing realty",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"database", cfg.Database.Path,
	)

	// The server still starts; contract saves answer 503 until a restart
	// initializes the store.
	if err := a.contracts.Initialize(ctx); err != nil {
		a.logger.ErrorContext(ctx, "contract store unavailable", "error", err)
	}

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("database", a.store.Health)
	if a.redis != nil {
		healthHandler.RegisterOptional("redis", a.redis.Health)
	}

	sub, err := a.participantSubmitter(healthHandler)
	if err != nil {
		return err
	}
	docs := analyzer.FromConfig(cfg.Analyzer, a.logger)
	if probe, ok := docs.(interface{ Health(context.Context) error }); ok {
		healthHandler.RegisterOptional("document_analyzer", probe.Health)
	}
	participants := participantservice.New(
		sub,
		docs,
		a.notifier,
		participantservice.WithLogger(a.logger),
		participantservice.WithMetrics(a.metrics),
		participantservice.WithTracer(a.tracer),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         a.logger,
		RequestMetrics: request.NewMetrics(opts.registry),
		Gatherer:       opts.gatherer,
		MaxBodyBytes:   cfg.MaxUploadBytes,
		Timeout:        cfg.RequestTimeout,
	},
		healthHandler,
		participanthandler.New(participants, a.logger),
		contracthandler.New(a.contracts, contractmodels.MustContractSchema(), a.logger),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if a.redis != nil {
		g.Go(func() error {
			a.redis.ReportPoolStats(gctx, poolStatsInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("server stopped with error", "error", err)
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

// participantSubmitter publishes registrations to Kafka when brokers are
// configured and only logs them otherwise.
func (a *app) participantSubmitter(h *health.Handler) (participantservice.Submitter, error) {
	if a.cfg.Kafka.Brokers == "" {
		return submitter.NewLog(a.logger), nil
	}
	pcfg := producer.DefaultConfig(a.cfg.Kafka.Brokers)
	pcfg.Topic = a.cfg.Kafka.ParticipantTopic
	p, err := producer.New(pcfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, p.Close)
	h.RegisterOptional("kafka", p.Health)
	a.logger.Info("publishing participant events", "topic", a.cfg.Kafka.ParticipantTopic)
	return submitter.NewEvent(p, a.cfg.Kafka.ParticipantTopic, a.logger.With(slog.String("component", "participant-events"))), nil
}
