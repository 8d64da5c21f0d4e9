package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	addresscatalog "cleanhome/internal/address/catalog"
	addresshandler "cleanhome/internal/address/handler"
	addressmetrics "cleanhome/internal/address/metrics"
	addressservice "cleanhome/internal/address/service"
	addressstore "cleanhome/internal/address/store"
	paymentevents "cleanhome/internal/payment/events"
	paymenthandler "cleanhome/internal/payment/handler"
	paymentmetrics "cleanhome/internal/payment/metrics"
	paymentservice "cleanhome/internal/payment/service"
	paymentstore "cleanhome/internal/payment/store"
	"cleanhome/internal/platform/config"
	"cleanhome/internal/platform/httpserver"
	"cleanhome/internal/platform/kafka"
	"cleanhome/internal/platform/logger"
	"cleanhome/internal/platform/metrics"
	"cleanhome/internal/platform/postgres"
	"cleanhome/internal/platform/redis"
	httptransport "cleanhome/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("cleanhome exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := metrics.NewRegistry()
	health := map[string]httptransport.HealthChecker{}

	sessions, closeSessions, err := newSessionStore(ctx, cfg.Redis, log, health)
	if err != nil {
		return err
	}
	defer closeSessions()

	ledger, closeLedger, err := newOutcomeLedger(ctx, cfg.Database, log, health)
	if err != nil {
		return err
	}
	defer closeLedger()

	catalog := addresscatalog.Default()
	addressSvc, err := addressservice.New(sessions, catalog,
		addressservice.WithSessionTTL(cfg.AddressSessionTTL),
		addressservice.WithLogger(log),
		addressservice.WithMetrics(addressmetrics.New(reg)),
	)
	if err != nil {
		return fmt.Errorf("build address service: %w", err)
	}
	paymentOpts := []paymentservice.Option{
		paymentservice.WithLogger(log),
		paymentservice.WithMetrics(paymentmetrics.New(reg)),
	}
	publisher, closePublisher, err := newOutcomePublisher(ctx, cfg.Kafka, log, health)
	if err != nil {
		return err
	}
	defer closePublisher()
	if publisher != nil {
		paymentOpts = append(paymentOpts, paymentservice.WithPublisher(publisher))
	}
	paymentSvc, err := paymentservice.New(ledger, paymentOpts...)
	if err != nil {
		return fmt.Errorf("build payment service: %w", err)
	}

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Health:   health,
		Handlers: []httptransport.Registrar{
			addresshandler.New(addressSvc, catalog, log),
			paymenthandler.New(paymentSvc, log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting cleanhome", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		runPurgeLoop(gctx, addressSvc, cfg.PurgeInterval, log)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down cleanhome")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func newSessionStore(ctx context.Context, cfg config.RedisConfig, log *slog.Logger, health map[string]httptransport.HealthChecker) (addressservice.Store, func(), error) {
	client, err := redis.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		log.Info("REDIS_URL not set, address sessions kept in memory")
		return addressstore.NewInMemory(), func() {}, nil
	}
	health["redis"] = client
	return addressstore.NewRedis(client.Client), func() { _ = client.Close() }, nil
}

func newOutcomeLedger(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger, health map[string]httptransport.HealthChecker) (paymentservice.Store, func(), error) {
	client, err := postgres.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if client == nil {
		log.Info("DATABASE_URL not set, payment outcomes kept in memory")
		return paymentstore.NewInMemory(), func() {}, nil
	}
	ledger := paymentstore.NewPostgres(client.DB)
	if err := ledger.EnsureSchema(ctx); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	health["postgres"] = client
	return ledger, func() { _ = client.Close() }, nil
}

func newOutcomePublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger, health map[string]httptransport.HealthChecker) (*paymentevents.Publisher, func(), error) {
	producer, err := kafka.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect kafka: %w", err)
	}
	if producer == nil {
		log.Info("KAFKA_BROKERS not set, payment outcomes are not published")
		return nil, func() {}, nil
	}
	if err := producer.EnsureTopic(ctx, cfg.OutcomeTopic, int32(cfg.Partitions)); err != nil {
		producer.Close()
		return nil, nil, err
	}
	health["kafka"] = producer
	return paymentevents.New(producer, cfg.OutcomeTopic), producer.Close, nil
}
