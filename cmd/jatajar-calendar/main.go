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

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/commands"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/events"
	calendarwin "github.com/mo13ammad/ja-ta-jar-sub000/internal/app/handlers/calendarwin"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/handlers/peaks"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/middleware"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/queries"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/services/sessions"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/broker/kafka"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/config"
	ginserver "github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/http/gin"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/obs"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/storage/memory"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/upstream"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	producer, closeProducer, err := buildProducer(cfg, logger)
	if err != nil {
		logger.Error("kafka producer init failed", "error", err)
		os.Exit(1)
	}
	defer closeProducer()

	app := buildApplication(cfg, producer, logger)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, app.handlers)

	go runSessionPurge(ctx, app.sessions, cfg.PurgeInterval, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	sessions *sessions.Service
}

func buildApplication(cfg config.Config, producer events.Producer, logger *slog.Logger) application {
	client := &upstream.Client{
		HTTP:    &http.Client{Timeout: cfg.UpstreamTimeout},
		BaseURL: cfg.UpstreamBaseURL,
		Token:   cfg.UpstreamToken,
		Logger:  logger,
	}
	emitter := &events.Emitter{
		Producer:    producer,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Source:      cfg.EventSource,
	}

	sessionService := &sessions.Service{
		Source:   client,
		Rooms:    client,
		Store:    memory.NewSessionStore(),
		Events:   emitter,
		Prefetch: cfg.PrefetchMonths,
		TTL:      cfg.SessionTTL,
		Logger:   logger,
	}

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, calendarwin.GetWindowQuery{}.Key(), &calendarwin.GetWindowHandler{
		Source:   client,
		Prefetch: cfg.PrefetchMonths,
		Logger:   logger,
	})
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger, time.Second),
	)

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, peaks.MarkPeakRangeCommand{}.Key(), &peaks.MarkPeakRangeHandler{
		Sessions: sessionService,
		Peaks:    client,
		Events:   emitter,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, peaks.UnmarkPeakRangeCommand{}.Key(), &peaks.UnmarkPeakRangeHandler{
		Sessions: sessionService,
		Peaks:    client,
		Events:   emitter,
		Logger:   logger,
	})
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.CommandLogging(logger),
		middleware.Idempotency(memory.NewIdempotencyStore(cfg.IdempotencyTTL)),
	)

	return application{
		handlers: ginserver.Handlers{
			Session:  ginserver.SessionHandler{Sessions: sessionService, Logger: logger},
			Calendar: ginserver.CalendarHandler{Queries: queryBusWithMiddleware, Logger: logger},
			Peak:     ginserver.PeakHandler{Commands: commandBusWithMiddleware, Logger: logger},
		},
		sessions: sessionService,
	}
}

func buildProducer(cfg config.Config, logger *slog.Logger) (events.Producer, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, events disabled")
		return events.NopProducer{}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
	return producer, closer, nil
}

func runSessionPurge(ctx context.Context, svc *sessions.Service, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.PurgeExpired(ctx)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
