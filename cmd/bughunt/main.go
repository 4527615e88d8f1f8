package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/bughunt-service/internal/broker/rabbitmq"
	"github.com/YusovID/bughunt-service/internal/config"
	"github.com/YusovID/bughunt-service/internal/metrics"
	"github.com/YusovID/bughunt-service/internal/outbox"
	"github.com/YusovID/bughunt-service/internal/repository/postgres"
	"github.com/YusovID/bughunt-service/internal/service"
	myhttp "github.com/YusovID/bughunt-service/internal/transport/http"
	"github.com/YusovID/bughunt-service/pkg/logger/sl"
	"github.com/YusovID/bughunt-service/pkg/logger/slogpretty"
	"github.com/redis/go-redis/v9"
)

const relayLockKey = "bughunt:outbox:relay"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting bughunt-service", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	sqlDB := db.DB()

	users := postgres.NewUserRepository(sqlDB, log)
	achievements := postgres.NewAchievementRepository(sqlDB, log)
	projects := postgres.NewProjectRepository(sqlDB, log)
	bugs := postgres.NewBugRepository(sqlDB, log)
	notifications := postgres.NewNotificationRepository(sqlDB, log)

	recorder := metrics.NewRecorder()

	services := myhttp.Services{
		Bugs:          service.NewBugService(sqlDB, log, users, achievements, projects, bugs, bugs, notifications, recorder),
		Users:         service.NewUserService(sqlDB, log, users, achievements),
		Projects:      service.NewProjectService(sqlDB, log, users, projects),
		Scoring:       service.NewScoringService(sqlDB, log, bugs),
		Leaderboard:   service.NewLeaderboardService(log, users),
		Analytics:     service.NewAnalyticsService(sqlDB, log, users, projects, bugs),
		Notifications: service.NewNotificationService(log, notifications),
	}

	relay, cleanup, err := newRelay(cfg, log, notifications, recorder)
	if err != nil {
		return err
	}
	defer cleanup()

	scheduler, err := relay.Start(ctx, cfg.Outbox.Interval)
	if err != nil {
		return fmt.Errorf("failed to start outbox relay: %v", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Error("outbox scheduler shutdown failed", sl.Err(err))
		}
	}()

	srv := myhttp.NewServer(log, cfg.Auth.JWTSecret, services)
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

// newRelay wires the outbox relay to RabbitMQ when the broker is enabled and
// to the log otherwise. Redis, when configured, keeps replicas from relaying the same batch.
func newRelay(
	cfg *config.Config,
	log *slog.Logger,
	store outbox.Store,
	recorder outbox.Recorder,
) (*outbox.Relay, func(), error) {
	var (
		publisher outbox.Publisher = outbox.NewLogPublisher(log)
		locker    outbox.Locker
		closers   []func() error
	)

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Error("failed to close relay dependency", sl.Err(err))
			}
		}
	}

	if cfg.Broker.Enabled {
		pub, err := rabbitmq.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to broker: %v", err)
		}

		closers = append(closers, pub.Close)
		publisher = pub

		log.Info("publishing notifications to rabbitmq", slog.String("queue", cfg.Broker.Queue))
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, client.Close)

		if err := client.Ping(context.Background()).Err(); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to connect to redis: %v", err)
		}

		locker = outbox.NewRedisLocker(client, relayLockKey, cfg.Outbox.LockTTL)
	}

	return outbox.NewRelay(store, publisher, locker, recorder, log, cfg.Outbox.BatchSize), cleanup, nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
