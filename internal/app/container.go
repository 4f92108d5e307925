package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"courier-dispatch/internal/config"
	"courier-dispatch/internal/geo"
	"courier-dispatch/internal/history"
	"courier-dispatch/internal/http/handlers"
	"courier-dispatch/internal/http/middleware/ratelimit"
	"courier-dispatch/internal/http/router"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/metrics"
	"courier-dispatch/internal/service/assignment"
	"courier-dispatch/internal/service/dispatch"
	"courier-dispatch/internal/service/zone"
	"courier-dispatch/internal/store"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect    func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	redisConnect func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error)
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:    connectDbWithRetry,
		redisConnect: connectRedisWithRetry,
		logFatalf:    log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithRedisConnect sets the record store connection function
func (b *ContainerBuilder) WithRedisConnect(
	fn func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error),
) *ContainerBuilder {
	if fn != nil {
		b.redisConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStores(container, b.redisConnect, b.dbConnect); err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	if err := provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	); err != nil {
		return err
	}
	return registerMetrics(container)
}

func registerMetrics(container *dig.Container) error {
	counters := map[string]func() prometheus.Counter{
		"rate_limit_exceeded_total": metrics.NewRateLimitExceededTotal,
		"assign_conflicts_total":    metrics.NewAssignConflictsTotal,
		"out_of_zone_alerts_total":  metrics.NewOutOfZoneAlertsTotal,
		"positions_processed_total": metrics.NewPositionsProcessedTotal,
		"history_retries_total":     metrics.NewHistoryRetriesTotal,
	}
	for name, newCounter := range counters {
		newCounter := newCounter
		provider := func() prometheus.Counter { return registerCounter(newCounter()) }
		if err := container.Provide(provider, dig.Name(name)); err != nil {
			return fmt.Errorf("provide counter %q: %w", name, err)
		}
	}
	return nil
}

// registerCounter registers with the default registry, reusing the existing
// collector when a test builds more than one container per process.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}

func registerStores(
	container *dig.Container,
	redisConnect func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error),
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerRedis := func(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
		return redisConnect(ctx, cfg.Redis, 10, time.Second)
	}
	// The analytical store is optional: reports answer 503 without it, the
	// dispatch path works either way.
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) *pgxpool.Pool {
		pool, err := dbConnect(ctx, cfg.DB.DSN(), 3, time.Second)
		if err != nil {
			logger.Warn("history store unavailable", logx.Any("err", err))
			return nil
		}
		return pool
	}
	return provideAll(container,
		providerRedis,
		providerDB,
		store.NewOrderStore,
		store.NewCourierStore,
		geo.NewIndex,
		func(pool *pgxpool.Pool) *history.Store {
			if pool == nil {
				return nil
			}
			return history.NewStore(pool)
		},
	)
}

type assignmentIn struct {
	dig.In
	Orders    *store.OrderStore
	Couriers  *store.CourierStore
	Logger    logx.Logger
	Conflicts prometheus.Counter `name:"assign_conflicts_total"`
}

type zoneIn struct {
	dig.In
	Index  *geo.Index
	Cfg    *config.Config
	Logger logx.Logger
	Alerts prometheus.Counter `name:"out_of_zone_alerts_total"`
}

type historyIn struct {
	dig.In
	Store   *history.Store
	Logger  logx.Logger
	Retries prometheus.Counter `name:"history_retries_total"`
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func() time.Duration { return 3 * time.Second },
		func(in assignmentIn, timeout time.Duration) *assignment.Service {
			return assignment.NewService(in.Orders, in.Couriers, in.Conflicts, timeout, in.Logger)
		},
		func(index *geo.Index, couriers *store.CourierStore, logger logx.Logger) *dispatch.Service {
			return dispatch.NewService(index, couriers, logger)
		},
		func(in zoneIn) *zone.Service {
			return zone.NewService(in.Index, in.Cfg.Monitor, in.Alerts, in.Logger)
		},
		func(in historyIn) *history.RetryingReader {
			if in.Store == nil {
				return nil
			}
			return history.NewRetryingReader(in.Store, in.Logger, in.Retries, history.RetryConfig{
				MaxAttempts: 3,
				BaseDelay:   100 * time.Millisecond,
				MaxDelay:    time.Second,
			})
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewAssignmentUsecase,
		handlers.NewAssignmentHandler,
		handlers.NewDispatchUsecase,
		handlers.NewDispatchHandler,
		handlers.NewCourierUsecase,
		handlers.NewZoneUsecase,
		handlers.NewCourierHandler,
		handlers.NewHistoryUsecase,
		handlers.NewHistoryHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		func(
			logger logx.Logger,
			base *handlers.Handlers,
			ah *handlers.AssignmentHandler,
			dh *handlers.DispatchHandler,
			ch *handlers.CourierHandler,
			hh *handlers.HistoryHandler,
			rl *ratelimit.Middleware,
		) http.Handler {
			return router.New(router.Deps{
				Logger:     logger,
				Base:       base,
				Assignment: ah,
				Dispatch:   dh,
				Courier:    ch,
				History:    hh,
				RateLimit:  rl,
			})
		},
		serverProvider,
	)
}
