package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"courier-dispatch/internal/config"
	"courier-dispatch/internal/history"
	"courier-dispatch/internal/store"
)

var (
	newPool        = history.NewPool
	newRedisClient = store.NewClient
)

func connectDbWithRetry(ctx context.Context, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	const attemptTimeout = 3 * time.Second
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			log.Printf("db connected on attempt %d", i)
			return pool, nil
		}
		lastErr = err
		log.Printf("db connect failed (attempt %d/%d): %v", i, retries, err)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

func connectRedisWithRetry(ctx context.Context, cfg config.Redis, retries int, delay time.Duration) (*redis.Client, error) {
	var lastErr error
	for i := 1; i <= retries; i++ {
		rdb, err := newRedisClient(ctx, cfg.Addr(), cfg.DB)
		if err == nil {
			log.Printf("redis connected on attempt %d", i)
			return rdb, nil
		}
		lastErr = err
		log.Printf("redis connect failed (attempt %d/%d): %v", i, retries, err)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("redis connect failed after %d attempts: %w", retries, lastErr)
}
