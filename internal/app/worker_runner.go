package app

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/zone"
	"courier-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the position feed consumer and the zone monitor.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the worker using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	rdb *redis.Client,
	logger logx.Logger,
	consumer *kafka.Consumer,
	monitor *zone.Monitor,
) error {
	defer closeWorker(rdb, logger, consumer)

	logger.Info("dispatch-worker started")

	errCh := make(chan error, 2)
	go func() { errCh <- monitor.Run(ctx) }()
	if consumer != nil {
		go func() { errCh <- consumer.Run(ctx) }()
	}
	return <-errCh
}

func closeWorker(rdb *redis.Client, logger logx.Logger, consumer *kafka.Consumer) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Any("err", err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", logx.Any("err", err))
	}
}
