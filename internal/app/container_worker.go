package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-dispatch/internal/config"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/positions"
	"courier-dispatch/internal/service/zone"
	"courier-dispatch/internal/store"
	"courier-dispatch/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the container for the worker process: the
// position feed consumer plus the periodic zone monitor.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// MustBuildWorker builds and returns a new worker dig container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
		return nil
	}
	if err := registerWorker(container); err != nil {
		b.logFatalf("failed to build worker container: %v", err)
		return nil
	}
	return container
}

type positionsIn struct {
	dig.In
	Zones     *zone.Service
	Logger    logx.Logger
	Processed prometheus.Counter `name:"positions_processed_total"`
}

func registerWorker(container *dig.Container) error {
	providers := []any{
		func(in positionsIn) *positions.Processor {
			return positions.NewProcessor(in.Zones, in.Processed, in.Logger)
		},
		func(cfg *config.Config, p *positions.Processor, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makePositionsKafka(p))
		},
		func(svc *zone.Service, couriers *store.CourierStore, cfg *config.Config, logger logx.Logger) *zone.Monitor {
			return zone.NewMonitor(svc, couriers, cfg.Monitor.Interval, logger)
		},
	}
	if err := provideAll(container, providers...); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	return nil
}
