package app

import (
	"context"

	"courier-dispatch/internal/service/positions"
	"courier-dispatch/internal/transport/kafka"
)

func makePositionsKafka(p *positions.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event positions.Event) error {
		return p.Handle(ctx, event)
	}
}
