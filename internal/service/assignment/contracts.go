package assignment

import (
	"context"

	"courier-dispatch/internal/domain"
)

// courierReader is the subset of the courier store the engine needs to check
// that the target courier exists before committing an assignment.
type courierReader interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
}

// counter is an incrementable metric (prometheus.Counter).
type counter interface {
	Inc()
}
