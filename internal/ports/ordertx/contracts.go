package ordertx

import (
	"context"

	"courier-dispatch/internal/domain"
)

// Repository is the view of the record store inside one order-scoped
// transaction. Reads observe the watched state immediately; writes are queued
// and either all commit together or none do.
type Repository interface {
	GetOrder(ctx context.Context) (*domain.Order, error)
	GetAssignment(ctx context.Context) (string, error)

	MarkAssigned(courierID string)
	MarkDelivered()
	PutAssignment(courierID string)
	IncrInProgress(courierID string, delta int64)
	IncrCompleted(courierID string)
	AddRevenue(courierID string, amount float64)
}

// Runner executes fn inside an atomic transaction scoped to a single order.
// Concurrent transactions on the same order serialize: when two race, one
// commits and the other re-runs fn against the committed state.
type Runner interface {
	WithTx(ctx context.Context, orderID string, fn func(tx Repository) error) error
}
