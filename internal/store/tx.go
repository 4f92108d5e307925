package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/ports/ordertx"
)

// txRetries bounds the optimistic retry loop. Each retry re-runs fn against
// the committed state, so a loser of a racing transition fails its
// precondition check instead of spinning forever.
const txRetries = 3

// WithTx executes fn inside an optimistic transaction scoped to one order.
// The order hash and its assignment key are WATCHed; reads through the tx see
// current values, writes are queued and flushed atomically via MULTI/EXEC.
// If a concurrent commit touches the watched keys, EXEC fails and fn re-runs.
//
// Courier counters are deliberately not watched: their increments go through
// HINCRBY inside the pipeline, which is atomic against concurrent increments
// from transactions on other orders.
func (s *OrderStore) WithTx(ctx context.Context, orderID string, fn func(tx ordertx.Repository) error) error {
	watched := []string{orderKey(orderID), assignmentKey(orderID)}

	for attempt := 1; attempt <= txRetries; attempt++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			repo := &txRepo{tx: tx, orderID: orderID}
			if err := fn(repo); err != nil {
				return err
			}
			_, err := tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
				for _, w := range repo.writes {
					w(ctx, p)
				}
				return nil
			})
			return err
		}, watched...)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return mapErr(err)
		}
	}
	return fmt.Errorf("%w: order %q transaction conflicted %d times", apperr.ErrStoreUnavailable, orderID, txRetries)
}

// txRepo implements ordertx.Repository on top of a watched redis.Tx.
type txRepo struct {
	tx      *redis.Tx
	orderID string
	writes  []func(context.Context, redis.Pipeliner)
}

// GetOrder reads the transaction's order through the watched connection.
func (r *txRepo) GetOrder(ctx context.Context) (*domain.Order, error) {
	vals, err := r.tx.HGetAll(ctx, orderKey(r.orderID)).Result()
	if err != nil {
		return nil, fmt.Errorf("tx get order %q: %w", r.orderID, mapErr(err))
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return parseOrder(vals), nil
}

// GetAssignment reads the assignment record, "" when none exists.
func (r *txRepo) GetAssignment(ctx context.Context) (string, error) {
	courierID, err := r.tx.Get(ctx, assignmentKey(r.orderID)).Result()
	if IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tx get assignment %q: %w", r.orderID, mapErr(err))
	}
	return courierID, nil
}

// MarkAssigned queues the pending→assigned hash update and status set move.
func (r *txRepo) MarkAssigned(courierID string) {
	id := r.orderID
	r.queue(func(ctx context.Context, p redis.Pipeliner) {
		p.HSet(ctx, orderKey(id), "status", string(domain.StatusAssigned), "courier_id", courierID)
		p.SMove(ctx, statusSetKey(string(domain.StatusPending)), statusSetKey(string(domain.StatusAssigned)), id)
	})
}

// MarkDelivered queues the assigned→delivered hash update and status set move.
func (r *txRepo) MarkDelivered() {
	id := r.orderID
	r.queue(func(ctx context.Context, p redis.Pipeliner) {
		p.HSet(ctx, orderKey(id), "status", string(domain.StatusDelivered))
		p.SMove(ctx, statusSetKey(string(domain.StatusAssigned)), statusSetKey(string(domain.StatusDelivered)), id)
	})
}

// PutAssignment queues the write of the immutable order→courier record.
func (r *txRepo) PutAssignment(courierID string) {
	id := r.orderID
	r.queue(func(ctx context.Context, p redis.Pipeliner) {
		p.Set(ctx, assignmentKey(id), courierID, 0)
	})
}

// IncrInProgress queues an in-progress counter adjustment.
func (r *txRepo) IncrInProgress(courierID string, delta int64) {
	r.queue(func(ctx context.Context, p redis.Pipeliner) {
		p.HIncrBy(ctx, statsKey(courierID), "in_progress", delta)
	})
}

// IncrCompleted queues a completed counter increment.
func (r *txRepo) IncrCompleted(courierID string) {
	r.queue(func(ctx context.Context, p redis.Pipeliner) {
		p.HIncrBy(ctx, statsKey(courierID), "completed", 1)
	})
}

// AddRevenue queues a cumulative revenue increment.
func (r *txRepo) AddRevenue(courierID string, amount float64) {
	r.queue(func(ctx context.Context, p redis.Pipeliner) {
		p.HIncrByFloat(ctx, statsKey(courierID), "revenue", amount)
	})
}

func (r *txRepo) queue(w func(context.Context, redis.Pipeliner)) {
	r.writes = append(r.writes, w)
}

var _ ordertx.Repository = (*txRepo)(nil)
