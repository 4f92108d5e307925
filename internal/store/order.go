package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"courier-dispatch/internal/domain"
)

// OrderStore represents the order record store.
type OrderStore struct {
	rdb *redis.Client
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(rdb *redis.Client) *OrderStore {
	return &OrderStore{rdb: rdb}
}

// Create stores a new pending order and indexes it in the status set.
func (s *OrderStore) Create(ctx context.Context, o *domain.Order) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, orderKey(o.ID), orderFields(o))
		p.SAdd(ctx, statusSetKey(string(o.Status)), o.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create order %q: %w", o.ID, mapErr(err))
	}
	return nil
}

// Get - returns order by its ID, nil when absent.
func (s *OrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	vals, err := s.rdb.HGetAll(ctx, orderKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get order %q: %w", id, mapErr(err))
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return parseOrder(vals), nil
}

// Assignment returns the courier ID assigned to the order, "" when none.
func (s *OrderStore) Assignment(ctx context.Context, orderID string) (string, error) {
	courierID, err := s.rdb.Get(ctx, assignmentKey(orderID)).Result()
	if IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get assignment %q: %w", orderID, mapErr(err))
	}
	return courierID, nil
}

// ListByStatus returns the order IDs currently in the given status.
func (s *OrderStore) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, statusSetKey(string(status))).Result()
	if err != nil {
		return nil, fmt.Errorf("orders by status %q: %w", status, mapErr(err))
	}
	return ids, nil
}

// CountByStatus returns the number of orders in the given status.
func (s *OrderStore) CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error) {
	n, err := s.rdb.SCard(ctx, statusSetKey(string(status))).Result()
	if err != nil {
		return 0, fmt.Errorf("count orders by status %q: %w", status, mapErr(err))
	}
	return n, nil
}

func orderFields(o *domain.Order) map[string]any {
	fields := map[string]any{
		"id":          o.ID,
		"client":      o.ClientID,
		"destination": o.Destination,
		"amount":      o.Amount,
		"created_at":  o.CreatedAt.UTC().Format(time.RFC3339Nano),
		"status":      string(o.Status),
	}
	if o.CourierID != "" {
		fields["courier_id"] = o.CourierID
	}
	return fields
}

func parseOrder(vals map[string]string) *domain.Order {
	amount, _ := strconv.ParseFloat(vals["amount"], 64)
	createdAt, _ := time.Parse(time.RFC3339Nano, vals["created_at"])
	return &domain.Order{
		ID:          vals["id"],
		ClientID:    vals["client"],
		Destination: vals["destination"],
		Amount:      amount,
		CreatedAt:   createdAt,
		Status:      domain.OrderStatus(vals["status"]),
		CourierID:   vals["courier_id"],
	}
}
