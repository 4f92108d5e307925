package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/ports/ordertx"
)

// Service owns the order lifecycle state machine. It is the only component
// that mutates order status, assignment records and courier counters, and it
// moves all three in one transaction so no other operation can observe a
// partial transition.
type Service struct {
	runner           ordertx.Runner
	couriers         courierReader
	conflicts        counter
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates a new assignment Service.
func NewService(runner ordertx.Runner, couriers courierReader, conflicts counter, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		runner:           runner,
		couriers:         couriers,
		conflicts:        conflicts,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Assign commits the pending→assigned transition: order status and courier
// reference, the assignment record, and the courier's in-progress counter
// move together or not at all. Exactly one of several concurrent attempts on
// the same order succeeds; the rest fail with ErrInvalidTransition.
func (s *Service) Assign(ctx context.Context, orderID, courierID string) (domain.AssignResult, error) {
	orderID, courierID = strings.TrimSpace(orderID), strings.TrimSpace(courierID)
	if orderID == "" || courierID == "" {
		return domain.AssignResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	courier, err := s.couriers.Get(ctx, courierID)
	if err != nil {
		return domain.AssignResult{}, err
	}
	if courier == nil {
		return domain.AssignResult{}, fmt.Errorf("courier %q: %w", courierID, apperr.ErrNotFound)
	}

	err = s.runner.WithTx(ctx, orderID, func(tx ordertx.Repository) error {
		order, err := tx.GetOrder(ctx)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %q: %w", orderID, apperr.ErrNotFound)
		}
		if !order.Status.CanTransitionTo(domain.StatusAssigned) {
			return fmt.Errorf("order %q is %s: %w", orderID, order.Status, apperr.ErrInvalidTransition)
		}

		tx.MarkAssigned(courierID)
		tx.PutAssignment(courierID)
		tx.IncrInProgress(courierID, 1)
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidTransition) && s.conflicts != nil {
			s.conflicts.Inc()
		}
		return domain.AssignResult{}, err
	}

	s.logger.Info("order assigned",
		logx.String("event", "order_assigned"),
		logx.String("order_id", orderID),
		logx.String("courier_id", courierID),
	)

	return domain.AssignResult{
		OrderID:   orderID,
		CourierID: courierID,
		Status:    domain.StatusAssigned,
	}, nil
}

// Complete commits the assigned→delivered transition and settles the courier
// counters: in-progress down, completed up, revenue up by the order amount.
// A missing assignment record is reported as ErrNoAssignment rather than
// asserted away.
func (s *Service) Complete(ctx context.Context, orderID string) (domain.CompleteResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.CompleteResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.CompleteResult

	err := s.runner.WithTx(ctx, orderID, func(tx ordertx.Repository) error {
		order, err := tx.GetOrder(ctx)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("order %q: %w", orderID, apperr.ErrNotFound)
		}
		if !order.Status.CanTransitionTo(domain.StatusDelivered) {
			return fmt.Errorf("order %q is %s: %w", orderID, order.Status, apperr.ErrInvalidTransition)
		}

		courierID, err := tx.GetAssignment(ctx)
		if err != nil {
			return err
		}
		if courierID == "" {
			return fmt.Errorf("order %q: %w", orderID, apperr.ErrNoAssignment)
		}

		tx.MarkDelivered()
		tx.IncrInProgress(courierID, -1)
		tx.IncrCompleted(courierID)
		tx.AddRevenue(courierID, order.Amount)

		result = domain.CompleteResult{
			OrderID:   orderID,
			CourierID: courierID,
			Amount:    order.Amount,
			Status:    domain.StatusDelivered,
		}
		return nil
	})
	if err != nil {
		return domain.CompleteResult{}, err
	}

	s.logger.Info("delivery completed",
		logx.String("event", "delivery_completed"),
		logx.String("order_id", result.OrderID),
		logx.String("courier_id", result.CourierID),
		logx.Float64("amount", result.Amount),
	)

	return result, nil
}
