package handlers

import (
	"context"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/history"
	"courier-dispatch/internal/service/assignment"
	"courier-dispatch/internal/service/dispatch"
	"courier-dispatch/internal/service/zone"
	"courier-dispatch/internal/store"
)

type assignmentUsecase interface {
	Assign(ctx context.Context, orderID, courierID string) (domain.AssignResult, error)
	Complete(ctx context.Context, orderID string) (domain.CompleteResult, error)
}

// NewAssignmentUsecase wires an assignment.Service into an assignmentUsecase.
func NewAssignmentUsecase(svc *assignment.Service) assignmentUsecase {
	return svc
}

type dispatchUsecase interface {
	SelectCandidates(ctx context.Context, location string, radiusKm float64) ([]domain.Candidate, error)
	SelectNearest(ctx context.Context, location string, k int) ([]domain.Candidate, error)
	OptimalAssignment(ctx context.Context, location string, radiusKm float64, strategy domain.Strategy) (domain.Candidate, error)
}

// NewDispatchUsecase wires a dispatch.Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}

type courierUsecase interface {
	Create(ctx context.Context, c *domain.Courier) error
	Get(ctx context.Context, id string) (*domain.Courier, error)
	Stats(ctx context.Context, id string) (domain.CourierStats, error)
}

// NewCourierUsecase wires a CourierStore into a courierUsecase.
func NewCourierUsecase(s *store.CourierStore) courierUsecase {
	return s
}

type zoneUsecase interface {
	UpdatePosition(ctx context.Context, courierID string, lon, lat float64) error
	CheckInZone(ctx context.Context, courierID string) (zone.Status, error)
}

// NewZoneUsecase wires a zone.Service into a zoneUsecase.
func NewZoneUsecase(svc *zone.Service) zoneUsecase {
	return svc
}

// NewHistoryUsecase picks the retrying reader when available.
func NewHistoryUsecase(retrying *history.RetryingReader, plain *history.Store) history.Reader {
	if retrying != nil {
		return retrying
	}
	if plain != nil {
		return plain
	}
	return nil
}
