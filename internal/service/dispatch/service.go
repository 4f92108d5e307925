package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/geo"
	"courier-dispatch/internal/logx"
)

// Service picks couriers for delivery points. It only reads: the geo index
// for proximity, the record store for ratings and workload. Committing the
// choice is the assignment engine's job.
type Service struct {
	index    geoIndex
	couriers courierDirectory
	logger   logx.Logger
}

// NewService creates a new dispatch Service.
func NewService(index geoIndex, couriers courierDirectory, logger logx.Logger) *Service {
	return &Service{index: index, couriers: couriers, logger: logger}
}

// SelectCandidates returns couriers within radiusKm of the named delivery
// point, ascending by distance, enriched with rating and current workload.
// Couriers without a known position never appear. An unknown delivery point
// is ErrNotFound.
func (s *Service) SelectCandidates(ctx context.Context, location string, radiusKm float64) ([]domain.Candidate, error) {
	lon, lat, err := s.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("radius %.2fkm: %w", radiusKm, apperr.ErrInvalid)
	}

	near, err := s.index.QueryRadius(ctx, geo.CourierPositionsIndex, lon, lat, radiusKm)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, near)
}

// SelectNearest returns up to k couriers closest to the named delivery point,
// regardless of radius, ascending by distance.
func (s *Service) SelectNearest(ctx context.Context, location string, k int) ([]domain.Candidate, error) {
	lon, lat, err := s.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("k %d: %w", k, apperr.ErrInvalid)
	}

	near, err := s.index.QueryKNearest(ctx, geo.CourierPositionsIndex, lon, lat, k)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, near)
}

// OptimalAssignment scores the candidates within radiusKm under the given
// strategy and returns the best one. Ties break on ascending courier ID so
// repeated calls over the same state pick the same courier.
func (s *Service) OptimalAssignment(ctx context.Context, location string, radiusKm float64, strategy domain.Strategy) (domain.Candidate, error) {
	if !strategy.Valid() {
		return domain.Candidate{}, fmt.Errorf("strategy %q: %w", strategy, apperr.ErrInvalid)
	}

	candidates, err := s.SelectCandidates(ctx, location, radiusKm)
	if err != nil {
		return domain.Candidate{}, err
	}
	if len(candidates) == 0 {
		return domain.Candidate{}, fmt.Errorf("no couriers within %.2fkm of %q: %w", radiusKm, location, apperr.ErrNoCandidates)
	}

	best := candidates[0]
	best.Score = strategy.Score(best.DistanceKm, best.Rating)
	for _, c := range candidates[1:] {
		c.Score = strategy.Score(c.DistanceKm, c.Rating)
		if c.Score > best.Score || (c.Score == best.Score && c.CourierID < best.CourierID) {
			best = c
		}
	}

	s.logger.Info("dispatch decision",
		logx.String("event", "dispatch_decision"),
		logx.String("location", location),
		logx.String("strategy", string(strategy)),
		logx.String("courier_id", best.CourierID),
		logx.Float64("score", best.Score),
	)
	return best, nil
}

func (s *Service) resolveLocation(ctx context.Context, location string) (lon, lat float64, err error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return 0, 0, apperr.ErrInvalid
	}

	lon, lat, err = s.index.Point(ctx, geo.DeliveryPointsIndex, location)
	if errors.Is(err, geo.ErrPointNotFound) {
		return 0, 0, fmt.Errorf("delivery point %q: %w", location, apperr.ErrNotFound)
	}
	if err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}

// enrich resolves each nearby position to a candidate. A position whose
// courier record has vanished is skipped rather than failing the whole
// selection.
func (s *Service) enrich(ctx context.Context, near []geo.Near) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(near))
	for _, n := range near {
		courier, err := s.couriers.Get(ctx, n.Name)
		if err != nil {
			return nil, err
		}
		if courier == nil {
			s.logger.Warn("position without courier record",
				logx.String("courier_id", n.Name),
			)
			continue
		}

		stats, err := s.couriers.Stats(ctx, n.Name)
		if err != nil {
			return nil, err
		}

		out = append(out, domain.Candidate{
			CourierID:  courier.ID,
			Name:       courier.Name,
			DistanceKm: n.DistanceKm,
			Rating:     courier.Rating,
			InProgress: stats.InProgress,
		})
	}
	return out, nil
}
