package zone

import (
	"context"
	"errors"
	"fmt"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/config"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/geo"
	"courier-dispatch/internal/logx"
)

// Status is the outcome of a zone check: how far the courier currently is
// from the base point and whether that is inside the service zone.
type Status struct {
	CourierID     string
	DistanceKm    float64
	MaxDistanceKm float64
	InZone        bool
}

// Service tracks courier positions and checks them against the service zone,
// a fixed radius around a configured base point.
type Service struct {
	index  positionIndex
	cfg    config.Monitor
	alerts counter
	logger logx.Logger
}

// NewService creates a new zone Service.
func NewService(index positionIndex, cfg config.Monitor, alerts counter, logger logx.Logger) *Service {
	return &Service{index: index, cfg: cfg, alerts: alerts, logger: logger}
}

// UpdatePosition records the courier's latest GPS point, last write wins.
func (s *Service) UpdatePosition(ctx context.Context, courierID string, lon, lat float64) error {
	if courierID == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidCoordinates(lon, lat) {
		return fmt.Errorf("coordinates (%f, %f): %w", lon, lat, apperr.ErrInvalid)
	}
	return s.index.UpsertPoint(ctx, geo.CourierPositionsIndex, courierID, lon, lat)
}

// CheckInZone measures the courier's distance from the base point. A courier
// outside the zone is flagged with a warn log and the alert counter; the
// check itself never fails for being out of zone. A courier with no known
// position is ErrNotFound.
func (s *Service) CheckInZone(ctx context.Context, courierID string) (Status, error) {
	if courierID == "" {
		return Status{}, apperr.ErrInvalid
	}

	lon, lat, err := s.index.Point(ctx, geo.CourierPositionsIndex, courierID)
	if errors.Is(err, geo.ErrPointNotFound) {
		return Status{}, fmt.Errorf("position of courier %q: %w", courierID, apperr.ErrNotFound)
	}
	if err != nil {
		return Status{}, err
	}

	d := geo.Haversine(s.cfg.BaseLon, s.cfg.BaseLat, lon, lat)
	st := Status{
		CourierID:     courierID,
		DistanceKm:    d,
		MaxDistanceKm: s.cfg.MaxDistanceKm,
		InZone:        d <= s.cfg.MaxDistanceKm,
	}

	if !st.InZone {
		if s.alerts != nil {
			s.alerts.Inc()
		}
		s.logger.Warn("courier out of zone",
			logx.String("event", "out_of_zone"),
			logx.String("courier_id", courierID),
			logx.Float64("distance_km", d),
			logx.Float64("max_distance_km", s.cfg.MaxDistanceKm),
		)
	}
	return st, nil
}
