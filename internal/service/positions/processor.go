package positions

import (
	"context"
	"fmt"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/zone"
)

// Event is one courier GPS fix from the position feed.
type Event struct {
	CourierID  string
	Lon        float64
	Lat        float64
	RecordedAt time.Time
}

// Tracker is the zone service surface the processor drives: store the fix,
// then check it against the service zone. Implemented by *zone.Service.
type Tracker interface {
	UpdatePosition(ctx context.Context, courierID string, lon, lat float64) error
	CheckInZone(ctx context.Context, courierID string) (zone.Status, error)
}

// counter is an incrementable metric (prometheus.Counter).
type counter interface {
	Inc()
}

// Processor applies position feed events: validate, upsert the position,
// run the zone check. Out-of-zone alerting lives in the zone service.
type Processor struct {
	zones     Tracker
	processed counter
	logger    logx.Logger
}

// NewProcessor creates a new position event Processor.
func NewProcessor(zones Tracker, processed counter, logger logx.Logger) *Processor {
	return &Processor{zones: zones, processed: processed, logger: logger}
}

// Handle processes one event. Validation failures are ErrInvalid: the feed
// consumer marks such events and moves on instead of retrying them forever.
func (p *Processor) Handle(ctx context.Context, ev Event) error {
	if ev.CourierID == "" {
		return fmt.Errorf("position event without courier_id: %w", apperr.ErrInvalid)
	}
	if !domain.ValidCoordinates(ev.Lon, ev.Lat) {
		return fmt.Errorf("position event for %q at (%f, %f): %w", ev.CourierID, ev.Lon, ev.Lat, apperr.ErrInvalid)
	}

	if err := p.zones.UpdatePosition(ctx, ev.CourierID, ev.Lon, ev.Lat); err != nil {
		return err
	}
	if _, err := p.zones.CheckInZone(ctx, ev.CourierID); err != nil {
		return err
	}

	if p.processed != nil {
		p.processed.Inc()
	}
	p.logger.Debug("position processed",
		logx.String("courier_id", ev.CourierID),
		logx.Time("recorded_at", ev.RecordedAt),
	)
	return nil
}
