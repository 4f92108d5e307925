package zone

import (
	"context"
	"errors"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/logx"
)

// Monitor periodically sweeps every onboarded courier through the zone
// check. Alerting happens inside CheckInZone; the monitor only drives it.
type Monitor struct {
	svc      *Service
	couriers courierLister
	interval time.Duration
	logger   logx.Logger
}

// NewMonitor creates a new zone Monitor.
func NewMonitor(svc *Service, couriers courierLister, interval time.Duration, logger logx.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Monitor{svc: svc, couriers: couriers, interval: interval, logger: logger}
}

// Run sweeps on every tick until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("zone monitor started",
		logx.Duration("interval", m.interval),
	)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("zone monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Sweep runs one pass over all couriers. Couriers without a position yet are
// skipped; other failures are logged and do not stop the pass.
func (m *Monitor) Sweep(ctx context.Context) {
	ids, err := m.couriers.ListIDs(ctx)
	if err != nil {
		m.logger.Error("zone sweep: list couriers", logx.Any("error", err))
		return
	}

	for _, id := range ids {
		if _, err := m.svc.CheckInZone(ctx, id); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			m.logger.Error("zone sweep: check courier",
				logx.String("courier_id", id),
				logx.Any("error", err),
			)
		}
	}
}
