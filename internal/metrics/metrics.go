package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected position updates due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewAssignConflictsTotal returns a Prometheus counter for assignment attempts rejected by the order state machine
func NewAssignConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assign_conflicts_total",
		Help: "Total number of assignment attempts rejected because the order was not pending",
	})
}

// NewOutOfZoneAlertsTotal returns a Prometheus counter for out-of-zone courier alerts
func NewOutOfZoneAlertsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "out_of_zone_alerts_total",
		Help: "Total number of couriers flagged outside their service zone",
	})
}

// NewPositionsProcessedTotal returns a Prometheus counter for consumed position feed events
func NewPositionsProcessedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "positions_processed_total",
		Help: "Total number of courier position events processed",
	})
}

// NewHistoryRetriesTotal returns a Prometheus counter for retry attempts performed by the history reader
func NewHistoryRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "history_retries_total",
		Help: "Total number of retry attempts performed against the analytical store",
	})
}
