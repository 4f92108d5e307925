package zone

import "context"

// positionIndex is the mutable courier position store.
type positionIndex interface {
	UpsertPoint(ctx context.Context, index, name string, lon, lat float64) error
	Point(ctx context.Context, index, name string) (lon, lat float64, err error)
}

// courierLister enumerates onboarded couriers for the monitor sweep.
type courierLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// counter is an incrementable metric (prometheus.Counter).
type counter interface {
	Inc()
}
