package dispatch

import (
	"context"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/geo"
)

// geoIndex is the proximity store the selector queries: named delivery
// points and live courier positions.
type geoIndex interface {
	Point(ctx context.Context, index, name string) (lon, lat float64, err error)
	QueryRadius(ctx context.Context, index string, lon, lat, radiusKm float64) ([]geo.Near, error)
	QueryKNearest(ctx context.Context, index string, lon, lat float64, k int) ([]geo.Near, error)
}

// courierDirectory resolves courier profiles and workload counters used to
// enrich and score candidates.
type courierDirectory interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
	Stats(ctx context.Context, id string) (domain.CourierStats, error)
}
