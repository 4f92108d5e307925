package geo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Index names for the two geospatial sets: immutable named delivery points
// and mutable courier positions.
const (
	DeliveryPointsIndex   = "delivery_points"
	CourierPositionsIndex = "courier_positions"
)

// ErrPointNotFound is returned when a member is absent from a geo index.
var ErrPointNotFound = errors.New("point not found")

// Near is one proximity query result: a member and its distance from the
// query center.
type Near struct {
	Name       string
	DistanceKm float64
	Lon        float64
	Lat        float64
}

// Index is a geospatial index backed by Redis GEO sets.
type Index struct {
	rdb *redis.Client
}

// NewIndex creates a new geospatial Index.
func NewIndex(rdb *redis.Client) *Index {
	return &Index{rdb: rdb}
}

// UpsertPoint adds or moves a member in the given geo set. GEOADD overwrites
// an existing member, which makes courier position updates last-write-wins.
func (i *Index) UpsertPoint(ctx context.Context, index, name string, lon, lat float64) error {
	err := i.rdb.GeoAdd(ctx, index, &redis.GeoLocation{
		Name:      name,
		Longitude: lon,
		Latitude:  lat,
	}).Err()
	if err != nil {
		return fmt.Errorf("geoadd %s %q: %w", index, name, err)
	}
	return nil
}

// Point resolves a member to its coordinates. Returns ErrPointNotFound when
// the member is absent.
func (i *Index) Point(ctx context.Context, index, name string) (lon, lat float64, err error) {
	pos, err := i.rdb.GeoPos(ctx, index, name).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("geopos %s %q: %w", index, name, err)
	}
	if len(pos) == 0 || pos[0] == nil {
		return 0, 0, fmt.Errorf("%w: %s %q", ErrPointNotFound, index, name)
	}
	return pos[0].Longitude, pos[0].Latitude, nil
}

// QueryRadius returns all members within radiusKm of (lon, lat), ascending by
// distance.
func (i *Index) QueryRadius(ctx context.Context, index string, lon, lat, radiusKm float64) ([]Near, error) {
	locs, err := i.rdb.GeoSearchLocation(ctx, index, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lon,
			Latitude:   lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geosearch %s radius %.2fkm: %w", index, radiusKm, err)
	}
	return toNear(locs), nil
}

// QueryKNearest returns up to k members closest to (lon, lat), ascending by
// distance.
func (i *Index) QueryKNearest(ctx context.Context, index string, lon, lat float64, k int) ([]Near, error) {
	if k <= 0 {
		return nil, nil
	}
	locs, err := i.rdb.GeoSearchLocation(ctx, index, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lon,
			Latitude:   lat,
			Radius:     maxSearchRadiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      k,
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geosearch %s k=%d: %w", index, k, err)
	}
	return toNear(locs), nil
}

// maxSearchRadiusKm caps k-nearest searches; wider than any service area.
const maxSearchRadiusKm = 1000

func toNear(locs []redis.GeoLocation) []Near {
	out := make([]Near, 0, len(locs))
	for _, l := range locs {
		out = append(out, Near{
			Name:       l.Name,
			DistanceKm: l.Dist,
			Lon:        l.Longitude,
			Lat:        l.Latitude,
		})
	}
	return out
}
