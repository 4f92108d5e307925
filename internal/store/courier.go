package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"courier-dispatch/internal/domain"
)

// CourierStore represents the courier record store.
type CourierStore struct {
	rdb *redis.Client
}

// NewCourierStore creates a new CourierStore.
func NewCourierStore(rdb *redis.Client) *CourierStore {
	return &CourierStore{rdb: rdb}
}

// Create registers a courier at onboarding: profile hash, rating index,
// membership set, region sets and zeroed workload counters.
func (s *CourierStore) Create(ctx context.Context, c *domain.Courier) error {
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, courierKey(c.ID), map[string]any{
			"id":     c.ID,
			"name":   c.Name,
			"rating": c.Rating,
		})
		p.ZAdd(ctx, courierRatingsKey, redis.Z{Score: c.Rating, Member: c.ID})
		p.SAdd(ctx, couriersAllKey, c.ID)
		for _, r := range c.Regions {
			p.SAdd(ctx, courierRegionsKey(c.ID), r)
			p.SAdd(ctx, regionCouriersKey(r), c.ID)
		}
		p.HSetNX(ctx, statsKey(c.ID), "in_progress", 0)
		p.HSetNX(ctx, statsKey(c.ID), "completed", 0)
		p.HSetNX(ctx, statsKey(c.ID), "revenue", 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create courier %q: %w", c.ID, mapErr(err))
	}
	return nil
}

// Get - returns courier by its ID, nil when absent.
func (s *CourierStore) Get(ctx context.Context, id string) (*domain.Courier, error) {
	vals, err := s.rdb.HGetAll(ctx, courierKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get courier %q: %w", id, mapErr(err))
	}
	if len(vals) == 0 {
		return nil, nil
	}

	regions, err := s.rdb.SMembers(ctx, courierRegionsKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get courier regions %q: %w", id, mapErr(err))
	}

	rating, _ := strconv.ParseFloat(vals["rating"], 64)
	return &domain.Courier{
		ID:      vals["id"],
		Name:    vals["name"],
		Regions: regions,
		Rating:  rating,
	}, nil
}

// Rating returns the courier rating from the sorted set index, 0 when absent.
func (s *CourierStore) Rating(ctx context.Context, id string) (float64, error) {
	score, err := s.rdb.ZScore(ctx, courierRatingsKey, id).Result()
	if IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("courier rating %q: %w", id, mapErr(err))
	}
	return score, nil
}

// Stats returns the courier workload counters.
func (s *CourierStore) Stats(ctx context.Context, id string) (domain.CourierStats, error) {
	vals, err := s.rdb.HGetAll(ctx, statsKey(id)).Result()
	if err != nil {
		return domain.CourierStats{}, fmt.Errorf("courier stats %q: %w", id, mapErr(err))
	}

	inProgress, _ := strconv.ParseInt(vals["in_progress"], 10, 64)
	completed, _ := strconv.ParseInt(vals["completed"], 10, 64)
	revenue, _ := strconv.ParseFloat(vals["revenue"], 64)
	return domain.CourierStats{
		InProgress: inProgress,
		Completed:  completed,
		Revenue:    revenue,
	}, nil
}

// ListIDs returns the IDs of all onboarded couriers.
func (s *CourierStore) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, couriersAllKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", mapErr(err))
	}
	return ids, nil
}

// TopRated returns couriers with rating >= minRating, best first.
func (s *CourierStore) TopRated(ctx context.Context, minRating float64) ([]domain.Courier, error) {
	zs, err := s.rdb.ZRevRangeByScoreWithScores(ctx, courierRatingsKey, &redis.ZRangeBy{
		Min: strconv.FormatFloat(minRating, 'f', -1, 64),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("top rated couriers: %w", mapErr(err))
	}

	out := make([]domain.Courier, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		name, err := s.rdb.HGet(ctx, courierKey(id), "name").Result()
		if err != nil && !IsNotFound(err) {
			return nil, fmt.Errorf("top rated courier %q: %w", id, mapErr(err))
		}
		out = append(out, domain.Courier{ID: id, Name: name, Rating: z.Score})
	}
	return out, nil
}

// InRegion returns the IDs of couriers serving the given region.
func (s *CourierStore) InRegion(ctx context.Context, region string) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, regionCouriersKey(region)).Result()
	if err != nil {
		return nil, fmt.Errorf("couriers in region %q: %w", region, mapErr(err))
	}
	return ids, nil
}
