package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Delivery is one completed delivery in the analytical store.
type Delivery struct {
	OrderID     string
	CourierID   string
	Region      string
	Amount      float64
	AssignedAt  time.Time
	DeliveredAt time.Time
}

// CourierHistory is a courier's recent deliveries with running totals.
type CourierHistory struct {
	CourierID       string
	Deliveries      []Delivery
	TotalDeliveries int64
	TotalRevenue    float64
}

// RegionPerformance aggregates delivered orders per region.
type RegionPerformance struct {
	Region         string
	Deliveries     int64
	AvgDurationMin float64
	Revenue        float64
}

// TopCourier is one row of the revenue leaderboard.
type TopCourier struct {
	CourierID  string
	Name       string
	Deliveries int64
	Revenue    float64
}

// Reader is the analytical query surface. Implemented by *Store and by
// *RetryingReader.
type Reader interface {
	CourierHistory(ctx context.Context, courierID string, limit int) (*CourierHistory, error)
	RegionPerformance(ctx context.Context) ([]RegionPerformance, error)
	TopCouriers(ctx context.Context, n int) ([]TopCourier, error)
}

// Store reads delivery history from Postgres. The live dispatch path never
// touches it; everything here is read-only reporting.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new history Store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// CourierHistory returns the courier's most recent deliveries, newest first,
// plus lifetime totals. A courier with no history gets empty totals, not an
// error.
func (s *Store) CourierHistory(ctx context.Context, courierID string, limit int) (*CourierHistory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, `
        SELECT order_id, courier_id, region, amount, assigned_at, delivered_at
        FROM deliveries
        WHERE courier_id = $1
        ORDER BY delivered_at DESC
        LIMIT $2
    `, courierID, limit)
	if err != nil {
		return nil, fmt.Errorf("courier history %q: %w", courierID, err)
	}
	defer rows.Close()

	h := &CourierHistory{CourierID: courierID}
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.OrderID, &d.CourierID, &d.Region, &d.Amount, &d.AssignedAt, &d.DeliveredAt); err != nil {
			return nil, fmt.Errorf("courier history %q: %w", courierID, err)
		}
		h.Deliveries = append(h.Deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("courier history %q: %w", courierID, err)
	}

	err = s.db.QueryRow(ctx, `
        SELECT COUNT(*), COALESCE(SUM(amount), 0)
        FROM deliveries
        WHERE courier_id = $1
    `, courierID).Scan(&h.TotalDeliveries, &h.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("courier totals %q: %w", courierID, err)
	}
	return h, nil
}

// RegionPerformance returns delivery count, average assigned-to-delivered
// duration in minutes and total revenue per region, busiest region first.
func (s *Store) RegionPerformance(ctx context.Context) ([]RegionPerformance, error) {
	rows, err := s.db.Query(ctx, `
        SELECT region,
               COUNT(*),
               COALESCE(AVG(EXTRACT(EPOCH FROM (delivered_at - assigned_at)) / 60), 0),
               COALESCE(SUM(amount), 0)
        FROM deliveries
        GROUP BY region
        ORDER BY COUNT(*) DESC, region ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("region performance: %w", err)
	}
	defer rows.Close()

	var out []RegionPerformance
	for rows.Next() {
		var r RegionPerformance
		if err := rows.Scan(&r.Region, &r.Deliveries, &r.AvgDurationMin, &r.Revenue); err != nil {
			return nil, fmt.Errorf("region performance: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("region performance: %w", err)
	}
	return out, nil
}

// TopCouriers returns the n couriers with the highest delivered revenue.
func (s *Store) TopCouriers(ctx context.Context, n int) ([]TopCourier, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.Query(ctx, `
        SELECT d.courier_id,
               COALESCE(MAX(c.name), ''),
               COUNT(*),
               COALESCE(SUM(d.amount), 0) AS revenue
        FROM deliveries d
        LEFT JOIN couriers c ON c.id = d.courier_id
        GROUP BY d.courier_id
        ORDER BY revenue DESC, d.courier_id ASC
        LIMIT $1
    `, n)
	if err != nil {
		return nil, fmt.Errorf("top couriers: %w", err)
	}
	defer rows.Close()

	var out []TopCourier
	for rows.Next() {
		var tc TopCourier
		if err := rows.Scan(&tc.CourierID, &tc.Name, &tc.Deliveries, &tc.Revenue); err != nil {
			return nil, fmt.Errorf("top couriers: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top couriers: %w", err)
	}
	return out, nil
}
