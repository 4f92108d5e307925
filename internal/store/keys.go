package store

import "fmt"

// Key schema. Orders and couriers live in hashes; membership and lookups go
// through secondary sets and the ratings sorted set.
func orderKey(id string) string      { return "order:" + id }
func courierKey(id string) string    { return "courier:" + id }
func statsKey(id string) string      { return "courier:" + id + ":stats" }
func assignmentKey(id string) string { return "assignment:" + id }

func statusSetKey(status string) string { return "orders:status:" + status }

func courierRegionsKey(id string) string { return "courier:" + id + ":regions" }
func regionCouriersKey(r string) string  { return fmt.Sprintf("region:%s:couriers", r) }

const (
	couriersAllKey    = "couriers:all"
	courierRatingsKey = "couriers:ratings"
)
