package domain

// Courier represents a delivery courier tracked by the dispatch system.
type Courier struct {
	ID      string
	Name    string
	Regions []string
	Rating  float64
}

// CourierStats holds the workload counters mutated by the assignment engine.
type CourierStats struct {
	InProgress int64
	Completed  int64
	Revenue    float64
}

// Position is a courier's last known GPS point.
type Position struct {
	Lon float64
	Lat float64
}

// MinRating and MaxRating bound the courier rating scale.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// ValidRating reports whether r is on the rating scale.
func ValidRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}

// ValidCoordinates reports whether lon/lat form a real GPS coordinate.
func ValidCoordinates(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
