package domain

// Candidate is a courier considered for a specific dispatch decision,
// annotated with its distance from the delivery point and current workload.
type Candidate struct {
	CourierID  string
	Name       string
	DistanceKm float64
	Rating     float64
	InProgress int64
	Score      float64
}
