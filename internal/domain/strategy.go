package domain

// Strategy is a named scoring policy used to rank dispatch candidates.
type Strategy string

// List of possible dispatch strategies
const (
	StrategyClosest   Strategy = "closest"
	StrategyBestRated Strategy = "best_rated"
	StrategyBalanced  Strategy = "balanced"
)

var allowedStrategies = [...]Strategy{
	StrategyClosest, StrategyBestRated, StrategyBalanced,
}

// Valid checks if the Strategy is valid
func (s Strategy) Valid() bool {
	for _, v := range allowedStrategies {
		if s == v {
			return true
		}
	}
	return false
}

// Score computes the strategy score for a candidate at distanceKm with the
// given rating. Higher is better for every strategy:
//   - closest:    -distance
//   - best_rated: rating
//   - balanced:   2*rating - distance (rating 0..5 vs distance in km)
func (s Strategy) Score(distanceKm, rating float64) float64 {
	switch s {
	case StrategyClosest:
		return -distanceKm
	case StrategyBestRated:
		return rating
	case StrategyBalanced:
		return rating*2 - distanceKm
	default:
		return 0
	}
}
