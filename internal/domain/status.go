package domain

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

// List of possible order statuses
const (
	StatusPending   OrderStatus = "pending"
	StatusAssigned  OrderStatus = "assigned"
	StatusDelivered OrderStatus = "delivered"
)

// List of allowed statuses
var allowedStatuses = [...]OrderStatus{
	StatusPending, StatusAssigned, StatusDelivered,
}

// transitions maps each status to the single status reachable from it.
// StatusPending is the only initial state; StatusDelivered is terminal.
var transitions = map[OrderStatus]OrderStatus{
	StatusPending:  StatusAssigned,
	StatusAssigned: StatusDelivered,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether next is a legal transition from s.
// The lifecycle is monotonic: no skips, no regressions.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return transitions[s] == next && next != ""
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	_, ok := transitions[s]
	return s.Valid() && !ok
}
