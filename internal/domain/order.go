package domain

import "time"

// Order is a delivery request moving through the pending/assigned/delivered lifecycle.
type Order struct {
	ID          string
	ClientID    string
	Destination string
	Amount      float64
	CreatedAt   time.Time
	Status      OrderStatus
	CourierID   string // set iff Status != StatusPending
}

// Assignment is the durable order→courier link, written exactly once when an
// order becomes assigned and never rewritten (reassignment is out of scope).
type Assignment struct {
	OrderID   string
	CourierID string
}

// AssignResult - struct representing the result of assigning an order.
type AssignResult struct {
	OrderID   string
	CourierID string
	Status    OrderStatus
}

// CompleteResult - struct representing the result of completing a delivery.
type CompleteResult struct {
	OrderID   string
	CourierID string
	Amount    float64
	Status    OrderStatus
}
