package handlers

import "time"

type assignRequest struct {
	CourierID string `json:"courier_id"`
}

type assignResponse struct {
	OrderID   string `json:"order_id"`
	CourierID string `json:"courier_id"`
	Status    string `json:"status"`
}

type completeResponse struct {
	OrderID   string  `json:"order_id"`
	CourierID string  `json:"courier_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

type candidateDTO struct {
	CourierID  string  `json:"courier_id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
	Rating     float64 `json:"rating"`
	InProgress int64   `json:"in_progress"`
}

type optimalResponse struct {
	candidateDTO
	Strategy string  `json:"strategy"`
	Score    float64 `json:"score"`
}

type createCourierRequest struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Regions []string `json:"regions"`
	Rating  float64  `json:"rating"`
}

type courierDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Regions []string `json:"regions"`
	Rating  float64  `json:"rating"`
}

type courierResponse struct {
	courierDTO
	InProgress int64   `json:"in_progress"`
	Completed  int64   `json:"completed"`
	Revenue    float64 `json:"revenue"`
}

type positionRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type zoneResponse struct {
	CourierID     string  `json:"courier_id"`
	DistanceKm    float64 `json:"distance_km"`
	MaxDistanceKm float64 `json:"max_distance_km"`
	InZone        bool    `json:"in_zone"`
}

type deliveryDTO struct {
	OrderID     string    `json:"order_id"`
	Region      string    `json:"region"`
	Amount      float64   `json:"amount"`
	AssignedAt  time.Time `json:"assigned_at"`
	DeliveredAt time.Time `json:"delivered_at"`
}

type courierHistoryResponse struct {
	CourierID       string        `json:"courier_id"`
	Deliveries      []deliveryDTO `json:"deliveries"`
	TotalDeliveries int64         `json:"total_deliveries"`
	TotalRevenue    float64       `json:"total_revenue"`
}

type regionPerformanceDTO struct {
	Region         string  `json:"region"`
	Deliveries     int64   `json:"deliveries"`
	AvgDurationMin float64 `json:"avg_duration_min"`
	Revenue        float64 `json:"revenue"`
}

type topCourierDTO struct {
	CourierID  string  `json:"courier_id"`
	Name       string  `json:"name"`
	Deliveries int64   `json:"deliveries"`
	Revenue    float64 `json:"revenue"`
}
