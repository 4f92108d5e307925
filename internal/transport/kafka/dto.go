package kafka

import (
	"strings"
	"time"

	"courier-dispatch/internal/service/positions"
)

// EventDTO is a data transfer object for positions.Event
type EventDTO struct {
	CourierID  string    `json:"courier_id"`
	Lon        float64   `json:"lon"`
	Lat        float64   `json:"lat"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ToDomain converts EventDTO to positions.Event
func ToDomain(dto EventDTO) positions.Event {
	return positions.Event{
		CourierID:  strings.TrimSpace(dto.CourierID),
		Lon:        dto.Lon,
		Lat:        dto.Lat,
		RecordedAt: dto.RecordedAt,
	}
}
