package handlers

import (
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/history"
	"courier-dispatch/internal/service/zone"
)

func assignResultToResponse(res domain.AssignResult) assignResponse {
	return assignResponse{
		OrderID:   res.OrderID,
		CourierID: res.CourierID,
		Status:    string(res.Status),
	}
}

func completeResultToResponse(res domain.CompleteResult) completeResponse {
	return completeResponse{
		OrderID:   res.OrderID,
		CourierID: res.CourierID,
		Amount:    res.Amount,
		Status:    string(res.Status),
	}
}

func candidateToDTO(c domain.Candidate) candidateDTO {
	return candidateDTO{
		CourierID:  c.CourierID,
		Name:       c.Name,
		DistanceKm: c.DistanceKm,
		Rating:     c.Rating,
		InProgress: c.InProgress,
	}
}

func candidatesToDTO(list []domain.Candidate) []candidateDTO {
	out := make([]candidateDTO, 0, len(list))
	for _, c := range list {
		out = append(out, candidateToDTO(c))
	}
	return out
}

func (r createCourierRequest) toModel() *domain.Courier {
	return &domain.Courier{
		ID:      r.ID,
		Name:    r.Name,
		Regions: r.Regions,
		Rating:  r.Rating,
	}
}

func courierToResponse(c *domain.Courier, st domain.CourierStats) courierResponse {
	return courierResponse{
		courierDTO: courierDTO{
			ID:      c.ID,
			Name:    c.Name,
			Regions: c.Regions,
			Rating:  c.Rating,
		},
		InProgress: st.InProgress,
		Completed:  st.Completed,
		Revenue:    st.Revenue,
	}
}

func zoneStatusToResponse(st zone.Status) zoneResponse {
	return zoneResponse{
		CourierID:     st.CourierID,
		DistanceKm:    st.DistanceKm,
		MaxDistanceKm: st.MaxDistanceKm,
		InZone:        st.InZone,
	}
}

func historyToResponse(h *history.CourierHistory) courierHistoryResponse {
	out := courierHistoryResponse{
		CourierID:       h.CourierID,
		Deliveries:      make([]deliveryDTO, 0, len(h.Deliveries)),
		TotalDeliveries: h.TotalDeliveries,
		TotalRevenue:    h.TotalRevenue,
	}
	for _, d := range h.Deliveries {
		out.Deliveries = append(out.Deliveries, deliveryDTO{
			OrderID:     d.OrderID,
			Region:      d.Region,
			Amount:      d.Amount,
			AssignedAt:  d.AssignedAt,
			DeliveredAt: d.DeliveredAt,
		})
	}
	return out
}

func regionsToDTO(list []history.RegionPerformance) []regionPerformanceDTO {
	out := make([]regionPerformanceDTO, 0, len(list))
	for _, r := range list {
		out = append(out, regionPerformanceDTO{
			Region:         r.Region,
			Deliveries:     r.Deliveries,
			AvgDurationMin: r.AvgDurationMin,
			Revenue:        r.Revenue,
		})
	}
	return out
}

func topCouriersToDTO(list []history.TopCourier) []topCourierDTO {
	out := make([]topCourierDTO, 0, len(list))
	for _, c := range list {
		out = append(out, topCourierDTO{
			CourierID:  c.CourierID,
			Name:       c.Name,
			Deliveries: c.Deliveries,
			Revenue:    c.Revenue,
		})
	}
	return out
}
