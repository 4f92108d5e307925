package handlers

import (
	"net/http"

	"courier-dispatch/internal/history"
	"courier-dispatch/internal/logx"
)

// HistoryHandler handles HTTP requests for delivery reports. The analytical
// store is optional; without it every report answers 503.
type HistoryHandler struct {
	reader history.Reader
	logger logx.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(logger logx.Logger, reader history.Reader) *HistoryHandler {
	return &HistoryHandler{reader: reader, logger: logger}
}

// CourierHistory handles GET /couriers/{id}/history?limit=.
func (h *HistoryHandler) CourierHistory(w http.ResponseWriter, r *http.Request) {
	if h.reader == nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "history unavailable")
		return
	}

	id := idFromURL(r, "id")
	if id == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	limit := queryInt(r, "limit", 20)

	hist, err := h.reader.CourierHistory(r.Context(), id, limit)
	if err != nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "history unavailable")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, historyToResponse(hist))
}

// RegionReport handles GET /reports/regions.
func (h *HistoryHandler) RegionReport(w http.ResponseWriter, r *http.Request) {
	if h.reader == nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "history unavailable")
		return
	}

	regions, err := h.reader.RegionPerformance(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "history unavailable")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, regionsToDTO(regions))
}

// TopCouriers handles GET /reports/top-couriers?n=.
func (h *HistoryHandler) TopCouriers(w http.ResponseWriter, r *http.Request) {
	if h.reader == nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "history unavailable")
		return
	}

	n := queryInt(r, "n", 10)
	top, err := h.reader.TopCouriers(r.Context(), n)
	if err != nil {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "history unavailable")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, topCouriersToDTO(top))
}
