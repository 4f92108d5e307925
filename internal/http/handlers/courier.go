package handlers

import (
	"errors"
	"net/http"
	"strings"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

// CourierHandler handles HTTP requests for courier resources.
type CourierHandler struct {
	couriers courierUsecase
	zones    zoneUsecase
	logger   logx.Logger
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(logger logx.Logger, couriers courierUsecase, zones zoneUsecase) *CourierHandler {
	return &CourierHandler{couriers: couriers, zones: zones, logger: logger}
}

// Create handles POST /couriers.
func (h *CourierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == "" || req.Name == "" || !domain.ValidRating(req.Rating) {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
		return
	}

	if err := h.couriers.Create(r.Context(), req.toModel()); err != nil {
		if errors.Is(err, apperr.ErrStoreUnavailable) {
			writeError(h.logger, w, r, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(h.logger, w, r, http.StatusCreated, courierDTO{
		ID:      req.ID,
		Name:    req.Name,
		Regions: req.Regions,
		Rating:  req.Rating,
	})
}

// Get handles GET /couriers/{id} and returns the profile with workload
// counters.
func (h *CourierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idFromURL(r, "id")
	if id == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.couriers.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if c == nil {
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
		return
	}

	stats, err := h.couriers.Stats(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	writeJSON(h.logger, w, r, http.StatusOK, courierToResponse(c, stats))
}

// UpdatePosition handles PUT /couriers/{id}/position.
func (h *CourierHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id := idFromURL(r, "id")

	var req positionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.zones.UpdatePosition(r.Context(), id, req.Lon, req.Lat)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid coordinates")
	case errors.Is(err, apperr.ErrStoreUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "store unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Zone handles GET /couriers/{id}/zone.
func (h *CourierHandler) Zone(w http.ResponseWriter, r *http.Request) {
	id := idFromURL(r, "id")

	st, err := h.zones.CheckInZone(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, zoneStatusToResponse(st))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier position not found")
	case errors.Is(err, apperr.ErrStoreUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "store unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

func (h *CourierHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperr.ErrStoreUnavailable) {
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
}
