package handlers

import (
	"errors"
	"net/http"
	"strings"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

const defaultRadiusKm = 5.0

// DispatchHandler handles HTTP requests for courier selection.
type DispatchHandler struct {
	usecase dispatchUsecase
	logger  logx.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(logger logx.Logger, uc dispatchUsecase) *DispatchHandler {
	return &DispatchHandler{usecase: uc, logger: logger}
}

// Candidates handles GET /dispatch/candidates?location=&radius_km=&limit=.
// With limit set the radius is ignored and the limit closest couriers are
// returned instead.
func (h *DispatchHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	radiusKm := queryFloat(r, "radius_km", defaultRadiusKm)
	limit := queryInt(r, "limit", 0)

	var (
		candidates []domain.Candidate
		err        error
	)
	if limit > 0 {
		candidates, err = h.usecase.SelectNearest(r.Context(), location, limit)
	} else {
		candidates, err = h.usecase.SelectCandidates(r.Context(), location, radiusKm)
	}

	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, candidatesToDTO(candidates))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery point not found")
	case errors.Is(err, apperr.ErrStoreUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "store unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Optimal handles GET /dispatch/optimal?location=&radius_km=&strategy=.
func (h *DispatchHandler) Optimal(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	radiusKm := queryFloat(r, "radius_km", defaultRadiusKm)
	strategy := domain.Strategy(r.URL.Query().Get("strategy"))
	if strategy == "" {
		strategy = domain.StrategyBalanced
	}

	best, err := h.usecase.OptimalAssignment(r.Context(), location, radiusKm, strategy)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, optimalResponse{
			candidateDTO: candidateToDTO(best),
			Strategy:     string(strategy),
			Score:        best.Score,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery point not found")
	case errors.Is(err, apperr.ErrNoCandidates):
		writeError(h.logger, w, r, http.StatusConflict, "no candidates in range")
	case errors.Is(err, apperr.ErrStoreUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "store unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
