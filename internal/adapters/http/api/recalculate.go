// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/hrkey/refcore/internal/app"
)

// RecalculateDependencies defines the interface for batch recalculation.
type RecalculateDependencies interface {
	RecalculateAll(ctx context.Context) (service.BatchResult, error)
}

// RecalculateHandler handles batch recalculation requests.
type RecalculateHandler struct {
	deps RecalculateDependencies
}

// NewRecalculateHandler creates a new recalculate handler.
func NewRecalculateHandler(deps RecalculateDependencies) *RecalculateHandler {
	return &RecalculateHandler{deps: deps}
}

// HandleRecalculate handles POST /recalculate requests. Per-candidate
// failures are reported in the body, never as an HTTP error.
func (h *RecalculateHandler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	const op = "api.recalculate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	res, err := h.deps.RecalculateAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
