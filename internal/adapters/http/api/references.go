// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/hrkey/refcore/internal/app"
	"github.com/hrkey/refcore/internal/domain/model"
)

// ReferenceDependencies defines the interface for submission intake.
type ReferenceDependencies interface {
	SubmitReference(ctx context.Context, sub *model.ReferenceSubmission) (service.SubmitResult, error)
}

// ReferencesHandler handles reference submission requests.
type ReferencesHandler struct {
	deps ReferenceDependencies
}

// NewReferencesHandler creates a new references handler.
func NewReferencesHandler(deps ReferenceDependencies) *ReferencesHandler {
	return &ReferencesHandler{deps: deps}
}

// HandlePostReference handles POST /references requests.
func (h *ReferencesHandler) HandlePostReference(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reference"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req referenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.SubmitReference(r.Context(), req.toSubmission())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if res.Duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true, Fingerprint: res.Fingerprint})
		return
	}
	if !res.Accepted {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false, Fingerprint: res.Fingerprint})
}
