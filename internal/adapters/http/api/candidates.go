// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	service "github.com/hrkey/refcore/internal/app"
)

// CandidateDependencies defines the interface for candidate reads.
type CandidateDependencies interface {
	EvaluateCandidate(ctx context.Context, candidateID string, opts service.EvalOptions) (*service.CandidateEvaluation, error)
	ComputeTokenomicsPreview(ctx context.Context, candidateID string, overrides service.TokenomicsOverrides) (*service.TokenomicsPreview, error)
}

// CandidatesHandler handles evaluation and tokenomics requests.
type CandidatesHandler struct {
	deps CandidateDependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// HandleCandidate routes GET /candidates/{id}/evaluation and
// GET /candidates/{id}/tokenomics.
func (h *CandidatesHandler) HandleCandidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidate"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/candidates/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	candidateID, resource := parts[0], parts[1]

	switch resource {
	case "evaluation":
		h.handleEvaluation(w, r, candidateID)
	case "tokenomics":
		h.handleTokenomics(w, r, candidateID)
	default:
		http.NotFound(w, r)
	}
}

func (h *CandidatesHandler) handleEvaluation(w http.ResponseWriter, r *http.Request, candidateID string) {
	const op = "api.get_evaluation"

	includeRaw := false
	if raw := r.URL.Query().Get("include_raw"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		includeRaw = parsed
	}

	ev, err := h.deps.EvaluateCandidate(r.Context(), candidateID, service.EvalOptions{
		IncludeRawReferences: includeRaw,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoReferences) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *CandidatesHandler) handleTokenomics(w http.ResponseWriter, r *http.Request, candidateID string) {
	const op = "api.get_tokenomics"

	var overrides service.TokenomicsOverrides
	if v := r.URL.Query().Get("stake_hrk"); v != "" {
		stake, err := strconv.ParseFloat(v, 64)
		if err != nil || stake < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		overrides.StakeHrk = &stake
	}
	if v := r.URL.Query().Get("lock_months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		overrides.LockMonths = &months
	}

	preview, err := h.deps.ComputeTokenomicsPreview(r.Context(), candidateID, overrides)
	if err != nil {
		if errors.Is(err, service.ErrNoReferences) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
