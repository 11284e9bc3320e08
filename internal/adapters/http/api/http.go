// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	service "github.com/hrkey/refcore/internal/app"
	"github.com/hrkey/refcore/internal/domain/model"
	"github.com/hrkey/refcore/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// SubmitReference accepts a raw submission for async validation.
	SubmitReference(ctx context.Context, sub *model.ReferenceSubmission) (service.SubmitResult, error)

	// EvaluateCandidate computes the candidate's evaluation on demand.
	EvaluateCandidate(ctx context.Context, candidateID string, opts service.EvalOptions) (*service.CandidateEvaluation, error)

	// ComputeTokenomicsPreview derives the monetization preview.
	ComputeTokenomicsPreview(ctx context.Context, candidateID string, overrides service.TokenomicsOverrides) (*service.TokenomicsPreview, error)

	// RecalculateAll re-evaluates every candidate.
	RecalculateAll(ctx context.Context) (service.BatchResult, error)

	// Read operations expose leaderboard data.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, candidateID string) (Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	referencesHandler  *ReferencesHandler
	candidatesHandler  *CandidatesHandler
	recalculateHandler *RecalculateHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		referencesHandler:  NewReferencesHandler(deps),
		candidatesHandler:  NewCandidatesHandler(deps),
		recalculateHandler: NewRecalculateHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		rankHandler:        NewRankHandler(deps),
		dashboardHandler:   newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/references", MetricsMiddleware(s.referencesHandler.HandlePostReference, "references"))
	mux.HandleFunc("/candidates/", MetricsMiddleware(s.candidatesHandler.HandleCandidate, "candidates"))
	mux.HandleFunc("/recalculate", MetricsMiddleware(s.recalculateHandler.HandleRecalculate, "recalculate"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

// referenceRequest mirrors the OpenAPI schema for POST /references.
type referenceRequest struct {
	Summary          string             `json:"summary"`
	KPIRatings       map[string]float64 `json:"kpi_ratings"`
	DetailedFeedback map[string]string  `json:"detailed_feedback,omitempty"`
	OwnerID          string             `json:"owner_id"`
	ReferrerEmail    string             `json:"referrer_email"`
	SubmittedAt      string             `json:"submitted_at,omitempty"`
}

func (r referenceRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Summary) == "":
		return errors.New("missing summary")
	case len(r.KPIRatings) == 0:
		return errors.New("missing kpi_ratings")
	case strings.TrimSpace(r.OwnerID) == "":
		return errors.New("missing owner_id")
	case strings.TrimSpace(r.ReferrerEmail) == "":
		return errors.New("missing referrer_email")
	}
	if r.SubmittedAt != "" {
		if _, err := time.Parse(time.RFC3339, r.SubmittedAt); err != nil {
			return errors.New("invalid submitted_at; must be RFC3339")
		}
	}
	return nil
}

func (r referenceRequest) toSubmission() *model.ReferenceSubmission {
	sub := &model.ReferenceSubmission{
		Summary:          r.Summary,
		KPIRatings:       r.KPIRatings,
		DetailedFeedback: r.DetailedFeedback,
		OwnerID:          r.OwnerID,
		ReferrerEmail:    r.ReferrerEmail,
	}
	if r.SubmittedAt != "" {
		ts, _ := time.Parse(time.RFC3339, r.SubmittedAt)
		sub.SubmittedAt = ts
	}
	return sub
}

type ackResponse struct {
	Status      string `json:"status"`
	Duplicate   bool   `json:"duplicate"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
