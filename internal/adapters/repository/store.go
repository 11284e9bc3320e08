// Package repository defines persistence for validated references, evaluation
// snapshots and the candidate ranking state.
//
// Reference and snapshot storage is append-only: rows are inserted, never
// updated or deleted, so the full scoring history stays auditable.
package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/hrkey/refcore/internal/domain/model"
	"github.com/hrkey/refcore/internal/domain/types"
)

// ReferenceStore persists validated references.
type ReferenceStore interface {
	// SaveValidated appends a validated reference. The record ID must be
	// unique; re-saving an existing ID is an error.
	SaveValidated(ctx context.Context, rec *model.ValidatedReference) error

	// ListByOwner returns every validated reference for a candidate, oldest
	// first.
	ListByOwner(ctx context.Context, ownerID string) ([]*model.ValidatedReference, error)

	// CountByOwner returns the number of stored references for a candidate.
	CountByOwner(ctx context.Context, ownerID string) (int64, error)

	// CountOwners returns the number of distinct candidates with at least
	// one stored reference.
	CountOwners(ctx context.Context) (int64, error)

	// Owners returns the distinct candidate IDs with stored references.
	Owners(ctx context.Context) ([]string, error)
}

// EvaluationSnapshot is one immutable evaluation result for a candidate.
// Payload holds the full evaluation document as JSON; the scalar columns are
// denormalized for querying.
type EvaluationSnapshot struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	OwnerID   string         `gorm:"index" json:"owner_id"`
	HRScore   int            `json:"hr_score"`
	PriceUsd  float64        `json:"price_usd"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// EvaluationStore persists evaluation snapshots.
type EvaluationStore interface {
	// SaveSnapshot appends an evaluation snapshot.
	SaveSnapshot(ctx context.Context, snap *EvaluationSnapshot) error

	// LatestSnapshot returns the most recent snapshot for a candidate, or
	// ErrNotFound when none exists.
	LatestSnapshot(ctx context.Context, ownerID string) (*EvaluationSnapshot, error)

	// CountSnapshots returns the total number of stored snapshots.
	CountSnapshots(ctx context.Context) (int64, error)

	// LatestSnapshots returns the most recent snapshot per candidate, used
	// to rebuild the leaderboard on startup.
	LatestSnapshots(ctx context.Context) ([]*EvaluationSnapshot, error)
}

// RankStore provides read/write access to the candidate leaderboard.
type RankStore interface {
	// SetScore records the candidate's current HRScore, replacing any
	// previous value. Recalculation may lower a score, so this is a set,
	// not a best-only update.
	SetScore(ctx context.Context, candidateID string, hrScore float64) error

	// Rank returns the current rank and score for a candidate.
	// Returns ErrNotFound if the candidate is unknown.
	Rank(ctx context.Context, candidateID string) (types.Entry, error)

	// TopN returns the top-N entries ordered by score descending, ties
	// broken by candidate ID ascending.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// Count returns the number of candidates tracked in the leaderboard.
	Count(ctx context.Context) int
}
