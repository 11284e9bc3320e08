// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry for a candidate ranked by HRScore.
type Entry struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidate_id"`
	HRScore     float64 `json:"hr_score"`
}
