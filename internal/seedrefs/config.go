package seedrefs

import "time"

// Config holds configuration for the reference seeding run.
type Config struct {
	BaseURL          string        // Base URL of the service
	NumCandidates    int           // Number of candidates to seed
	RefsPerCandidate int           // References generated per candidate
	TopN             int           // Number of top entries to fetch
	Workers          int           // Number of concurrent workers
	Timeout          time.Duration // HTTP request timeout
	OutputFile       string        // Output file for generated submissions
	LogFile          string        // Log file for run output
	Verbose          bool          // Enable verbose logging
}

// Submission mirrors the POST /references request body.
type Submission struct {
	Summary          string             `json:"summary"`
	KPIRatings       map[string]float64 `json:"kpi_ratings"`
	DetailedFeedback map[string]string  `json:"detailed_feedback,omitempty"`
	OwnerID          string             `json:"owner_id"`
	ReferrerEmail    string             `json:"referrer_email"`
	SubmittedAt      string             `json:"submitted_at"`
}

// Entry represents a leaderboard entry.
type Entry struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidate_id"`
	HRScore     float64 `json:"hr_score"`
}

// AckResponse represents the response from a reference submission.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics.
type Stats struct {
	SubmissionsGenerated int
	SubmissionsSubmitted int
	SubmissionsAccepted  int
	SubmissionsDuplicate int
	SubmissionsFailed    int
	EvaluationsFetched   int
	LeaderboardEntries   int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
