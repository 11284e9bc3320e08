package seedrefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hrkey/refcore/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Runner configuration constants.
const (
	settleDelay          = 15 * time.Second
	percentageMultiplier = 100
	sampleEvaluations    = 5
)

// Run executes the complete seeding flow: health check, generation,
// concurrent submission, then leaderboard and evaluation verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting reference seeding run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("candidates", config.NumCandidates),
		logger.Int("refsPerCandidate", config.RefsPerCandidate),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	subs, err := generateSubmissions(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("submission generation failed: %w", err)
	}

	if err := submitSubmissions(ctx, config, subs, stats); err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	// Give the validation workers time to drain the queue before reading.
	logger.Get().Info(ctx, "waiting for references to be validated")
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(settleDelay):
	}

	leaderboard, err := getLeaderboard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	if err := sampleEvaluationFetch(ctx, config, leaderboard, stats); err != nil {
		return fmt.Errorf("evaluation verification failed: %w", err)
	}

	if err := saveSubmissionsToFile(ctx, config, subs); err != nil {
		logger.Get().Warn(ctx, "failed to save submissions to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// getLeaderboard fetches the top N entries.
func getLeaderboard(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/leaderboard?limit=" + strconv.Itoa(config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("leaderboard request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard response: %w", err)
	}
	if resp.StatusCode != statusOK {
		return nil, fmt.Errorf("leaderboard request returned status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse leaderboard: %w", err)
	}

	stats.LeaderboardEntries = len(entries)
	logger.Get().Info(ctx, "retrieved leaderboard", logger.Int("entries", len(entries)))

	// Sanity-check ordering: ranks must be consecutive from 1.
	for i, e := range entries {
		if e.Rank != i+1 {
			return nil, fmt.Errorf("leaderboard rank mismatch at position %d: got rank %d", i, e.Rank)
		}
	}

	return entries, nil
}

// sampleEvaluationFetch pulls full evaluations for the top few candidates to
// confirm the read path works end to end.
func sampleEvaluationFetch(ctx context.Context, config *Config, leaderboard []Entry, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	n := sampleEvaluations
	if n > len(leaderboard) {
		n = len(leaderboard)
	}

	for i := 0; i < n; i++ {
		url := config.BaseURL + "/candidates/" + leaderboard[i].CandidateID + "/evaluation"
		resp, err := client.Get(ctx, url)
		if err != nil {
			return fmt.Errorf("evaluation request failed for %s: %w", leaderboard[i].CandidateID, err)
		}
		if _, err := readResponseBody(resp); err != nil {
			return fmt.Errorf("failed to read evaluation for %s: %w", leaderboard[i].CandidateID, err)
		}
		if resp.StatusCode != statusOK {
			return fmt.Errorf("evaluation for %s returned status %d", leaderboard[i].CandidateID, resp.StatusCode)
		}
		stats.EvaluationsFetched++
	}

	logger.Get().Info(ctx, "verified candidate evaluations", logger.Int("count", stats.EvaluationsFetched))
	return nil
}

// saveSubmissionsToFile writes the generated submissions to a JSON file.
func saveSubmissionsToFile(ctx context.Context, config *Config, subs []Submission) error {
	if len(subs) == 0 {
		return fmt.Errorf("no submissions to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seeded_references_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(stats *Stats) {
	var acceptRate, subsPerSecond float64

	if stats.SubmissionsSubmitted > 0 {
		acceptRate = float64(stats.SubmissionsAccepted) / float64(stats.SubmissionsSubmitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		subsPerSecond = float64(stats.SubmissionsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("submissionsGenerated", stats.SubmissionsGenerated),
		logger.Int("submissionsSubmitted", stats.SubmissionsSubmitted),
		logger.Int("submissionsAccepted", stats.SubmissionsAccepted),
		logger.Int("submissionsDuplicate", stats.SubmissionsDuplicate),
		logger.Int("submissionsFailed", stats.SubmissionsFailed),
		logger.Int("evaluationsFetched", stats.EvaluationsFetched),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("submissionsPerSecond", subsPerSecond))
}
