// Package service wires the reference pipeline together: intake, async
// validation, evaluation, tokenomics previews and the leaderboard. It
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	jobqueue "github.com/hrkey/refcore/internal/adapters/mq/queue"
	workerpool "github.com/hrkey/refcore/internal/adapters/mq/worker"
	repository "github.com/hrkey/refcore/internal/adapters/repository"
	"github.com/hrkey/refcore/internal/config"
	"github.com/hrkey/refcore/internal/domain/dedupe"
	"github.com/hrkey/refcore/internal/domain/model"
	"github.com/hrkey/refcore/internal/domain/pricing"
	"github.com/hrkey/refcore/internal/domain/scoring"
	"github.com/hrkey/refcore/internal/domain/tokenomics"
	"github.com/hrkey/refcore/internal/domain/types"
	"github.com/hrkey/refcore/internal/domain/validation"
	"github.com/hrkey/refcore/pkg/logger"
	"github.com/hrkey/refcore/pkg/metrics"
	"github.com/hrkey/refcore/pkg/result"
)

// Default service configuration constants.
const (
	defaultQueueSize        = 10000
	defaultDedupeSize       = 100000
	defaultMaxLimit         = 100
	defaultEvalTimeout      = 5 * time.Second
	defaultBatchParallelism = 4
	stopTimeout             = 30 * time.Second
)

// Service implements the reference validation and monetization pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components, constructed on Start.
	refStore   repository.ReferenceStore
	evalStore  repository.EvaluationStore
	rankStore  repository.RankStore
	deduper    dedupe.Deduper
	jobQueue   jobqueue.Queue
	workerPool *workerpool.Pool
	validator  *validation.Validator
	aggregator *scoring.Aggregator
	economy    *tokenomics.Engine
	closeStore func() error

	// Configuration
	dbPath               string
	queueSize            int
	workerCount          int
	dedupeSize           int
	maxLeaderboardLimit  int
	evalTimeout          time.Duration
	batchParallelism     int
	fraudThreshold       int
	consistencyThreshold float64
	skipEmbeddings       bool
	skipConsistencyCheck bool
	pricer               *pricing.Pricer
	economyCfg           tokenomics.Config

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDBPath sets the SQLite database location.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithWorkerCount sets the number of validation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the intake queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard reads.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithEvalTimeout bounds reference-row fetches during evaluation.
func WithEvalTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.evalTimeout = d
		}
	}
}

// WithBatchParallelism bounds concurrent candidates during recalculation.
func WithBatchParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchParallelism = n
		}
	}
}

// WithValidationPolicy sets the validator thresholds and skip switches.
func WithValidationPolicy(fraudThreshold int, consistencyThreshold float64, skipEmbeddings, skipConsistencyCheck bool) Option {
	return func(s *Service) {
		s.fraudThreshold = fraudThreshold
		s.consistencyThreshold = consistencyThreshold
		s.skipEmbeddings = skipEmbeddings
		s.skipConsistencyCheck = skipConsistencyCheck
	}
}

// WithPricer sets the pricing curve.
func WithPricer(p *pricing.Pricer) Option {
	return func(s *Service) {
		if p != nil {
			s.pricer = p
		}
	}
}

// WithEconomy sets the tokenomics parameters.
func WithEconomy(cfg tokenomics.Config) Option {
	return func(s *Service) { s.economyCfg = cfg }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// FromConfig translates loaded configuration into service options.
func FromConfig(cfg *config.Config) []Option {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = math.MaxFloat64
	}
	return []Option{
		WithDBPath(cfg.DBPath),
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithDedupeSize(cfg.DedupeSize),
		WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
		WithEvalTimeout(time.Duration(cfg.EvalTimeoutMS) * time.Millisecond),
		WithBatchParallelism(cfg.BatchParallelism),
		WithValidationPolicy(cfg.FraudThreshold, cfg.ConsistencyThreshold, cfg.SkipEmbeddings, cfg.SkipConsistencyCheck),
		WithPricer(pricing.New(pricing.WithBounds(cfg.MinPriceUsd, cfg.MaxPriceUsd))),
		WithEconomy(tokenomics.Config{
			FxRateUsdToHrk:    cfg.FxRateUsdToHrk,
			PlatformSharePct:  cfg.PlatformSharePct,
			ReferenceSharePct: cfg.ReferenceSharePct,
			CandidateSharePct: cfg.CandidateSharePct,
			BaseStakingApr:    cfg.BaseStakingApr,
			LockPeriodMonths:  cfg.DefaultLockMonths,
			BoostWeight:       cfg.BoostWeight,
			MinTokens:         cfg.MinTokens,
			MaxTokens:         maxTokens,
		}),
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:               "data/refcore.db",
		queueSize:            defaultQueueSize,
		workerCount:          runtime.NumCPU() * 2,
		dedupeSize:           defaultDedupeSize,
		maxLeaderboardLimit:  defaultMaxLimit,
		evalTimeout:          defaultEvalTimeout,
		batchParallelism:     defaultBatchParallelism,
		fraudThreshold:       70,
		consistencyThreshold: 0.4,
		pricer:               pricing.New(),
		economyCfg:           tokenomics.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting reference pipeline...")

	store, err := repository.NewGormStore(s.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	s.refStore = store
	s.evalStore = store
	s.closeStore = store.Close

	s.rankStore = repository.NewMemoryRankStore()
	if err := s.rebuildLeaderboard(ctx); err != nil {
		s.logger.Warn(ctx, "leaderboard rebuild incomplete", logger.Error(err))
	}

	s.deduper = dedupe.NewRingDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.jobQueue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))
	s.validator = validation.New(
		validation.WithFraudThreshold(s.fraudThreshold),
		validation.WithConsistencyThreshold(s.consistencyThreshold),
	)
	s.aggregator = scoring.New(scoring.WithPricer(s.pricer))
	s.economy = tokenomics.New(tokenomics.WithConfig(s.economyCfg))

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "reference pipeline started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service, draining buffered jobs first.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping reference pipeline...")

	shutdownCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(shutdownCtx)
	}

	if s.closeStore != nil {
		if err := s.closeStore(); err != nil {
			s.logger.Error(ctx, "error closing store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "reference pipeline stopped")
}

// rebuildLeaderboard restores rank state from the latest stored snapshots.
func (s *Service) rebuildLeaderboard(ctx context.Context) error {
	snaps, err := s.evalStore.LatestSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("load snapshots: %w", err)
	}
	for _, snap := range snaps {
		if err := s.rankStore.SetScore(ctx, snap.OwnerID, float64(snap.HRScore)); err != nil {
			return fmt.Errorf("restore rank for %s: %w", snap.OwnerID, err)
		}
	}
	if len(snaps) > 0 {
		s.logger.Info(ctx, "leaderboard rebuilt", logger.Int("candidates", len(snaps)))
	}
	return nil
}

// SubmitResult reports the outcome of a submission attempt.
type SubmitResult struct {
	Accepted    bool   `json:"accepted"`
	Duplicate   bool   `json:"duplicate"`
	Fingerprint string `json:"fingerprint"`
}

// SubmitReference validates the submission schema, deduplicates it, and
// enqueues it for asynchronous processing. A full queue rolls back the
// idempotency record so the client can retry.
func (s *Service) SubmitReference(ctx context.Context, sub *model.ReferenceSubmission) (SubmitResult, error) {
	if !s.isStarted() {
		return SubmitResult{}, ErrNotStarted
	}
	if err := sub.Validate(); err != nil {
		return SubmitResult{}, err
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}

	fp := dedupe.Fingerprint(sub)
	if s.deduper.SeenAndRecord(ctx, fp) {
		metrics.RecordSubmissionDuplicate()
		s.logger.Debug(ctx, "duplicate submission skipped",
			logger.String("fingerprint", fp),
			logger.String("ownerID", sub.OwnerID),
		)
		return SubmitResult{Accepted: true, Duplicate: true, Fingerprint: fp}, nil
	}

	if !s.jobQueue.Enqueue(ctx, jobqueue.Job{Fingerprint: fp, Submission: sub}) {
		s.deduper.Unrecord(ctx, fp)
		return SubmitResult{Fingerprint: fp}, nil
	}
	return SubmitResult{Accepted: true, Fingerprint: fp}, nil
}

// IngestSubmission validates one queued submission against the owner's prior
// references and persists the resulting record. Called by workers.
func (s *Service) IngestSubmission(ctx context.Context, j jobqueue.Job) (string, error) {
	start := time.Now()

	priors, err := s.refStore.ListByOwner(ctx, j.Submission.OwnerID)
	if err != nil {
		return "", fmt.Errorf("load prior references: %w", err)
	}

	rec := s.validator.Validate(ctx, j.Submission, validation.Options{
		PreviousReferences:   priors,
		SkipEmbeddings:       s.skipEmbeddings,
		SkipConsistencyCheck: s.skipConsistencyCheck,
	})

	metrics.RecordValidationLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordValidation(string(rec.ValidationStatus))
	metrics.RecordFraudScore(float64(rec.FraudScore))
	metrics.RecordConsistencyScore(rec.ConsistencyScore)

	if sv := model.SafeValidate(rec); !sv.Success {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidRecord, sv.Errors)
	}
	if err := s.refStore.SaveValidated(ctx, rec); err != nil {
		return "", fmt.Errorf("persist reference: %w", err)
	}

	s.logger.Debug(ctx, "reference validated",
		logger.String("recordID", rec.ID),
		logger.String("ownerID", rec.OwnerID),
		logger.String("status", string(rec.ValidationStatus)),
		logger.Int("fraudScore", rec.FraudScore),
	)
	return rec.OwnerID, nil
}

// RefreshEvaluation recomputes a candidate's evaluation after new references
// land. Called by workers.
func (s *Service) RefreshEvaluation(ctx context.Context, ownerID string) error {
	_, err := s.EvaluateCandidate(ctx, ownerID, EvalOptions{})
	return err
}

// EvalOptions carries per-call evaluation inputs.
type EvalOptions struct {
	// IncludeRawReferences echoes the stored reference records back with
	// the evaluation.
	IncludeRawReferences bool
}

// CandidateEvaluation is the full evaluation document for one candidate.
type CandidateEvaluation struct {
	CandidateID            string                     `json:"candidate_id"`
	ReferenceCount         int                        `json:"reference_count"`
	ApprovedCount          int                        `json:"approved_count"`
	Evaluation             scoring.Evaluation         `json:"evaluation"`
	SnapshotID             string                     `json:"snapshot_id,omitempty"`
	SnapshotDegraded       bool                       `json:"snapshot_degraded,omitempty"`
	SnapshotDegradedReason string                     `json:"snapshot_degraded_reason,omitempty"`
	RawReferences          []*model.ValidatedReference `json:"raw_references,omitempty"`
	GeneratedAt            time.Time                  `json:"generated_at"`
}

// EvaluateCandidate aggregates the candidate's approved references into an
// HRScore and price, persists a snapshot, and updates the leaderboard.
// Snapshot persistence is fail-soft: a write failure degrades the response
// instead of failing it, since the evaluation itself is already computed.
func (s *Service) EvaluateCandidate(ctx context.Context, candidateID string, opts EvalOptions) (*CandidateEvaluation, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.evalTimeout)
	defer cancel()
	recs, err := s.refStore.ListByOwner(fetchCtx, candidateID)
	if err != nil {
		metrics.RecordEvaluationError()
		metrics.RecordErrorByComponent("service", "reference_fetch")
		return nil, fmt.Errorf("load references: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoReferences, candidateID)
	}

	answers := make([]scoring.AnswerInput, 0, len(recs))
	approved := 0
	for _, rec := range recs {
		if !rec.ValidationStatus.IsApproved() {
			continue
		}
		approved++
		answers = append(answers, scoring.AnswerInput{
			QuestionID: rec.ID,
			AnswerText: rec.StandardizedText,
		})
	}

	ev := s.aggregator.EvaluateAnswers(answers)
	metrics.RecordEvaluationComputed()

	snapRes := s.persistSnapshot(ctx, candidateID, ev)

	if err := s.rankStore.SetScore(ctx, candidateID, float64(ev.HRScoreResult.HRScore)); err != nil {
		s.logger.Warn(ctx, "rank update failed",
			logger.String("candidateID", candidateID),
			logger.Error(err),
		)
	}
	metrics.UpdateTotalCandidates(s.rankStore.Count(ctx))

	out := &CandidateEvaluation{
		CandidateID:    candidateID,
		ReferenceCount: len(recs),
		ApprovedCount:  approved,
		Evaluation:     ev,
		SnapshotID:     snapRes.Value(),
		GeneratedAt:    time.Now().UTC(),
	}
	if snapRes.IsDegraded() {
		out.SnapshotDegraded = true
		out.SnapshotDegradedReason = snapRes.Reason()
	}
	if opts.IncludeRawReferences {
		out.RawReferences = recs
	}
	return out, nil
}

// persistSnapshot appends an evaluation snapshot, degrading on failure.
func (s *Service) persistSnapshot(ctx context.Context, candidateID string, ev scoring.Evaluation) result.Result[string] {
	payload, err := json.Marshal(ev)
	if err != nil {
		metrics.RecordSnapshotFailure()
		return result.Degraded("", fmt.Sprintf("encode snapshot: %v", err))
	}

	snap := &repository.EvaluationSnapshot{
		ID:        uuid.NewString(),
		OwnerID:   candidateID,
		HRScore:   ev.HRScoreResult.HRScore,
		PriceUsd:  ev.PricingResult.PriceUsd,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.evalStore.SaveSnapshot(ctx, snap); err != nil {
		metrics.RecordSnapshotFailure()
		metrics.RecordErrorByComponent("service", "snapshot_write")
		s.logger.Warn(ctx, "snapshot write failed",
			logger.String("candidateID", candidateID),
			logger.Error(err),
		)
		return result.Degraded("", fmt.Sprintf("persist snapshot: %v", err))
	}
	metrics.RecordSnapshotWrite()
	return result.Ok(snap.ID)
}

// TokenomicsOverrides carries optional per-call tokenomics inputs.
type TokenomicsOverrides struct {
	// StakeHrk overrides the staked amount; defaults to the candidate's
	// revenue share.
	StakeHrk *float64

	// LockMonths overrides the staking lock period.
	LockMonths *int
}

// TokenomicsPreview is the monetization view of a candidate's latest score.
type TokenomicsPreview struct {
	CandidateID     string                     `json:"candidate_id"`
	HRScore         int                        `json:"hr_score"`
	NormalizedScore float64                    `json:"normalized_score"`
	PriceUsd        float64                    `json:"price_usd"`
	RevenueSplit    tokenomics.RevenueSplit    `json:"revenue_split"`
	Conversion      tokenomics.Conversion      `json:"conversion"`
	Split           tokenomics.Split           `json:"split"`
	Staking         tokenomics.StakingEstimate `json:"staking"`
	OnChain         tokenomics.OnChainSplit    `json:"on_chain"`
	SnapshotID      string                     `json:"snapshot_id,omitempty"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}

// ComputeTokenomicsPreview derives the token conversion, revenue split and
// staking projection from the candidate's latest evaluation snapshot,
// computing one first if none exists. All figures are advisory previews.
func (s *Service) ComputeTokenomicsPreview(ctx context.Context, candidateID string, overrides TokenomicsOverrides) (*TokenomicsPreview, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}

	snap, err := s.evalStore.LatestSnapshot(ctx, candidateID)
	if err != nil {
		ev, evalErr := s.EvaluateCandidate(ctx, candidateID, EvalOptions{})
		if evalErr != nil {
			return nil, evalErr
		}
		snap = &repository.EvaluationSnapshot{
			ID:       ev.SnapshotID,
			OwnerID:  candidateID,
			HRScore:  ev.Evaluation.HRScoreResult.HRScore,
			PriceUsd: ev.Evaluation.PricingResult.PriceUsd,
		}
	}

	engine := s.economy
	if overrides.LockMonths != nil && *overrides.LockMonths >= 1 {
		cfg := engine.Config()
		cfg.LockPeriodMonths = *overrides.LockMonths
		engine = tokenomics.New(tokenomics.WithConfig(cfg))
	}

	// The USD split is taken from the price itself; the token split below is
	// the same shares applied after conversion and clamping.
	revenue, err := engine.SplitRevenueUsd(snap.PriceUsd)
	if err != nil {
		return nil, fmt.Errorf("split revenue: %w", err)
	}
	conv, err := engine.Convert(snap.PriceUsd)
	if err != nil {
		return nil, fmt.Errorf("convert price: %w", err)
	}
	split, err := engine.SplitRevenue(conv.ClampedTokens)
	if err != nil {
		return nil, fmt.Errorf("split token revenue: %w", err)
	}

	stake := split.CandidateTokens
	if overrides.StakeHrk != nil && *overrides.StakeHrk >= 0 {
		stake = *overrides.StakeHrk
	}
	normalized := float64(snap.HRScore) / 100
	staking, err := engine.EstimateStakingRewards(stake, normalized)
	if err != nil {
		return nil, fmt.Errorf("estimate staking: %w", err)
	}

	metrics.RecordTokenomicsPreview()

	return &TokenomicsPreview{
		CandidateID:     candidateID,
		HRScore:         snap.HRScore,
		NormalizedScore: normalized,
		PriceUsd:        snap.PriceUsd,
		RevenueSplit:    revenue,
		Conversion:      conv,
		Split:           split,
		Staking:         staking,
		OnChain:         engine.OnChainPreview(conv.ClampedTokens),
		SnapshotID:      snap.ID,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// BatchResult summarizes a full recalculation run.
type BatchResult struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// RecalculateAll re-evaluates every candidate with stored references.
// Failures are collected per candidate and never abort the batch.
func (s *Service) RecalculateAll(ctx context.Context) (BatchResult, error) {
	if !s.isStarted() {
		return BatchResult{}, ErrNotStarted
	}

	owners, err := s.refStore.Owners(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list candidates: %w", err)
	}

	res := BatchResult{Total: len(owners), Errors: make(map[string]string)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchParallelism)
	for _, owner := range owners {
		owner := owner
		g.Go(func() error {
			if _, err := s.EvaluateCandidate(gctx, owner, EvalOptions{}); err != nil {
				mu.Lock()
				res.Failed++
				res.Errors[owner] = err.Error()
				mu.Unlock()
				s.logger.Warn(gctx, "recalculation failed for candidate",
					logger.String("candidateID", owner),
					logger.Error(err),
				)
				return nil
			}
			mu.Lock()
			res.Succeeded++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info(ctx, "batch recalculation finished",
		logger.Int("total", res.Total),
		logger.Int("succeeded", res.Succeeded),
		logger.Int("failed", res.Failed),
	)
	return res, nil
}

// TopN returns the top N leaderboard entries, capped by the configured limit.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if n > s.maxLeaderboardLimit {
		n = s.maxLeaderboardLimit
	}
	return s.rankStore.TopN(ctx, n)
}

// Rank returns the rank entry for a candidate.
func (s *Service) Rank(ctx context.Context, candidateID string) (types.Entry, error) {
	if !s.isStarted() {
		return types.Entry{}, ErrNotStarted
	}
	return s.rankStore.Rank(ctx, candidateID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		totalCandidates := s.rankStore.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalCandidates"] = totalCandidates
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalCandidates(totalCandidates)
	}

	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
