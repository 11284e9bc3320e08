package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/hrkey/refcore/internal/domain/types"
)

const defaultShardCount = 16

// MemoryRankStore implements RankStore with sharded score maps. Writes touch
// a single shard; ranked reads assemble a snapshot across shards and sort it.
// The leaderboard is derived state, rebuilt from snapshots on startup, so no
// durability is needed here.
type MemoryRankStore struct {
	shards []*rankShard
}

type rankShard struct {
	mu     sync.RWMutex
	scores map[string]float64
}

// NewMemoryRankStore creates a rank store with configuration options.
func NewMemoryRankStore(opts ...RankOption) *MemoryRankStore {
	s := &MemoryRankStore{}
	cfg := rankConfig{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	s.shards = make([]*rankShard, cfg.shardCount)
	for i := range s.shards {
		s.shards[i] = &rankShard{scores: make(map[string]float64)}
	}
	return s
}

func (s *MemoryRankStore) shardFor(candidateID string) *rankShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(candidateID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// SetScore records the candidate's current score, replacing any previous one.
func (s *MemoryRankStore) SetScore(ctx context.Context, candidateID string, hrScore float64) error {
	if candidateID == "" {
		return fmt.Errorf("%w: empty candidate id", ErrInvalidRecord)
	}
	sh := s.shardFor(candidateID)
	sh.mu.Lock()
	sh.scores[candidateID] = hrScore
	sh.mu.Unlock()
	return nil
}

// Rank returns the candidate's 1-based position. Ordering is score
// descending with ties broken by candidate ID ascending, so ranks are
// deterministic.
func (s *MemoryRankStore) Rank(ctx context.Context, candidateID string) (types.Entry, error) {
	entries := s.snapshot()

	var target *types.Entry
	for i := range entries {
		if entries[i].CandidateID == candidateID {
			target = &entries[i]
			break
		}
	}
	if target == nil {
		return types.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, candidateID)
	}

	rank := 1
	for _, e := range entries {
		if e.HRScore > target.HRScore ||
			(e.HRScore == target.HRScore && e.CandidateID < target.CandidateID) {
			rank++
		}
	}
	return types.Entry{Rank: rank, CandidateID: candidateID, HRScore: target.HRScore}, nil
}

// TopN returns the best n entries with ranks filled in.
func (s *MemoryRankStore) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	entries := s.snapshot()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].HRScore != entries[j].HRScore {
			return entries[i].HRScore > entries[j].HRScore
		}
		return entries[i].CandidateID < entries[j].CandidateID
	})

	if n > len(entries) {
		n = len(entries)
	}
	top := make([]types.Entry, n)
	for i := 0; i < n; i++ {
		top[i] = entries[i]
		top[i].Rank = i + 1
	}
	return top, nil
}

// Count returns the number of tracked candidates.
func (s *MemoryRankStore) Count(ctx context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.scores)
		sh.mu.RUnlock()
	}
	return total
}

func (s *MemoryRankStore) snapshot() []types.Entry {
	var entries []types.Entry
	for _, sh := range s.shards {
		sh.mu.RLock()
		for id, score := range sh.scores {
			entries = append(entries, types.Entry{CandidateID: id, HRScore: score})
		}
		sh.mu.RUnlock()
	}
	return entries
}
