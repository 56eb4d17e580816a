package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doomlabs/apocalypse-meter/internal/types"
)

type rankedEntry struct {
	id    string
	score float64
}

// MemoryStore is the in-process fallback used when Redis is not
// configured. It mirrors the Redis layout closely enough that handlers
// cannot tell the two apart. Results never expire here; the process
// lifetime bounds retention.
type MemoryStore struct {
	mu           sync.RWMutex
	results      map[string]types.StoredResult
	leaderboards map[string][]rankedEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results:      make(map[string]types.StoredResult),
		leaderboards: make(map[string][]rankedEntry),
	}
}

func (s *MemoryStore) StoreResult(_ context.Context, result types.StoredResult) (string, error) {
	id, err := GenerateShareID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	result.ID = id
	result.CreatedAt = now.UnixMilli()
	if result.Timestamp == "" {
		result.Timestamp = now.Format(time.RFC3339)
	}

	score := CompositeScore(result.SurvivalTimeMs, result.Score)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[id] = result
	s.rank(scenarioLeaderboardKey(result.ScenarioID), id, score)
	s.rank(globalLeaderboardKey, id, score)

	return id, nil
}

// rank inserts or replaces the member, keeps the set sorted highest
// first, and trims to the cap. Caller holds the write lock.
func (s *MemoryStore) rank(key, id string, score float64) {
	entries := s.leaderboards[key]
	filtered := entries[:0]
	for _, e := range entries {
		if e.id != id {
			filtered = append(filtered, e)
		}
	}
	filtered = append(filtered, rankedEntry{id: id, score: score})

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].score > filtered[j].score
	})
	// Trim the ranking only; the result blob stays retrievable by ID.
	if len(filtered) > maxLeaderboardSize {
		filtered = filtered[:maxLeaderboardSize]
	}
	s.leaderboards[key] = filtered
}

func (s *MemoryStore) GetResult(_ context.Context, shareID string) (*types.StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[shareID]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

func (s *MemoryStore) ScenarioLeaderboard(_ context.Context, scenarioID string, limit int) ([]types.StoredResult, error) {
	return s.topResults(scenarioLeaderboardKey(scenarioID), clampLimit(limit, 10)), nil
}

func (s *MemoryStore) GlobalLeaderboard(_ context.Context, limit int) ([]types.StoredResult, error) {
	return s.topResults(globalLeaderboardKey, clampLimit(limit, 20)), nil
}

func (s *MemoryStore) topResults(key string, limit int) []types.StoredResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.leaderboards[key]
	if limit > len(entries) {
		limit = len(entries)
	}

	results := make([]types.StoredResult, 0, limit)
	for _, e := range entries[:limit] {
		if res, ok := s.results[e.id]; ok {
			results = append(results, res)
		}
	}
	return results
}
