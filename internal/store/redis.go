package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/doomlabs/apocalypse-meter/internal/kv"
	"github.com/doomlabs/apocalypse-meter/internal/types"
)

// RedisStore keeps results and leaderboards in Redis. Results are JSON
// blobs with a TTL; leaderboards are sorted sets keyed by composite
// score. Leaderboard members whose result blob has expired are dropped
// during hydration.
type RedisStore struct {
	client    *redis.Client
	resultTTL time.Duration
}

// NewRedisStore builds a store over an enabled Redis connection.
func NewRedisStore(rc *kv.RedisClient, resultTTL time.Duration) (*RedisStore, error) {
	if rc == nil || !rc.IsEnabled() {
		return nil, fmt.Errorf("redis client is not enabled")
	}
	if resultTTL <= 0 {
		resultTTL = DefaultResultTTL
	}
	return &RedisStore{
		client:    rc.GetClient(),
		resultTTL: resultTTL,
	}, nil
}

func (s *RedisStore) StoreResult(ctx context.Context, result types.StoredResult) (string, error) {
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

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := s.client.Set(ctx, resultKey(id), payload, s.resultTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store result: %w", err)
	}

	score := CompositeScore(result.SurvivalTimeMs, result.Score)
	member := redis.Z{Score: score, Member: id}

	// ZADD on an existing member replaces its score, so a re-store of the
	// same ID never duplicates a leaderboard row.
	for _, key := range []string{scenarioLeaderboardKey(result.ScenarioID), globalLeaderboardKey} {
		if err := s.client.ZAdd(ctx, key, member).Err(); err != nil {
			return "", fmt.Errorf("failed to update leaderboard %s: %w", key, err)
		}
		// Keep only the highest-scored members.
		if err := s.client.ZRemRangeByRank(ctx, key, 0, int64(-(maxLeaderboardSize + 1))).Err(); err != nil {
			slog.Warn("leaderboard trim failed", "key", key, "error", err)
		}
	}

	return id, nil
}

func (s *RedisStore) GetResult(ctx context.Context, shareID string) (*types.StoredResult, error) {
	payload, err := s.client.Get(ctx, resultKey(shareID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		slog.Error("result lookup failed", "share_id", shareID, "error", err)
		return nil, nil
	}

	var result types.StoredResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		slog.Error("stored result is not valid JSON", "share_id", shareID, "error", err)
		return nil, nil
	}
	return &result, nil
}

func (s *RedisStore) ScenarioLeaderboard(ctx context.Context, scenarioID string, limit int) ([]types.StoredResult, error) {
	return s.topResults(ctx, scenarioLeaderboardKey(scenarioID), clampLimit(limit, 10))
}

func (s *RedisStore) GlobalLeaderboard(ctx context.Context, limit int) ([]types.StoredResult, error) {
	return s.topResults(ctx, globalLeaderboardKey, clampLimit(limit, 20))
}

func (s *RedisStore) topResults(ctx context.Context, key string, limit int) ([]types.StoredResult, error) {
	ids, err := s.client.ZRevRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard %s: %w", key, err)
	}
	if len(ids) == 0 {
		return []types.StoredResult{}, nil
	}

	results := make([]types.StoredResult, 0, len(ids))
	for _, id := range ids {
		res, err := s.GetResult(ctx, id)
		if err != nil || res == nil {
			// Expired result still ranked; skip it.
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}
