// Package store persists finalized evaluation results and maintains the
// ranked leaderboards used for sharing. Results live under result:<id>
// keys; each scenario has a sorted leaderboard set plus one global set,
// both capped to the top 100 members.
package store

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/doomlabs/apocalypse-meter/internal/types"
)

const (
	// ShareIDLength is the exact length of every issued share ID; the
	// retrieval endpoint rejects anything else before touching the store.
	ShareIDLength = 8

	shareIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	resultKeyPrefix      = "result:"
	leaderboardKeyPrefix = "leaderboard:"
	globalLeaderboardKey = "leaderboard:global"

	// maxLeaderboardSize caps each ranked set; members beyond it are trimmed.
	maxLeaderboardSize = 100

	// DefaultResultTTL is the retention window for stored results. Expired
	// results disappear from retrieval; their leaderboard members are
	// dropped silently during hydration.
	DefaultResultTTL = 30 * 24 * time.Hour
)

// ResultStore is the persistence boundary for shared results.
// GetResult returns (nil, nil) for missing or expired records; read
// failures against the backing store are logged and reported the same
// way, an accepted ambiguity between "missing" and "unreachable".
type ResultStore interface {
	// StoreResult persists the result under a freshly generated share ID,
	// updates both leaderboards, and returns the ID.
	StoreResult(ctx context.Context, result types.StoredResult) (string, error)

	// GetResult fetches a stored result by share ID, nil when not found.
	GetResult(ctx context.Context, shareID string) (*types.StoredResult, error)

	// ScenarioLeaderboard returns the top results for one scenario,
	// highest composite score first.
	ScenarioLeaderboard(ctx context.Context, scenarioID string, limit int) ([]types.StoredResult, error)

	// GlobalLeaderboard returns the top results across all scenarios.
	GlobalLeaderboard(ctx context.Context, limit int) ([]types.StoredResult, error)
}

// GenerateShareID produces an 8-character URL-safe identifier from a
// cryptographically strong source. No uniqueness check is performed; at
// the expected volume a collision is negligible and would behave as a
// re-store of the colliding ID.
func GenerateShareID() (string, error) {
	buf := make([]byte, ShareIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	// The modulo draw slightly favors the first four symbols (256 is not
	// a multiple of 36). IDs are public identifiers, not secrets, so the
	// skew is accepted.
	id := make([]byte, ShareIDLength)
	for i, b := range buf {
		id[i] = shareIDAlphabet[int(b)%len(shareIDAlphabet)]
	}
	return string(id), nil
}

// CompositeScore packs survival time and score into the single ordinal a
// sorted set needs. Survival time dominates; score breaks ties at matched
// survival granularity. This is the one place the packing lives.
func CompositeScore(survivalTimeMs int64, score int) float64 {
	return float64(survivalTimeMs)*1000 + float64(score)
}

func resultKey(shareID string) string {
	return resultKeyPrefix + shareID
}

func scenarioLeaderboardKey(scenarioID string) string {
	return leaderboardKeyPrefix + scenarioID
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxLeaderboardSize {
		return maxLeaderboardSize
	}
	return limit
}
