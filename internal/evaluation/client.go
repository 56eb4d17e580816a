package evaluation

import (
	"context"
	"log/slog"
	"time"

	"github.com/doomlabs/apocalypse-meter/internal/cache"
	apperrors "github.com/doomlabs/apocalypse-meter/internal/errors"
	"github.com/doomlabs/apocalypse-meter/internal/i18n"
	"github.com/doomlabs/apocalypse-meter/internal/monitoring"
	"github.com/doomlabs/apocalypse-meter/internal/prompt"
	"github.com/doomlabs/apocalypse-meter/internal/scenario"
	"github.com/doomlabs/apocalypse-meter/internal/types"
)

// Mode selects where verdicts come from. The mode is fixed at
// construction, not read from ambient state, so a client's behavior is
// fully determined by its inputs.
type Mode int

const (
	// ModeLive calls the configured chat-completion backend.
	ModeLive Mode = iota
	// ModeMock serves canned fixtures after a simulated delay.
	ModeMock
)

func (m Mode) String() string {
	if m == ModeMock {
		return "mock"
	}
	return "live"
}

// Config assembles an evaluation client.
type Config struct {
	Mode      Mode
	MockDelay time.Duration
	Completer Completer
	// Cache may be nil to disable response caching.
	Cache *cache.ResponseCache
}

// Client produces survival verdicts for submissions. Answers must
// already be sorted by question index; the cache key depends on their
// order.
type Client struct {
	mode      Mode
	mockDelay time.Duration
	completer Completer
	cache     *cache.ResponseCache
}

func NewClient(config Config) *Client {
	return &Client{
		mode:      config.Mode,
		mockDelay: config.MockDelay,
		completer: config.Completer,
		cache:     config.Cache,
	}
}

// Mode reports which backend the client was built with.
func (c *Client) Mode() Mode {
	return c.mode
}

// Evaluate runs the full pipeline: cache check, mock or live call,
// parse recovery, normalization. Parse failures never surface as
// errors; the caller gets the locale's canned error narrative instead.
// Live transport and credential failures do return an error.
func (c *Client) Evaluate(ctx context.Context, scenarioID string, answers []string, locale i18n.Locale) (types.EvaluationResult, error) {
	key := cache.EvaluationKey(scenarioID, answers, string(locale))

	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			monitoring.RecordCacheHit()
			slog.Debug("evaluation served from cache", "scenario_id", scenarioID, "locale", locale)
			return cached, nil
		}
		monitoring.RecordCacheMiss()
	}

	var result types.EvaluationResult
	cacheable := true
	var err error

	switch c.mode {
	case ModeMock:
		result, err = MockEvaluate(ctx, scenarioID, locale, c.mockDelay)
		if err != nil {
			return types.EvaluationResult{}, err
		}
	default:
		result, cacheable, err = c.evaluateLive(ctx, scenarioID, answers, locale)
		if err != nil {
			return types.EvaluationResult{}, err
		}
	}

	// The canned error narrative is never cached; a later call gets a
	// fresh shot at a parseable response.
	if c.cache != nil && cacheable {
		c.cache.Set(key, result, 0)
	}
	return result, nil
}

func (c *Client) evaluateLive(ctx context.Context, scenarioID string, answers []string, locale i18n.Locale) (types.EvaluationResult, bool, error) {
	scenarioName := scenario.DisplayName(scenarioID, locale)
	userPrompt := prompt.Build(scenarioName, answers, locale)

	start := time.Now()
	raw, err := c.completer.Complete(ctx, prompt.SystemMessage, userPrompt)
	monitoring.RecordModelCall(time.Since(start), err != nil)
	if err != nil {
		slog.Error("model call failed", "scenario_id", scenarioID, "error", err)
		return types.EvaluationResult{}, false, apperrors.NewUpstreamError("evaluation backend unavailable", err)
	}

	result, tier := ParseResponse(raw)
	if tier == ParseFailed {
		// Model output with none of the mandatory fields. The contract to
		// the player stays unbroken: serve the canned narrative.
		monitoring.RecordParseFailure()
		slog.Error("model output unrecoverable, serving error narrative",
			"scenario_id", scenarioID,
			"response_len", len(raw))
		return i18n.ErrorResult(locale), false, nil
	}
	if tier.Recovered() {
		monitoring.RecordParseRecovery(tier.String())
		slog.Warn("model output recovered", "scenario_id", scenarioID, "tier", tier.String())
	}
	return result, true, nil
}
