package evaluation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomlabs/apocalypse-meter/internal/cache"
	"github.com/doomlabs/apocalypse-meter/internal/i18n"
)

// stubCompleter returns a fixed response or error.
type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestClientMockMode(t *testing.T) {
	client := NewClient(Config{Mode: ModeMock})

	result, err := client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Analysis, "basement")
	assert.Equal(t, int64(259200000), result.SurvivalTimeMs)
}

func TestClientMockFallsBackToAnyScenario(t *testing.T) {
	client := NewClient(Config{Mode: ModeMock})

	result, err := client.Evaluate(context.Background(), "asteroid-impact", []string{"duck"}, i18n.LocaleZhTW)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.NotEmpty(t, result.Analysis)
	assert.Equal(t, int64(2400000), result.SurvivalTimeMs)
}

func TestClientMockDelayHonorsContext(t *testing.T) {
	client := NewClient(Config{Mode: ModeMock, MockDelay: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Evaluate(ctx, "zombie", []string{"hide"}, i18n.LocaleEN)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientLiveUsesCompleter(t *testing.T) {
	stub := &stubCompleter{response: validJSON}
	client := NewClient(Config{Mode: ModeLive, Completer: stub})

	result, err := client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Analysis, "BASEMENT")
}

func TestClientLiveUpstreamError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("connection refused")}
	client := NewClient(Config{Mode: ModeLive, Completer: stub})

	_, err := client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.Error(t, err)
}

func TestClientLiveParseFailureServesNarrative(t *testing.T) {
	stub := &stubCompleter{response: "total garbage with no fields"}
	client := NewClient(Config{Mode: ModeLive, Completer: stub})

	result, err := client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.NoError(t, err)

	expected := i18n.ErrorResult(i18n.LocaleEN)
	assert.Equal(t, expected.Analysis, result.Analysis)
	assert.Equal(t, expected.DeathScene, result.DeathScene)
	assert.Equal(t, 0, result.Score)
}

func TestClientCacheHitSkipsCompleter(t *testing.T) {
	stub := &stubCompleter{response: validJSON}
	respCache := cache.NewResponseCache(cache.DefaultTTL)
	client := NewClient(Config{Mode: ModeLive, Completer: stub, Cache: respCache})

	first, err := client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.NoError(t, err)
	second, err := client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, first, second)
}

func TestClientCacheKeyIsOrderSensitive(t *testing.T) {
	stub := &stubCompleter{response: validJSON}
	respCache := cache.NewResponseCache(cache.DefaultTTL)
	client := NewClient(Config{Mode: ModeLive, Completer: stub, Cache: respCache})

	_, err := client.Evaluate(context.Background(), "zombie", []string{"a", "b"}, i18n.LocaleEN)
	require.NoError(t, err)
	_, err = client.Evaluate(context.Background(), "zombie", []string{"b", "a"}, i18n.LocaleEN)
	require.NoError(t, err)

	assert.Equal(t, 2, stub.calls)
}

func TestClientParseFailureNotCached(t *testing.T) {
	stub := &stubCompleter{response: "garbage"}
	respCache := cache.NewResponseCache(cache.DefaultTTL)
	client := NewClient(Config{Mode: ModeLive, Completer: stub, Cache: respCache})

	_, err := client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.NoError(t, err)
	_, err = client.Evaluate(context.Background(), "zombie", []string{"hide"}, i18n.LocaleEN)
	require.NoError(t, err)

	// Each call reaches the model again; the narrative never lands in
	// the cache.
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, 0, respCache.Size())
}

func TestMockResponseLocaleFallback(t *testing.T) {
	// An unsupported locale resolves through the default.
	result := mockResponse("zombie", i18n.Locale("fr"))
	assert.Contains(t, result.Analysis, "basement")
}
