package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doomlabs/apocalypse-meter/internal/cache"
	"github.com/doomlabs/apocalypse-meter/internal/config"
	"github.com/doomlabs/apocalypse-meter/internal/evaluation"
	"github.com/doomlabs/apocalypse-meter/internal/monitoring"
	"github.com/doomlabs/apocalypse-meter/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.New()
	respCache := cache.NewResponseCache(cache.DefaultTTL)
	evalClient := evaluation.NewClient(evaluation.Config{
		Mode:      evaluation.ModeMock,
		MockDelay: 0,
		Cache:     respCache,
	})

	return setupRouter(deps{
		cfg:         cfg,
		logger:      monitoring.NewLogger(slog.LevelError),
		evalClient:  evalClient,
		respCache:   respCache,
		resultStore: store.NewMemoryStore(),
	})
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "mock", body["mode"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestEvaluateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	payload := map[string]any{
		"scenarioId": "zombie",
		"name":       "Alice",
		"locale":     "en",
		"answers": []map[string]any{
			{"questionIndex": 2, "text": "suburban house"},
			{"questionIndex": 0, "text": "hide in the basement"},
			{"questionIndex": 1, "text": "kitchen knife"},
			{"questionIndex": 4, "text": "compassion"},
			{"questionIndex": 3, "text": "cooking skills"},
		},
	}

	w := doJSON(r, "POST", "/evaluate", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Score          int    `json:"score"`
		Analysis       string `json:"analysis"`
		DeathScene     string `json:"deathScene"`
		Rationale      string `json:"rationale"`
		SurvivalTimeMs int64  `json:"survivalTimeMs"`
		Answers        []struct {
			QuestionIndex int `json:"questionIndex"`
		} `json:"answers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 0, body.Score)
	assert.NotEmpty(t, body.Analysis)
	assert.NotEmpty(t, body.DeathScene)
	assert.NotEmpty(t, body.Rationale)
	assert.Equal(t, int64(259200000), body.SurvivalTimeMs)

	// Answers come back sorted by question index.
	require.Len(t, body.Answers, 5)
	for i, a := range body.Answers {
		assert.Equal(t, i, a.QuestionIndex)
	}
}

func TestEvaluateEndpointCacheIdempotence(t *testing.T) {
	r := newTestRouter(t)

	payload := map[string]any{
		"scenarioId": "alien",
		"locale":     "en",
		"answers": []map[string]any{
			{"questionIndex": 0, "text": "hide"},
		},
	}

	first := doJSON(r, "POST", "/evaluate", payload)
	require.Equal(t, http.StatusOK, first.Code)
	second := doJSON(r, "POST", "/evaluate", payload)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a["analysis"], b["analysis"])
	assert.Equal(t, a["deathScene"], b["deathScene"])
	assert.Equal(t, a["survivalTimeMs"], b["survivalTimeMs"])
}

func TestEvaluateEndpointValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing scenarioId", payload: map[string]any{
			"answers": []map[string]any{{"questionIndex": 0, "text": "run"}},
		}},
		{name: "empty answers", payload: map[string]any{
			"scenarioId": "zombie",
			"answers":    []map[string]any{},
		}},
		{name: "no answers field", payload: map[string]any{
			"scenarioId": "zombie",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, "POST", "/evaluate", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestValidationErrorBody(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, "POST", "/evaluate", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestResultsRoundtrip(t *testing.T) {
	r := newTestRouter(t)

	payload := map[string]any{
		"scenarioId":     "zombie",
		"name":           "Alice",
		"score":          0,
		"analysis":       "doomed",
		"deathScene":     "bitten",
		"rationale":      "bad plan",
		"survivalTimeMs": 86400000,
	}

	w := doJSON(r, "POST", "/results", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var stored struct {
		ShareID string `json:"shareId"`
		URL     string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Len(t, stored.ShareID, store.ShareIDLength)
	assert.Equal(t, "/results/"+stored.ShareID, stored.URL)

	w = doJSON(r, "GET", "/results/"+stored.ShareID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "zombie", got["scenarioId"])
	assert.Equal(t, "Alice", got["name"])
	assert.Equal(t, float64(0), got["score"])
}

func TestResultsValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing name", payload: map[string]any{"scenarioId": "zombie", "score": 0}},
		{name: "missing scenarioId", payload: map[string]any{"name": "Alice", "score": 0}},
		{name: "missing score", payload: map[string]any{"scenarioId": "zombie", "name": "Alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, "POST", "/results", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestResultsScoreZeroIsValid(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, "POST", "/results", map[string]any{
		"scenarioId": "zombie",
		"name":       "Alice",
		"score":      0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetResultShareIDLength(t *testing.T) {
	r := newTestRouter(t)

	// Wrong length is rejected before any lookup.
	w := doJSON(r, "GET", "/results/short", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "GET", "/results/waytoolongid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Correct length but never issued.
	w = doJSON(r, "GET", "/results/zzzzzzzz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaderboards(t *testing.T) {
	r := newTestRouter(t)

	for i, survival := range []int64{3000000, 5000000} {
		w := doJSON(r, "POST", "/results", map[string]any{
			"scenarioId":     "zombie",
			"name":           fmt.Sprintf("p%d", i),
			"score":          0,
			"survivalTimeMs": survival,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, "GET", "/leaderboard/zombie", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var board struct {
		ScenarioID string `json:"scenarioId"`
		Count      int    `json:"count"`
		Entries    []struct {
			Name           string `json:"name"`
			SurvivalTimeMs int64  `json:"survivalTimeMs"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Equal(t, "zombie", board.ScenarioID)
	require.Equal(t, 2, board.Count)
	assert.Equal(t, "p1", board.Entries[0].Name)
	assert.Equal(t, "p0", board.Entries[1].Name)

	w = doJSON(r, "GET", "/leaderboard/global?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var global struct {
		Count   int `json:"count"`
		Entries []struct {
			Name string `json:"name"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &global))
	require.Equal(t, 1, global.Count)
	assert.Equal(t, "p1", global.Entries[0].Name)
}

func TestScenariosEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, "GET", "/scenarios?locale=zh-TW", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Scenarios []struct {
			ID        string   `json:"id"`
			Name      string   `json:"name"`
			Questions []string `json:"questions"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Scenarios, 4)
	for _, s := range body.Scenarios {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.Len(t, s.Questions, 5)
	}
}

func TestLoadingMessageEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, "GET", "/messages/loading?locale=en", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Message)
}

func TestCacheStatsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, "GET", "/cache/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["cache_enabled"])
}
