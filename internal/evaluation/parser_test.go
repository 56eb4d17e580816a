package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJSON = `{
	"analysis": "Answer 1: the BASEMENT?! Are you kidding me?!",
	"deathScene": "Day three, the window breaks, and there you are.",
	"score": 2,
	"rationale": "Your plan actively HELPS the apocalypse.",
	"survivalTimeMs": 259200000
}`

func TestParseResponseDirect(t *testing.T) {
	result, tier := ParseResponse(validJSON)

	assert.Equal(t, ParsedDirect, tier)
	assert.False(t, tier.Recovered())
	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Analysis, "BASEMENT")
	assert.NotEmpty(t, result.DeathScene)
	assert.NotEmpty(t, result.Rationale)
	assert.Equal(t, int64(259200000), result.SurvivalTimeMs)
}

func TestParseResponseStripsCodeFence(t *testing.T) {
	result, tier := ParseResponse("```json\n" + validJSON + "\n```")

	assert.Equal(t, ParsedDirect, tier)
	assert.NotEmpty(t, result.Analysis)
}

func TestParseResponseSanitized(t *testing.T) {
	// Literal newlines inside string values are invalid JSON.
	raw := "{\"analysis\": \"line one\nline two\", \"deathScene\": \"the\tend\", \"rationale\": \"bad plan\", \"score\": 3}"

	result, tier := ParseResponse(raw)

	require.Equal(t, ParsedSanitized, tier)
	assert.True(t, tier.Recovered())
	assert.Equal(t, "line one\nline two", result.Analysis)
	assert.Equal(t, "the\tend", result.DeathScene)
	assert.Equal(t, 0, result.Score)
}

func TestParseResponseExtracted(t *testing.T) {
	// Broken envelope: trailing garbage and a missing closing brace.
	raw := `Sure! Here is the evaluation you asked for:
{"analysis": "you are doomed", "deathScene": "a piano falls", "rationale": "gravity wins", "score": 1, "survivalTimeMs": 120000
and some trailing commentary`

	result, tier := ParseResponse(raw)

	require.Equal(t, ParsedExtracted, tier)
	assert.Equal(t, "you are doomed", result.Analysis)
	assert.Equal(t, "a piano falls", result.DeathScene)
	assert.Equal(t, "gravity wins", result.Rationale)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, int64(120000), result.SurvivalTimeMs)
}

func TestParseResponseExtractedWithEscapes(t *testing.T) {
	raw := `garbage {"analysis": "he said \"run\"", "deathScene": "scene", "rationale": "why"} garbage`

	result, tier := ParseResponse(raw)

	require.Equal(t, ParsedExtracted, tier)
	assert.Equal(t, `he said "run"`, result.Analysis)
}

func TestParseResponseFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain prose", raw: "I cannot evaluate that, sorry."},
		{name: "empty string", raw: ""},
		{name: "valid JSON missing mandatory fields", raw: `{"analysis": "only one field", "score": 5}`},
		{name: "mandatory field empty", raw: `{"analysis": "a", "deathScene": "  ", "rationale": "c"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tier := ParseResponse(tt.raw)
			assert.Equal(t, ParseFailed, tier)
		})
	}
}

func TestParseResponseBackfillsSurvivalTime(t *testing.T) {
	raw := `{"analysis": "a", "deathScene": "b", "rationale": "c", "score": 4}`

	for i := 0; i < 50; i++ {
		result, tier := ParseResponse(raw)
		require.Equal(t, ParsedDirect, tier)
		assert.GreaterOrEqual(t, result.SurvivalTimeMs, int64(minSurvivalTimeMs))
		assert.LessOrEqual(t, result.SurvivalTimeMs, int64(maxSurvivalTimeMs))
	}
}

func TestRandomSurvivalTimeRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomSurvivalTime()
		assert.GreaterOrEqual(t, v, int64(60000))
		assert.LessOrEqual(t, v, int64(172800000))
	}
}

func TestParseTierString(t *testing.T) {
	assert.Equal(t, "direct", ParsedDirect.String())
	assert.Equal(t, "sanitized", ParsedSanitized.String())
	assert.Equal(t, "extracted", ParsedExtracted.String())
	assert.Equal(t, "failed", ParseFailed.String())
}
