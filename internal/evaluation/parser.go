package evaluation

import (
	"encoding/json"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/doomlabs/apocalypse-meter/internal/types"
)

// The model is asked for strict JSON but does not always deliver it.
// Parsing runs as a pipeline of total strategies, each accepted only if
// it yields all three mandatory narrative fields. Regex extraction is a
// last-resort degradation that preserves user-visible content over
// strict correctness.

// ParseTier tags which strategy produced the result.
type ParseTier int

const (
	// ParsedDirect means the raw text was valid JSON as-is.
	ParsedDirect ParseTier = iota
	// ParsedSanitized means the text parsed after control characters
	// inside string literals were escaped.
	ParsedSanitized
	// ParsedExtracted means individual fields were pulled out of a
	// malformed envelope by pattern matching.
	ParsedExtracted
	// ParseFailed means no strategy recovered the mandatory fields.
	ParseFailed
)

func (t ParseTier) String() string {
	switch t {
	case ParsedDirect:
		return "direct"
	case ParsedSanitized:
		return "sanitized"
	case ParsedExtracted:
		return "extracted"
	default:
		return "failed"
	}
}

// Recovered reports whether the result needed a fallback strategy.
func (t ParseTier) Recovered() bool {
	return t == ParsedSanitized || t == ParsedExtracted
}

const (
	// policyScore is what every evaluation scores regardless of what the
	// model says. Nobody survives the apocalypse.
	policyScore = 0

	// Survival time backfill bounds: one minute to two days.
	minSurvivalTimeMs = 60000
	maxSurvivalTimeMs = 172800000
)

type rawEvaluation struct {
	Score          *float64 `json:"score"`
	Analysis       string   `json:"analysis"`
	DeathScene     string   `json:"deathScene"`
	Rationale      string   `json:"rationale"`
	SurvivalTimeMs *float64 `json:"survivalTimeMs"`
}

func (r rawEvaluation) complete() bool {
	return strings.TrimSpace(r.Analysis) != "" &&
		strings.TrimSpace(r.DeathScene) != "" &&
		strings.TrimSpace(r.Rationale) != ""
}

// ParseResponse runs the recovery pipeline over raw model output. The
// returned tier is ParseFailed when no strategy yielded all three
// mandatory fields; the result is only meaningful otherwise.
func ParseResponse(raw string) (types.EvaluationResult, ParseTier) {
	text := stripCodeFence(raw)

	if parsed, ok := parseJSON(text); ok {
		return normalize(parsed), ParsedDirect
	}
	if parsed, ok := parseJSON(sanitizeControlChars(text)); ok {
		return normalize(parsed), ParsedSanitized
	}
	if parsed, ok := extractFields(text); ok {
		return normalize(parsed), ParsedExtracted
	}
	return types.EvaluationResult{}, ParseFailed
}

func parseJSON(text string) (rawEvaluation, bool) {
	var parsed rawEvaluation
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return rawEvaluation{}, false
	}
	if !parsed.complete() {
		return rawEvaluation{}, false
	}
	return parsed, true
}

// stripCodeFence removes a markdown ```json ... ``` wrapper when the
// model adds one despite instructions.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// sanitizeControlChars escapes raw control characters that appear inside
// JSON string literals. Models frequently emit literal newlines in the
// multi-paragraph narrative fields, which strict JSON rejects.
func sanitizeControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString := false
	escaped := false
	for _, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
				b.WriteRune(r)
				continue
			case r == '\\':
				escaped = true
				b.WriteRune(r)
				continue
			case r == '"':
				inString = false
				b.WriteRune(r)
				continue
			case r == '\n':
				b.WriteString(`\n`)
				continue
			case r == '\r':
				b.WriteString(`\r`)
				continue
			case r == '\t':
				b.WriteString(`\t`)
				continue
			case r < 0x20:
				continue
			}
		} else if r == '"' {
			inString = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

var (
	fieldPatterns = map[string]*regexp.Regexp{
		"analysis":   regexp.MustCompile(`(?s)"analysis"\s*:\s*"((?:[^"\\]|\\.)*)"`),
		"deathScene": regexp.MustCompile(`(?s)"deathScene"\s*:\s*"((?:[^"\\]|\\.)*)"`),
		"rationale":  regexp.MustCompile(`(?s)"rationale"\s*:\s*"((?:[^"\\]|\\.)*)"`),
	}
	scorePattern    = regexp.MustCompile(`"score"\s*:\s*(-?\d+(?:\.\d+)?)`)
	survivalPattern = regexp.MustCompile(`"survivalTimeMs"\s*:\s*(-?\d+(?:\.\d+)?)`)
)

// extractFields pulls each field out of text that is not valid JSON at
// all, tolerating a broken envelope as long as the individual
// "field": "value" fragments are recognizable.
func extractFields(text string) (rawEvaluation, bool) {
	// Regex on raw text keeps literal newlines inside the match, so run
	// it against the sanitized form where they are already escaped.
	text = sanitizeControlChars(text)

	var parsed rawEvaluation
	if m := fieldPatterns["analysis"].FindStringSubmatch(text); m != nil {
		parsed.Analysis = unescapeFragment(m[1])
	}
	if m := fieldPatterns["deathScene"].FindStringSubmatch(text); m != nil {
		parsed.DeathScene = unescapeFragment(m[1])
	}
	if m := fieldPatterns["rationale"].FindStringSubmatch(text); m != nil {
		parsed.Rationale = unescapeFragment(m[1])
	}
	if m := scorePattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			parsed.Score = &v
		}
	}
	if m := survivalPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			parsed.SurvivalTimeMs = &v
		}
	}

	if !parsed.complete() {
		return rawEvaluation{}, false
	}
	return parsed, true
}

// unescapeFragment decodes JSON string escapes in a regex capture.
func unescapeFragment(fragment string) string {
	var s string
	if err := json.Unmarshal([]byte(`"`+fragment+`"`), &s); err != nil {
		return fragment
	}
	return s
}

// normalize applies result policy: the score is pinned regardless of
// what the model produced, and a missing survival time gets a random
// value between one minute and two days.
func normalize(parsed rawEvaluation) types.EvaluationResult {
	result := types.EvaluationResult{
		Score:      policyScore,
		Analysis:   parsed.Analysis,
		DeathScene: parsed.DeathScene,
		Rationale:  parsed.Rationale,
	}
	if parsed.SurvivalTimeMs != nil && *parsed.SurvivalTimeMs > 0 {
		result.SurvivalTimeMs = int64(*parsed.SurvivalTimeMs)
	} else {
		result.SurvivalTimeMs = RandomSurvivalTime()
	}
	return result
}

// RandomSurvivalTime backfills a missing survival time with a uniform
// draw between one minute and two days.
func RandomSurvivalTime() int64 {
	return minSurvivalTimeMs + rand.Int63n(maxSurvivalTimeMs-minSurvivalTimeMs+1)
}
