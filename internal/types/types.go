package types

// Answer is a single free-text answer to one of a scenario's questions.
// QuestionIndex ties it back to the question; answers may arrive in any
// order and are sorted before evaluation.
type Answer struct {
	QuestionIndex int    `json:"questionIndex"`
	Text          string `json:"text"`
}

// Submission is the request payload for an evaluation.
type Submission struct {
	ScenarioID string   `json:"scenarioId"`
	Answers    []Answer `json:"answers"`
	Name       string   `json:"name"`
	Locale     string   `json:"locale,omitempty"`
}

// EvaluationResult is the structured outcome of one evaluation.
// Score is pinned to a policy constant (currently 0); SurvivalTimeMs is
// always populated by the time a result leaves the evaluation client.
type EvaluationResult struct {
	Score          int    `json:"score"`
	Analysis       string `json:"analysis"`
	DeathScene     string `json:"deathScene"`
	Rationale      string `json:"rationale"`
	SurvivalTimeMs int64  `json:"survivalTimeMs,omitempty"`
}

// StoredResult is a finalized, shareable result as persisted by the
// result store. Immutable after creation.
type StoredResult struct {
	ID         string   `json:"id"`
	ScenarioID string   `json:"scenarioId"`
	Answers    []Answer `json:"answers"`
	Name       string   `json:"name"`

	Score          int    `json:"score"`
	Analysis       string `json:"analysis,omitempty"`
	DeathScene     string `json:"deathScene,omitempty"`
	Rationale      string `json:"rationale,omitempty"`
	SurvivalTimeMs int64  `json:"survivalTimeMs,omitempty"`

	Timestamp string `json:"timestamp,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}
