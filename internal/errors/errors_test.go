package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("scenarioId is required")

	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
	assert.Contains(t, err.Error(), "scenarioId is required")
}

func TestUpstreamError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewUpstreamError("model unavailable", cause)

	assert.Equal(t, CategoryUpstream, err.Category)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("30")

	assert.Equal(t, CategoryRateLimit, err.Category)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus)
}

func TestStorageError(t *testing.T) {
	err := NewStorageError("write failed", fmt.Errorf("redis down"))

	assert.Equal(t, CategoryStorage, err.Category)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestMarshalJSONWithoutCause(t *testing.T) {
	payload, err := json.Marshal(NewValidationError("scenarioId is required"))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Equal(t, "scenarioId is required", body["message"])
	assert.Equal(t, string(CategoryValidation), body["category"])
	assert.Equal(t, float64(http.StatusBadRequest), body["http_status"])
}

func TestMarshalJSONHidesCause(t *testing.T) {
	appErr := NewUpstreamError("model unavailable", fmt.Errorf("api key leaked-secret rejected"))

	payload, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "leaked-secret")
	assert.Contains(t, string(payload), "model unavailable")
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedCategory ErrorCategory
		expectedStatus   int
	}{
		{
			name:             "passthrough app error",
			err:              NewValidationError("bad"),
			expectedCategory: CategoryValidation,
			expectedStatus:   http.StatusBadRequest,
		},
		{
			name:             "connection refused maps to upstream",
			err:              fmt.Errorf("dial tcp: connection refused"),
			expectedCategory: CategoryUpstream,
			expectedStatus:   http.StatusBadGateway,
		},
		{
			name:             "timeout maps to timeout",
			err:              fmt.Errorf("request timeout after 30s"),
			expectedCategory: CategoryTimeout,
			expectedStatus:   http.StatusGatewayTimeout,
		},
		{
			name:             "deadline exceeded maps to timeout",
			err:              context.DeadlineExceeded,
			expectedCategory: CategoryTimeout,
			expectedStatus:   http.StatusGatewayTimeout,
		},
		{
			name:             "unknown maps to internal",
			err:              fmt.Errorf("something odd"),
			expectedCategory: CategoryInternal,
			expectedStatus:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.expectedCategory, appErr.Category)
			assert.Equal(t, tt.expectedStatus, appErr.HTTPStatus)
		})
	}
}

func TestToAppErrorNil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}

func TestWrapError(t *testing.T) {
	cause := fmt.Errorf("boom")
	wrapped := WrapError(cause, "while storing result %s", "abc")

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "while storing result abc")

	assert.NoError(t, WrapError(nil, "ignored"))
}
