package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeAlreadyExists, http.StatusConflict},
		{shared.CodeDuplicate, http.StatusBadRequest},
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{shared.CodeValidationFailed, http.StatusUnprocessableEntity},
		{shared.CodeUnauthorized, http.StatusUnauthorized},
		{shared.CodeInvalidCredentials, http.StatusUnauthorized},
		{shared.CodeForbidden, http.StatusForbidden},
		{shared.CodeStoreInactive, http.StatusForbidden},
		{shared.CodePaymentNotConfigured, http.StatusServiceUnavailable},
		{shared.CodePaymentIncomplete, http.StatusBadRequest},
		{shared.CodeInvalidSignature, http.StatusBadRequest},
		{shared.CodeMisconfigured, http.StatusInternalServerError},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponse_Flatten(t *testing.T) {
	data := map[string]any{"product": map[string]any{"name": "Kurta"}, "extra": 1}
	out := NewSuccessResponse("Product fetched", data).Flatten(data, "product", "missing")

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "Product fetched", decoded["message"])
	assert.Equal(t, map[string]any{"name": "Kurta"}, decoded["product"])
	assert.NotContains(t, decoded, "extra")
	assert.NotContains(t, decoded, "missing")
	assert.Contains(t, decoded["data"], "extra")
}

func TestResponse_FlattenEnvelopeWins(t *testing.T) {
	data := map[string]any{"success": false, "message": "shadow"}
	out := NewSuccessResponse("real", data).Flatten(data, "success", "message")

	assert.Equal(t, true, out["success"])
	assert.Equal(t, "real", out["message"])
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "itemId", Message: "This field is required"},
	})

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "Request validation failed", resp.Message)
}
