package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeValidation, http.StatusUnprocessableEntity},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeCacheInvalidation, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainCodesAreMapped(t *testing.T) {
	for _, err := range []*shared.DomainError{
		shared.ErrNotFound,
		shared.ErrAlreadyExists,
		shared.ErrInvalidInput,
		shared.ErrValidation,
		shared.ErrUnauthorized,
		shared.ErrForbidden,
		shared.ErrInvalidState,
		shared.ErrCacheInvalidation,
	} {
		_, ok := ErrorCodeHTTPStatus[err.Code]
		assert.True(t, ok, "code %s has no status", err.Code)
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse(shared.NewPaginated[string](nil, 0, 1, 20))

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total":0,"page":1,"page_size":20,"total_pages":0}}`, string(body))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("The given data was invalid", "req-1", map[string]string{
		"name": "The name field is required.",
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "The given data was invalid",
			"request_id": "req-1",
			"details": {"name": "The name field is required."}
		}
	}`, string(body))
}
