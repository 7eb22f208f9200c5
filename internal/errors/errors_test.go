package errors

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	assert.Equal(t, "Invalid request format", err.Error())
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("income_level", "Income level is required")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "income_level", details.Field)
}

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("open data.csv: no such file")
	err := NewDatasetError("failed to load dataset", cause)

	assert.Equal(t, ErrTypeDataset, err.Type)
	assert.Contains(t, err.Error(), "[DATASET]")
	assert.Contains(t, err.Error(), "no such file")
	assert.ErrorIs(t, err, cause)

	err.WithContext("path", "data.csv")
	assert.Equal(t, "data.csv", err.Context["path"])
}

func TestProblemDetails_MarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeDatasetNotFound,
		"Not Found",
		"Dataset file not found",
		"/api/dashboard/summary",
	).WithExtension("trace_id", "abc123")

	raw, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, TypeDatasetNotFound, decoded["type"])
	assert.Equal(t, float64(http.StatusNotFound), decoded["status"])
	assert.Equal(t, "abc123", decoded["trace_id"])
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "api error maps by code",
			err:        DatasetNotFoundError("data/missing.csv"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeDatasetNotFound,
		},
		{
			name:       "app validation error",
			err:        NewAppValidationError("age is required"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "app dataset error",
			err:        NewDatasetError("dataset unavailable", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetInvalid,
		},
		{
			name:       "parsing error",
			err:        NewParsingError("malformed purchase amount", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeMalformedAmount,
		},
		{
			name:       "generic error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	handler := NewErrorHandler(slog.Default(), false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
			assert.Equal(t, tt.wantType, decoded["type"])
		})
	}
}
