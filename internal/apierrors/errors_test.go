package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finopsmind/costmeter/internal/correlation"
	"github.com/finopsmind/costmeter/internal/costclient"
	"github.com/finopsmind/costmeter/internal/form"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"api error passes through", NewConflictError("busy"), "CONFLICT", http.StatusConflict},
		{"field error", &form.FieldError{Field: form.FieldTPS, Value: "99", Message: "must be between 1 and 50"}, "VALIDATION_ERROR", http.StatusUnprocessableEntity},
		{"backend error", &costclient.BackendError{StatusCode: 503, Body: "down"}, "BACKEND_ERROR", http.StatusBadGateway},
		{"wrapped backend error", fmt.Errorf("forecast: %w", &costclient.BackendError{Body: "dial tcp: refused"}), "BACKEND_ERROR", http.StatusBadGateway},
		{"malformed", &costclient.MalformedResponseError{Body: "x"}, "MALFORMED_RESPONSE", http.StatusBadGateway},
		{"anything else", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
		})
	}
}

func TestBackendErrorDetails(t *testing.T) {
	withStatus := FromError(&costclient.BackendError{StatusCode: 500, Body: "internal error"})
	assert.Equal(t, map[string]int{"backend_status": 500}, withStatus.Details)
	assert.NotContains(t, withStatus.Message, "internal error")

	unreachable := FromError(&costclient.BackendError{Body: "connection refused"})
	assert.Nil(t, unreachable.Details)
}

func TestWrite(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(correlation.WithID(req.Context(), "abc"))
	rec := httptest.NewRecorder()

	NewValidationError("tps: must be between 1 and 50", map[string]string{"field": "tps"}).Write(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "abc", body["request_id"])
	assert.Equal(t, map[string]any{"field": "tps"}, body["details"])
}
