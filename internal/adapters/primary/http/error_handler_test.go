package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/euroblaze/ear-backend/internal/core/errors"
)

func TestErrorHandler_NotFound(t *testing.T) {
	handler := NewErrorHandler(testLogger())

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	handler.NotFound(rec, req)

	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Equal(t, "Resource not found", resp.Error)
}

func TestErrorHandler_MapsDomainSentinels(t *testing.T) {
	handler := NewErrorHandler(testLogger())

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"backend unavailable", apperrors.ErrBackendUnavailable, stdhttp.StatusBadGateway, "BACKEND_UNAVAILABLE"},
		{"auth failed", apperrors.ErrAuthFailed, stdhttp.StatusBadGateway, "BACKEND_AUTH_FAILED"},
		{"invalid period", apperrors.ErrInvalidPeriod, stdhttp.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate limited", apperrors.ErrRateLimited, stdhttp.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown error", assert.AnError, stdhttp.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/activity", nil)
			rec := httptest.NewRecorder()
			handler.Handle(rec, req, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
		})
	}
}
