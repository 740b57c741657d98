package password

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Validation failures must be caught before any service call, so a handler
// with a nil service is enough for these tests.
func newValidationHandler() *Handler {
	return &Handler{
		logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}
}

func TestForgot_Validation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "empty body",
			body:           `{}`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid json",
			body:           `{invalid}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	handler := newValidationHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/password/forgot", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Forgot(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("Status code = %d, want %d", rec.Code, tt.expectedStatus)
			}
		})
	}
}

func TestReset_Validation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedErrors int
	}{
		{
			name:           "empty body",
			body:           `{}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: 2,
		},
		{
			name:           "missing password",
			body:           `{"token": "abc"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: 1,
		},
		{
			name:           "missing token",
			body:           `{"password": "newsecret"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedErrors: 1,
		},
		{
			name:           "invalid json",
			body:           `{invalid}`,
			expectedStatus: http.StatusBadRequest,
			expectedErrors: 0,
		},
	}

	handler := newValidationHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/password/reset", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Reset(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("Status code = %d, want %d", rec.Code, tt.expectedStatus)
			}

			if tt.expectedErrors > 0 {
				var response struct {
					Errors []struct {
						Param string `json:"param"`
						Msg   string `json:"msg"`
					} `json:"errors"`
				}
				json.NewDecoder(rec.Body).Decode(&response)
				if len(response.Errors) != tt.expectedErrors {
					t.Errorf("Errors = %d, want %d", len(response.Errors), tt.expectedErrors)
				}
			}
		})
	}
}
