// Package httputil provides the JSON response envelope shared by all
// handlers: {message, error, code, results|errors}.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Message string `json:"message"`
	Error   bool   `json:"error"`
	Code    int    `json:"code"`
	Results any    `json:"results,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// FieldError describes a single request validation failure.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// Success writes a success envelope with the given results payload.
func Success(w http.ResponseWriter, status int, message string, results any) {
	write(w, status, Envelope{
		Message: message,
		Error:   false,
		Code:    status,
		Results: results,
	})
}

// Error writes an error envelope. Callers pass stable, non-internal
// messages; store and crypto failures are mapped to a generic message
// before reaching here.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{
		Message: message,
		Error:   true,
		Code:    status,
	})
}

// Validation writes a 422 envelope carrying per-field errors.
func Validation(w http.ResponseWriter, errs []FieldError) {
	write(w, http.StatusUnprocessableEntity, Envelope{
		Message: "Validation Errors",
		Error:   true,
		Code:    http.StatusUnprocessableEntity,
		Errors:  errs,
	})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
