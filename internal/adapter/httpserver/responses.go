// Package httpserver contains HTTP handlers and middleware.
//
// It exposes the REST API for resume analysis, MCQ generation and practice,
// and voice interview preparation, keeping HTTP concerns out of the domain
// services.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		code = http.StatusConflict
		codeStr = "CONFLICT"
	case errors.Is(err, domain.ErrRateLimited):
		code = http.StatusTooManyRequests
		codeStr = "RATE_LIMITED"
	case errors.Is(err, domain.ErrInsufficientContent):
		code = http.StatusUnprocessableEntity
		codeStr = "INSUFFICIENT_CONTENT"
	case errors.Is(err, domain.ErrMalformedResponse):
		code = http.StatusBadGateway
		codeStr = "MALFORMED_RESPONSE"
	case errors.Is(err, domain.ErrUpstreamFailure):
		code = http.StatusBadGateway
		codeStr = "UPSTREAM_FAILURE"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: err.Error(), Details: details}})
}
