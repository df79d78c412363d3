// Package http provides the JSON API server and handler
// implementations.
//
// This file implements a small builder for constructing API responses,
// so every handler formats envelopes, errors, and headers the same way.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorKind labels an error payload so clients can branch without
// parsing the message.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation_error"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindBadRequest ErrorKind = "bad_request"
	ErrorKindStorage    ErrorKind = "storage_error"
	ErrorKindInternal   ErrorKind = "internal_error"
	ErrorKindRateLimit  ErrorKind = "rate_limited"
)

type errorPayload struct {
	Kind    ErrorKind `json:"error"`
	Message string    `json:"message"`
}

// ResponseBuilder provides a fluent API for building JSON responses.
type ResponseBuilder struct {
	statusCode int
	body       any
	headers    map[string]string
}

// NewResponse creates a new response builder with default 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// JSON sets the response body; it is marshalled on Write.
func (b *ResponseBuilder) JSON(v any) *ResponseBuilder {
	b.body = v
	return b
}

// Error sets an error payload and matching status code.
func (b *ResponseBuilder) Error(kind ErrorKind, message string) *ResponseBuilder {
	switch kind {
	case ErrorKindValidation, ErrorKindBadRequest:
		b.statusCode = http.StatusBadRequest
	case ErrorKindNotFound:
		b.statusCode = http.StatusNotFound
	case ErrorKindRateLimit:
		b.statusCode = http.StatusTooManyRequests
	default:
		b.statusCode = http.StatusInternalServerError
	}
	b.body = errorPayload{Kind: kind, Message: message}
	return b
}

// Write sends the built response.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)

	if b.body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(b.body); err != nil {
		slog.Error("Failed to encode response body", "error", err)
	}
}
