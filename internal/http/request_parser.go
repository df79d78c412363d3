// This file implements utilities for parsing and validating request
// data shared by the ledger and report handlers.
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"fintrack/internal/core"
	"fintrack/internal/report"
	"fintrack/internal/store"
)

// maxBodySize bounds request bodies; ledger records are tiny.
const maxBodySize = 1 << 16 // 64KB

// DecodeJSONBody decodes the request body into dst, rejecting unknown
// fields and oversized payloads.
func DecodeJSONBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return fmt.Errorf("request body too large")
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// ParseID extracts the {id} path value as a positive integer.
func ParseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// ParseGranularityParam reads the period query parameter, defaulting to
// monthly.
func ParseGranularityParam(r *http.Request) (report.Granularity, error) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return report.Monthly, nil
	}
	return report.ParseGranularity(raw)
}

// WriteError maps the domain error taxonomy onto HTTP error responses.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err):
		NewResponse().Error(ErrorKindValidation, err.Error()).Write(w)
	case store.IsStorage(err):
		NewResponse().Error(ErrorKindStorage, "storage failure, retry later").Write(w)
	default:
		NewResponse().Error(ErrorKindInternal, "internal error").Write(w)
	}
}

var errNotFound = errors.New("record not found")

// WriteNotFound reports an unknown record id.
func WriteNotFound(w http.ResponseWriter) {
	NewResponse().Error(ErrorKindNotFound, errNotFound.Error()).Write(w)
}
