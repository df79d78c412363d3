package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		Status(http.StatusCreated).
		JSON(map[string]string{"status": "ok"}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestResponseBuilder_CustomHeader(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().
		Header("Retry-After", "60").
		Status(http.StatusTooManyRequests).
		Write(w)

	if w.Header().Get("Retry-After") != "60" {
		t.Error("Custom header not set")
	}
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestResponseBuilder_EmptyBody(t *testing.T) {
	w := httptest.NewRecorder()

	NewResponse().Status(http.StatusNoContent).Write(w)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Body = %q, want empty", w.Body.String())
	}
}

func TestResponseBuilder_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		kind       ErrorKind
		wantStatus int
	}{
		{"validation", ErrorKindValidation, http.StatusBadRequest},
		{"bad request", ErrorKindBadRequest, http.StatusBadRequest},
		{"not found", ErrorKindNotFound, http.StatusNotFound},
		{"rate limited", ErrorKindRateLimit, http.StatusTooManyRequests},
		{"storage", ErrorKindStorage, http.StatusInternalServerError},
		{"internal", ErrorKindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewResponse().Error(tt.kind, "boom").Write(w)

			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), string(tt.kind)) {
				t.Errorf("Body missing kind %q: %s", tt.kind, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), "boom") {
				t.Errorf("Body missing message: %s", w.Body.String())
			}
		})
	}
}
