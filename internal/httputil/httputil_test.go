package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/pkg/middleware"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.Invalid("amount must not be negative"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create: %w", models.ErrLastAdmin), http.StatusBadRequest},
		{"not found", fmt.Errorf("group g9: %w", models.ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("nope: %w", models.ErrForbidden), http.StatusForbidden},
		{"conflict", fmt.Errorf("dup: %w", models.ErrConflict), http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"))

	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Error("internal error details leaked to client")
	}
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	if err := Decode(req, &v); err != nil || v.Name != "x" {
		t.Errorf("Decode = %v, name %q", err, v.Name)
	}

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	if err := Decode(bad, &v); err == nil {
		t.Error("expected malformed body to fail")
	}
}

func TestCaller(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := Caller(rec, httptest.NewRequest(http.MethodGet, "/", nil)); ok || rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous caller: ok=%v status=%d", ok, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "u1"))
	if id, ok := Caller(httptest.NewRecorder(), req); !ok || id != "u1" {
		t.Errorf("Caller = %q, %v", id, ok)
	}
}
