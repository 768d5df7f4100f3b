package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "g1"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !body.Success || body.Data["id"] != "g1" {
		t.Errorf("body = %+v", body)
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter, string)
		status int
		code   string
	}{
		{"bad request", BadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"validation", ValidationFailed, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", NotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", Forbidden, http.StatusForbidden, "FORBIDDEN"},
		{"conflict", Conflict, http.StatusConflict, "CONFLICT"},
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"internal", InternalError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec, "boom")

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body APIResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if body.Success || body.Error == nil || body.Error.Code != tt.code || body.Error.Message != "boom" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestList(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, []int{1, 2, 3}, 3)

	var body APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Meta == nil || body.Meta.Total != 3 {
		t.Errorf("meta = %+v, want total 3", body.Meta)
	}
}
