package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func validator(token string) (string, error) {
	if token == "good" {
		return "u1", nil
	}
	return "", errors.New("bad token")
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, _ := GetUserID(r.Context())
	w.Write([]byte(id))
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name          string
		allowTestUser bool
		headers       map[string]string
		wantStatus    int
		wantUser      string
	}{
		{"valid bearer", false, map[string]string{"Authorization": "Bearer good"}, http.StatusOK, "u1"},
		{"missing header", false, nil, http.StatusUnauthorized, ""},
		{"wrong scheme", false, map[string]string{"Authorization": "Basic good"}, http.StatusUnauthorized, ""},
		{"bad token", false, map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"test header disabled", false, map[string]string{TestUserHeader: "u2"}, http.StatusUnauthorized, ""},
		{"test header enabled", true, map[string]string{TestUserHeader: "u2"}, http.StatusOK, "u2"},
		{"enabled falls back to bearer", true, map[string]string{"Authorization": "Bearer good"}, http.StatusOK, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Authenticate(validator, tt.allowTestUser)(http.HandlerFunc(echoUser))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() != tt.wantUser {
				t.Errorf("user = %q, want %q", rec.Body.String(), tt.wantUser)
			}
		})
	}
}
