package group

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/pkg/middleware"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(nil, true))
	r.Mount("/groups", NewHandler(newTestService(t)).Routes(func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(chi.URLParam(r, "groupId")))
		})
	}))
	return r
}

func do(t *testing.T, h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set(middleware.TestUserHeader, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerStatusCodes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		user   string
		body   string
		want   int
	}{
		{"create", http.MethodPost, "/groups", "u1", `{"name":"Flat"}`, http.StatusCreated},
		{"create blank name", http.MethodPost, "/groups", "u1", `{"name":""}`, http.StatusBadRequest},
		{"create bad body", http.MethodPost, "/groups", "u1", `{`, http.StatusBadRequest},
		{"list", http.MethodGet, "/groups", "u2", "", http.StatusOK},
		{"get", http.MethodGet, "/groups/g1", "u3", "", http.StatusOK},
		{"get as stranger", http.MethodGet, "/groups/g1", "nobody", "", http.StatusForbidden},
		{"get missing", http.MethodGet, "/groups/nope", "u1", "", http.StatusNotFound},
		{"update as member", http.MethodPut, "/groups/g1", "u2", `{"name":"x"}`, http.StatusForbidden},
		{"add member", http.MethodPost, "/groups/g1/members", "u1", `{"name":"Dan","mobile":"5555555555"}`, http.StatusCreated},
		{"add existing member", http.MethodPost, "/groups/g1/members", "u1", `{"name":"Bob","mobile":"7777777777"}`, http.StatusConflict},
		{"demote last admin", http.MethodPut, "/groups/g1/members/u1", "u1", `{"role":"member"}`, http.StatusBadRequest},
		{"payer leaves", http.MethodDelete, "/groups/g1/members/u2", "u2", "", http.StatusBadRequest},
		{"categories", http.MethodGet, "/groups/g1/categories", "u2", "", http.StatusOK},
		{"nested feature", http.MethodGet, "/groups/g1/ping", "u2", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.user, tt.body)
			if rec.Code != tt.want {
				t.Errorf("%s %s: expected %d, got %d: %s", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandlerRequiresAuthentication(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/groups", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestGetReportsViewerRole(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/groups/g1", "u1", "")

	var body struct {
		Data GroupResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !body.Data.IsAdmin || len(body.Data.Members) != 3 {
		t.Errorf("unexpected group response: %+v", body.Data)
	}
}

func TestNestedFeatureSeesGroupID(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/groups/g1/ping", "u1", "")
	if rec.Body.String() != "g1" {
		t.Errorf("expected groupId g1, got %q", rec.Body.String())
	}
}
