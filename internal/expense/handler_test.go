package expense

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/pkg/middleware"
)

func TestHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(nil, true))
	r.Route("/groups/{groupId}", NewHandler(newTestService(t)).Register)

	tests := []struct {
		name   string
		method string
		path   string
		user   string
		body   string
		want   int
	}{
		{"create", http.MethodPost, "/groups/g1/expenses", "u1", `{"amount":"45.50","category":"food"}`, http.StatusCreated},
		{"create numeric amount", http.MethodPost, "/groups/g1/expenses", "u1", `{"amount":12.3}`, http.StatusCreated},
		{"unknown split type", http.MethodPost, "/groups/g1/expenses", "u1", `{"amount":10,"split_type":"shares"}`, http.StatusBadRequest},
		{"bad body", http.MethodPost, "/groups/g1/expenses", "u1", `not json`, http.StatusBadRequest},
		{"list", http.MethodGet, "/groups/g1/expenses", "u3", "", http.StatusOK},
		{"get", http.MethodGet, "/groups/g1/expenses/e1", "u3", "", http.StatusOK},
		{"get missing", http.MethodGet, "/groups/g1/expenses/nope", "u3", "", http.StatusNotFound},
		{"delete other's", http.MethodDelete, "/groups/g1/expenses/e1", "u3", "", http.StatusForbidden},
		{"delete own", http.MethodDelete, "/groups/g1/expenses/e2", "u2", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set(middleware.TestUserHeader, tt.user)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListResponseShape(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(nil, true))
	r.Route("/groups/{groupId}", NewHandler(newTestService(t)).Register)

	req := httptest.NewRequest(http.MethodGet, "/groups/g1/expenses", nil)
	req.Header.Set(middleware.TestUserHeader, "u1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body struct {
		Data ListResponse `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Meta.Total != 2 {
		t.Errorf("expected total 2, got %d", body.Meta.Total)
	}
	if body.Data.Summary.TotalAmount != "900.00" {
		t.Errorf("expected total 900.00, got %s", body.Data.Summary.TotalAmount)
	}
	if body.Data.Expenses[0].Splits[0].Amount != "200.00" {
		t.Errorf("expected 200.00 share, got %s", body.Data.Expenses[0].Splits[0].Amount)
	}
}
