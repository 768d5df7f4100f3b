package adjustment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/storage"
	"github.com/fkhayef/fairsplit/internal/storage/memory"
	"github.com/fkhayef/fairsplit/pkg/middleware"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := memory.NewDemo(context.Background())
	if err != nil {
		t.Fatalf("NewDemo failed: %v", err)
	}
	return NewService(store, policy.NewAuthorizer(store))
}

func TestValidate(t *testing.T) {
	g := &models.Group{ID: "g", Members: []models.Member{{ID: "a"}, {ID: "b"}}}

	tests := []struct {
		name    string
		from    string
		to      string
		amount  string
		wantErr bool
	}{
		{"valid", "a", "b", "10.005", false},
		{"same member", "a", "a", "10", true},
		{"unknown from", "x", "b", "10", true},
		{"unknown to", "a", "x", "10", true},
		{"zero", "a", "b", "0", true},
		{"rounds to zero", "a", "b", "0.004", true},
		{"negative", "a", "b", "-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, err := Validate(g, tt.from, tt.to, decimal.RequireFromString(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !models.IsValidation(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
			if err == nil && adj.Amount.String() != "10.01" {
				t.Errorf("expected amount rounded to 10.01, got %s", adj.Amount)
			}
		})
	}
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	adj, err := svc.Create(ctx, "u3", storage.DemoGroupID, &CreateAdjustmentRequest{
		From: "u1", To: "u3", Amount: decimal.NewFromInt(50), Description: "cash",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := svc.List(ctx, "u2", storage.DemoGroupID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != adj.ID {
		t.Fatalf("expected the new adjustment, got %+v", list)
	}

	if err := svc.Delete(ctx, "u3", storage.DemoGroupID, adj.ID); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("members may not delete adjustments, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", storage.DemoGroupID, adj.ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, "u1", storage.DemoGroupID, adj.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(nil, true))
	r.Route("/groups/{groupId}", NewHandler(newTestService(t)).Register)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"create", http.MethodPost, "/groups/g1/adjustments", `{"from":"u1","to":"u2","amount":25}`, http.StatusCreated},
		{"create same member", http.MethodPost, "/groups/g1/adjustments", `{"from":"u1","to":"u1","amount":25}`, http.StatusBadRequest},
		{"list", http.MethodGet, "/groups/g1/adjustments", "", http.StatusOK},
		{"delete missing", http.MethodDelete, "/groups/g1/adjustments/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set(middleware.TestUserHeader, "u1")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
