package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/storage"
	"github.com/fkhayef/fairsplit/internal/storage/memory"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role    models.Role
		action  Action
		isOwner bool
		want    bool
	}{
		{models.RoleAdmin, AddMember, false, true},
		{models.RoleMember, AddMember, false, false},
		{models.RoleMember, RemoveMember, false, false},
		{models.RoleMember, RemoveMember, true, true},
		{models.RoleMember, ChangeMemberRole, false, false},
		{models.RoleMember, AddExpense, false, true},
		{models.RoleMember, DeleteExpense, false, false},
		{models.RoleMember, DeleteExpense, true, true},
		{models.RoleAdmin, DeleteExpense, false, true},
		{models.RoleMember, DeleteAdjustment, false, false},
		{models.RoleMember, ViewSettlement, false, true},
		{models.RoleMember, RecordPayment, false, true},
		{models.RoleMember, Action("launch_rockets"), false, false},
		{models.Role("guest"), ViewGroup, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			if got := Allowed(tt.role, tt.action, tt.isOwner); got != tt.want {
				t.Errorf("Allowed(%s, %s, %v) = %v, want %v", tt.role, tt.action, tt.isOwner, got, tt.want)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	store, err := memory.NewDemo(ctx)
	if err != nil {
		t.Fatalf("NewDemo failed: %v", err)
	}
	auth := NewAuthorizer(store)

	if _, err := auth.Authorize(ctx, storage.DemoGroupID, "u1", AddMember); err != nil {
		t.Errorf("admin should add members: %v", err)
	}
	if _, err := auth.Authorize(ctx, storage.DemoGroupID, "u2", AddMember); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("member adding members: expected ErrForbidden, got %v", err)
	}
	if _, err := auth.Authorize(ctx, storage.DemoGroupID, "stranger", ViewGroup); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("non-member: expected ErrForbidden, got %v", err)
	}
	if _, err := auth.Authorize(ctx, "missing", "u1", ViewGroup); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing group: expected ErrNotFound, got %v", err)
	}

	g, err := auth.AuthorizeOwned(ctx, storage.DemoGroupID, "u2", DeleteExpense, "u2")
	if err != nil {
		t.Fatalf("member deleting own expense: %v", err)
	}
	if g.ID != storage.DemoGroupID {
		t.Errorf("returned group = %s", g.ID)
	}
	if _, err := auth.AuthorizeOwned(ctx, storage.DemoGroupID, "u2", DeleteExpense, "u1"); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("member deleting another's expense: expected ErrForbidden, got %v", err)
	}
}
