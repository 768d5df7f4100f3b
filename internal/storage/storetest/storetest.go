// Package storetest holds the behavioural tests every storage.Store
// implementation must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/storage"
)

// Run exercises store against the storage.Store contract. newStore must
// return an empty store; it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("seed demo", func(t *testing.T) {
		s := newStore(t)
		if err := storage.SeedDemo(ctx, s); err != nil {
			t.Fatalf("SeedDemo failed: %v", err)
		}

		g, err := s.GetGroup(ctx, storage.DemoGroupID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(g.Members) != 3 {
			t.Fatalf("members: got %d, want 3", len(g.Members))
		}
		if g.Members[0].ID != "u1" || g.Members[0].Role != models.RoleAdmin {
			t.Errorf("first member = %+v, want admin u1", g.Members[0])
		}
		if g.Currency != "INR" {
			t.Errorf("currency = %q, want INR", g.Currency)
		}

		expenses, err := s.ListExpenses(ctx, storage.DemoGroupID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(expenses) != 2 || expenses[0].ID != "e1" || expenses[1].ID != "e2" {
			t.Fatalf("expenses not in creation order: %+v", expenses)
		}
		if !expenses[0].Amount.Equal(decimal.NewFromInt(600)) {
			t.Errorf("e1 amount = %s, want 600", expenses[0].Amount)
		}
		if len(expenses[1].Splits) != 3 || !expenses[1].Splits[2].Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("e2 splits = %+v", expenses[1].Splits)
		}

		u, err := s.GetUserByMobile(ctx, "8888888888")
		if err != nil {
			t.Fatalf("GetUserByMobile failed: %v", err)
		}
		if u.ID != "u2" || u.Name != "Alice" {
			t.Errorf("user = %+v, want Alice (u2)", u)
		}
	})

	t.Run("missing records", func(t *testing.T) {
		s := newStore(t)

		if _, err := s.GetGroup(ctx, "nope"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetGroup: expected ErrNotFound, got %v", err)
		}
		if _, err := s.GetUser(ctx, "nope"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetUser: expected ErrNotFound, got %v", err)
		}
		if _, err := s.GetExpense(ctx, "nope", "nope"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetExpense: expected ErrNotFound, got %v", err)
		}
		if err := s.DeleteAdjustment(ctx, "nope", "nope"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("DeleteAdjustment: expected ErrNotFound, got %v", err)
		}
		err := s.CreateExpense(ctx, &models.Expense{GroupID: "nope", Amount: decimal.NewFromInt(1)})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("CreateExpense in missing group: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("users", func(t *testing.T) {
		s := newStore(t)

		u := &models.User{Name: "Carol", Mobile: "5550001"}
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if u.ID == "" || u.CreatedAt.IsZero() {
			t.Error("expected ID and CreatedAt to be set")
		}
		if err := s.CreateUser(ctx, &models.User{Name: "Dup", Mobile: "5550001"}); !errors.Is(err, models.ErrConflict) {
			t.Errorf("duplicate mobile: expected ErrConflict, got %v", err)
		}

		got, err := s.GetUser(ctx, u.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Mobile != "5550001" {
			t.Errorf("mobile = %q", got.Mobile)
		}
	})

	t.Run("groups and members", func(t *testing.T) {
		s := newStore(t)
		g := newGroup(t, s, "Trip")

		if err := s.AddMember(ctx, g.ID, models.Member{ID: "m3", Name: "Cy", Mobile: "3", Role: models.RoleMember}); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		err := s.AddMember(ctx, g.ID, models.Member{ID: "m9", Name: "Cy again", Mobile: "3", Role: models.RoleMember})
		if !errors.Is(err, models.ErrConflict) {
			t.Errorf("duplicate mobile: expected ErrConflict, got %v", err)
		}

		if err := s.UpdateGroup(ctx, g.ID, "Road Trip", "summer"); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}
		if err := s.AddCategory(ctx, g.ID, "fuel"); err != nil {
			t.Fatalf("AddCategory failed: %v", err)
		}
		if err := s.AddCategory(ctx, g.ID, "fuel"); err != nil {
			t.Fatalf("AddCategory (repeat) failed: %v", err)
		}

		got, err := s.GetGroup(ctx, g.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Road Trip" || got.Description != "summer" {
			t.Errorf("update not applied: %+v", got)
		}
		if len(got.Members) != 3 || got.Members[2].ID != "m3" {
			t.Errorf("members = %+v", got.Members)
		}
		if len(got.Categories) != 1 || got.Categories[0] != "fuel" {
			t.Errorf("categories = %v, want [fuel]", got.Categories)
		}

		groups, err := s.ListGroupsForMember(ctx, "m3")
		if err != nil {
			t.Fatalf("ListGroupsForMember failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != g.ID {
			t.Errorf("groups for m3 = %+v", groups)
		}
		if groups, _ := s.ListGroupsForMember(ctx, "stranger"); len(groups) != 0 {
			t.Errorf("stranger should have no groups, got %d", len(groups))
		}
	})

	t.Run("last admin is protected", func(t *testing.T) {
		s := newStore(t)
		g := newGroup(t, s, "Flat")

		if err := s.UpdateMemberRole(ctx, g.ID, "m1", models.RoleMember); !errors.Is(err, models.ErrLastAdmin) {
			t.Errorf("demote last admin: expected ErrLastAdmin, got %v", err)
		}
		if err := s.RemoveMember(ctx, g.ID, "m1"); !errors.Is(err, models.ErrLastAdmin) {
			t.Errorf("remove last admin: expected ErrLastAdmin, got %v", err)
		}

		if err := s.UpdateMemberRole(ctx, g.ID, "m2", models.RoleAdmin); err != nil {
			t.Fatalf("promote failed: %v", err)
		}
		if err := s.UpdateMemberRole(ctx, g.ID, "m1", models.RoleMember); err != nil {
			t.Errorf("demote with another admin present failed: %v", err)
		}
		if err := s.UpdateMemberRole(ctx, g.ID, "ghost", models.RoleAdmin); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("unknown member: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("payers cannot be removed", func(t *testing.T) {
		s := newStore(t)
		g := newGroup(t, s, "Dinner club")
		if err := s.AddMember(ctx, g.ID, models.Member{ID: "m3", Name: "Cy", Mobile: "3", Role: models.RoleMember}); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}

		e := &models.Expense{
			GroupID: g.ID, PayerID: "m2", Amount: decimal.NewFromInt(10), Category: "food",
			SplitType: models.SplitEqual,
			Splits: []models.Split{
				{MemberID: "m1", Amount: decimal.NewFromInt(5)},
				{MemberID: "m2", Amount: decimal.NewFromInt(5)},
			},
		}
		if err := s.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := s.RemoveMember(ctx, g.ID, "m2"); !errors.Is(err, models.ErrMemberHasExpenses) {
			t.Errorf("expected ErrMemberHasExpenses, got %v", err)
		}
		if err := s.RemoveMember(ctx, g.ID, "m3"); err != nil {
			t.Errorf("removing a non-payer failed: %v", err)
		}

		if err := s.DeleteExpense(ctx, g.ID, e.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := s.RemoveMember(ctx, g.ID, "m2"); err != nil {
			t.Errorf("removing former payer after expense deletion failed: %v", err)
		}
	})

	t.Run("expenses keep splits and order", func(t *testing.T) {
		s := newStore(t)
		g := newGroup(t, s, "Office")
		pct := decimal.NewFromInt(60)
		pct2 := decimal.NewFromInt(40)

		base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		for i, amount := range []string{"10.50", "20", "0.03"} {
			e := &models.Expense{
				GroupID: g.ID, PayerID: "m1", Amount: decimal.RequireFromString(amount), Category: "other",
				SplitType: models.SplitPercentage, CreatedAt: base.Add(-time.Duration(i) * time.Hour),
				Splits: []models.Split{
					{MemberID: "m1", Amount: decimal.RequireFromString(amount), Percentage: &pct},
					{MemberID: "m2", Amount: decimal.Zero, Percentage: &pct2},
				},
			}
			if err := s.CreateExpense(ctx, e); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
		}

		expenses, err := s.ListExpenses(ctx, g.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		want := []string{"10.5", "20", "0.03"}
		if len(expenses) != len(want) {
			t.Fatalf("got %d expenses, want %d", len(expenses), len(want))
		}
		for i, e := range expenses {
			if !e.Amount.Equal(decimal.RequireFromString(want[i])) {
				t.Errorf("expense %d amount = %s, want %s", i, e.Amount, want[i])
			}
			if len(e.Splits) != 2 || e.Splits[0].MemberID != "m1" {
				t.Errorf("expense %d splits = %+v", i, e.Splits)
			}
			if e.Splits[1].Percentage == nil || !e.Splits[1].Percentage.Equal(pct2) {
				t.Errorf("expense %d lost percentage", i)
			}
		}

		got, err := s.GetExpense(ctx, g.ID, expenses[2].ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.CreatedAt.Equal(base.Add(-2 * time.Hour)) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base.Add(-2*time.Hour))
		}
		if _, err := s.GetExpense(ctx, "other-group", expenses[0].ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expense must be scoped to its group, got %v", err)
		}
	})

	t.Run("adjustments", func(t *testing.T) {
		s := newStore(t)
		g := newGroup(t, s, "Couple")

		a := &models.Adjustment{GroupID: g.ID, From: "m1", To: "m2", Amount: decimal.RequireFromString("12.34"), Description: "cash"}
		if err := s.CreateAdjustment(ctx, a); err != nil {
			t.Fatalf("CreateAdjustment failed: %v", err)
		}
		b := &models.Adjustment{GroupID: g.ID, From: "m2", To: "m1", Amount: decimal.NewFromInt(1)}
		if err := s.CreateAdjustment(ctx, b); err != nil {
			t.Fatalf("CreateAdjustment failed: %v", err)
		}

		list, err := s.ListAdjustments(ctx, g.ID)
		if err != nil {
			t.Fatalf("ListAdjustments failed: %v", err)
		}
		if len(list) != 2 || list[0].ID != a.ID || !list[0].Amount.Equal(a.Amount) {
			t.Fatalf("adjustments = %+v", list)
		}

		if err := s.DeleteAdjustment(ctx, g.ID, a.ID); err != nil {
			t.Fatalf("DeleteAdjustment failed: %v", err)
		}
		list, _ = s.ListAdjustments(ctx, g.ID)
		if len(list) != 1 || list[0].ID != b.ID {
			t.Errorf("after delete = %+v", list)
		}
	})

	t.Run("delete group", func(t *testing.T) {
		s := newStore(t)
		g := newGroup(t, s, "Gone")
		e := &models.Expense{GroupID: g.ID, PayerID: "m1", Amount: decimal.NewFromInt(4), SplitType: models.SplitEqual,
			Splits: []models.Split{{MemberID: "m1", Amount: decimal.NewFromInt(4)}}}
		if err := s.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := s.DeleteGroup(ctx, g.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := s.GetGroup(ctx, g.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if list, _ := s.ListExpenses(ctx, g.ID); len(list) != 0 {
			t.Errorf("expenses survived group deletion: %+v", list)
		}
		if err := s.DeleteGroup(ctx, g.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
	})
}

func newGroup(t *testing.T, s storage.Store, name string) *models.Group {
	t.Helper()
	g := &models.Group{
		Name:     name,
		Currency: models.DefaultCurrency,
		Members: []models.Member{
			{ID: "m1", Name: "Ann", Mobile: "1", PaymentAddress: "ann@upi", Role: models.RoleAdmin},
			{ID: "m2", Name: "Ben", Mobile: "2", PaymentAddress: "ben@upi", Role: models.RoleMember},
		},
		CreatedBy: "m1",
	}
	if err := s.CreateGroup(context.Background(), g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return g
}
