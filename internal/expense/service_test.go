package expense

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/expense/split"
	"github.com/fkhayef/fairsplit/internal/metrics"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/storage"
	"github.com/fkhayef/fairsplit/internal/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := memory.NewDemo(context.Background())
	if err != nil {
		t.Fatalf("NewDemo failed: %v", err)
	}
	return NewService(store, policy.NewAuthorizer(store), split.NewFactory(), metrics.New())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.Create(context.Background(), "u3", storage.DemoGroupID, &CreateExpenseRequest{
		Amount:      dec("100"),
		Description: " Taxi ",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if e.PayerID != "u3" {
		t.Errorf("payer should default to the caller, got %s", e.PayerID)
	}
	if e.Category != DefaultCategory {
		t.Errorf("expected category %s, got %s", DefaultCategory, e.Category)
	}
	if e.SplitType != models.SplitEqual || len(e.Splits) != 3 {
		t.Fatalf("expected equal split over 3 members, got %s with %d splits", e.SplitType, len(e.Splits))
	}

	total := decimal.Zero
	for _, s := range e.Splits {
		total = total.Add(s.Amount)
	}
	if !total.Equal(dec("100")) {
		t.Errorf("splits must total the expense amount, got %s", total)
	}
}

func TestCreatePercentage(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.Create(context.Background(), "u1", storage.DemoGroupID, &CreateExpenseRequest{
		Amount:    dec("250"),
		Category:  "Rent",
		SplitType: models.SplitPercentage,
		Splits: []SplitRequest{
			{MemberID: "u1", Percentage: decPtr("50")},
			{MemberID: "u2", Percentage: decPtr("30")},
			{MemberID: "u3", Percentage: decPtr("20")},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	want := []string{"125", "75", "50"}
	for i, s := range e.Splits {
		if !s.Amount.Equal(dec(want[i])) {
			t.Errorf("split %d: expected %s, got %s", i, want[i], s.Amount)
		}
	}
	if e.Category != "rent" {
		t.Errorf("expected normalized category, got %s", e.Category)
	}
}

func TestCreateRejects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller string
		req    *CreateExpenseRequest
		want   error
	}{
		{"negative amount", "u1", &CreateExpenseRequest{Amount: dec("-5")}, split.ErrNegativeAmount},
		{"outside payer", "u1", &CreateExpenseRequest{Amount: dec("5"), PayerID: "u9"}, split.ErrPayerNotMember},
		{"custom mismatch", "u1", &CreateExpenseRequest{
			Amount:    dec("90"),
			SplitType: models.SplitCustom,
			Splits:    []SplitRequest{{MemberID: "u1", Amount: decPtr("50")}, {MemberID: "u2", Amount: decPtr("30")}},
		}, split.ErrSplitTotalMismatch},
		{"non-member caller", "u9", &CreateExpenseRequest{Amount: dec("5")}, models.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.caller, storage.DemoGroupID, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestListIncludesBalances(t *testing.T) {
	svc := newTestService(t)

	expenses, summary, err := svc.List(context.Background(), "u2", storage.DemoGroupID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(expenses) != 2 || expenses[0].ID != "e1" {
		t.Fatalf("expected demo expenses in creation order, got %d", len(expenses))
	}
	if !summary.TotalAmount.Equal(dec("900")) || !summary.PerHead.Equal(dec("300")) {
		t.Errorf("unexpected totals %s / %s", summary.TotalAmount, summary.PerHead)
	}

	want := map[string]string{"u1": "300", "u2": "0", "u3": "-300"}
	for id, bal := range want {
		if got := summary.Of(id); !got.Equal(dec(bal)) {
			t.Errorf("%s: expected balance %s, got %s", id, bal, got)
		}
	}
}

func TestDeleteOwnership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, "u3", storage.DemoGroupID, "e2"); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("members may not delete others' expenses, got %v", err)
	}
	if err := svc.Delete(ctx, "u2", storage.DemoGroupID, "e2"); err != nil {
		t.Errorf("payer should delete own expense: %v", err)
	}
	if err := svc.Delete(ctx, "u1", storage.DemoGroupID, "e1"); err != nil {
		t.Errorf("admin should delete any expense: %v", err)
	}
	if _, err := svc.Get(ctx, "u1", storage.DemoGroupID, "e1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
