package balance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func equalExpense(payer string, amount string, members ...string) models.Expense {
	share := dec(amount).Div(decimal.NewFromInt(int64(len(members))))
	splits := make([]models.Split, len(members))
	for i, m := range members {
		splits[i] = models.Split{MemberID: m, Amount: share}
	}
	return models.Expense{PayerID: payer, Amount: dec(amount), SplitType: models.SplitEqual, Splits: splits}
}

func TestCalculateExample(t *testing.T) {
	members := []string{"A", "B", "C"}
	expenses := []models.Expense{
		equalExpense("A", "600", "A", "B", "C"),
		{
			PayerID:   "B",
			Amount:    dec("300"),
			SplitType: models.SplitCustom,
			Splits: []models.Split{
				{MemberID: "A", Amount: dec("100")},
				{MemberID: "B", Amount: dec("100")},
				{MemberID: "C", Amount: dec("100")},
			},
		},
	}

	got := Calculate(members, expenses, nil)

	want := map[string]string{"A": "300", "B": "0", "C": "-300"}
	for _, b := range got.Balances {
		if !b.Balance.Equal(dec(want[b.MemberID])) {
			t.Errorf("balance[%s] = %s, want %s", b.MemberID, b.Balance, want[b.MemberID])
		}
	}
	if !got.TotalAmount.Equal(dec("900")) {
		t.Errorf("total = %s, want 900", got.TotalAmount)
	}
	if !got.PerHead.Equal(dec("300")) {
		t.Errorf("perHead = %s, want 300", got.PerHead)
	}

	a := got.Balances[0]
	if !a.Paid.Equal(dec("600")) || !a.ShouldPay.Equal(dec("300")) {
		t.Errorf("A paid/shouldPay = %s/%s, want 600/300", a.Paid, a.ShouldPay)
	}
}

func TestCalculateEmptyGroup(t *testing.T) {
	got := Calculate([]string{"A", "B"}, nil, nil)
	if len(got.Balances) != 2 {
		t.Fatalf("expected a row per member, got %d", len(got.Balances))
	}
	for _, b := range got.Balances {
		if !b.Balance.IsZero() || !b.Paid.IsZero() || !b.ShouldPay.IsZero() {
			t.Errorf("expected zero row for %s, got %+v", b.MemberID, b)
		}
	}
	if !got.PerHead.IsZero() {
		t.Errorf("perHead = %s, want 0", got.PerHead)
	}
}

func TestCalculateNoMembers(t *testing.T) {
	got := Calculate(nil, nil, nil)
	if len(got.Balances) != 0 || !got.PerHead.IsZero() {
		t.Errorf("expected empty summary, got %+v", got)
	}
}

func TestCalculateConservation(t *testing.T) {
	members := []string{"A", "B", "C", "D"}
	expenses := []models.Expense{
		{PayerID: "A", Amount: dec("100"), Splits: []models.Split{
			{MemberID: "A", Amount: dec("33.34")}, {MemberID: "B", Amount: dec("33.33")}, {MemberID: "C", Amount: dec("33.33")},
		}},
		{PayerID: "D", Amount: dec("47.5"), Splits: []models.Split{
			{MemberID: "B", Amount: dec("23.75")}, {MemberID: "D", Amount: dec("23.75")},
		}},
		equalExpense("C", "12", "A", "B", "C", "D"),
	}
	adjustments := []models.Adjustment{{From: "B", To: "A", Amount: dec("20")}}

	got := Calculate(members, expenses, adjustments)

	sum := decimal.Zero
	for _, b := range got.Balances {
		sum = sum.Add(b.Balance)
	}
	if sum.Abs().GreaterThan(dec("0.01").Mul(decimal.NewFromInt(int64(len(got.Balances))))) {
		t.Errorf("balances do not conserve: sum = %s", sum)
	}
}

func TestCalculateAdjustments(t *testing.T) {
	got := Calculate([]string{"A", "B"}, nil, []models.Adjustment{{From: "A", To: "B", Amount: dec("50")}})

	if !got.Of("A").Equal(dec("-50")) {
		t.Errorf("A = %s, want -50", got.Of("A"))
	}
	if !got.Of("B").Equal(dec("50")) {
		t.Errorf("B = %s, want 50", got.Of("B"))
	}
}

func TestCalculateFormerMembersAppended(t *testing.T) {
	expenses := []models.Expense{
		{PayerID: "X", Amount: dec("30"), Splits: []models.Split{
			{MemberID: "A", Amount: dec("10")}, {MemberID: "Y", Amount: dec("10")}, {MemberID: "X", Amount: dec("10")},
		}},
	}

	got := Calculate([]string{"A"}, expenses, nil)

	order := []string{"A", "X", "Y"}
	if len(got.Balances) != len(order) {
		t.Fatalf("got %d rows, want %d", len(got.Balances), len(order))
	}
	for i, id := range order {
		if got.Balances[i].MemberID != id {
			t.Errorf("row %d = %s, want %s", i, got.Balances[i].MemberID, id)
		}
	}
	if !got.Of("X").Equal(dec("20")) {
		t.Errorf("X = %s, want 20", got.Of("X"))
	}
}

func TestCalculateIdempotent(t *testing.T) {
	input := func() ([]string, []models.Expense, []models.Adjustment) {
		return []string{"A", "B", "C"},
			[]models.Expense{
				equalExpense("A", "90", "A", "B", "C"),
				{PayerID: "B", Amount: dec("10"), Splits: []models.Split{
					{MemberID: "A", Amount: dec("5")}, {MemberID: "C", Amount: dec("5")},
				}},
			},
			[]models.Adjustment{{From: "C", To: "A", Amount: dec("7.5")}}
	}
	members, expenses, adjustments := input()

	first := Calculate(members, expenses, adjustments)
	second := Calculate(members, expenses, adjustments)

	if !first.TotalAmount.Equal(second.TotalAmount) || !first.PerHead.Equal(second.PerHead) {
		t.Errorf("totals differ: %s/%s vs %s/%s", first.TotalAmount, first.PerHead, second.TotalAmount, second.PerHead)
	}
	if len(first.Balances) != len(second.Balances) {
		t.Fatalf("row count differs: %d vs %d", len(first.Balances), len(second.Balances))
	}
	for i := range first.Balances {
		a, b := first.Balances[i], second.Balances[i]
		if a.MemberID != b.MemberID || !a.Paid.Equal(b.Paid) || !a.ShouldPay.Equal(b.ShouldPay) || !a.Balance.Equal(b.Balance) {
			t.Errorf("row %d differs: %+v vs %+v", i, a, b)
		}
	}

	wantMembers, wantExpenses, wantAdjustments := input()
	for i := range wantMembers {
		if members[i] != wantMembers[i] {
			t.Errorf("members[%d] changed to %s", i, members[i])
		}
	}
	for i, e := range wantExpenses {
		got := expenses[i]
		if got.PayerID != e.PayerID || !got.Amount.Equal(e.Amount) || len(got.Splits) != len(e.Splits) {
			t.Fatalf("expense %d changed: %+v", i, got)
		}
		for j, s := range e.Splits {
			if got.Splits[j].MemberID != s.MemberID || !got.Splits[j].Amount.Equal(s.Amount) {
				t.Errorf("expense %d split %d changed: %+v", i, j, got.Splits[j])
			}
		}
	}
	for i, a := range wantAdjustments {
		got := adjustments[i]
		if got.From != a.From || got.To != a.To || !got.Amount.Equal(a.Amount) {
			t.Errorf("adjustment %d changed: %+v", i, got)
		}
	}
}
