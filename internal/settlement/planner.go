package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/balance"
	"github.com/fkhayef/fairsplit/internal/money"
)

// Pair is one proposed payment: From pays To the Amount.
type Pair struct {
	From   string
	To     string
	Amount decimal.Decimal
	Intent string
}

type party struct {
	id     string
	amount decimal.Decimal // magnitude still to settle
}

// Plan greedily matches the largest debtor with the largest creditor until
// every balance is within one cent of zero. Ties keep input order, so the
// same balances always produce the same plan. Intent is left empty.
func Plan(balances []balance.MemberBalance) []Pair {
	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Balance.LessThan(money.Tolerance.Neg()):
			debtors = append(debtors, party{id: b.MemberID, amount: b.Balance.Neg()})
		case b.Balance.GreaterThan(money.Tolerance):
			creditors = append(creditors, party{id: b.MemberID, amount: b.Balance})
		}
	}

	byAmountDesc := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool { return ps[i].amount.GreaterThan(ps[j].amount) }
	}
	sort.SliceStable(debtors, byAmountDesc(debtors))
	sort.SliceStable(creditors, byAmountDesc(creditors))

	pairs := []Pair{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		pay := money.Round2(decimal.Min(debtors[i].amount, creditors[j].amount))
		if pay.GreaterThan(money.Tolerance) {
			pairs = append(pairs, Pair{From: debtors[i].id, To: creditors[j].id, Amount: pay})
		}

		debtors[i].amount = debtors[i].amount.Sub(pay)
		creditors[j].amount = creditors[j].amount.Sub(pay)

		// A remainder of a single cent counts as settled; advancing on it also
		// guarantees the loop makes progress.
		if debtors[i].amount.LessThanOrEqual(money.Tolerance) {
			i++
		}
		if creditors[j].amount.LessThanOrEqual(money.Tolerance) {
			j++
		}
	}

	return pairs
}
