// Package balance derives each member's net position from a group's expense
// history. It is pure: the same inputs always give the same summary.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// MemberBalance is one member's derived position. A positive Balance means
// the group owes the member money.
type MemberBalance struct {
	MemberID  string
	Paid      decimal.Decimal
	ShouldPay decimal.Decimal
	Balance   decimal.Decimal
}

// Summary is the full result of Calculate.
type Summary struct {
	Balances    []MemberBalance
	TotalAmount decimal.Decimal
	PerHead     decimal.Decimal
}

type ledger struct {
	order     []string
	paid      map[string]decimal.Decimal
	shouldPay map[string]decimal.Decimal
	adjusted  map[string]decimal.Decimal
}

func (l *ledger) track(id string) {
	if _, ok := l.paid[id]; ok {
		return
	}
	l.order = append(l.order, id)
	l.paid[id] = decimal.Zero
	l.shouldPay[id] = decimal.Zero
	l.adjusted[id] = decimal.Zero
}

// Calculate computes paid, should-pay and net balance for every current member
// in member order, followed by any former member that still appears in the
// history, in first-seen order.
func Calculate(members []string, expenses []models.Expense, adjustments []models.Adjustment) Summary {
	l := &ledger{
		paid:      make(map[string]decimal.Decimal),
		shouldPay: make(map[string]decimal.Decimal),
		adjusted:  make(map[string]decimal.Decimal),
	}
	for _, id := range members {
		l.track(id)
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = money.Add(total, e.Amount)

		l.track(e.PayerID)
		l.paid[e.PayerID] = money.Add(l.paid[e.PayerID], e.Amount)

		for _, s := range e.Splits {
			l.track(s.MemberID)
			l.shouldPay[s.MemberID] = money.Add(l.shouldPay[s.MemberID], s.Amount)
		}
	}

	for _, a := range adjustments {
		l.track(a.From)
		l.track(a.To)
		l.adjusted[a.From] = money.Round2(l.adjusted[a.From].Sub(a.Amount))
		l.adjusted[a.To] = money.Add(l.adjusted[a.To], a.Amount)
	}

	balances := make([]MemberBalance, len(l.order))
	for i, id := range l.order {
		net := money.Round2(l.paid[id].Sub(l.shouldPay[id]))
		balances[i] = MemberBalance{
			MemberID:  id,
			Paid:      l.paid[id],
			ShouldPay: l.shouldPay[id],
			Balance:   money.Add(net, l.adjusted[id]),
		}
	}

	heads := int64(len(members))
	if heads == 0 {
		heads = 1
	}

	return Summary{
		Balances:    balances,
		TotalAmount: total,
		PerHead:     money.Round2(total.Div(decimal.NewFromInt(heads))),
	}
}

// Of returns the balance for one member, or zero when absent.
func (s Summary) Of(memberID string) decimal.Decimal {
	for _, b := range s.Balances {
		if b.MemberID == memberID {
			return b.Balance
		}
	}
	return decimal.Zero
}
