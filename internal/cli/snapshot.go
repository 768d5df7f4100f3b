package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/balance"
	"github.com/fkhayef/fairsplit/internal/expense/split"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/settlement"
)

// snapshot is a group's history as exported by the API or written by hand.
type snapshot struct {
	Group struct {
		Members []struct {
			MemberID       string `json:"memberId"`
			Name           string `json:"name"`
			PaymentAddress string `json:"paymentAddress"`
		} `json:"members"`
	} `json:"group"`
	Expenses []struct {
		ExpenseID    string           `json:"expenseId"`
		PayerID      string           `json:"payerId"`
		Amount       decimal.Decimal  `json:"amount"`
		SplitType    models.SplitType `json:"splitType"`
		SplitDetails []struct {
			MemberID   string           `json:"memberId"`
			Amount     *decimal.Decimal `json:"amount"`
			Percentage *decimal.Decimal `json:"percentage"`
		} `json:"splitDetails"`
	} `json:"expenses"`
	Adjustments []struct {
		From   string          `json:"from"`
		To     string          `json:"to"`
		Amount decimal.Decimal `json:"amount"`
	} `json:"adjustments"`
}

// report is the outcome of settling a snapshot.
type report struct {
	Summary balance.Summary
	Pairs   []settlement.Pair
	Members []models.Member
}

func readSnapshot(r io.Reader) (*snapshot, error) {
	var s snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &s, nil
}

// settle runs the engine over s. Each expense goes through the split
// normalizer first, so raw percentages or custom amounts are accepted and
// validated the same way the API does.
func settle(s *snapshot, intents settlement.IntentBuilder) (*report, error) {
	members := make([]models.Member, len(s.Group.Members))
	ids := make([]string, len(s.Group.Members))
	for i, m := range s.Group.Members {
		members[i] = models.Member{ID: m.MemberID, Name: m.Name, PaymentAddress: m.PaymentAddress}
		ids[i] = m.MemberID
	}

	factory := split.NewFactory()
	expenses := make([]models.Expense, len(s.Expenses))
	for i, e := range s.Expenses {
		inputs := make([]split.Input, len(e.SplitDetails))
		for j, d := range e.SplitDetails {
			inputs[j] = split.Input{MemberID: d.MemberID, Amount: d.Amount, Percentage: d.Percentage}
		}

		result, err := factory.Normalize(split.Request{
			Amount:  e.Amount,
			Type:    e.SplitType,
			PayerID: e.PayerID,
			Inputs:  inputs,
			Members: ids,
		})
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ExpenseID, err)
		}

		expenses[i] = models.Expense{
			ID:        e.ExpenseID,
			PayerID:   e.PayerID,
			Amount:    result.Amount,
			SplitType: result.Type,
			Splits:    result.Splits,
		}
	}

	adjustments := make([]models.Adjustment, len(s.Adjustments))
	for i, a := range s.Adjustments {
		adjustments[i] = models.Adjustment{From: a.From, To: a.To, Amount: a.Amount}
	}

	summary := balance.Calculate(ids, expenses, adjustments)
	pairs := settlement.Plan(summary.Balances)
	intents.Attach(pairs, settlement.PayeesOf(members))

	return &report{Summary: summary, Pairs: pairs, Members: members}, nil
}
