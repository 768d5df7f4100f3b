package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// Request is a proposed expense before its splits are fixed.
type Request struct {
	Amount  decimal.Decimal
	Type    models.SplitType
	PayerID string
	Inputs  []Input
	Members []string // current group members, in group order
}

// Result is the validated outcome of Normalize.
type Result struct {
	Amount decimal.Decimal
	Type   models.SplitType
	Splits []models.Split
}

// Normalize validates a proposed expense and returns its fixed split list.
// The split amounts always total the (cent-rounded) expense amount.
//
// An empty input list means "split between everyone" whatever the declared
// type, and the result is recorded as an equal split.
func (f *Factory) Normalize(req Request) (*Result, error) {
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	amount := money.Round2(req.Amount)

	membership := make(map[string]bool, len(req.Members))
	for _, id := range req.Members {
		membership[id] = true
	}
	if !membership[req.PayerID] {
		return nil, ErrPayerNotMember
	}

	splitType := req.Type
	if splitType == "" {
		splitType = models.SplitEqual
	}
	strategy, err := f.Create(splitType)
	if err != nil {
		return nil, err
	}

	if len(req.Inputs) == 0 {
		strategy = &EqualStrategy{}
	} else if err := checkInputs(req.Inputs, membership); err != nil {
		return nil, err
	}

	splits, err := strategy.Calculate(amount, req.Members, req.Inputs)
	if err != nil {
		return nil, err
	}

	return &Result{Amount: amount, Type: strategy.Type(), Splits: splits}, nil
}

func checkInputs(inputs []Input, membership map[string]bool) error {
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if !membership[in.MemberID] {
			return models.Invalid("split member %q not in group", in.MemberID)
		}
		if seen[in.MemberID] {
			return models.Invalid("duplicate split member %q", in.MemberID)
		}
		seen[in.MemberID] = true
	}
	return nil
}
