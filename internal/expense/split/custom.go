package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// CustomStrategy takes the caller's amounts, rounded to cents, once they add up.
type CustomStrategy struct{}

// Type returns the split type identifier
func (s *CustomStrategy) Type() models.SplitType {
	return models.SplitCustom
}

// Validate checks that every entry has a non-negative amount and that the
// cent-rounded amounts total the expense within one cent.
func (s *CustomStrategy) Validate(amount decimal.Decimal, inputs []Input) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	total := decimal.Zero
	for _, in := range inputs {
		if in.Amount == nil {
			return ErrMissingCustomAmount
		}
		if in.Amount.IsNegative() {
			return ErrNegativeCustomAmount
		}
		total = total.Add(money.Round2(*in.Amount))
	}

	if !money.Within(total, money.Round2(amount)) {
		return ErrSplitTotalMismatch
	}
	return nil
}

// Calculate rounds each entry to cents and lets the first entry absorb what
// is left so the shares total amount exactly.
func (s *CustomStrategy) Calculate(amount decimal.Decimal, _ []string, inputs []Input) ([]models.Split, error) {
	if err := s.Validate(amount, inputs); err != nil {
		return nil, err
	}

	splits := make([]models.Split, len(inputs))
	for i, in := range inputs {
		splits[i] = models.Split{
			MemberID: in.MemberID,
			Amount:   money.Round2(*in.Amount),
		}
	}
	absorbRemainder(amount, splits)

	return splits, nil
}
