package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() models.SplitType {
	return models.SplitPercentage
}

// Validate checks that every entry carries a non-negative percentage and that
// they total 100 within one hundredth of a percent.
func (s *PercentageStrategy) Validate(amount decimal.Decimal, inputs []Input) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	total := decimal.Zero
	for _, in := range inputs {
		if in.Percentage == nil {
			return ErrMissingPercentage
		}
		if in.Percentage.IsNegative() {
			return ErrNegativePercentage
		}
		total = total.Add(*in.Percentage)
	}

	if !money.Within(total, money.Hundred) {
		return ErrInvalidPercentages
	}
	return nil
}

// Calculate assigns round2(p/100 * amount) per entry, in input order, and lets
// the first entry absorb the rounding remainder.
func (s *PercentageStrategy) Calculate(amount decimal.Decimal, _ []string, inputs []Input) ([]models.Split, error) {
	if err := s.Validate(amount, inputs); err != nil {
		return nil, err
	}

	splits := make([]models.Split, len(inputs))
	for i, in := range inputs {
		pct := *in.Percentage
		splits[i] = models.Split{
			MemberID:   in.MemberID,
			Amount:     money.Round2(pct.Div(money.Hundred).Mul(amount)),
			Percentage: &pct,
		}
	}
	absorbRemainder(amount, splits)

	return splits, nil
}
