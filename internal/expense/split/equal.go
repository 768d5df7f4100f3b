package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// EqualStrategy divides the amount evenly across every group member.
// Raw inputs are ignored: an equal split always covers the whole group.
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() models.SplitType {
	return models.SplitEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(amount decimal.Decimal, _ []Input) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// Calculate gives every member round2(amount/n). Any remaining cents go to the
// first member in group order.
func (s *EqualStrategy) Calculate(amount decimal.Decimal, members []string, inputs []Input) ([]models.Split, error) {
	if err := s.Validate(amount, inputs); err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []models.Split{}, nil
	}

	share := money.Round2(amount.Div(decimal.NewFromInt(int64(len(members)))))

	splits := make([]models.Split, len(members))
	for i, id := range members {
		splits[i] = models.Split{MemberID: id, Amount: share}
	}
	absorbRemainder(amount, splits)

	return splits, nil
}
