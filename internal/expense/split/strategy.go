package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// Input is one raw split entry as proposed by the caller.
type Input struct {
	MemberID   string
	Percentage *decimal.Decimal // percentage splits
	Amount     *decimal.Decimal // custom splits
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the fixed share of every participant
	Calculate(amount decimal.Decimal, members []string, inputs []Input) ([]models.Split, error)

	// Type returns the type identifier for this strategy
	Type() models.SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(amount decimal.Decimal, inputs []Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType models.SplitType) (Strategy, error) {
	switch splitType {
	case models.SplitEqual:
		return &EqualStrategy{}, nil
	case models.SplitPercentage:
		return &PercentageStrategy{}, nil
	case models.SplitCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, models.Invalid("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(models.SplitType(splitType))
}

// Validation errors returned by the strategies.
var (
	ErrNegativeAmount       = models.Invalid("amount must not be negative")
	ErrPayerNotMember       = models.Invalid("payer not a member")
	ErrInvalidPercentages   = models.Invalid("percentages must total 100")
	ErrSplitTotalMismatch   = models.Invalid("split total mismatch")
	ErrMissingPercentage    = models.Invalid("percentage value required for every split entry")
	ErrNegativePercentage   = models.Invalid("percentage must not be negative")
	ErrMissingCustomAmount  = models.Invalid("amount required for every split entry")
	ErrNegativeCustomAmount = models.Invalid("split amount must not be negative")
)

// absorbRemainder adds whatever rounding left over to the first share so the
// split total equals amount exactly.
func absorbRemainder(amount decimal.Decimal, splits []models.Split) {
	if len(splits) == 0 {
		return
	}
	total := decimal.Zero
	for _, s := range splits {
		total = total.Add(s.Amount)
	}
	if diff := amount.Sub(total); !diff.IsZero() {
		splits[0].Amount = money.Round2(splits[0].Amount.Add(diff))
	}
}
