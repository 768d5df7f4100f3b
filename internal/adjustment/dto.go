package adjustment

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// CreateAdjustmentRequest moves Amount of credit from one member to another
type CreateAdjustmentRequest struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	Description string          `json:"description,omitempty"`
}

// AdjustmentResponse represents the response for an adjustment
type AdjustmentResponse struct {
	ID          string `json:"id"`
	GroupID     string `json:"group_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// ToAdjustmentResponse converts an adjustment to its DTO
func ToAdjustmentResponse(a *models.Adjustment) *AdjustmentResponse {
	return &AdjustmentResponse{
		ID:          a.ID,
		GroupID:     a.GroupID,
		From:        a.From,
		To:          a.To,
		Amount:      money.Format(a.Amount),
		Description: a.Description,
		CreatedAt:   a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
