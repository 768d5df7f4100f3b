package expense

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/balance"
	"github.com/fkhayef/fairsplit/internal/expense/split"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// CreateExpenseRequest represents the request to create an expense.
// Amounts accept JSON numbers or strings.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal  `json:"amount" swaggertype:"number"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	PayerID     string           `json:"payer_id,omitempty"`
	SplitType   models.SplitType `json:"split_type,omitempty"`
	Splits      []SplitRequest   `json:"splits,omitempty"`
}

// SplitRequest is one participant in a proposed split. Percentage is read
// for percentage splits, Amount for custom splits.
type SplitRequest struct {
	MemberID   string           `json:"member_id"`
	Percentage *decimal.Decimal `json:"percentage,omitempty" swaggertype:"number"`
	Amount     *decimal.Decimal `json:"amount,omitempty" swaggertype:"number"`
}

func (r SplitRequest) toInput() split.Input {
	return split.Input{MemberID: r.MemberID, Percentage: r.Percentage, Amount: r.Amount}
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	GroupID     string           `json:"group_id"`
	PayerID     string           `json:"payer_id"`
	Amount      string           `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	SplitType   models.SplitType `json:"split_type"`
	Splits      []*SplitResponse `json:"splits"`
	CreatedAt   string           `json:"created_at"`
}

// SplitResponse represents a fixed share of an expense
type SplitResponse struct {
	MemberID   string  `json:"member_id"`
	Amount     string  `json:"amount"`
	Percentage *string `json:"percentage,omitempty"`
}

// BalanceResponse is one member's position in a group
type BalanceResponse struct {
	MemberID  string `json:"member_id"`
	Paid      string `json:"paid"`
	ShouldPay string `json:"should_pay"`
	Balance   string `json:"balance"`
}

// SummaryResponse is the balance summary of a group
type SummaryResponse struct {
	Balances    []*BalanceResponse `json:"balances"`
	TotalAmount string             `json:"total_amount"`
	PerHead     string             `json:"per_head"`
}

// ListResponse is the expense history of a group with its balances
type ListResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Summary  *SummaryResponse   `json:"summary"`
}

// ToExpenseResponse converts an expense to its DTO
func ToExpenseResponse(e *models.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		Amount:      money.Format(e.Amount),
		Category:    e.Category,
		Description: e.Description,
		SplitType:   e.SplitType,
		Splits:      make([]*SplitResponse, len(e.Splits)),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for i, s := range e.Splits {
		sr := &SplitResponse{MemberID: s.MemberID, Amount: money.Format(s.Amount)}
		if s.Percentage != nil {
			p := s.Percentage.String()
			sr.Percentage = &p
		}
		resp.Splits[i] = sr
	}
	return resp
}

// ToSummaryResponse converts a balance summary to its DTO
func ToSummaryResponse(s balance.Summary) *SummaryResponse {
	resp := &SummaryResponse{
		Balances:    make([]*BalanceResponse, len(s.Balances)),
		TotalAmount: money.Format(s.TotalAmount),
		PerHead:     money.Format(s.PerHead),
	}
	for i, b := range s.Balances {
		resp.Balances[i] = &BalanceResponse{
			MemberID:  b.MemberID,
			Paid:      money.Format(b.Paid),
			ShouldPay: money.Format(b.ShouldPay),
			Balance:   money.Format(b.Balance),
		}
	}
	return resp
}
