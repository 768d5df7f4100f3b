package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/balance"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// RecordPaymentRequest reports that From paid To outside the app
type RecordPaymentRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount" swaggertype:"number"`
}

// BalanceResponse is one member's position in a group
type BalanceResponse struct {
	MemberID  string `json:"member_id"`
	Name      string `json:"name"`
	Paid      string `json:"paid"`
	ShouldPay string `json:"should_pay"`
	Balance   string `json:"balance"`
}

// BalancesResponse is the balance summary of a group
type BalancesResponse struct {
	Balances    []*BalanceResponse `json:"balances"`
	TotalAmount string             `json:"total_amount"`
	PerHead     string             `json:"per_head"`
}

// PairResponse is one payment of a settlement plan
type PairResponse struct {
	From          string `json:"from"`
	FromName      string `json:"from_name"`
	To            string `json:"to"`
	ToName        string `json:"to_name"`
	Amount        string `json:"amount"`
	PaymentIntent string `json:"payment_intent"`
	Message       string `json:"message"` // e.g., "You owe Alice 300.00" or "Bob owes you 300.00"
}

// PlanResponse is the full settlement plan of a group
type PlanResponse struct {
	Currency string          `json:"currency"`
	Pairs    []*PairResponse `json:"pairs"`
	Settled  bool            `json:"settled"`
}

// PaymentResponse is the adjustment stored for a recorded payment
type PaymentResponse struct {
	AdjustmentID string `json:"adjustment_id"`
	From         string `json:"from"`
	To           string `json:"to"`
	Amount       string `json:"amount"`
}

func nameOf(g *models.Group, id string) string {
	if m, ok := g.Member(id); ok {
		return m.Name
	}
	return id
}

// ToBalancesResponse converts a summary to its DTO
func ToBalancesResponse(g *models.Group, s balance.Summary) *BalancesResponse {
	resp := &BalancesResponse{
		Balances:    make([]*BalanceResponse, len(s.Balances)),
		TotalAmount: money.Format(s.TotalAmount),
		PerHead:     money.Format(s.PerHead),
	}
	for i, b := range s.Balances {
		resp.Balances[i] = &BalanceResponse{
			MemberID:  b.MemberID,
			Name:      nameOf(g, b.MemberID),
			Paid:      money.Format(b.Paid),
			ShouldPay: money.Format(b.ShouldPay),
			Balance:   money.Format(b.Balance),
		}
	}
	return resp
}

// ToPlanResponse converts a plan to its DTO as seen by viewerID
func ToPlanResponse(g *models.Group, pairs []Pair, viewerID string) *PlanResponse {
	resp := &PlanResponse{
		Currency: g.Currency,
		Pairs:    make([]*PairResponse, len(pairs)),
		Settled:  len(pairs) == 0,
	}
	for i, p := range pairs {
		from, to := nameOf(g, p.From), nameOf(g, p.To)
		amount := money.Format(p.Amount)

		var msg string
		switch viewerID {
		case p.From:
			msg = fmt.Sprintf("You owe %s %s", to, amount)
		case p.To:
			msg = fmt.Sprintf("%s owes you %s", from, amount)
		default:
			msg = fmt.Sprintf("%s owes %s %s", from, to, amount)
		}

		resp.Pairs[i] = &PairResponse{
			From:          p.From,
			FromName:      from,
			To:            p.To,
			ToName:        to,
			Amount:        amount,
			PaymentIntent: p.Intent,
			Message:       msg,
		}
	}
	return resp
}
