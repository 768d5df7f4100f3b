package settlement

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/adjustment"
	"github.com/fkhayef/fairsplit/internal/balance"
	"github.com/fkhayef/fairsplit/internal/metrics"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/storage"
)

// Service derives balances and settlement plans from a group's history
type Service struct {
	store   storage.Store
	authz   *policy.Authorizer
	intents IntentBuilder
	metrics *metrics.Metrics
}

// NewService creates a new settlement service. m may be nil.
func NewService(store storage.Store, authz *policy.Authorizer, intents IntentBuilder, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		authz:   authz,
		intents: intents,
		metrics: m,
	}
}

// Balances returns the group and its current balance summary.
func (s *Service) Balances(ctx context.Context, callerID, groupID string) (*models.Group, balance.Summary, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.ViewSettlement)
	if err != nil {
		return nil, balance.Summary{}, err
	}

	summary, err := s.summarize(ctx, g)
	if err != nil {
		return nil, balance.Summary{}, err
	}
	return g, summary, nil
}

func (s *Service) summarize(ctx context.Context, g *models.Group) (balance.Summary, error) {
	expenses, err := s.store.ListExpenses(ctx, g.ID)
	if err != nil {
		return balance.Summary{}, err
	}
	adjustments, err := s.store.ListAdjustments(ctx, g.ID)
	if err != nil {
		return balance.Summary{}, err
	}
	return balance.Calculate(g.MemberIDs(), expenses, adjustments), nil
}

// Plan returns the minimal list of payments that settles the group, each
// with a payment intent addressed to the creditor.
func (s *Service) Plan(ctx context.Context, callerID, groupID string) (*models.Group, []Pair, error) {
	g, summary, err := s.Balances(ctx, callerID, groupID)
	if err != nil {
		return nil, nil, err
	}

	pairs := Plan(summary.Balances)

	intents := s.intents
	if g.Currency != "" {
		intents.Currency = g.Currency
	}
	intents.Attach(pairs, PayeesOf(g.Members))

	s.metrics.SettlementPlanned(len(pairs))
	return g, pairs, nil
}

// RecordPayment stores a payment from a debtor to a creditor as an
// adjustment that moves both balances toward zero.
func (s *Service) RecordPayment(ctx context.Context, callerID, groupID string, req *RecordPaymentRequest) (*models.Adjustment, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.RecordPayment)
	if err != nil {
		return nil, err
	}

	adj, err := PaymentAdjustment(g, req.From, req.To, req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateAdjustment(ctx, adj); err != nil {
		return nil, err
	}

	s.metrics.PaymentRecorded()
	slog.Info("settlement payment recorded",
		"group_id", groupID,
		"from", req.From,
		"to", req.To,
		"amount", adj.Amount.String(),
		"recorded_by", callerID,
	)
	return adj, nil
}

// PaymentAdjustment builds the adjustment for "from paid to amount". Paying
// raises the payer's balance and lowers the receiver's, so credit moves from
// the receiver to the payer.
func PaymentAdjustment(g *models.Group, from, to string, amount decimal.Decimal) (*models.Adjustment, error) {
	adj, err := adjustment.Validate(g, to, from, amount)
	if err != nil {
		return nil, err
	}
	adj.Description = "Settlement payment"
	return adj, nil
}
