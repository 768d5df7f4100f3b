package expense

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fkhayef/fairsplit/internal/balance"
	"github.com/fkhayef/fairsplit/internal/expense/split"
	"github.com/fkhayef/fairsplit/internal/metrics"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/storage"
)

// DefaultCategory is used when an expense names none.
const DefaultCategory = "other"

// Service handles expense business logic
type Service struct {
	store        storage.Store
	authz        *policy.Authorizer
	splitFactory *split.Factory
	metrics      *metrics.Metrics
}

// NewService creates a new expense service with dependencies injected.
// m may be nil.
func NewService(store storage.Store, authz *policy.Authorizer, splitFactory *split.Factory, m *metrics.Metrics) *Service {
	return &Service{
		store:        store,
		authz:        authz,
		splitFactory: splitFactory,
		metrics:      m,
	}
}

// Create normalizes the proposed split and records the expense. The payer
// defaults to the caller.
func (s *Service) Create(ctx context.Context, callerID, groupID string, req *CreateExpenseRequest) (*models.Expense, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.AddExpense)
	if err != nil {
		return nil, err
	}

	payerID := strings.TrimSpace(req.PayerID)
	if payerID == "" {
		payerID = callerID
	}

	inputs := make([]split.Input, len(req.Splits))
	for i, sr := range req.Splits {
		inputs[i] = sr.toInput()
	}

	result, err := s.splitFactory.Normalize(split.Request{
		Amount:  req.Amount,
		Type:    req.SplitType,
		PayerID: payerID,
		Inputs:  inputs,
		Members: g.MemberIDs(),
	})
	if err != nil {
		return nil, err
	}

	category := models.NormalizeCategory(req.Category)
	if category == "" {
		category = DefaultCategory
	}

	e := &models.Expense{
		GroupID:     groupID,
		PayerID:     payerID,
		Amount:      result.Amount,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		SplitType:   result.Type,
		Splits:      result.Splits,
	}
	if err := s.store.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	s.metrics.ExpenseCreated(string(e.SplitType))
	slog.Info("expense created",
		"group_id", groupID,
		"expense_id", e.ID,
		"payer_id", payerID,
		"amount", e.Amount.String(),
		"split_type", e.SplitType,
	)
	return e, nil
}

// List returns the group's expenses in creation order together with the
// current balance summary.
func (s *Service) List(ctx context.Context, callerID, groupID string) ([]models.Expense, balance.Summary, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.ViewGroup)
	if err != nil {
		return nil, balance.Summary{}, err
	}

	expenses, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, balance.Summary{}, err
	}
	adjustments, err := s.store.ListAdjustments(ctx, groupID)
	if err != nil {
		return nil, balance.Summary{}, err
	}

	return expenses, balance.Calculate(g.MemberIDs(), expenses, adjustments), nil
}

// Get returns a single expense of the group.
func (s *Service) Get(ctx context.Context, callerID, groupID, expenseID string) (*models.Expense, error) {
	if _, err := s.authz.Authorize(ctx, groupID, callerID, policy.ViewGroup); err != nil {
		return nil, err
	}
	return s.store.GetExpense(ctx, groupID, expenseID)
}

// Delete removes an expense. Members may only delete expenses they paid.
func (s *Service) Delete(ctx context.Context, callerID, groupID, expenseID string) error {
	e, err := s.Get(ctx, callerID, groupID, expenseID)
	if err != nil {
		return err
	}
	if _, err := s.authz.AuthorizeOwned(ctx, groupID, callerID, policy.DeleteExpense, e.PayerID); err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, groupID, expenseID); err != nil {
		return err
	}

	slog.Info("expense deleted", "group_id", groupID, "expense_id", expenseID, "deleted_by", callerID)
	return nil
}
