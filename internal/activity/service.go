// Package activity builds a group's chronological activity feed.
package activity

import (
	"context"
	"fmt"
	"sort"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/storage"
)

// Service handles activity feed logic
type Service struct {
	store storage.Store
	authz *policy.Authorizer
}

// NewService creates a new activity service
func NewService(store storage.Store, authz *policy.Authorizer) *Service {
	return &Service{store: store, authz: authz}
}

// List returns the group's activity, newest first.
func (s *Service) List(ctx context.Context, callerID, groupID string) ([]Activity, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.ViewGroup)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.store.ListAdjustments(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return Merge(g, expenses, adjustments), nil
}

// Merge turns expenses and adjustments into one feed sorted newest first.
// Records created at the same instant keep reverse creation order, expenses
// ahead of adjustments.
func Merge(g *models.Group, expenses []models.Expense, adjustments []models.Adjustment) []Activity {
	feed := make([]Activity, 0, len(expenses)+len(adjustments))
	for i := len(expenses) - 1; i >= 0; i-- {
		e := expenses[i]
		feed = append(feed, Activity{
			ID:          e.ID,
			GroupID:     e.GroupID,
			Kind:        KindExpense,
			ActorID:     e.PayerID,
			Description: describeExpense(g, e),
			Amount:      e.Amount,
			CreatedAt:   e.CreatedAt,
		})
	}
	for i := len(adjustments) - 1; i >= 0; i-- {
		a := adjustments[i]
		feed = append(feed, Activity{
			ID:          a.ID,
			GroupID:     a.GroupID,
			Kind:        KindAdjustment,
			ActorID:     a.From,
			Description: describeAdjustment(g, a),
			Amount:      a.Amount,
			CreatedAt:   a.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed
}

func name(g *models.Group, id string) string {
	if m, ok := g.Member(id); ok {
		return m.Name
	}
	return id
}

func describeExpense(g *models.Group, e models.Expense) string {
	what := e.Description
	if what == "" {
		what = e.Category
	}
	return fmt.Sprintf("%s paid %s for %s", name(g, e.PayerID), money.Format(e.Amount), what)
}

func describeAdjustment(g *models.Group, a models.Adjustment) string {
	msg := fmt.Sprintf("%s transferred %s to %s", name(g, a.From), money.Format(a.Amount), name(g, a.To))
	if a.Description != "" {
		msg += " (" + a.Description + ")"
	}
	return msg
}
