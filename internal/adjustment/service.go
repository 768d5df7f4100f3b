// Package adjustment records manual balance transfers between two members of
// a group, such as a cash payment made outside the app.
package adjustment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/storage"
)

// Common errors
var (
	ErrNonPositiveAmount = models.Invalid("adjustment amount must be positive")
	ErrSameMember        = models.Invalid("adjustment needs two different members")
)

// Service handles adjustment business logic
type Service struct {
	store storage.Store
	authz *policy.Authorizer
}

// NewService creates a new adjustment service
func NewService(store storage.Store, authz *policy.Authorizer) *Service {
	return &Service{store: store, authz: authz}
}

// Create validates and stores an adjustment.
func (s *Service) Create(ctx context.Context, callerID, groupID string, req *CreateAdjustmentRequest) (*models.Adjustment, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.AddAdjustment)
	if err != nil {
		return nil, err
	}

	adj, err := Validate(g, req.From, req.To, req.Amount)
	if err != nil {
		return nil, err
	}
	adj.Description = strings.TrimSpace(req.Description)

	if err := s.store.CreateAdjustment(ctx, adj); err != nil {
		return nil, err
	}

	slog.Info("adjustment recorded",
		"group_id", groupID,
		"adjustment_id", adj.ID,
		"from", adj.From,
		"to", adj.To,
		"amount", adj.Amount.String(),
	)
	return adj, nil
}

// Validate builds an adjustment between two distinct members of g. The
// amount is rounded to cents and must stay positive.
func Validate(g *models.Group, from, to string, amount decimal.Decimal) (*models.Adjustment, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == to {
		return nil, ErrSameMember
	}
	if _, ok := g.Member(from); !ok {
		return nil, models.Invalid("member %q not in group", from)
	}
	if _, ok := g.Member(to); !ok {
		return nil, models.Invalid("member %q not in group", to)
	}

	d := money.Round2(amount)
	if !d.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	return &models.Adjustment{GroupID: g.ID, From: from, To: to, Amount: d}, nil
}

// List returns the group's adjustments in creation order.
func (s *Service) List(ctx context.Context, callerID, groupID string) ([]models.Adjustment, error) {
	if _, err := s.authz.Authorize(ctx, groupID, callerID, policy.ViewGroup); err != nil {
		return nil, err
	}
	return s.store.ListAdjustments(ctx, groupID)
}

// Delete removes an adjustment (admin only).
func (s *Service) Delete(ctx context.Context, callerID, groupID, adjustmentID string) error {
	if _, err := s.authz.Authorize(ctx, groupID, callerID, policy.DeleteAdjustment); err != nil {
		return err
	}
	if err := s.store.DeleteAdjustment(ctx, groupID, adjustmentID); err != nil {
		return err
	}
	slog.Info("adjustment deleted", "group_id", groupID, "adjustment_id", adjustmentID, "deleted_by", callerID)
	return nil
}
