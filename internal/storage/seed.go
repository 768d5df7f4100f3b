package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
)

// Demo fixture ids.
const (
	DemoUserID  = "u1"
	DemoGroupID = "g1"
)

// DemoUsers are the accounts present in a freshly seeded store.
func DemoUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Demo User", Mobile: "9999999999", PaymentAddress: "DEMO_UPI@upi"},
		{ID: "u2", Name: "Alice", Mobile: "8888888888", PaymentAddress: "ALICE_UPI@upi"},
		{ID: "u3", Name: "Bob", Mobile: "7777777777", PaymentAddress: "BOB_UPI@upi"},
	}
}

// SeedDemo loads the demo group: three members, a 600 dinner paid by u1 split
// equally and a 300 movie night paid by u2 split 100 each.
func SeedDemo(ctx context.Context, s Store) error {
	users := DemoUsers()
	now := time.Now().UTC()

	members := make([]models.Member, len(users))
	for i := range users {
		users[i].CreatedAt = now
		if err := s.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", users[i].ID, err)
		}
		role := models.RoleMember
		if users[i].ID == DemoUserID {
			role = models.RoleAdmin
		}
		members[i] = users[i].AsMember(role)
	}

	group := &models.Group{
		ID:          DemoGroupID,
		Name:        "Demo Group",
		Description: "A demo FairSplit group",
		Currency:    models.DefaultCurrency,
		Members:     members,
		CreatedBy:   DemoUserID,
		CreatedAt:   now,
	}
	if err := s.CreateGroup(ctx, group); err != nil {
		return fmt.Errorf("failed to seed group: %w", err)
	}

	each := func(amount int64) []models.Split {
		splits := make([]models.Split, len(members))
		for i, m := range members {
			splits[i] = models.Split{MemberID: m.ID, Amount: decimal.NewFromInt(amount)}
		}
		return splits
	}

	expenses := []models.Expense{
		{
			ID: "e1", GroupID: DemoGroupID, PayerID: "u1", Amount: decimal.NewFromInt(600),
			Category: "food", Description: "Dinner", SplitType: models.SplitEqual,
			Splits: each(200), CreatedAt: now,
		},
		{
			ID: "e2", GroupID: DemoGroupID, PayerID: "u2", Amount: decimal.NewFromInt(300),
			Category: "entertainment", Description: "Movie tickets", SplitType: models.SplitCustom,
			Splits: each(100), CreatedAt: now.Add(time.Second),
		},
	}
	for i := range expenses {
		if err := s.CreateExpense(ctx, &expenses[i]); err != nil {
			return fmt.Errorf("failed to seed expense %s: %w", expenses[i].ID, err)
		}
	}

	return nil
}
