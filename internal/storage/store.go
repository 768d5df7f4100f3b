// Package storage defines the persistence boundary for groups, members,
// expenses, adjustments and users.
package storage

import (
	"context"

	"github.com/fkhayef/fairsplit/internal/models"
)

// Store is implemented by every storage backend.
//
// Lookups of missing records return an error wrapping models.ErrNotFound.
// Create methods fill in ID and CreatedAt when they are empty.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByMobile(ctx context.Context, mobile string) (*models.User, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroupsForMember(ctx context.Context, memberID string) ([]models.Group, error)
	UpdateGroup(ctx context.Context, id, name, description string) error
	DeleteGroup(ctx context.Context, id string) error

	// Members. AddMember fails with models.ErrConflict when the id or mobile
	// is already in the group. RemoveMember fails with
	// models.ErrMemberHasExpenses or models.ErrLastAdmin; UpdateMemberRole
	// with models.ErrLastAdmin.
	AddMember(ctx context.Context, groupID string, member models.Member) error
	UpdateMemberRole(ctx context.Context, groupID, memberID string, role models.Role) error
	RemoveMember(ctx context.Context, groupID, memberID string) error
	AddCategory(ctx context.Context, groupID, category string) error

	// Expenses are listed in creation order.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, groupID, id string) (*models.Expense, error)
	ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, groupID, id string) error

	// Adjustments are listed in creation order.
	CreateAdjustment(ctx context.Context, adj *models.Adjustment) error
	ListAdjustments(ctx context.Context, groupID string) ([]models.Adjustment, error)
	DeleteAdjustment(ctx context.Context, groupID, id string) error

	Close() error
}
