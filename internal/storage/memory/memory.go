// Package memory is an in-process storage.Store used for the demo mode and
// for tests. State lives behind a single RWMutex.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps everything in maps and slices.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*models.User
	groups      map[string]*models.Group
	groupOrder  []string
	expenses    []models.Expense
	adjustments []models.Adjustment
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

// NewDemo returns a store preloaded with the demo group.
func NewDemo(ctx context.Context) (*Store, error) {
	s := New()
	if err := storage.SeedDemo(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset drops all data and reloads the demo fixtures.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	return storage.SeedDemo(ctx, s)
}

func (s *Store) reset() {
	s.users = make(map[string]*models.User)
	s.groups = make(map[string]*models.Group)
	s.groupOrder = nil
	s.expenses = nil
	s.adjustments = nil
}

func (s *Store) Close() error { return nil }

func newID() string { return uuid.NewString() }

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

// CreateUser stores a new user, assigning an id when it has none.
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = newID()
	}
	stamp(&user.CreatedAt)
	for _, u := range s.users {
		if u.ID == user.ID || (user.Mobile != "" && u.Mobile == user.Mobile) {
			return fmt.Errorf("user %s: %w", user.Mobile, models.ErrConflict)
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByMobile(_ context.Context, mobile string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Mobile == mobile {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user with mobile", mobile)
}

func copyGroup(g *models.Group) models.Group {
	cp := *g
	cp.Members = slices.Clone(g.Members)
	cp.Categories = slices.Clone(g.Categories)
	return cp
}

// CreateGroup stores a group together with its initial members.
func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = newID()
	}
	if _, exists := s.groups[group.ID]; exists {
		return fmt.Errorf("group %s: %w", group.ID, models.ErrConflict)
	}
	stamp(&group.CreatedAt)
	cp := copyGroup(group)
	s.groups[group.ID] = &cp
	s.groupOrder = append(s.groupOrder, group.ID)
	return nil
}

func (s *Store) GetGroup(_ context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, notFound("group", id)
	}
	cp := copyGroup(g)
	return &cp, nil
}

func (s *Store) ListGroupsForMember(_ context.Context, memberID string) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := []models.Group{}
	for _, id := range s.groupOrder {
		g := s.groups[id]
		if _, ok := g.Member(memberID); ok {
			groups = append(groups, copyGroup(g))
		}
	}
	return groups, nil
}

func (s *Store) UpdateGroup(_ context.Context, id, name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[id]
	if !ok {
		return notFound("group", id)
	}
	g.Name = name
	g.Description = description
	return nil
}

func (s *Store) DeleteGroup(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return notFound("group", id)
	}
	delete(s.groups, id)
	s.groupOrder = slices.DeleteFunc(s.groupOrder, func(gid string) bool { return gid == id })
	s.expenses = slices.DeleteFunc(s.expenses, func(e models.Expense) bool { return e.GroupID == id })
	s.adjustments = slices.DeleteFunc(s.adjustments, func(a models.Adjustment) bool { return a.GroupID == id })
	return nil
}

// AddMember appends a member to a group.
func (s *Store) AddMember(_ context.Context, groupID string, member models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return notFound("group", groupID)
	}
	for _, m := range g.Members {
		if m.ID == member.ID || (member.Mobile != "" && m.Mobile == member.Mobile) {
			return fmt.Errorf("member %s: %w", member.Mobile, models.ErrConflict)
		}
	}
	g.Members = append(g.Members, member)
	return nil
}

func (s *Store) UpdateMemberRole(_ context.Context, groupID, memberID string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return notFound("group", groupID)
	}
	m, ok := g.Member(memberID)
	if !ok {
		return notFound("member", memberID)
	}
	if m.Role == models.RoleAdmin && role != models.RoleAdmin && g.AdminCount() <= 1 {
		return models.ErrLastAdmin
	}
	m.Role = role
	return nil
}

func (s *Store) RemoveMember(_ context.Context, groupID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return notFound("group", groupID)
	}
	m, ok := g.Member(memberID)
	if !ok {
		return notFound("member", memberID)
	}
	if m.Role == models.RoleAdmin && g.AdminCount() <= 1 {
		return models.ErrLastAdmin
	}
	for _, e := range s.expenses {
		if e.GroupID == groupID && e.PayerID == memberID {
			return models.ErrMemberHasExpenses
		}
	}
	g.Members = slices.DeleteFunc(g.Members, func(m models.Member) bool { return m.ID == memberID })
	return nil
}

func (s *Store) AddCategory(_ context.Context, groupID, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return notFound("group", groupID)
	}
	if !slices.Contains(g.Categories, category) {
		g.Categories = append(g.Categories, category)
	}
	return nil
}

func copyExpense(e models.Expense) models.Expense {
	e.Splits = slices.Clone(e.Splits)
	return e
}

// CreateExpense stores an expense with its fixed splits.
func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[expense.GroupID]; !ok {
		return notFound("group", expense.GroupID)
	}
	if expense.ID == "" {
		expense.ID = newID()
	}
	stamp(&expense.CreatedAt)
	s.expenses = append(s.expenses, copyExpense(*expense))
	return nil
}

func (s *Store) GetExpense(_ context.Context, groupID, id string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.expenses {
		if e.GroupID == groupID && e.ID == id {
			cp := copyExpense(e)
			return &cp, nil
		}
	}
	return nil, notFound("expense", id)
}

func (s *Store) ListExpenses(_ context.Context, groupID string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Expense{}
	for _, e := range s.expenses {
		if e.GroupID == groupID {
			out = append(out, copyExpense(e))
		}
	}
	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, groupID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.expenses)
	s.expenses = slices.DeleteFunc(s.expenses, func(e models.Expense) bool {
		return e.GroupID == groupID && e.ID == id
	})
	if len(s.expenses) == before {
		return notFound("expense", id)
	}
	return nil
}

// CreateAdjustment stores a transfer between two members.
func (s *Store) CreateAdjustment(_ context.Context, adj *models.Adjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[adj.GroupID]; !ok {
		return notFound("group", adj.GroupID)
	}
	if adj.ID == "" {
		adj.ID = newID()
	}
	stamp(&adj.CreatedAt)
	s.adjustments = append(s.adjustments, *adj)
	return nil
}

func (s *Store) ListAdjustments(_ context.Context, groupID string) ([]models.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Adjustment{}
	for _, a := range s.adjustments {
		if a.GroupID == groupID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) DeleteAdjustment(_ context.Context, groupID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.adjustments)
	s.adjustments = slices.DeleteFunc(s.adjustments, func(a models.Adjustment) bool {
		return a.GroupID == groupID && a.ID == id
	})
	if len(s.adjustments) == before {
		return notFound("adjustment", id)
	}
	return nil
}
