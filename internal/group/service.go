package group

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/storage"
)

// Common errors
var (
	ErrNameRequired     = models.Invalid("group name is required")
	ErrMemberIncomplete = models.Invalid("name and mobile are required for a member")
	ErrInvalidRole      = models.Invalid("role must be admin or member")
	ErrEmptyCategory    = models.Invalid("category name is required")
)

// Service handles group business logic
type Service struct {
	store storage.Store
	authz *policy.Authorizer
}

// NewService creates a new group service
func NewService(store storage.Store, authz *policy.Authorizer) *Service {
	return &Service{store: store, authz: authz}
}

// Create creates a new group with the creator as its first member and admin.
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*models.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	creator, err := s.store.GetUser(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}

	g := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Currency:    currency,
		Members:     []models.Member{creator.AsMember(models.RoleAdmin)},
		Categories:  normalizeCategories(req.Categories),
		CreatedBy:   creator.ID,
	}

	for _, m := range req.Members {
		member, err := s.resolveMember(ctx, m)
		if err != nil {
			return nil, err
		}
		if _, dup := g.Member(member.ID); dup {
			continue
		}
		g.Members = append(g.Members, member)
	}

	if err := s.store.CreateGroup(ctx, g); err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", g.ID, "created_by", creator.ID, "members", len(g.Members))
	return g, nil
}

// resolveMember finds the user behind a mobile number, registering one when
// nobody has used the number yet.
func (s *Service) resolveMember(ctx context.Context, req AddMemberRequest) (models.Member, error) {
	name := strings.TrimSpace(req.Name)
	mobile := strings.TrimSpace(req.Mobile)
	if name == "" || mobile == "" {
		return models.Member{}, ErrMemberIncomplete
	}

	u, err := s.store.GetUserByMobile(ctx, mobile)
	if errors.Is(err, models.ErrNotFound) {
		u = &models.User{Name: name, Mobile: mobile, PaymentAddress: strings.TrimSpace(req.PaymentAddress)}
		err = s.store.CreateUser(ctx, u)
	}
	if err != nil {
		return models.Member{}, err
	}

	m := u.AsMember(models.RoleMember)
	m.Name = name
	if addr := strings.TrimSpace(req.PaymentAddress); addr != "" {
		m.PaymentAddress = addr
	}
	return m, nil
}

// Get returns a group the caller belongs to.
func (s *Service) Get(ctx context.Context, callerID, groupID string) (*models.Group, error) {
	return s.authz.Authorize(ctx, groupID, callerID, policy.ViewGroup)
}

// ListMine returns every group the caller belongs to.
func (s *Service) ListMine(ctx context.Context, callerID string) ([]models.Group, error) {
	return s.store.ListGroupsForMember(ctx, callerID)
}

// Update changes the group's name and/or description.
func (s *Service) Update(ctx context.Context, callerID, groupID string, req *UpdateGroupRequest) (*models.Group, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.UpdateGroup)
	if err != nil {
		return nil, err
	}

	name, description := g.Name, g.Description
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
	}
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}

	if err := s.store.UpdateGroup(ctx, groupID, name, description); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}

// Delete removes the group and its history.
func (s *Service) Delete(ctx context.Context, callerID, groupID string) error {
	if _, err := s.authz.Authorize(ctx, groupID, callerID, policy.DeleteGroup); err != nil {
		return err
	}
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	slog.Info("group deleted", "group_id", groupID, "deleted_by", callerID)
	return nil
}

// AddMember adds a person to the group as a regular member.
func (s *Service) AddMember(ctx context.Context, callerID, groupID string, req *AddMemberRequest) (*models.Member, error) {
	if _, err := s.authz.Authorize(ctx, groupID, callerID, policy.AddMember); err != nil {
		return nil, err
	}

	m, err := s.resolveMember(ctx, *req)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddMember(ctx, groupID, m); err != nil {
		return nil, err
	}

	slog.Info("member added", "group_id", groupID, "member_id", m.ID, "added_by", callerID)
	return &m, nil
}

// UpdateMemberRole promotes or demotes a member.
func (s *Service) UpdateMemberRole(ctx context.Context, callerID, groupID, memberID string, role models.Role) (*models.Member, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if _, err := s.authz.Authorize(ctx, groupID, callerID, policy.ChangeMemberRole); err != nil {
		return nil, err
	}

	if err := s.store.UpdateMemberRole(ctx, groupID, memberID, role); err != nil {
		return nil, err
	}

	g, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	m, ok := g.Member(memberID)
	if !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, models.ErrNotFound)
	}
	return m, nil
}

// RemoveMember removes a member. Admins may remove anyone; members may only
// leave. Members who paid for an expense stay.
func (s *Service) RemoveMember(ctx context.Context, callerID, groupID, memberID string) error {
	if _, err := s.authz.AuthorizeOwned(ctx, groupID, callerID, policy.RemoveMember, memberID); err != nil {
		return err
	}
	if err := s.store.RemoveMember(ctx, groupID, memberID); err != nil {
		return err
	}
	slog.Info("member removed", "group_id", groupID, "member_id", memberID, "removed_by", callerID)
	return nil
}

// AddCategory registers a custom category and returns the full list.
func (s *Service) AddCategory(ctx context.Context, callerID, groupID, name string) ([]string, error) {
	g, err := s.authz.Authorize(ctx, groupID, callerID, policy.AddCategory)
	if err != nil {
		return nil, err
	}

	category := models.NormalizeCategory(name)
	if category == "" {
		return nil, ErrEmptyCategory
	}
	if !g.HasCategory(category) {
		if err := s.store.AddCategory(ctx, groupID, category); err != nil {
			return nil, err
		}
		g.Categories = append(g.Categories, category)
	}
	return allCategories(g), nil
}

func normalizeCategories(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range models.DefaultCategories {
		seen[c] = true
	}
	for _, c := range in {
		c = models.NormalizeCategory(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
