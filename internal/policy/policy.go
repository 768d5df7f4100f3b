// Package policy is the single place that decides who may do what inside a
// group. Services call Authorize before every read or mutation.
package policy

import (
	"context"
	"fmt"

	"github.com/fkhayef/fairsplit/internal/models"
)

// Action is something a member may attempt inside a group.
type Action string

const (
	ViewGroup        Action = "view_group"
	UpdateGroup      Action = "update_group"
	DeleteGroup      Action = "delete_group"
	AddMember        Action = "add_member"
	RemoveMember     Action = "remove_member"
	ChangeMemberRole Action = "change_member_role"
	AddCategory      Action = "add_category"
	AddExpense       Action = "add_expense"
	DeleteExpense    Action = "delete_expense"
	AddAdjustment    Action = "add_adjustment"
	DeleteAdjustment Action = "delete_adjustment"
	ViewSettlement   Action = "view_settlement"
	RecordPayment    Action = "record_payment"
)

// grant says how far a role may go with an action.
type grant int

const (
	deny grant = iota
	own        // only on resources the actor owns
	allow
)

var capabilities = map[Action]map[models.Role]grant{
	ViewGroup:        {models.RoleAdmin: allow, models.RoleMember: allow},
	UpdateGroup:      {models.RoleAdmin: allow},
	DeleteGroup:      {models.RoleAdmin: allow},
	AddMember:        {models.RoleAdmin: allow},
	RemoveMember:     {models.RoleAdmin: allow, models.RoleMember: own},
	ChangeMemberRole: {models.RoleAdmin: allow},
	AddCategory:      {models.RoleAdmin: allow, models.RoleMember: allow},
	AddExpense:       {models.RoleAdmin: allow, models.RoleMember: allow},
	DeleteExpense:    {models.RoleAdmin: allow, models.RoleMember: own},
	AddAdjustment:    {models.RoleAdmin: allow, models.RoleMember: allow},
	DeleteAdjustment: {models.RoleAdmin: allow},
	ViewSettlement:   {models.RoleAdmin: allow, models.RoleMember: allow},
	RecordPayment:    {models.RoleAdmin: allow, models.RoleMember: allow},
}

// GroupLoader is the slice of storage.Store the authorizer needs.
type GroupLoader interface {
	GetGroup(ctx context.Context, id string) (*models.Group, error)
}

// Authorizer checks actions against the capability table.
type Authorizer struct {
	groups GroupLoader
}

// NewAuthorizer creates an authorizer backed by groups.
func NewAuthorizer(groups GroupLoader) *Authorizer {
	return &Authorizer{groups: groups}
}

// Authorize loads the group and checks that actor may perform action on it.
// It returns the loaded group so callers do not fetch it twice.
func (a *Authorizer) Authorize(ctx context.Context, groupID, actorID string, action Action) (*models.Group, error) {
	return a.authorize(ctx, groupID, actorID, action, "")
}

// AuthorizeOwned is Authorize for actions on a resource owned by ownerID.
// Members holding an "own" grant pass only when they are the owner.
func (a *Authorizer) AuthorizeOwned(ctx context.Context, groupID, actorID string, action Action, ownerID string) (*models.Group, error) {
	return a.authorize(ctx, groupID, actorID, action, ownerID)
}

func (a *Authorizer) authorize(ctx context.Context, groupID, actorID string, action Action, ownerID string) (*models.Group, error) {
	g, err := a.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	m, ok := g.Member(actorID)
	if !ok {
		return nil, fmt.Errorf("%s is not a member of group %s: %w", actorID, groupID, models.ErrForbidden)
	}

	if !Allowed(m.Role, action, actorID == ownerID) {
		return nil, fmt.Errorf("%s may not %s: %w", m.Role, action, models.ErrForbidden)
	}
	return g, nil
}

// Allowed reports whether role may perform action. isOwner matters only for
// actions granted on own resources.
func Allowed(role models.Role, action Action, isOwner bool) bool {
	switch capabilities[action][role] {
	case allow:
		return true
	case own:
		return isOwner
	default:
		return false
	}
}
