package models

import (
	"strings"
	"time"
)

// Role is a member's permission level inside one group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// DefaultCurrency is used when a group is created without one.
const DefaultCurrency = "INR"

// Member is a participant of a group.
type Member struct {
	ID             string
	Name           string
	Mobile         string
	PaymentAddress string
	Role           Role
}

// Group is a set of members sharing expenses.
type Group struct {
	ID          string
	Name        string
	Description string
	Currency    string
	Members     []Member
	Categories  []string
	CreatedBy   string
	CreatedAt   time.Time
}

// Member looks a member up by id.
func (g *Group) Member(id string) (*Member, bool) {
	for i := range g.Members {
		if g.Members[i].ID == id {
			return &g.Members[i], true
		}
	}
	return nil, false
}

// MemberIDs returns the member ids in group order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// AdminCount counts members holding the admin role.
func (g *Group) AdminCount() int {
	n := 0
	for _, m := range g.Members {
		if m.Role == RoleAdmin {
			n++
		}
	}
	return n
}

// DefaultCategories are always available, custom ones are appended.
var DefaultCategories = []string{"food", "travel", "rent", "shopping", "groceries", "utilities", "entertainment", "healthcare", "transport", "other"}

// NormalizeCategory lower-cases and trims a category name.
func NormalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// HasCategory reports whether name is a default or custom category.
func (g *Group) HasCategory(name string) bool {
	name = NormalizeCategory(name)
	for _, c := range DefaultCategories {
		if c == name {
			return true
		}
	}
	for _, c := range g.Categories {
		if c == name {
			return true
		}
	}
	return false
}
