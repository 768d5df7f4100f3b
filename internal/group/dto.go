package group

import (
	"github.com/fkhayef/fairsplit/internal/models"
)

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Currency    string             `json:"currency,omitempty"`
	Members     []AddMemberRequest `json:"members,omitempty"`
	Categories  []string           `json:"categories,omitempty"`
}

// UpdateGroupRequest represents the request to update a group
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest identifies a person by mobile number
type AddMemberRequest struct {
	Name           string `json:"name"`
	Mobile         string `json:"mobile"`
	PaymentAddress string `json:"payment_address,omitempty"`
}

// UpdateMemberRequest changes a member's role
type UpdateMemberRequest struct {
	Role models.Role `json:"role"`
}

// AddCategoryRequest adds a custom expense category
type AddCategoryRequest struct {
	Name string `json:"name"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Currency    string            `json:"currency"`
	CreatedBy   string            `json:"created_by"`
	CreatedAt   string            `json:"created_at"`
	Members     []*MemberResponse `json:"members"`
	Categories  []string          `json:"categories"`
	UserRole    models.Role       `json:"user_role,omitempty"`
	IsAdmin     bool              `json:"is_admin"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Mobile         string      `json:"mobile"`
	PaymentAddress string      `json:"payment_address"`
	Role           models.Role `json:"role"`
}

// CategoriesResponse lists every category usable in a group
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ToGroupResponse converts a group to its DTO as seen by viewerID
func ToGroupResponse(g *models.Group, viewerID string) *GroupResponse {
	resp := &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Currency:    g.Currency,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Members:     make([]*MemberResponse, len(g.Members)),
		Categories:  allCategories(g),
	}
	for i := range g.Members {
		resp.Members[i] = ToMemberResponse(&g.Members[i])
	}
	if m, ok := g.Member(viewerID); ok {
		resp.UserRole = m.Role
		resp.IsAdmin = m.Role == models.RoleAdmin
	}
	return resp
}

// ToMemberResponse converts a member to its DTO
func ToMemberResponse(m *models.Member) *MemberResponse {
	return &MemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Mobile:         m.Mobile,
		PaymentAddress: m.PaymentAddress,
		Role:           m.Role,
	}
}

func allCategories(g *models.Group) []string {
	out := make([]string, 0, len(models.DefaultCategories)+len(g.Categories))
	out = append(out, models.DefaultCategories...)
	return append(out, g.Categories...)
}
