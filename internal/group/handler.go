package group

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/internal/httputil"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints. Each feature registers its
// own routes under /{groupId} and reads the groupId URL parameter.
func (h *Handler) Routes(features ...func(chi.Router)) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{groupId}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)

		// Member management
		r.Post("/members", h.AddMember)
		r.Put("/members/{memberId}", h.UpdateMember)
		r.Delete("/members/{memberId}", h.RemoveMember)

		r.Get("/categories", h.Categories)
		r.Post("/categories", h.AddCategory)

		for _, register := range features {
			register(r)
		}
	})

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a group with the caller as admin. Extra members are matched by mobile or registered.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req CreateGroupRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.Create(r.Context(), callerID, &req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, ToGroupResponse(g, callerID))
}

// List handles GET /groups
// @Summary      List my groups
// @Description  Get every group the caller belongs to
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Failure      401 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	groups, err := h.service.ListMine(r.Context(), callerID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp := make([]*GroupResponse, len(groups))
	for i := range groups {
		resp[i] = ToGroupResponse(&groups[i], callerID)
	}
	response.List(w, resp, len(resp))
}

// Get handles GET /groups/{groupId}
// @Summary      Get group by ID
// @Description  Get a group with its members and categories
// @Tags         groups
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	g, err := h.service.Get(r.Context(), callerID, chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ToGroupResponse(g, callerID))
}

// Update handles PUT /groups/{groupId}
// @Summary      Update a group
// @Description  Rename a group or change its description (admin only)
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body UpdateGroupRequest true "Group update request"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req UpdateGroupRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.Update(r.Context(), callerID, chi.URLParam(r, "groupId"), &req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ToGroupResponse(g, callerID))
}

// Delete handles DELETE /groups/{groupId}
// @Summary      Delete a group
// @Description  Delete a group with all its expenses and adjustments (admin only)
// @Tags         groups
// @Param        groupId path string true "Group ID"
// @Success      204
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), callerID, chi.URLParam(r, "groupId")); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMember handles POST /groups/{groupId}/members
// @Summary      Add a member
// @Description  Add a person to the group by mobile number (admin only)
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body AddMemberRequest true "Member to add"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	m, err := h.service.AddMember(r.Context(), callerID, chi.URLParam(r, "groupId"), &req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, ToMemberResponse(m))
}

// UpdateMember handles PUT /groups/{groupId}/members/{memberId}
// @Summary      Change a member's role
// @Description  Promote a member to admin or demote an admin (admin only)
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        memberId path string true "Member ID"
// @Param        request body UpdateMemberRequest true "New role"
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/members/{memberId} [put]
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	m, err := h.service.UpdateMemberRole(r.Context(), callerID,
		chi.URLParam(r, "groupId"), chi.URLParam(r, "memberId"), req.Role)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ToMemberResponse(m))
}

// RemoveMember handles DELETE /groups/{groupId}/members/{memberId}
// @Summary      Remove a member
// @Description  Admins may remove anyone; members may remove themselves
// @Tags         groups
// @Param        groupId path string true "Group ID"
// @Param        memberId path string true "Member ID"
// @Success      204
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/members/{memberId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	err := h.service.RemoveMember(r.Context(), callerID, chi.URLParam(r, "groupId"), chi.URLParam(r, "memberId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Categories handles GET /groups/{groupId}/categories
// @Summary      List categories
// @Description  Default categories followed by the group's custom ones
// @Tags         groups
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=CategoriesResponse}
// @Security     BearerAuth
// @Router       /groups/{groupId}/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	g, err := h.service.Get(r.Context(), callerID, chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, &CategoriesResponse{Categories: allCategories(g)})
}

// AddCategory handles POST /groups/{groupId}/categories
// @Summary      Add a category
// @Description  Add a custom expense category to the group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body AddCategoryRequest true "Category"
// @Success      201 {object} response.APIResponse{data=CategoriesResponse}
// @Failure      400 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/categories [post]
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req AddCategoryRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	categories, err := h.service.AddCategory(r.Context(), callerID, chi.URLParam(r, "groupId"), req.Name)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, &CategoriesResponse{Categories: categories})
}
