package adjustment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/internal/httputil"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// Handler handles HTTP requests for adjustments
type Handler struct {
	service *Service
}

// NewHandler creates a new adjustment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register adds the adjustment routes to a /groups/{groupId} router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/adjustments", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Delete("/{adjustmentId}", h.Delete)
	})
}

// Create handles POST /groups/{groupId}/adjustments
// @Summary      Record an adjustment
// @Description  Move credit from one member to another
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body CreateAdjustmentRequest true "Adjustment"
// @Success      201 {object} response.APIResponse{data=AdjustmentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/adjustments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req CreateAdjustmentRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	adj, err := h.service.Create(r.Context(), callerID, chi.URLParam(r, "groupId"), &req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, ToAdjustmentResponse(adj))
}

// List handles GET /groups/{groupId}/adjustments
// @Summary      List adjustments
// @Tags         adjustments
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]AdjustmentResponse}
// @Security     BearerAuth
// @Router       /groups/{groupId}/adjustments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	adjustments, err := h.service.List(r.Context(), callerID, chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp := make([]*AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		resp[i] = ToAdjustmentResponse(&adjustments[i])
	}
	response.List(w, resp, len(resp))
}

// Delete handles DELETE /groups/{groupId}/adjustments/{adjustmentId}
// @Summary      Delete an adjustment
// @Description  Admin only
// @Tags         adjustments
// @Param        groupId path string true "Group ID"
// @Param        adjustmentId path string true "Adjustment ID"
// @Success      204
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/adjustments/{adjustmentId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), callerID, chi.URLParam(r, "groupId"), chi.URLParam(r, "adjustmentId")); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
