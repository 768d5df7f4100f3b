package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/internal/httputil"
	"github.com/fkhayef/fairsplit/internal/money"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// Handler handles HTTP requests for the activity feed
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register adds the activity route to a /groups/{groupId} router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/activity", h.List)
}

// ActivityResponse represents the response for an activity
type ActivityResponse struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	ActorID     string `json:"actor_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CreatedAt   string `json:"created_at"`
}

func toResponse(a *Activity) *ActivityResponse {
	return &ActivityResponse{
		ID:          a.ID,
		Kind:        a.Kind,
		ActorID:     a.ActorID,
		Description: a.Description,
		Amount:      money.Format(a.Amount),
		CreatedAt:   a.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// List handles GET /groups/{groupId}/activity
// @Summary      Group activity
// @Description  Expenses and adjustments of a group, newest first
// @Tags         activity
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ActivityResponse}
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/activity [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	feed, err := h.service.List(r.Context(), callerID, chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp := make([]*ActivityResponse, len(feed))
	for i := range feed {
		resp[i] = toResponse(&feed[i])
	}
	response.List(w, resp, len(resp))
}
