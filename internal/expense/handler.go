package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/internal/httputil"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register adds the expense routes to a /groups/{groupId} router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{expenseId}", h.Get)
		r.Delete("/{expenseId}", h.Delete)
	})
}

// Create handles POST /groups/{groupId}/expenses
// @Summary      Add an expense
// @Description  Record an expense split equally, by percentage or by custom amounts. Empty splits mean everyone shares equally.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	e, err := h.service.Create(r.Context(), callerID, chi.URLParam(r, "groupId"), &req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, ToExpenseResponse(e))
}

// List handles GET /groups/{groupId}/expenses
// @Summary      List expenses
// @Description  Expenses in creation order with the group's balance summary
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=ListResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	expenses, summary, err := h.service.List(r.Context(), callerID, chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp := &ListResponse{
		Expenses: make([]*ExpenseResponse, len(expenses)),
		Summary:  ToSummaryResponse(summary),
	}
	for i := range expenses {
		resp.Expenses[i] = ToExpenseResponse(&expenses[i])
	}
	response.List(w, resp, len(expenses))
}

// Get handles GET /groups/{groupId}/expenses/{expenseId}
// @Summary      Get expense by ID
// @Description  Get an expense with its fixed splits
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        expenseId path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/expenses/{expenseId} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	e, err := h.service.Get(r.Context(), callerID, chi.URLParam(r, "groupId"), chi.URLParam(r, "expenseId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ToExpenseResponse(e))
}

// Delete handles DELETE /groups/{groupId}/expenses/{expenseId}
// @Summary      Delete an expense
// @Description  Admins may delete any expense, members only the ones they paid
// @Tags         expenses
// @Param        groupId path string true "Group ID"
// @Param        expenseId path string true "Expense ID"
// @Success      204
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/expenses/{expenseId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), callerID, chi.URLParam(r, "groupId"), chi.URLParam(r, "expenseId")); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
