package settlement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/internal/httputil"
	"github.com/fkhayef/fairsplit/internal/money"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// Handler handles HTTP requests for balances and settlement
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register adds the balance and settlement routes to a /groups/{groupId}
// router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/balances", h.Balances)
	r.Route("/settlement", func(r chi.Router) {
		r.Get("/", h.Plan)
		r.Post("/payments", h.RecordPayment)
	})
}

// Balances handles GET /groups/{groupId}/balances
// @Summary      Get balances
// @Description  Paid, should-pay and net balance of every member. Positive means the group owes the member.
// @Tags         settlement
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=BalancesResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	g, summary, err := h.service.Balances(r.Context(), callerID, chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ToBalancesResponse(g, summary))
}

// Plan handles GET /groups/{groupId}/settlement
// @Summary      Get settlement plan
// @Description  Minimal list of payments that brings every balance to zero, with payment deep links
// @Tags         settlement
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=PlanResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/settlement [get]
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	g, pairs, err := h.service.Plan(r.Context(), callerID, chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ToPlanResponse(g, pairs, callerID))
}

// RecordPayment handles POST /groups/{groupId}/settlement/payments
// @Summary      Record a settlement payment
// @Description  Record that one member paid another; stored as an adjustment
// @Tags         settlement
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body RecordPaymentRequest true "Payment"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /groups/{groupId}/settlement/payments [post]
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	adj, err := h.service.RecordPayment(r.Context(), callerID, chi.URLParam(r, "groupId"), &req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSONWithMessage(w, http.StatusCreated, &PaymentResponse{
		AdjustmentID: adj.ID,
		From:         req.From,
		To:           req.To,
		Amount:       money.Format(adj.Amount),
	}, "Payment recorded")
}
