package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/internal/auth"
	"github.com/fkhayef/fairsplit/internal/httputil"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// Handler handles HTTP requests for login and user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AuthRoutes returns the public login endpoints
func (h *Handler) AuthRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/request-otp", h.RequestOTP)
	r.Post("/verify-otp", h.VerifyOTP)

	return r
}

// Routes returns the router for authenticated user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)

	return r
}

// RequestOTP handles POST /auth/request-otp
// @Summary      Request a login code
// @Description  Issues a one-time code for the mobile number. The demo returns the code in the response.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RequestOTPRequest true "Mobile number"
// @Success      200 {object} response.APIResponse{data=RequestOTPResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /auth/request-otp [post]
func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req RequestOTPRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	code, err := h.service.RequestOTP(r.Context(), req.Mobile)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSONWithMessage(w, http.StatusOK, &RequestOTPResponse{OTP: code}, "OTP generated (demo)")
}

// VerifyOTP handles POST /auth/verify-otp
// @Summary      Verify a login code
// @Description  Exchanges a valid code for a session token, registering new mobiles
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body VerifyOTPRequest true "Mobile and code"
// @Success      200 {object} response.APIResponse{data=SessionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /auth/verify-otp [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := httputil.Decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, token, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidOTP) || errors.Is(err, auth.ErrOTPExpired) {
			response.Unauthorized(w, err.Error())
			return
		}
		httputil.WriteError(w, r, err)
		return
	}

	response.JSONWithMessage(w, http.StatusOK, &SessionResponse{Token: token, User: ToUserResponse(u)}, "Authenticated")
}

// Me handles GET /users/me
// @Summary      Current user
// @Description  Returns the authenticated user
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	callerID, ok := httputil.Caller(w, r)
	if !ok {
		return
	}

	u, err := h.service.Get(r.Context(), callerID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ToUserResponse(u))
}
