// Package httputil holds the request decoding and error mapping shared by the
// feature handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/pkg/middleware"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// Decode reads a JSON body into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Caller returns the authenticated user id, writing a 401 when absent.
func Caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
	}
	return id, ok
}

// WriteError maps domain errors onto HTTP responses.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ValidationFailed(w, ve.Message)
	case errors.Is(err, models.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, models.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, models.ErrConflict):
		response.Conflict(w, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		response.InternalError(w, "Internal server error")
	}
}
