package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/fairsplit/internal/auth"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/storage/memory"
	"github.com/fkhayef/fairsplit/pkg/middleware"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := memory.NewDemo(context.Background())
	if err != nil {
		t.Fatalf("NewDemo failed: %v", err)
	}
	return NewService(store,
		auth.NewOTPManager(auth.DemoOTP, 5*time.Minute),
		auth.NewJWTManager("test-secret", time.Hour))
}

func TestLoginExistingUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	code, err := svc.RequestOTP(ctx, "8888888888")
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	u, token, err := svc.VerifyOTP(ctx, &VerifyOTPRequest{Mobile: "8888888888", OTP: code})
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if u.ID != "u2" {
		t.Errorf("expected Alice (u2), got %s", u.ID)
	}

	id, err := svc.ValidateToken(token)
	if err != nil || id != "u2" {
		t.Errorf("token should resolve to u2, got %q, %v", id, err)
	}
}

func TestLoginRegistersNewMobile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.RequestOTP(ctx, "1231231234"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	u, _, err := svc.VerifyOTP(ctx, &VerifyOTPRequest{Mobile: "1231231234", OTP: auth.DemoOTP, Name: "Zed"})
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if u.ID == "" || u.Name != "Zed" {
		t.Errorf("expected a registered user named Zed, got %+v", u)
	}

	again, err := svc.Get(ctx, u.ID)
	if err != nil || again.Mobile != "1231231234" {
		t.Errorf("registered user should be stored, got %+v, %v", again, err)
	}
}

func TestVerifyRejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.RequestOTP(ctx, " "); !errors.Is(err, ErrMobileRequired) {
		t.Errorf("expected ErrMobileRequired, got %v", err)
	}
	if _, _, err := svc.VerifyOTP(ctx, &VerifyOTPRequest{Mobile: "9999999999", OTP: auth.DemoOTP}); !errors.Is(err, auth.ErrOTPExpired) {
		t.Errorf("verifying without a request should fail, got %v", err)
	}

	svc.RequestOTP(ctx, "9999999999")
	if _, _, err := svc.VerifyOTP(ctx, &VerifyOTPRequest{Mobile: "9999999999", OTP: "0000"}); !errors.Is(err, auth.ErrInvalidOTP) {
		t.Errorf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestHandlerLoginFlow(t *testing.T) {
	svc := newTestService(t)
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Mount("/auth", h.AuthRoutes())
	r.With(middleware.Authenticate(svc.ValidateToken, false)).Mount("/users", h.Routes())

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	if rec := post("/auth/request-otp", `{"mobile":"9999999999"}`); rec.Code != http.StatusOK {
		t.Fatalf("request-otp: expected 200, got %d", rec.Code)
	}
	if rec := post("/auth/verify-otp", `{"mobile":"9999999999","otp":"9999"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong otp: expected 401, got %d", rec.Code)
	}
	if rec := post("/auth/verify-otp", `{"otp":"1234"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing mobile: expected 400, got %d", rec.Code)
	}

	rec := post("/auth/verify-otp", `{"mobile":"9999999999","otp":"1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify-otp: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data SessionResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.Token)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), `"id":"u1"`) {
		t.Errorf("me: unexpected response %d %s", me.Code, me.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	unauth := httptest.NewRecorder()
	r.ServeHTTP(unauth, req)
	if unauth.Code != http.StatusUnauthorized {
		t.Errorf("me without token: expected 401, got %d", unauth.Code)
	}
}

func TestGetMissingUser(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Get(context.Background(), "nobody"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
