package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fkhayef/fairsplit/internal/auth"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/storage"
)

// Common errors
var (
	ErrMobileRequired = models.Invalid("mobile is required")
)

// Service handles login and user lookups
type Service struct {
	store storage.Store
	otp   *auth.OTPManager
	jwt   *auth.JWTManager
}

// NewService creates a new user service
func NewService(store storage.Store, otp *auth.OTPManager, jwt *auth.JWTManager) *Service {
	return &Service{store: store, otp: otp, jwt: jwt}
}

// RequestOTP issues a login code for mobile. The code is returned because
// no SMS gateway exists.
func (s *Service) RequestOTP(ctx context.Context, mobile string) (string, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return "", ErrMobileRequired
	}

	code, err := s.otp.Request(mobile)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "otp requested", "mobile", mobile)
	return code, nil
}

// VerifyOTP checks the code, registers the mobile on first login and returns
// the user with a signed session token.
func (s *Service) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*models.User, string, error) {
	mobile := strings.TrimSpace(req.Mobile)
	if mobile == "" {
		return nil, "", ErrMobileRequired
	}
	if err := s.otp.Verify(mobile, strings.TrimSpace(req.OTP)); err != nil {
		return nil, "", err
	}

	u, err := s.store.GetUserByMobile(ctx, mobile)
	if errors.Is(err, models.ErrNotFound) {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = mobile
		}
		u = &models.User{Name: name, Mobile: mobile, PaymentAddress: strings.TrimSpace(req.PaymentAddress)}
		if err = s.store.CreateUser(ctx, u); err == nil {
			slog.InfoContext(ctx, "user registered", "user_id", u.ID)
		}
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// ValidateToken resolves a session token to its user id.
func (s *Service) ValidateToken(token string) (string, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
