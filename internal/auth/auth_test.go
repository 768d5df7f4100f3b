package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fkhayef/fairsplit/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(&models.User{ID: "u1", Mobile: "9999999999"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Mobile != "9999999999" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, _ := m.Generate(&models.User{ID: "u1"})

	other := NewJWTManager("other-secret", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: expected ErrInvalidToken, got %v", err)
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	old, _ := expired.Generate(&models.User{ID: "u1"})
	if _, err := m.Validate(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: expected ErrInvalidToken, got %v", err)
	}

	if _, err := m.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty: expected ErrMissingToken, got %v", err)
	}
	if _, err := m.Validate(strings.Repeat("x", 20)); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: expected ErrInvalidToken, got %v", err)
	}
}

func TestOTP(t *testing.T) {
	m := NewOTPManager(DemoOTP, time.Minute)

	if err := m.Verify("555", DemoOTP); !errors.Is(err, ErrOTPExpired) {
		t.Errorf("verify before request: expected ErrOTPExpired, got %v", err)
	}

	code, err := m.Request("555")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if code != DemoOTP {
		t.Errorf("code = %q, want %q", code, DemoOTP)
	}
	if err := m.Verify("555", "0000"); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("wrong code: expected ErrInvalidOTP, got %v", err)
	}
	if err := m.Verify("555", code); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
	if err := m.Verify("555", code); !errors.Is(err, ErrOTPExpired) {
		t.Errorf("codes are single use: expected ErrOTPExpired, got %v", err)
	}
}

func TestOTPExpiry(t *testing.T) {
	m := NewOTPManager(DemoOTP, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	if _, err := m.Request("555"); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if err := m.Verify("555", DemoOTP); !errors.Is(err, ErrOTPExpired) {
		t.Errorf("expected ErrOTPExpired, got %v", err)
	}
}
