package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidOTP = errors.New("invalid OTP")
	ErrOTPExpired = errors.New("OTP expired or not requested")
)

// DemoOTP is the fixed code handed out in demo mode. Nothing is sent by SMS.
const DemoOTP = "1234"

type pendingOTP struct {
	hash    []byte
	expires time.Time
}

// OTPManager hands out and checks one-time codes per mobile number. Codes are
// kept only as bcrypt hashes and are single use.
type OTPManager struct {
	mu      sync.Mutex
	code    string
	ttl     time.Duration
	pending map[string]pendingOTP
	now     func() time.Time
}

// NewOTPManager returns a manager that always issues code, valid for ttl.
func NewOTPManager(code string, ttl time.Duration) *OTPManager {
	return &OTPManager{
		code:    code,
		ttl:     ttl,
		pending: make(map[string]pendingOTP),
		now:     time.Now,
	}
}

// Request issues a code for mobile and returns it.
func (m *OTPManager) Request(mobile string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(m.code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[mobile] = pendingOTP{hash: hash, expires: m.now().Add(m.ttl)}
	return m.code, nil
}

// Verify checks code for mobile and consumes it on success.
func (m *OTPManager) Verify(mobile, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pending[mobile]
	if !ok || m.now().After(p.expires) {
		delete(m.pending, mobile)
		return ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(code)); err != nil {
		return ErrInvalidOTP
	}
	delete(m.pending, mobile)
	return nil
}
