package user

import "github.com/fkhayef/fairsplit/internal/models"

// RequestOTPRequest asks for a one-time code
type RequestOTPRequest struct {
	Mobile string `json:"mobile"`
}

// RequestOTPResponse carries the demo code back to the client
type RequestOTPResponse struct {
	OTP string `json:"otp"`
}

// VerifyOTPRequest exchanges a code for a session token. Name is used when
// the mobile is new.
type VerifyOTPRequest struct {
	Mobile         string `json:"mobile"`
	OTP            string `json:"otp"`
	Name           string `json:"name,omitempty"`
	PaymentAddress string `json:"payment_address,omitempty"`
}

// SessionResponse is returned after a successful login
type SessionResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Mobile         string `json:"mobile"`
	PaymentAddress string `json:"payment_address"`
	CreatedAt      string `json:"created_at"`
}

// ToUserResponse converts a user to its DTO
func ToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Mobile:         u.Mobile,
		PaymentAddress: u.PaymentAddress,
		CreatedAt:      u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
