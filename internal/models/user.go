package models

import "time"

// User is an account that can log in and belong to groups.
type User struct {
	ID             string
	Name           string
	Mobile         string
	PaymentAddress string
	CreatedAt      time.Time
}

// AsMember builds a group member from the user.
func (u *User) AsMember(role Role) Member {
	return Member{
		ID:             u.ID,
		Name:           u.Name,
		Mobile:         u.Mobile,
		PaymentAddress: u.PaymentAddress,
		Role:           role,
	}
}
