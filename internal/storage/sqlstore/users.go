package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fkhayef/fairsplit/internal/models"
)

// CreateUser inserts a new user. A duplicate id or mobile is a conflict.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	stamp(&user.CreatedAt)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		var n int
		err := s.queryRow(ctx, tx,
			`SELECT COUNT(*) FROM users WHERE id = ? OR mobile = ?`, user.ID, user.Mobile,
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("user %s: %w", user.Mobile, models.ErrConflict)
		}

		_, err = s.exec(ctx, tx,
			`INSERT INTO users (id, name, mobile, payment_address, created_at) VALUES (?, ?, ?, ?, ?)`,
			user.ID, user.Name, user.Mobile, user.PaymentAddress, toMicros(user.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, name, mobile, payment_address, created_at FROM users WHERE id = ?`, id)
}

// GetUserByMobile retrieves a user by mobile number
func (s *Store) GetUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, name, mobile, payment_address, created_at FROM users WHERE mobile = ?`, mobile)
}

func (s *Store) getUser(ctx context.Context, query, key string) (*models.User, error) {
	var (
		u       models.User
		created int64
	)
	err := s.queryRow(ctx, s.db, query, key).Scan(&u.ID, &u.Name, &u.Mobile, &u.PaymentAddress, &created)
	if isNoRows(err) {
		return nil, notFound("user", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.CreatedAt = fromMicros(created)
	return &u, nil
}
