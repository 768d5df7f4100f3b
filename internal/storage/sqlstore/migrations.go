package sqlstore

import (
	"context"
	"fmt"
)

// Amounts are TEXT holding decimal strings; shopspring/decimal scans and
// writes them without loss on both dialects.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		mobile          TEXT NOT NULL UNIQUE,
		payment_address TEXT NOT NULL DEFAULT '',
		created_at      BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expense_groups (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		currency    TEXT NOT NULL,
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id        TEXT NOT NULL REFERENCES expense_groups(id) ON DELETE CASCADE,
		member_id       TEXT NOT NULL,
		name            TEXT NOT NULL,
		mobile          TEXT NOT NULL DEFAULT '',
		payment_address TEXT NOT NULL DEFAULT '',
		role            TEXT NOT NULL,
		position        INTEGER NOT NULL,
		PRIMARY KEY (group_id, member_id)
	)`,
	`CREATE TABLE IF NOT EXISTS group_categories (
		group_id TEXT NOT NULL REFERENCES expense_groups(id) ON DELETE CASCADE,
		name     TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (group_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id          TEXT PRIMARY KEY,
		group_id    TEXT NOT NULL REFERENCES expense_groups(id) ON DELETE CASCADE,
		payer_id    TEXT NOT NULL,
		amount      TEXT NOT NULL,
		category    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		split_type  TEXT NOT NULL,
		position    INTEGER NOT NULL,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_group ON expenses(group_id, position)`,
	`CREATE TABLE IF NOT EXISTS expense_splits (
		expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
		member_id  TEXT NOT NULL,
		amount     TEXT NOT NULL,
		percentage TEXT,
		position   INTEGER NOT NULL,
		PRIMARY KEY (expense_id, member_id)
	)`,
	`CREATE TABLE IF NOT EXISTS adjustments (
		id          TEXT PRIMARY KEY,
		group_id    TEXT NOT NULL REFERENCES expense_groups(id) ON DELETE CASCADE,
		from_member TEXT NOT NULL,
		to_member   TEXT NOT NULL,
		amount      TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_adjustments_group ON adjustments(group_id, position)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", i, err)
		}
	}
	return nil
}
