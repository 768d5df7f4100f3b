package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
)

// CreateExpense stores the expense and its splits in one transaction.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = newID()
	}
	stamp(&expense.CreatedAt)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		position, err := s.nextPosition(ctx, tx, "expenses", expense.GroupID)
		if err != nil {
			return err
		}

		_, err = s.exec(ctx, tx,
			`INSERT INTO expenses (id, group_id, payer_id, amount, category, description, split_type, position, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.GroupID, expense.PayerID, expense.Amount.String(), expense.Category,
			expense.Description, string(expense.SplitType), position, toMicros(expense.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		for i, sp := range expense.Splits {
			var pct sql.NullString
			if sp.Percentage != nil {
				pct = sql.NullString{String: sp.Percentage.String(), Valid: true}
			}
			if _, err := s.exec(ctx, tx,
				`INSERT INTO expense_splits (expense_id, member_id, amount, percentage, position) VALUES (?, ?, ?, ?, ?)`,
				expense.ID, sp.MemberID, sp.Amount.String(), pct, i,
			); err != nil {
				return fmt.Errorf("failed to create split: %w", err)
			}
		}
		return nil
	})
}

// nextPosition checks the group exists and returns the next ordinal for table.
func (s *Store) nextPosition(ctx context.Context, q querier, table, groupID string) (int, error) {
	var exists int
	if err := s.queryRow(ctx, q, `SELECT COUNT(*) FROM expense_groups WHERE id = ?`, groupID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to check group: %w", err)
	}
	if exists == 0 {
		return 0, notFound("group", groupID)
	}

	var next int
	if err := s.queryRow(ctx, q,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM `+table+` WHERE group_id = ?`, groupID,
	).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to read position: %w", err)
	}
	return next, nil
}

const expenseColumns = `id, group_id, payer_id, amount, category, description, split_type, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(r rowScanner) (models.Expense, error) {
	var (
		e         models.Expense
		splitType string
		created   int64
	)
	err := r.Scan(&e.ID, &e.GroupID, &e.PayerID, &e.Amount, &e.Category, &e.Description, &splitType, &created)
	e.SplitType = models.SplitType(splitType)
	e.CreatedAt = fromMicros(created)
	return e, err
}

// GetExpense retrieves one expense with its splits.
func (s *Store) GetExpense(ctx context.Context, groupID, id string) (*models.Expense, error) {
	e, err := scanExpense(s.queryRow(ctx, s.db,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? AND id = ?`, groupID, id,
	))
	if isNoRows(err) {
		return nil, notFound("expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	byExpense, err := s.loadSplits(ctx, `WHERE expense_id = ?`, id)
	if err != nil {
		return nil, err
	}
	e.Splits = byExpense[id]
	return &e, nil
}

// ListExpenses returns the group's expenses in creation order.
func (s *Store) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY position`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	byExpense, err := s.loadSplits(ctx,
		`WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)`, groupID)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].Splits = byExpense[expenses[i].ID]
	}
	return expenses, nil
}

func (s *Store) loadSplits(ctx context.Context, where string, arg any) (map[string][]models.Split, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT expense_id, member_id, amount, percentage FROM expense_splits `+where+` ORDER BY expense_id, position`, arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Split)
	for rows.Next() {
		var (
			expenseID string
			sp        models.Split
			pct       decimal.NullDecimal
		)
		if err := rows.Scan(&expenseID, &sp.MemberID, &sp.Amount, &pct); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if pct.Valid {
			p := pct.Decimal
			sp.Percentage = &p
		}
		out[expenseID] = append(out[expenseID], sp)
	}
	return out, rows.Err()
}

// DeleteExpense removes an expense and its splits.
func (s *Store) DeleteExpense(ctx context.Context, groupID, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `DELETE FROM expenses WHERE group_id = ? AND id = ?`, groupID, id)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		if err := mustAffect(res, "expense", id); err != nil {
			return err
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM expense_splits WHERE expense_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete splits: %w", err)
		}
		return nil
	})
}

// CreateAdjustment stores a manual transfer.
func (s *Store) CreateAdjustment(ctx context.Context, adj *models.Adjustment) error {
	if adj.ID == "" {
		adj.ID = newID()
	}
	stamp(&adj.CreatedAt)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		position, err := s.nextPosition(ctx, tx, "adjustments", adj.GroupID)
		if err != nil {
			return err
		}
		_, err = s.exec(ctx, tx,
			`INSERT INTO adjustments (id, group_id, from_member, to_member, amount, description, position, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			adj.ID, adj.GroupID, adj.From, adj.To, adj.Amount.String(), adj.Description, position, toMicros(adj.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create adjustment: %w", err)
		}
		return nil
	})
}

// ListAdjustments returns the group's adjustments in creation order.
func (s *Store) ListAdjustments(ctx context.Context, groupID string) ([]models.Adjustment, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT id, group_id, from_member, to_member, amount, description, created_at
		 FROM adjustments WHERE group_id = ? ORDER BY position`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := []models.Adjustment{}
	for rows.Next() {
		var (
			a       models.Adjustment
			created int64
		)
		if err := rows.Scan(&a.ID, &a.GroupID, &a.From, &a.To, &a.Amount, &a.Description, &created); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		a.CreatedAt = fromMicros(created)
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}

// DeleteAdjustment removes one adjustment.
func (s *Store) DeleteAdjustment(ctx context.Context, groupID, id string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM adjustments WHERE group_id = ? AND id = ?`, groupID, id)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	return mustAffect(res, "adjustment", id)
}
