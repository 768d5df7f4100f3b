package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fkhayef/fairsplit/internal/models"
)

// CreateGroup inserts the group with its members and categories.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = newID()
	}
	stamp(&group.CreatedAt)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx,
			`INSERT INTO expense_groups (id, name, description, currency, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			group.ID, group.Name, group.Description, group.Currency, group.CreatedBy, toMicros(group.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		for i, m := range group.Members {
			if err := s.insertMember(ctx, tx, group.ID, m, i); err != nil {
				return err
			}
		}
		for i, c := range group.Categories {
			if _, err := s.exec(ctx, tx,
				`INSERT INTO group_categories (group_id, name, position) VALUES (?, ?, ?)`, group.ID, c, i,
			); err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) insertMember(ctx context.Context, q querier, groupID string, m models.Member, position int) error {
	_, err := s.exec(ctx, q,
		`INSERT INTO group_members (group_id, member_id, name, mobile, payment_address, role, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		groupID, m.ID, m.Name, m.Mobile, m.PaymentAddress, string(m.Role), position,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// GetGroup retrieves a group with its members and categories.
func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	return s.getGroup(ctx, s.db, id)
}

func (s *Store) getGroup(ctx context.Context, q querier, id string) (*models.Group, error) {
	var (
		g       models.Group
		created int64
	)
	err := s.queryRow(ctx, q,
		`SELECT id, name, description, currency, created_by, created_at FROM expense_groups WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.Description, &g.Currency, &g.CreatedBy, &created)
	if isNoRows(err) {
		return nil, notFound("group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	g.CreatedAt = fromMicros(created)

	if g.Members, err = s.loadMembers(ctx, q, id); err != nil {
		return nil, err
	}
	if g.Categories, err = s.loadCategories(ctx, q, id); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) loadMembers(ctx context.Context, q querier, groupID string) ([]models.Member, error) {
	rows, err := s.query(ctx, q,
		`SELECT member_id, name, mobile, payment_address, role FROM group_members
		 WHERE group_id = ? ORDER BY position`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var (
			m    models.Member
			role string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Mobile, &m.PaymentAddress, &role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) loadCategories(ctx context.Context, q querier, groupID string) ([]string, error) {
	rows, err := s.query(ctx, q,
		`SELECT name FROM group_categories WHERE group_id = ? ORDER BY position`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListGroupsForMember returns every group the member belongs to, oldest first.
func (s *Store) ListGroupsForMember(ctx context.Context, memberID string) ([]models.Group, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT g.id FROM expense_groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.member_id = ?
		 ORDER BY g.created_at, g.id`, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	// Rows are closed before loading details: SQLite runs on one connection.
	groups := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.getGroup(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, nil
}

// UpdateGroup changes the group's name and description.
func (s *Store) UpdateGroup(ctx context.Context, id, name, description string) error {
	res, err := s.exec(ctx, s.db,
		`UPDATE expense_groups SET name = ?, description = ? WHERE id = ?`, name, description, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return mustAffect(res, "group", id)
}

// DeleteGroup removes the group and, by cascade, everything in it.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		// Splits hang off expenses, so clear them explicitly for databases
		// running without foreign key enforcement.
		if _, err := s.exec(ctx, tx,
			`DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)`, id,
		); err != nil {
			return fmt.Errorf("failed to delete splits: %w", err)
		}
		for _, table := range []string{"expenses", "adjustments", "group_members", "group_categories"} {
			if _, err := s.exec(ctx, tx, `DELETE FROM `+table+` WHERE group_id = ?`, id); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", table, err)
			}
		}
		res, err := s.exec(ctx, tx, `DELETE FROM expense_groups WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return mustAffect(res, "group", id)
	})
}

// AddMember appends a member to the group.
func (s *Store) AddMember(ctx context.Context, groupID string, member models.Member) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		g, err := s.getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		for _, m := range g.Members {
			if m.ID == member.ID || (member.Mobile != "" && m.Mobile == member.Mobile) {
				return fmt.Errorf("member %s: %w", member.Mobile, models.ErrConflict)
			}
		}

		var next int
		if err := s.queryRow(ctx, tx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM group_members WHERE group_id = ?`, groupID,
		).Scan(&next); err != nil {
			return fmt.Errorf("failed to read member position: %w", err)
		}
		return s.insertMember(ctx, tx, groupID, member, next)
	})
}

// UpdateMemberRole changes a member's role, keeping at least one admin.
func (s *Store) UpdateMemberRole(ctx context.Context, groupID, memberID string, role models.Role) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		g, err := s.getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		m, ok := g.Member(memberID)
		if !ok {
			return notFound("member", memberID)
		}
		if m.Role == models.RoleAdmin && role != models.RoleAdmin && g.AdminCount() <= 1 {
			return models.ErrLastAdmin
		}

		if _, err := s.exec(ctx, tx,
			`UPDATE group_members SET role = ? WHERE group_id = ? AND member_id = ?`, string(role), groupID, memberID,
		); err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}
		return nil
	})
}

// RemoveMember deletes a member who never paid for anything in the group.
func (s *Store) RemoveMember(ctx context.Context, groupID, memberID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		g, err := s.getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		m, ok := g.Member(memberID)
		if !ok {
			return notFound("member", memberID)
		}
		if m.Role == models.RoleAdmin && g.AdminCount() <= 1 {
			return models.ErrLastAdmin
		}

		var paid int
		if err := s.queryRow(ctx, tx,
			`SELECT COUNT(*) FROM expenses WHERE group_id = ? AND payer_id = ?`, groupID, memberID,
		).Scan(&paid); err != nil {
			return fmt.Errorf("failed to check member expenses: %w", err)
		}
		if paid > 0 {
			return models.ErrMemberHasExpenses
		}

		if _, err := s.exec(ctx, tx,
			`DELETE FROM group_members WHERE group_id = ? AND member_id = ?`, groupID, memberID,
		); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		return nil
	})
}

// AddCategory records a custom category once.
func (s *Store) AddCategory(ctx context.Context, groupID, category string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		g, err := s.getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		for _, c := range g.Categories {
			if c == category {
				return nil
			}
		}
		if _, err := s.exec(ctx, tx,
			`INSERT INTO group_categories (group_id, name, position) VALUES (?, ?, ?)`,
			groupID, category, len(g.Categories),
		); err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}
		return nil
	})
}
