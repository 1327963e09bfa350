package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/repository"
)

func (s *Storage) CreateMembership(ctx context.Context, tx repository.Tx, m *domains.Membership) error {
	const op = "repository.postgres.CreateMembership"

	query := `
		INSERT INTO memberships (team_id, user_id, added_by, added_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := tx.ExecContext(ctx, query, m.TeamID, m.UserID, m.AddedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateMember
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteMembership(ctx context.Context, tx repository.Tx, teamID, userID uuid.UUID) error {
	const op = "repository.postgres.DeleteMembership"

	query := `DELETE FROM memberships WHERE team_id = $1 AND user_id = $2`

	res, err := tx.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return repository.ErrMembershipNotFound
	}

	return nil
}

func (s *Storage) DeleteTeamMemberships(ctx context.Context, tx repository.Tx, teamID uuid.UUID) error {
	const op = "repository.postgres.DeleteTeamMemberships"

	query := `DELETE FROM memberships WHERE team_id = $1`

	if _, err := tx.ExecContext(ctx, query, teamID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) ListMemberIDs(ctx context.Context, tx repository.Tx, teamID uuid.UUID) ([]uuid.UUID, error) {
	const op = "repository.postgres.ListMemberIDs"

	query := `SELECT user_id FROM memberships WHERE team_id = $1 ORDER BY added_at`

	rows, err := tx.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

func (s *Storage) ListMemberships(ctx context.Context, tx repository.Tx, teamID uuid.UUID) ([]*domains.Membership, error) {
	const op = "repository.postgres.ListMemberships"

	query := `
		SELECT team_id, user_id, added_by, added_at
		FROM memberships
		WHERE team_id = $1
		ORDER BY added_at
	`

	rows, err := tx.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var memberships []*domains.Membership
	for rows.Next() {
		var m domains.Membership
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.AddedBy, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return memberships, nil
}
