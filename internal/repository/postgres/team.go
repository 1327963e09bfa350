package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/repository"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (s *Storage) CreateTeam(ctx context.Context, tx repository.Tx, team *domains.Team) error {
	const op = "repository.postgres.CreateTeam"

	query := `
		INSERT INTO teams (id, company_id, name, owner_id, category, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := tx.ExecContext(ctx, query,
		team.ID, team.CompanyID, team.Name, team.OwnerID, team.Category, team.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateTeamName
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetTeamForUpdate loads the team row under a row-level lock held until the
// enclosing transaction ends. Every mutating operation on an existing team
// starts here so that concurrent mutations of one team serialize and
// validation reads stay true at commit time.
func (s *Storage) GetTeamForUpdate(ctx context.Context, tx repository.Tx, teamID uuid.UUID) (*domains.Team, error) {
	const op = "repository.postgres.GetTeamForUpdate"

	query := `
		SELECT id, company_id, name, owner_id, category, active, created_at
		FROM teams
		WHERE id = $1
		FOR UPDATE
	`
	return scanTeam(tx.QueryRowContext(ctx, query, teamID), op)
}

func (s *Storage) GetTeam(ctx context.Context, tx repository.Tx, teamID uuid.UUID) (*domains.Team, error) {
	const op = "repository.postgres.GetTeam"

	query := `
		SELECT id, company_id, name, owner_id, category, active, created_at
		FROM teams
		WHERE id = $1
	`
	return scanTeam(tx.QueryRowContext(ctx, query, teamID), op)
}

func scanTeam(row *sql.Row, op string) (*domains.Team, error) {
	var team domains.Team
	err := row.Scan(&team.ID, &team.CompanyID, &team.Name, &team.OwnerID,
		&team.Category, &team.Active, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTeamNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &team, nil
}

func (s *Storage) TeamNameExists(ctx context.Context, tx repository.Tx, companyID uuid.UUID, name string) (bool, error) {
	const op = "repository.postgres.TeamNameExists"

	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE company_id = $1 AND name = $2)`

	var exists bool
	if err := tx.QueryRowContext(ctx, query, companyID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) UpdateTeam(ctx context.Context, tx repository.Tx, team *domains.Team) error {
	const op = "repository.postgres.UpdateTeam"

	query := `
		UPDATE teams
		SET name = $1, owner_id = $2, category = $3, active = $4
		WHERE id = $5
	`
	res, err := tx.ExecContext(ctx, query,
		team.Name, team.OwnerID, team.Category, team.Active, team.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateTeamName
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return repository.ErrTeamNotFound
	}

	return nil
}

func (s *Storage) DeleteTeam(ctx context.Context, tx repository.Tx, teamID uuid.UUID) error {
	const op = "repository.postgres.DeleteTeam"

	query := `DELETE FROM teams WHERE id = $1`

	res, err := tx.ExecContext(ctx, query, teamID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return repository.ErrTeamNotFound
	}

	return nil
}
