package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sokolovart/org-team-manager/internal/directory"
	"github.com/sokolovart/org-team-manager/internal/domains"
)

// Directory reads the user and company tables maintained by the identity
// collaborator. No writes ever happen through this adapter.
type Directory struct {
	db *sql.DB
}

func New(db *sql.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) GetUser(ctx context.Context, id uuid.UUID) (*domains.User, error) {
	const op = "directory.postgres.GetUser"

	query := `
		SELECT id, name, company_id, role, qualified
		FROM users
		WHERE id = $1
	`

	var user domains.User
	err := d.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.CompanyID, &user.Role, &user.Qualified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, directory.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (d *Directory) GetUsers(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domains.User, error) {
	const op = "directory.postgres.GetUsers"

	query := `
		SELECT id, name, company_id, role, qualified
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := d.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	users := make(map[uuid.UUID]*domains.User, len(ids))
	for rows.Next() {
		var user domains.User
		if err := rows.Scan(&user.ID, &user.Name, &user.CompanyID, &user.Role, &user.Qualified); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users[user.ID] = &user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (d *Directory) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "directory.postgres.CompanyExists"

	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`

	var exists bool
	if err := d.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
