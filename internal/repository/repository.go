package repository

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrDuplicateTeamName  = errors.New("team name already taken in company")
	ErrDuplicateMember    = errors.New("membership already exists")
)

// Tx is the unit-of-work handle threaded through every repository call.
// The orchestrator opens it, the repository never commits or rolls back
// on its own. *sql.Tx satisfies it.
type Tx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
