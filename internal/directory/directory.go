// Package directory exposes read-only lookups of users and companies.
// Users and companies are owned by the identity collaborator; this service
// only consults them and treats the directory as the source of truth for
// company affiliation and qualification.
package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/domains"
)

var ErrUserNotFound = errors.New("user not found")

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Directory
type Directory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domains.User, error)
	// GetUsers returns the found users keyed by id; requested ids absent
	// from the directory are simply missing from the result.
	GetUsers(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domains.User, error)
	CompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
}
