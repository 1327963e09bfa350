// Package validator holds the composition rules for teams and memberships.
// Validators are pure decision functions: they read current state through
// the directory and the transactional team reader and never write. Every
// rejection carries a typed reason from the apperr taxonomy.
package validator

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/apperr"
	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/repository"
)

// TeamReader is the transactional read surface validators need. The tx
// handle comes from the orchestrator so that every read observes the same
// snapshot the eventual writes commit against.
//
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamReader
type TeamReader interface {
	TeamNameExists(ctx context.Context, tx repository.Tx, companyID uuid.UUID, name string) (bool, error)
	ListMemberIDs(ctx context.Context, tx repository.Tx, teamID uuid.UUID) ([]uuid.UUID, error)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func joinIDs(ids []uuid.UUID) string {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = id.String()
	}
	sort.Strings(ss)
	return strings.Join(ss, ", ")
}

// checkMemberSet verifies that every id resolves to a known user of the
// given company. Missing ids fail NotFound, foreign ids InvalidState, each
// listing the offenders.
func checkMemberSet(companyID uuid.UUID, ids []uuid.UUID, users map[uuid.UUID]*domains.User) error {
	var missing, foreign []uuid.UUID
	for _, id := range ids {
		user, ok := users[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !user.BelongsTo(companyID) {
			foreign = append(foreign, id)
		}
	}

	if len(missing) > 0 {
		return apperr.NotFound("unknown members: %s", joinIDs(missing))
	}
	if len(foreign) > 0 {
		return apperr.InvalidState("members outside the team's company: %s", joinIDs(foreign))
	}

	return nil
}

func anyQualified(ids []uuid.UUID, users map[uuid.UUID]*domains.User) bool {
	for _, id := range ids {
		if user, ok := users[id]; ok && user.Qualified {
			return true
		}
	}
	return false
}
