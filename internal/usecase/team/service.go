// Package team holds the orchestrator: the only component that writes team
// and membership state. Every public operation runs as one unit of work —
// lock the team row, validate against the locked state, write, commit — so
// no caller ever observes a half-applied mutation.
package team

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/apperr"
	"github.com/sokolovart/org-team-manager/internal/audit"
	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/repository"
	"github.com/sokolovart/org-team-manager/internal/validator"
)

type Repository interface {
	WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error

	CreateTeam(ctx context.Context, tx repository.Tx, team *domains.Team) error
	GetTeam(ctx context.Context, tx repository.Tx, teamID uuid.UUID) (*domains.Team, error)
	GetTeamForUpdate(ctx context.Context, tx repository.Tx, teamID uuid.UUID) (*domains.Team, error)
	TeamNameExists(ctx context.Context, tx repository.Tx, companyID uuid.UUID, name string) (bool, error)
	UpdateTeam(ctx context.Context, tx repository.Tx, team *domains.Team) error
	DeleteTeam(ctx context.Context, tx repository.Tx, teamID uuid.UUID) error

	CreateMembership(ctx context.Context, tx repository.Tx, m *domains.Membership) error
	DeleteMembership(ctx context.Context, tx repository.Tx, teamID, userID uuid.UUID) error
	DeleteTeamMemberships(ctx context.Context, tx repository.Tx, teamID uuid.UUID) error
	ListMemberIDs(ctx context.Context, tx repository.Tx, teamID uuid.UUID) ([]uuid.UUID, error)
}

type Service struct {
	log     *slog.Logger
	repo    Repository
	teams   *validator.TeamValidator
	members *validator.MembershipValidator
	audit   audit.Sink
}

func New(log *slog.Logger, repo Repository,
	teams *validator.TeamValidator, members *validator.MembershipValidator, sink audit.Sink) *Service {
	return &Service{log: log, repo: repo, teams: teams, members: members, audit: sink}
}

// CreateSpec is the payload for Create. CompanyID is only honored for
// platform staff; tenant actors are pinned to their own company.
type CreateSpec struct {
	Name      string
	CompanyID uuid.UUID
	OwnerID   uuid.UUID
	MemberIDs []uuid.UUID
	Category  domains.Category
}

type TeamWithMembers struct {
	Team      *domains.Team
	MemberIDs []uuid.UUID
}

// run executes fn as one transaction and normalizes the result: typed
// errors pass through untouched, anything else is logged and wrapped as
// Internal so repository details never reach the caller.
func (s *Service) run(ctx context.Context, op string, fn func(tx repository.Tx) error) error {
	err := s.repo.WithinTx(ctx, fn)
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}

	s.log.Error("operation failed", slog.String("op", op), slog.String("err", err.Error()))
	return apperr.Internal("operation failed", err)
}

// loadTeamScoped loads (and locks, when forUpdate) the team visible to the
// actor. Teams of other companies surface as NotFound for tenant-bound
// actors, indistinguishable from true absence.
func (s *Service) loadTeamScoped(ctx context.Context, tx repository.Tx,
	teamID uuid.UUID, actor *domains.User, forUpdate bool) (*domains.Team, error) {
	var (
		team *domains.Team
		err  error
	)
	if forUpdate {
		team, err = s.repo.GetTeamForUpdate(ctx, tx, teamID)
	} else {
		team, err = s.repo.GetTeam(ctx, tx, teamID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return nil, apperr.NotFound("team %s not found", teamID)
		}
		return nil, err
	}

	if actor.Role != domains.RolePlatformStaff && !actor.BelongsTo(team.CompanyID) {
		return nil, apperr.NotFound("team %s not found", teamID)
	}

	return team, nil
}

func (s *Service) emitAudit(ctx context.Context, teamID uuid.UUID, op string, affected []uuid.UUID, actor *domains.User) {
	entry := audit.Entry{
		TeamID:          teamID,
		Operation:       op,
		AffectedUserIDs: affected,
		ActorID:         actor.ID,
		Timestamp:       time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Warn("audit sink failed",
			slog.String("operation", op),
			slog.String("team_id", teamID.String()),
			slog.String("err", err.Error()))
	}
}

func (s *Service) Create(ctx context.Context, spec CreateSpec, actor *domains.User) (*TeamWithMembers, error) {
	const op = "usecase.team.Create"

	companyID := spec.CompanyID
	if actor.Role != domains.RolePlatformStaff {
		// Tenant actors create teams in their own company no matter what
		// the payload says.
		if actor.CompanyID == nil {
			return nil, apperr.Forbidden("actor %s has no company", actor.ID)
		}
		companyID = *actor.CompanyID
	} else if companyID == uuid.Nil {
		return nil, apperr.InvalidState("company id is required")
	}

	memberIDs := dedupe(spec.MemberIDs)

	team := &domains.Team{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      spec.Name,
		OwnerID:   spec.OwnerID,
		Category:  spec.Category,
		Active:    true,
	}

	err := s.run(ctx, op, func(tx repository.Tx) error {
		if err := s.teams.ValidateCreation(ctx, tx, spec.Name, companyID, spec.OwnerID, memberIDs, spec.Category); err != nil {
			return err
		}

		if err := s.repo.CreateTeam(ctx, tx, team); err != nil {
			if errors.Is(err, repository.ErrDuplicateTeamName) {
				return apperr.Conflict("team %q already exists in company %s", spec.Name, companyID)
			}
			return err
		}

		for _, id := range memberIDs {
			m := &domains.Membership{TeamID: team.ID, UserID: id, AddedBy: actor.ID}
			if err := s.repo.CreateMembership(ctx, tx, m); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("team created",
		slog.String("team_id", team.ID.String()),
		slog.String("company_id", companyID.String()),
		slog.Int("members", len(memberIDs)))
	s.emitAudit(ctx, team.ID, "CREATE_TEAM", memberIDs, actor)

	return &TeamWithMembers{Team: team, MemberIDs: memberIDs}, nil
}

func (s *Service) Get(ctx context.Context, teamID uuid.UUID, actor *domains.User) (*TeamWithMembers, error) {
	const op = "usecase.team.Get"

	var result TeamWithMembers
	err := s.run(ctx, op, func(tx repository.Tx) error {
		team, err := s.loadTeamScoped(ctx, tx, teamID, actor, false)
		if err != nil {
			return err
		}

		memberIDs, err := s.repo.ListMemberIDs(ctx, tx, teamID)
		if err != nil {
			return err
		}

		result = TeamWithMembers{Team: team, MemberIDs: memberIDs}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) Update(ctx context.Context, teamID uuid.UUID, patch validator.TeamPatch, actor *domains.User) (*TeamWithMembers, error) {
	const op = "usecase.team.Update"

	var (
		result   TeamWithMembers
		affected []uuid.UUID
	)
	err := s.run(ctx, op, func(tx repository.Tx) error {
		team, err := s.loadTeamScoped(ctx, tx, teamID, actor, true)
		if err != nil {
			return err
		}

		if err := s.members.ValidatePermission(actor, team, validator.OpUpdateTeam); err != nil {
			return err
		}

		currentMemberIDs, err := s.repo.ListMemberIDs(ctx, tx, teamID)
		if err != nil {
			return err
		}

		if err := s.teams.ValidateUpdate(ctx, tx, team, currentMemberIDs, patch); err != nil {
			return err
		}

		if patch.Name != nil {
			team.Name = *patch.Name
		}
		if patch.OwnerID != nil {
			team.OwnerID = *patch.OwnerID
		}
		if patch.Category != nil {
			team.Category = *patch.Category
		}
		if patch.Active != nil {
			team.Active = *patch.Active
		}

		if err := s.repo.UpdateTeam(ctx, tx, team); err != nil {
			if errors.Is(err, repository.ErrDuplicateTeamName) {
				return apperr.Conflict("team %q already exists in company %s", team.Name, team.CompanyID)
			}
			return err
		}

		memberIDs := currentMemberIDs
		if patch.MemberIDs != nil {
			memberIDs = dedupe(*patch.MemberIDs)
			if err := s.repo.DeleteTeamMemberships(ctx, tx, teamID); err != nil {
				return err
			}
			for _, id := range memberIDs {
				m := &domains.Membership{TeamID: teamID, UserID: id, AddedBy: actor.ID}
				if err := s.repo.CreateMembership(ctx, tx, m); err != nil {
					return err
				}
			}
			affected = memberIDs
		}

		result = TeamWithMembers{Team: team, MemberIDs: memberIDs}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("team updated", slog.String("team_id", teamID.String()))
	s.emitAudit(ctx, teamID, "UPDATE_TEAM", affected, actor)

	return &result, nil
}

func (s *Service) Remove(ctx context.Context, teamID uuid.UUID, actor *domains.User) error {
	const op = "usecase.team.Remove"

	var affected []uuid.UUID
	err := s.run(ctx, op, func(tx repository.Tx) error {
		team, err := s.loadTeamScoped(ctx, tx, teamID, actor, true)
		if err != nil {
			return err
		}

		if err := s.members.ValidatePermission(actor, team, validator.OpRemoveTeam); err != nil {
			return err
		}

		affected, err = s.repo.ListMemberIDs(ctx, tx, teamID)
		if err != nil {
			return err
		}

		// Memberships cannot outlive their team.
		if err := s.repo.DeleteTeamMemberships(ctx, tx, teamID); err != nil {
			return err
		}

		return s.repo.DeleteTeam(ctx, tx, teamID)
	})
	if err != nil {
		return err
	}

	s.log.Info("team removed", slog.String("team_id", teamID.String()))
	s.emitAudit(ctx, teamID, "REMOVE_TEAM", affected, actor)

	return nil
}

// AddMembers inserts the requested users that are not yet members. Ids that
// are already members are skipped; the call fails with Conflict only when
// every requested id is already present.
func (s *Service) AddMembers(ctx context.Context, teamID uuid.UUID, userIDs []uuid.UUID, actor *domains.User) ([]uuid.UUID, error) {
	const op = "usecase.team.AddMembers"

	userIDs = dedupe(userIDs)
	if len(userIDs) == 0 {
		return nil, apperr.InvalidState("no users given")
	}

	var added []uuid.UUID
	err := s.run(ctx, op, func(tx repository.Tx) error {
		added = added[:0]

		team, err := s.loadTeamScoped(ctx, tx, teamID, actor, true)
		if err != nil {
			return err
		}

		if err := s.members.ValidatePermission(actor, team, validator.OpAddMembers); err != nil {
			return err
		}

		for _, id := range userIDs {
			err := s.members.ValidateJoin(ctx, tx, team, id)
			if apperr.IsKind(err, apperr.KindConflict) {
				continue
			}
			if err != nil {
				return err
			}
			added = append(added, id)
		}

		if len(added) == 0 {
			return apperr.Conflict("all requested users are already members of team %s", teamID)
		}

		for _, id := range added {
			m := &domains.Membership{TeamID: teamID, UserID: id, AddedBy: actor.ID}
			if err := s.repo.CreateMembership(ctx, tx, m); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("members added",
		slog.String("team_id", teamID.String()),
		slog.Int("added", len(added)))
	s.emitAudit(ctx, teamID, "ADD_MEMBERS", added, actor)

	return added, nil
}

func (s *Service) RemoveMember(ctx context.Context, teamID, userID uuid.UUID, actor *domains.User) error {
	const op = "usecase.team.RemoveMember"

	err := s.run(ctx, op, func(tx repository.Tx) error {
		team, err := s.loadTeamScoped(ctx, tx, teamID, actor, true)
		if err != nil {
			return err
		}

		if err := s.members.ValidatePermission(actor, team, validator.OpRemoveMember); err != nil {
			return err
		}

		if err := s.members.ValidateLeave(ctx, tx, team, userID); err != nil {
			return err
		}

		return s.repo.DeleteMembership(ctx, tx, teamID, userID)
	})
	if err != nil {
		return err
	}

	s.log.Info("member removed",
		slog.String("team_id", teamID.String()),
		slog.String("user_id", userID.String()))
	s.emitAudit(ctx, teamID, "REMOVE_MEMBER", []uuid.UUID{userID}, actor)

	return nil
}

// ReplaceMembers swaps the whole member set. The team has zero members only
// inside the uncommitted transaction, never observably.
func (s *Service) ReplaceMembers(ctx context.Context, teamID uuid.UUID, newUserIDs []uuid.UUID, actor *domains.User) error {
	const op = "usecase.team.ReplaceMembers"

	newUserIDs = dedupe(newUserIDs)

	err := s.run(ctx, op, func(tx repository.Tx) error {
		team, err := s.loadTeamScoped(ctx, tx, teamID, actor, true)
		if err != nil {
			return err
		}

		if err := s.members.ValidatePermission(actor, team, validator.OpReplaceMembers); err != nil {
			return err
		}

		if err := s.members.ValidateReplace(ctx, tx, team, newUserIDs); err != nil {
			return err
		}

		if err := s.repo.DeleteTeamMemberships(ctx, tx, teamID); err != nil {
			return err
		}
		for _, id := range newUserIDs {
			m := &domains.Membership{TeamID: teamID, UserID: id, AddedBy: actor.ID}
			if err := s.repo.CreateMembership(ctx, tx, m); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("members replaced",
		slog.String("team_id", teamID.String()),
		slog.Int("members", len(newUserIDs)))
	s.emitAudit(ctx, teamID, "REPLACE_MEMBERS", newUserIDs, actor)

	return nil
}

// ChangeOwner promotes newOwnerID. A candidate who is currently a regular
// member is demoted first: their membership row is removed in the same
// transaction, so owner exclusivity holds at commit.
func (s *Service) ChangeOwner(ctx context.Context, teamID, newOwnerID uuid.UUID, actor *domains.User) error {
	const op = "usecase.team.ChangeOwner"

	err := s.run(ctx, op, func(tx repository.Tx) error {
		team, err := s.loadTeamScoped(ctx, tx, teamID, actor, true)
		if err != nil {
			return err
		}

		if err := s.members.ValidatePermission(actor, team, validator.OpChangeOwner); err != nil {
			return err
		}

		if team.OwnerID == newOwnerID {
			return nil
		}

		if err := s.teams.ValidateOwnerChange(ctx, tx, team, newOwnerID); err != nil {
			return err
		}

		err = s.repo.DeleteMembership(ctx, tx, teamID, newOwnerID)
		if err != nil && !errors.Is(err, repository.ErrMembershipNotFound) {
			return err
		}

		team.OwnerID = newOwnerID
		return s.repo.UpdateTeam(ctx, tx, team)
	})
	if err != nil {
		return err
	}

	s.log.Info("owner changed",
		slog.String("team_id", teamID.String()),
		slog.String("new_owner_id", newOwnerID.String()))
	s.emitAudit(ctx, teamID, "CHANGE_OWNER", []uuid.UUID{newOwnerID}, actor)

	return nil
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
