package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/apperr"
	"github.com/sokolovart/org-team-manager/internal/directory"
	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/repository"
)

// Operation names the mutations the permission policy covers.
type Operation string

const (
	OpUpdateTeam     Operation = "UPDATE_TEAM"
	OpRemoveTeam     Operation = "REMOVE_TEAM"
	OpAddMembers     Operation = "ADD_MEMBERS"
	OpRemoveMember   Operation = "REMOVE_MEMBER"
	OpReplaceMembers Operation = "REPLACE_MEMBERS"
	OpChangeOwner    Operation = "CHANGE_OWNER"
)

// MembershipValidator decides whether incremental membership changes are
// consistent, and whether the requesting actor may ask for them.
type MembershipValidator struct {
	directory directory.Directory
	teams     TeamReader
}

func NewMembershipValidator(dir directory.Directory, teams TeamReader) *MembershipValidator {
	return &MembershipValidator{directory: dir, teams: teams}
}

// ValidatePermission is the single policy point for mutation authorization:
// the team owner, the owning company's administrator, or platform staff.
func (v *MembershipValidator) ValidatePermission(actor *domains.User, team *domains.Team, op Operation) error {
	switch actor.Role {
	case domains.RolePlatformStaff:
		return nil
	case domains.RoleCompanyAdmin:
		if actor.BelongsTo(team.CompanyID) {
			return nil
		}
	case domains.RoleMember:
		// falls through to the owner check
	default:
		return apperr.Internal(fmt.Sprintf("unhandled role %q", actor.Role), nil)
	}

	if actor.ID == team.OwnerID {
		return nil
	}

	return apperr.Forbidden("actor %s may not perform %s on team %s", actor.ID, op, team.ID)
}

// ValidateJoin checks adding a single user to the team.
func (v *MembershipValidator) ValidateJoin(ctx context.Context, tx repository.Tx,
	team *domains.Team, userID uuid.UUID) error {
	const op = "validator.MembershipValidator.ValidateJoin"

	user, err := v.directory.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return apperr.NotFound("user %s not found", userID)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !user.BelongsTo(team.CompanyID) {
		return apperr.InvalidState("user %s does not belong to company %s", userID, team.CompanyID)
	}

	if userID == team.OwnerID {
		return apperr.InvalidState("owner %s cannot join their own team as a member", userID)
	}

	memberIDs, err := v.teams.ListMemberIDs(ctx, tx, team.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, id := range memberIDs {
		if id == userID {
			return apperr.Conflict("user %s is already a member of team %s", userID, team.ID)
		}
	}

	return nil
}

// ValidateLeave checks removing a single member.
func (v *MembershipValidator) ValidateLeave(ctx context.Context, tx repository.Tx,
	team *domains.Team, userID uuid.UUID) error {
	return v.ValidateBulkLeave(ctx, tx, team, []uuid.UUID{userID})
}

// ValidateBulkLeave checks removing userIDs as a whole: the staffing rule is
// evaluated against the post-removal member set, not per user against the
// pre-removal state. Simultaneous removals that are each fine in isolation
// are rejected when their combined effect strips the last qualified person.
func (v *MembershipValidator) ValidateBulkLeave(ctx context.Context, tx repository.Tx,
	team *domains.Team, userIDs []uuid.UUID) error {
	const op = "validator.MembershipValidator.ValidateBulkLeave"

	userIDs = dedupe(userIDs)

	for _, id := range userIDs {
		if id == team.OwnerID {
			return apperr.InvalidState("cannot remove the owner %s from team %s", id, team.ID)
		}
	}

	memberIDs, err := v.teams.ListMemberIDs(ctx, tx, team.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	current := make(map[uuid.UUID]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		current[id] = struct{}{}
	}

	leaving := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := current[id]; !ok {
			return apperr.InvalidState("user %s is not a member of team %s", id, team.ID)
		}
		leaving[id] = struct{}{}
	}

	if team.Category != domains.CategoryRegulated {
		return nil
	}

	remaining := make([]uuid.UUID, 0, len(memberIDs))
	for _, id := range memberIDs {
		if _, ok := leaving[id]; !ok {
			remaining = append(remaining, id)
		}
	}

	owner, err := v.directory.GetUser(ctx, team.OwnerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if owner.Qualified {
		return nil
	}

	members, err := v.directory.GetUsers(ctx, remaining)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !anyQualified(remaining, members) {
		return apperr.InvalidState("removal would leave regulated team %s without a qualified individual", team.ID)
	}

	return nil
}

// ValidateReplace checks swapping the entire member set for newMemberIDs.
// An empty new set is legal for a regulated team only when the owner is
// qualified.
func (v *MembershipValidator) ValidateReplace(ctx context.Context, tx repository.Tx,
	team *domains.Team, newMemberIDs []uuid.UUID) error {
	const op = "validator.MembershipValidator.ValidateReplace"

	newMemberIDs = dedupe(newMemberIDs)

	users, err := v.directory.GetUsers(ctx, newMemberIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkMemberSet(team.CompanyID, newMemberIDs, users); err != nil {
		return err
	}

	for _, id := range newMemberIDs {
		if id == team.OwnerID {
			return apperr.InvalidState("owner %s cannot also be listed as a member", id)
		}
	}

	if team.Category != domains.CategoryRegulated {
		return nil
	}

	owner, err := v.directory.GetUser(ctx, team.OwnerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !owner.Qualified && !anyQualified(newMemberIDs, users) {
		return apperr.InvalidState("regulated team requires at least one qualified individual among owner and members")
	}

	return nil
}
