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

// TeamValidator decides whether team-level proposals are consistent.
type TeamValidator struct {
	directory directory.Directory
	teams     TeamReader
}

func NewTeamValidator(dir directory.Directory, teams TeamReader) *TeamValidator {
	return &TeamValidator{directory: dir, teams: teams}
}

// TeamPatch carries the fields an update may change; nil means "leave as is".
type TeamPatch struct {
	Name      *string
	OwnerID   *uuid.UUID
	Category  *domains.Category
	Active    *bool
	MemberIDs *[]uuid.UUID
}

// ValidateCreation checks a proposed new team against the company it would
// join. memberIDs are checked as a set; duplicates within the request are
// collapsed before validation.
func (v *TeamValidator) ValidateCreation(ctx context.Context, tx repository.Tx,
	name string, companyID, ownerID uuid.UUID, memberIDs []uuid.UUID, category domains.Category) error {
	const op = "validator.TeamValidator.ValidateCreation"

	exists, err := v.directory.CompanyExists(ctx, companyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return apperr.NotFound("company %s not found", companyID)
	}

	taken, err := v.teams.TeamNameExists(ctx, tx, companyID, name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return apperr.Conflict("team %q already exists in company %s", name, companyID)
	}

	owner, err := v.directory.GetUser(ctx, ownerID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return apperr.NotFound("owner %s not found", ownerID)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !owner.BelongsTo(companyID) {
		return apperr.InvalidState("owner must belong to company %s", companyID)
	}

	memberIDs = dedupe(memberIDs)
	members, err := v.directory.GetUsers(ctx, memberIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkMemberSet(companyID, memberIDs, members); err != nil {
		return err
	}

	for _, id := range memberIDs {
		if id == ownerID {
			return apperr.InvalidState("owner %s cannot also be listed as a member", ownerID)
		}
	}

	if category == domains.CategoryRegulated {
		if !owner.Qualified && !anyQualified(memberIDs, members) {
			return apperr.InvalidState("regulated team requires at least one qualified individual among owner and members")
		}
	}

	return nil
}

// ValidateUpdate re-checks only the rules touched by the patch. current and
// currentMemberIDs describe the team as loaded (and locked) by the caller.
func (v *TeamValidator) ValidateUpdate(ctx context.Context, tx repository.Tx,
	current *domains.Team, currentMemberIDs []uuid.UUID, patch TeamPatch) error {
	const op = "validator.TeamValidator.ValidateUpdate"

	if patch.Name != nil && *patch.Name != current.Name {
		taken, err := v.teams.TeamNameExists(ctx, tx, current.CompanyID, *patch.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return apperr.Conflict("team %q already exists in company %s", *patch.Name, current.CompanyID)
		}
	}

	effectiveOwnerID := current.OwnerID
	var owner *domains.User
	if patch.OwnerID != nil && *patch.OwnerID != current.OwnerID {
		var err error
		owner, err = v.directory.GetUser(ctx, *patch.OwnerID)
		if err != nil {
			if errors.Is(err, directory.ErrUserNotFound) {
				return apperr.NotFound("owner %s not found", *patch.OwnerID)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		if !owner.BelongsTo(current.CompanyID) {
			return apperr.InvalidState("owner must belong to company %s", current.CompanyID)
		}
		effectiveOwnerID = *patch.OwnerID
	}

	effectiveMemberIDs := currentMemberIDs
	var members map[uuid.UUID]*domains.User
	if patch.MemberIDs != nil {
		effectiveMemberIDs = dedupe(*patch.MemberIDs)

		var err error
		members, err = v.directory.GetUsers(ctx, effectiveMemberIDs)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := checkMemberSet(current.CompanyID, effectiveMemberIDs, members); err != nil {
			return err
		}
	}

	for _, id := range effectiveMemberIDs {
		if id == effectiveOwnerID {
			return apperr.InvalidState("owner %s cannot also be listed as a member", effectiveOwnerID)
		}
	}

	effectiveCategory := current.Category
	if patch.Category != nil {
		effectiveCategory = *patch.Category
	}

	if effectiveCategory == domains.CategoryRegulated {
		staffingTouched := patch.Category != nil || patch.MemberIDs != nil || patch.OwnerID != nil
		if staffingTouched {
			if owner == nil {
				var err error
				owner, err = v.directory.GetUser(ctx, effectiveOwnerID)
				if err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
			}
			if members == nil {
				var err error
				members, err = v.directory.GetUsers(ctx, effectiveMemberIDs)
				if err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
			}
			if !owner.Qualified && !anyQualified(effectiveMemberIDs, members) {
				return apperr.InvalidState("regulated team requires at least one qualified individual among owner and members")
			}
		}
	}

	return nil
}

// ValidateOwnerChange checks promoting newOwnerID to owner of team. A
// candidate who is currently a regular member is allowed; the orchestrator
// removes their membership in the same transaction before promoting them.
func (v *TeamValidator) ValidateOwnerChange(ctx context.Context, tx repository.Tx,
	team *domains.Team, newOwnerID uuid.UUID) error {
	const op = "validator.TeamValidator.ValidateOwnerChange"

	newOwner, err := v.directory.GetUser(ctx, newOwnerID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return apperr.NotFound("user %s not found", newOwnerID)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !newOwner.BelongsTo(team.CompanyID) {
		return apperr.InvalidState("owner must belong to company %s", team.CompanyID)
	}

	if team.Category != domains.CategoryRegulated || newOwner.Qualified {
		return nil
	}

	// The outgoing owner leaves the team entirely, so qualification must
	// survive among the new owner and the members that remain after the
	// candidate's own membership (if any) is lifted to ownership.
	memberIDs, err := v.teams.ListMemberIDs(ctx, tx, team.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	remaining := make([]uuid.UUID, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id != newOwnerID {
			remaining = append(remaining, id)
		}
	}

	members, err := v.directory.GetUsers(ctx, remaining)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !anyQualified(remaining, members) {
		return apperr.InvalidState("regulated team requires at least one qualified individual among owner and members")
	}

	return nil
}
