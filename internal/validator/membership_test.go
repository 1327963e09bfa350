package validator

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sokolovart/org-team-manager/internal/apperr"
	"github.com/sokolovart/org-team-manager/internal/domains"
)

func TestMembershipValidator_ValidatePermission(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()
	ownerID := uuid.New()

	team := &domains.Team{ID: uuid.New(), CompanyID: companyID, OwnerID: ownerID}

	type testCase struct {
		name  string
		actor *domains.User

		expectedKind apperr.Kind
	}

	cases := []testCase{
		{
			name:  "Team owner",
			actor: &domains.User{ID: ownerID, CompanyID: &companyID, Role: domains.RoleMember},
		},
		{
			name:  "Company admin of the owning company",
			actor: &domains.User{ID: uuid.New(), CompanyID: &companyID, Role: domains.RoleCompanyAdmin},
		},
		{
			name:  "Platform staff",
			actor: &domains.User{ID: uuid.New(), Role: domains.RolePlatformStaff},
		},
		{
			name:         "Ordinary member",
			actor:        &domains.User{ID: uuid.New(), CompanyID: &companyID, Role: domains.RoleMember},
			expectedKind: apperr.KindForbidden,
		},
		{
			name:         "Admin of another company",
			actor:        &domains.User{ID: uuid.New(), CompanyID: &otherCompanyID, Role: domains.RoleCompanyAdmin},
			expectedKind: apperr.KindForbidden,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := NewMembershipValidator(nil, nil)
			err := v.ValidatePermission(tc.actor, team, OpAddMembers)

			if tc.expectedKind == apperr.KindUnknown {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Equal(t, tc.expectedKind, apperr.KindOf(err))
		})
	}
}

func TestMembershipValidator_ValidateJoin(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()

	owner := &domains.User{ID: uuid.New(), CompanyID: &companyID}
	member := &domains.User{ID: uuid.New(), CompanyID: &companyID}
	newcomer := &domains.User{ID: uuid.New(), CompanyID: &companyID}
	foreigner := &domains.User{ID: uuid.New(), CompanyID: &otherCompanyID}

	allUsers := []*domains.User{owner, member, newcomer, foreigner}

	team := &domains.Team{
		ID:        uuid.New(),
		CompanyID: companyID,
		OwnerID:   owner.ID,
		Category:  domains.CategoryStandard,
	}

	type testCase struct {
		name   string
		userID uuid.UUID

		expectedKind apperr.Kind
	}

	cases := []testCase{
		{
			name:   "Success",
			userID: newcomer.ID,
		},
		{
			name:         "Unknown user",
			userID:       uuid.New(),
			expectedKind: apperr.KindNotFound,
		},
		{
			name:         "User from another company",
			userID:       foreigner.ID,
			expectedKind: apperr.KindInvalidState,
		},
		{
			name:         "Already a member",
			userID:       member.ID,
			expectedKind: apperr.KindConflict,
		},
		{
			name:         "Owner joining own team",
			userID:       owner.ID,
			expectedKind: apperr.KindInvalidState,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := newFakeDirectory(t, allUsers, []uuid.UUID{companyID, otherCompanyID})
			teams := newFakeTeams(t, false, []uuid.UUID{member.ID})

			v := NewMembershipValidator(dir, teams)
			err := v.ValidateJoin(context.Background(), nil, team, tc.userID)

			if tc.expectedKind == apperr.KindUnknown {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Equal(t, tc.expectedKind, apperr.KindOf(err))
		})
	}
}

func TestMembershipValidator_ValidateBulkLeave(t *testing.T) {
	companyID := uuid.New()

	owner := &domains.User{ID: uuid.New(), CompanyID: &companyID}
	qualifiedOwner := &domains.User{ID: uuid.New(), CompanyID: &companyID, Qualified: true}
	plain := &domains.User{ID: uuid.New(), CompanyID: &companyID}
	qualifiedA := &domains.User{ID: uuid.New(), CompanyID: &companyID, Qualified: true}
	qualifiedB := &domains.User{ID: uuid.New(), CompanyID: &companyID, Qualified: true}

	allUsers := []*domains.User{owner, qualifiedOwner, plain, qualifiedA, qualifiedB}

	type testCase struct {
		name      string
		ownerID   uuid.UUID
		category  domains.Category
		memberIDs []uuid.UUID
		leaving   []uuid.UUID

		expectedKind apperr.Kind
		expectedIn   string
	}

	cases := []testCase{
		{
			name:      "Standard team removal",
			ownerID:   owner.ID,
			category:  domains.CategoryStandard,
			memberIDs: []uuid.UUID{plain.ID, qualifiedA.ID},
			leaving:   []uuid.UUID{qualifiedA.ID},
		},
		{
			name:         "Owner cannot be removed",
			ownerID:      owner.ID,
			category:     domains.CategoryStandard,
			memberIDs:    []uuid.UUID{plain.ID},
			leaving:      []uuid.UUID{owner.ID},
			expectedKind: apperr.KindInvalidState,
			expectedIn:   "cannot remove the owner",
		},
		{
			name:         "Not a member",
			ownerID:      owner.ID,
			category:     domains.CategoryStandard,
			memberIDs:    []uuid.UUID{plain.ID},
			leaving:      []uuid.UUID{qualifiedA.ID},
			expectedKind: apperr.KindInvalidState,
		},
		{
			name:         "Last qualified member of regulated team",
			ownerID:      owner.ID,
			category:     domains.CategoryRegulated,
			memberIDs:    []uuid.UUID{plain.ID, qualifiedA.ID},
			leaving:      []uuid.UUID{qualifiedA.ID},
			expectedKind: apperr.KindInvalidState,
			expectedIn:   "qualified",
		},
		{
			name:      "Qualified owner carries the team",
			ownerID:   qualifiedOwner.ID,
			category:  domains.CategoryRegulated,
			memberIDs: []uuid.UUID{qualifiedA.ID},
			leaving:   []uuid.UUID{qualifiedA.ID},
		},
		{
			name:      "One of two qualified members may leave",
			ownerID:   owner.ID,
			category:  domains.CategoryRegulated,
			memberIDs: []uuid.UUID{qualifiedA.ID, qualifiedB.ID},
			leaving:   []uuid.UUID{qualifiedA.ID},
		},
		{
			name:         "Both qualified members leaving together",
			ownerID:      owner.ID,
			category:     domains.CategoryRegulated,
			memberIDs:    []uuid.UUID{qualifiedA.ID, qualifiedB.ID, plain.ID},
			leaving:      []uuid.UUID{qualifiedA.ID, qualifiedB.ID},
			expectedKind: apperr.KindInvalidState,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			team := &domains.Team{
				ID:        uuid.New(),
				CompanyID: companyID,
				OwnerID:   tc.ownerID,
				Category:  tc.category,
			}

			dir := newFakeDirectory(t, allUsers, []uuid.UUID{companyID})
			teams := newFakeTeams(t, false, tc.memberIDs)

			v := NewMembershipValidator(dir, teams)
			err := v.ValidateBulkLeave(context.Background(), nil, team, tc.leaving)

			if tc.expectedKind == apperr.KindUnknown {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Equal(t, tc.expectedKind, apperr.KindOf(err))
			if tc.expectedIn != "" {
				require.Contains(t, err.Error(), tc.expectedIn)
			}
		})
	}
}

func TestMembershipValidator_ValidateReplace(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()

	owner := &domains.User{ID: uuid.New(), CompanyID: &companyID}
	qualifiedOwner := &domains.User{ID: uuid.New(), CompanyID: &companyID, Qualified: true}
	plain := &domains.User{ID: uuid.New(), CompanyID: &companyID}
	qualified := &domains.User{ID: uuid.New(), CompanyID: &companyID, Qualified: true}
	foreigner := &domains.User{ID: uuid.New(), CompanyID: &otherCompanyID}

	allUsers := []*domains.User{owner, qualifiedOwner, plain, qualified, foreigner}

	type testCase struct {
		name     string
		ownerID  uuid.UUID
		category domains.Category
		newSet   []uuid.UUID

		expectedKind apperr.Kind
	}

	cases := []testCase{
		{
			name:     "Success standard",
			ownerID:  owner.ID,
			category: domains.CategoryStandard,
			newSet:   []uuid.UUID{plain.ID},
		},
		{
			name:         "Unknown user in new set",
			ownerID:      owner.ID,
			category:     domains.CategoryStandard,
			newSet:       []uuid.UUID{uuid.New()},
			expectedKind: apperr.KindNotFound,
		},
		{
			name:         "Foreigner in new set",
			ownerID:      owner.ID,
			category:     domains.CategoryStandard,
			newSet:       []uuid.UUID{foreigner.ID},
			expectedKind: apperr.KindInvalidState,
		},
		{
			name:         "Owner in new set",
			ownerID:      owner.ID,
			category:     domains.CategoryStandard,
			newSet:       []uuid.UUID{owner.ID},
			expectedKind: apperr.KindInvalidState,
		},
		{
			name:         "Regulated team with no qualified replacement",
			ownerID:      owner.ID,
			category:     domains.CategoryRegulated,
			newSet:       []uuid.UUID{plain.ID},
			expectedKind: apperr.KindInvalidState,
		},
		{
			name:     "Regulated team with qualified replacement",
			ownerID:  owner.ID,
			category: domains.CategoryRegulated,
			newSet:   []uuid.UUID{qualified.ID},
		},
		{
			name:         "Empty set needs qualified owner",
			ownerID:      owner.ID,
			category:     domains.CategoryRegulated,
			newSet:       nil,
			expectedKind: apperr.KindInvalidState,
		},
		{
			name:     "Empty set legal with qualified owner",
			ownerID:  qualifiedOwner.ID,
			category: domains.CategoryRegulated,
			newSet:   nil,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			team := &domains.Team{
				ID:        uuid.New(),
				CompanyID: companyID,
				OwnerID:   tc.ownerID,
				Category:  tc.category,
			}

			dir := newFakeDirectory(t, allUsers, []uuid.UUID{companyID, otherCompanyID})
			teams := newFakeTeams(t, false, nil)

			v := NewMembershipValidator(dir, teams)
			err := v.ValidateReplace(context.Background(), nil, team, tc.newSet)

			if tc.expectedKind == apperr.KindUnknown {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Equal(t, tc.expectedKind, apperr.KindOf(err))
		})
	}
}
