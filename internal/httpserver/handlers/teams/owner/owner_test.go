package owner_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sokolovart/org-team-manager/internal/apperr"
	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/owner"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/owner/mocks"
	"github.com/sokolovart/org-team-manager/internal/httpserver/middlewares"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChangeOwnerHandler(t *testing.T) {
	companyID := uuid.New()
	actor := &domains.User{ID: uuid.New(), CompanyID: &companyID, Role: domains.RoleCompanyAdmin}

	teamID := uuid.New()
	newOwnerID := uuid.New()

	type testCase struct {
		name      string
		body      string
		mockError error
		mockSkip  bool

		expectedStatus int
	}

	cases := []testCase{
		{
			name:           "Success",
			body:           `{"new_owner_id":"` + newOwnerID.String() + `"}`,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Forbidden",
			body:           `{"new_owner_id":"` + newOwnerID.String() + `"}`,
			mockError:      apperr.Forbidden("not allowed"),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Staffing rule violated",
			body:           `{"new_owner_id":"` + newOwnerID.String() + `"}`,
			mockError:      apperr.InvalidState("regulated team requires a qualified individual"),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Invalid JSON",
			body:           `{`,
			mockSkip:       true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid owner id",
			body:           `{"new_owner_id":"nope"}`,
			mockSkip:       true,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewTeamService(t)
			if !tc.mockSkip {
				svc.On("ChangeOwner", mock.Anything, teamID, newOwnerID, actor).
					Return(tc.mockError).
					Once()
			}

			router := chi.NewRouter()
			router.Post("/teams/{teamID}/owner", owner.New(discardLogger(), svc))

			req := httptest.NewRequest(http.MethodPost, "/teams/"+teamID.String()+"/owner",
				bytes.NewBufferString(tc.body))
			req = req.WithContext(middlewares.WithActor(req.Context(), actor))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedStatus >= http.StatusBadRequest {
				var errResp struct {
					Error struct {
						Code    string `json:"code"`
						Message string `json:"message"`
					} `json:"error"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				require.NotEmpty(t, errResp.Error.Code)
			}
		})
	}
}
