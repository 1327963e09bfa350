package get

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers"
	"github.com/sokolovart/org-team-manager/internal/httpserver/middlewares"
	"github.com/sokolovart/org-team-manager/internal/lib/api/response"
	"github.com/sokolovart/org-team-manager/internal/usecase/team"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamService
type TeamService interface {
	Get(ctx context.Context, teamID uuid.UUID, actor *domains.User) (*team.TeamWithMembers, error)
}

type Response struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CompanyID string   `json:"company_id"`
	OwnerID   string   `json:"owner_id"`
	Category  string   `json:"category"`
	Active    bool     `json:"active"`
	MemberIDs []string `json:"member_ids"`
}

func New(
	log *slog.Logger,
	service TeamService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http.handlers.teams.get.New"
		log = log.With(slog.String("op", op))

		actor, ok := middlewares.ActorFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).
				Encode(response.NewErrorResponse(handlers.InvalidRequest, "invalid team id"))
			return
		}

		result, err := service.Get(r.Context(), teamID, actor)
		if err != nil {
			handlers.RespondError(w, log, err)
			return
		}

		memberIDs := make([]string, len(result.MemberIDs))
		for i, id := range result.MemberIDs {
			memberIDs[i] = id.String()
		}

		resp := Response{
			ID:        result.Team.ID.String(),
			Name:      result.Team.Name,
			CompanyID: result.Team.CompanyID.String(),
			OwnerID:   result.Team.OwnerID.String(),
			Category:  string(result.Team.Category),
			Active:    result.Team.Active,
			MemberIDs: memberIDs,
		}

		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
