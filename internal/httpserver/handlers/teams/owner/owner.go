package owner

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
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamService
type TeamService interface {
	ChangeOwner(ctx context.Context, teamID, newOwnerID uuid.UUID, actor *domains.User) error
}

type Request struct {
	NewOwnerID string `json:"new_owner_id"`
}

func New(
	log *slog.Logger,
	service TeamService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http.handlers.teams.owner.New"
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

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("invalid request body", slog.Any("error", err))

			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).
				Encode(response.NewErrorResponse(handlers.InvalidRequest, "invalid JSON format"))
			return
		}

		newOwnerID, err := uuid.Parse(req.NewOwnerID)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).
				Encode(response.NewErrorResponse(handlers.InvalidRequest, "invalid user id"))
			return
		}

		if err := service.ChangeOwner(r.Context(), teamID, newOwnerID, actor); err != nil {
			handlers.RespondError(w, log, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
