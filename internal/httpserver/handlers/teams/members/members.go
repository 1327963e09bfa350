// Package members exposes the incremental membership operations: bulk add,
// single remove, and full replace.
package members

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
	AddMembers(ctx context.Context, teamID uuid.UUID, userIDs []uuid.UUID, actor *domains.User) ([]uuid.UUID, error)
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID, actor *domains.User) error
	ReplaceMembers(ctx context.Context, teamID uuid.UUID, newUserIDs []uuid.UUID, actor *domains.User) error
}

type Request struct {
	UserIDs []string `json:"user_ids"`
}

type AddResponse struct {
	AddedUserIDs []string `json:"added_user_ids"`
}

func Add(
	log *slog.Logger,
	service TeamService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http.handlers.teams.members.Add"
		log = log.With(slog.String("op", op))

		actor, teamID, userIDs, ok := decode(w, r, log)
		if !ok {
			return
		}

		added, err := service.AddMembers(r.Context(), teamID, userIDs, actor)
		if err != nil {
			handlers.RespondError(w, log, err)
			return
		}

		resp := AddResponse{AddedUserIDs: make([]string, len(added))}
		for i, id := range added {
			resp.AddedUserIDs[i] = id.String()
		}

		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

func Remove(
	log *slog.Logger,
	service TeamService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http.handlers.teams.members.Remove"
		log = log.With(slog.String("op", op))

		actor, ok := middlewares.ActorFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
		if err != nil {
			badRequest(w, "invalid team id")
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			badRequest(w, "invalid user id")
			return
		}

		if err := service.RemoveMember(r.Context(), teamID, userID, actor); err != nil {
			handlers.RespondError(w, log, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func Replace(
	log *slog.Logger,
	service TeamService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http.handlers.teams.members.Replace"
		log = log.With(slog.String("op", op))

		actor, teamID, userIDs, ok := decode(w, r, log)
		if !ok {
			return
		}

		if err := service.ReplaceMembers(r.Context(), teamID, userIDs, actor); err != nil {
			handlers.RespondError(w, log, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func decode(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domains.User, uuid.UUID, []uuid.UUID, bool) {
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, uuid.Nil, nil, false
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
	if err != nil {
		badRequest(w, "invalid team id")
		return nil, uuid.Nil, nil, false
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request body", slog.Any("error", err))
		badRequest(w, "invalid JSON format")
		return nil, uuid.Nil, nil, false
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, s := range req.UserIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			badRequest(w, "invalid user id")
			return nil, uuid.Nil, nil, false
		}
		userIDs = append(userIDs, id)
	}

	return actor, teamID, userIDs, true
}

func badRequest(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).
		Encode(response.NewErrorResponse(handlers.InvalidRequest, msg))
}
