package update

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
	"github.com/sokolovart/org-team-manager/internal/validator"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamService
type TeamService interface {
	Update(ctx context.Context, teamID uuid.UUID, patch validator.TeamPatch, actor *domains.User) (*team.TeamWithMembers, error)
}

type Request struct {
	Name      *string   `json:"name,omitempty"`
	OwnerID   *string   `json:"owner_id,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Active    *bool     `json:"active,omitempty"`
	MemberIDs *[]string `json:"member_ids,omitempty"`
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
		const op = "http.handlers.teams.update.New"
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

		patch, err := patchFromRequest(req)
		if err != nil {
			log.Warn("invalid request", slog.Any("error", err))

			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).
				Encode(response.NewErrorResponse(handlers.InvalidRequest, err.Error()))
			return
		}

		updated, err := service.Update(r.Context(), teamID, patch, actor)
		if err != nil {
			handlers.RespondError(w, log, err)
			return
		}

		memberIDs := make([]string, len(updated.MemberIDs))
		for i, id := range updated.MemberIDs {
			memberIDs[i] = id.String()
		}

		resp := Response{
			ID:        updated.Team.ID.String(),
			Name:      updated.Team.Name,
			CompanyID: updated.Team.CompanyID.String(),
			OwnerID:   updated.Team.OwnerID.String(),
			Category:  string(updated.Team.Category),
			Active:    updated.Team.Active,
			MemberIDs: memberIDs,
		}

		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

func patchFromRequest(req Request) (validator.TeamPatch, error) {
	var patch validator.TeamPatch

	patch.Name = req.Name
	patch.Active = req.Active

	if req.OwnerID != nil {
		id, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return patch, err
		}
		patch.OwnerID = &id
	}

	if req.Category != nil {
		category, err := domains.ParseCategory(*req.Category)
		if err != nil {
			return patch, err
		}
		patch.Category = &category
	}

	if req.MemberIDs != nil {
		ids := make([]uuid.UUID, 0, len(*req.MemberIDs))
		for _, s := range *req.MemberIDs {
			id, err := uuid.Parse(s)
			if err != nil {
				return patch, err
			}
			ids = append(ids, id)
		}
		patch.MemberIDs = &ids
	}

	return patch, nil
}
