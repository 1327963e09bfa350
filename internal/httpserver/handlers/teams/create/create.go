package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/domains"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers"
	"github.com/sokolovart/org-team-manager/internal/httpserver/middlewares"
	"github.com/sokolovart/org-team-manager/internal/lib/api/response"
	"github.com/sokolovart/org-team-manager/internal/usecase/team"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamService
type TeamService interface {
	Create(ctx context.Context, spec team.CreateSpec, actor *domains.User) (*team.TeamWithMembers, error)
}

type Request struct {
	Name      string   `json:"name"`
	CompanyID string   `json:"company_id,omitempty"`
	OwnerID   string   `json:"owner_id"`
	MemberIDs []string `json:"member_ids"`
	Category  string   `json:"category"`
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
		const op = "http.handlers.teams.create.New"
		log = log.With(slog.String("op", op))

		actor, ok := middlewares.ActorFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
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

		spec, err := specFromRequest(req)
		if err != nil {
			log.Warn("invalid request", slog.Any("error", err))

			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).
				Encode(response.NewErrorResponse(handlers.InvalidRequest, err.Error()))
			return
		}

		created, err := service.Create(r.Context(), spec, actor)
		if err != nil {
			handlers.RespondError(w, log, err)
			return
		}

		memberIDs := make([]string, len(created.MemberIDs))
		for i, id := range created.MemberIDs {
			memberIDs[i] = id.String()
		}

		resp := Response{
			ID:        created.Team.ID.String(),
			Name:      created.Team.Name,
			CompanyID: created.Team.CompanyID.String(),
			OwnerID:   created.Team.OwnerID.String(),
			Category:  string(created.Team.Category),
			Active:    created.Team.Active,
			MemberIDs: memberIDs,
		}

		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

func specFromRequest(req Request) (team.CreateSpec, error) {
	var spec team.CreateSpec

	category, err := domains.ParseCategory(req.Category)
	if err != nil {
		return spec, err
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return spec, err
	}

	var companyID uuid.UUID
	if req.CompanyID != "" {
		companyID, err = uuid.Parse(req.CompanyID)
		if err != nil {
			return spec, err
		}
	}

	memberIDs := make([]uuid.UUID, 0, len(req.MemberIDs))
	for _, s := range req.MemberIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return spec, err
		}
		memberIDs = append(memberIDs, id)
	}

	return team.CreateSpec{
		Name:      req.Name,
		CompanyID: companyID,
		OwnerID:   ownerID,
		MemberIDs: memberIDs,
		Category:  category,
	}, nil
}
