package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sokolovart/org-team-manager/internal/directory"
	"github.com/sokolovart/org-team-manager/internal/domains"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorAuthMiddleware resolves the authenticated actor from the X-Actor-ID
// header set by the upstream gateway. Token verification happens there;
// this service only confirms the id against the directory.
func ActorAuthMiddleware(dir directory.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get("X-Actor-ID"))
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			actor, err := dir.GetUser(r.Context(), id)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor stores the actor on the context.
func WithActor(ctx context.Context, actor *domains.User) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the actor stored by ActorAuthMiddleware.
func ActorFromContext(ctx context.Context) (*domains.User, bool) {
	actor, ok := ctx.Value(actorKey).(*domains.User)
	return actor, ok
}
