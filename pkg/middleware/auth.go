package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taskdesk/taskdesk/pkg/composables"
	"github.com/taskdesk/taskdesk/pkg/httpapi"
)

const (
	ActorIDHeader   = "X-Actor-ID"
	ActorRoleHeader = "X-Actor-Role"
)

// RequireActor unpacks the identity claim forwarded by the auth collaborator
// into a typed actor on the request context. Requests without a complete,
// well-formed claim are rejected; verification of the claim itself happens
// upstream.
func RequireActor() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := strings.TrimSpace(r.Header.Get(ActorIDHeader))
			rawRole := strings.TrimSpace(r.Header.Get(ActorRoleHeader))
			if rawID == "" || rawRole == "" {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_MISSING_IDENTITY", "missing identity claim", nil)
				return
			}

			actorID, err := uuid.Parse(rawID)
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_INVALID_IDENTITY", "malformed actor id", nil)
				return
			}
			role, ok := composables.ParseRole(rawRole)
			if !ok {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_INVALID_ROLE", "unrecognized actor role", nil)
				return
			}

			ctx := composables.WithActor(r.Context(), composables.Actor{ID: actorID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
