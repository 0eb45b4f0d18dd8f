package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/autospares/pkg/httpx"
	"github.com/ghuser/autospares/pkg/logger"
)

const sessionName = "autospares_session"
const sessionUserIDKey = "user_id"
const sessionRoleKey = "role"

// RequireAuth is a chi middleware that enforces authentication via session
// cookies. It reads the session cookie, extracts the user ID and role, and
// injects an Identity into the request context. Returns 401 Unauthorized if
// the session is missing, invalid, or lacks a valid user.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userIDStr, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid session data")
				return
			}

			role, _ := session.Values[sessionRoleKey].(string)
			if role != RoleAdmin && role != RoleSales {
				log.WarnContext(r.Context(), "session carries unknown role", "role", role)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid session data")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route on the admin role. Must run after RequireAuth.
// Returns 403 Forbidden for authenticated non-admin sessions.
func RequireAdmin(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := IdentityFromCtx(r.Context())
			if err != nil {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !id.IsAdmin() {
				log.WarnContext(r.Context(), "admin route denied", "user_id", id.UserID, "role", id.Role)
				httpx.JSONError(w, http.StatusForbidden, "admin access only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
