package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"
	"suma-service/internal/pkg/utils"
)

// Authenticate resolves the Bearer token into session data and stores it in
// the request context. Role checks stay in the usecases; routes only gate on
// having a session at all, except where RequireRoles is attached.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("authorization header missing")))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := m.SessionService.ResolveSession(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles rejects sessions whose role is not in the allow list. Used for
// routes that are pointless to even enter the usecase with, like admin panels.
func (m *Middlewares) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
			if !ok || session == nil {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrMissingSessionData(fmt.Errorf("no session in context")))
				return
			}
			if !allowed[session.Role] {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s not allowed for %s", session.Role, r.URL.Path)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext is the controller-side accessor for what Authenticate
// stored.
func SessionFromContext(ctx context.Context) (*models.Session, error) {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		return nil, exceptions.ErrMissingSessionData(fmt.Errorf("no session in context"))
	}
	return session, nil
}
