package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/salvadorperezm/ror-api-creation/pkg/logger"
	"github.com/salvadorperezm/ror-api-creation/store"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// UserResolver maps an opaque bearer token to its user. Implementations
// return sql.ErrNoRows when no user carries the token.
type UserResolver interface {
	FindByAuthToken(token string) (*store.User, error)
}

// Unanchored on purpose: the token is the first word-character run
// after "Bearer ".
var bearerPattern = regexp.MustCompile(`Bearer (\w+)`)

// WithUser resolves the Authorization header if it can and attaches the
// user to the request context. An absent or unresolvable credential is
// not an error; the request proceeds anonymously.
func WithUser(users UserResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := resolve(r, users); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), currentUserKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser short-circuits with 401 unless the Authorization header
// resolves to a user. The wrapped handler never runs for an
// unauthenticated request.
func RequireUser(users UserResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := resolve(r, users)
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the user resolved for this request, or nil for an
// anonymous request.
func CurrentUser(ctx context.Context) *store.User {
	user, _ := ctx.Value(currentUserKey).(*store.User)
	return user
}

func resolve(r *http.Request, users UserResolver) *store.User {
	match := bearerPattern.FindStringSubmatch(r.Header.Get("Authorization"))
	if match == nil {
		return nil
	}
	user, err := users.FindByAuthToken(match[1])
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Sugar.Errorf("Auth token lookup failed: %v", err)
		}
		return nil
	}
	return user
}
