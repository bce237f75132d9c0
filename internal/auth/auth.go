// Package auth provides the HTTP Basic authentication middleware and the
// role capability check used by handlers.
//
// There is no session state: every request is re-authenticated against the
// user table with a full scan, matching the behavior of the system this
// service replaces.
package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/songhub/internal/logger"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

// Realm is the Basic auth realm announced in the 401 challenge.
const Realm = "need to login"

// ErrForbidden is returned by RequireRole when the authenticated user
// does not carry the required role.
var ErrForbidden = errors.New("insufficient role")

type userLister interface {
	GetAllUsers(ctx context.Context) ([]user.User, error)
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

const (
	// UserIDKey is the context key holding the authenticated userid.
	UserIDKey ContextKey = "userID"

	// RoleKey is the context key holding the authenticated user's role.
	RoleKey ContextKey = "userRole"
)

// Auth authenticates requests against the user table.
type Auth struct {
	db userLister
}

// New creates an Auth with the given user data access layer.
func New(db userLister) *Auth {
	return &Auth{db: db}
}

// AuthenticateUser is an HTTP middleware that decodes the Basic
// Authorization header and checks it for an exact (userid, password) match
// among all user rows. On match the userid and role are stored in the
// request context; otherwise the request is rejected with 401 and a
// WWW-Authenticate challenge.
func (a *Auth) AuthenticateUser(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		userid, password, ok := decodeBasicCredentials(request.Header.Get("Authorization"))
		if !ok {
			a.reject(response)
			return
		}

		users, err := a.db.GetAllUsers(request.Context())
		if err != nil {
			logger.Log.Debugln("Error calling the `a.db.GetAllUsers()`: ", zap.Error(err))
			response.WriteHeader(http.StatusInternalServerError)
			return
		}

		matched, found := funk.Find(users, func(usr user.User) bool {
			return usr.UserID == userid && usr.Password == password
		}).(user.User)
		if !found {
			a.reject(response)
			return
		}

		ctx := context.WithValue(request.Context(), UserIDKey, matched.UserID)
		ctx = context.WithValue(ctx, RoleKey, matched.Role)

		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

func (a *Auth) reject(response http.ResponseWriter) {
	response.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`"`)
	response.WriteHeader(http.StatusUnauthorized)
	logger.Log.Debugln("No authorization found, send 401.")
}

func decodeBasicCredentials(header string) (userid, password string, ok bool) {
	if header == "" {
		return "", "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	plain, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	credentials := strings.SplitN(string(plain), ":", 2)
	if len(credentials) != 2 {
		return "", "", false
	}

	return credentials[0], credentials[1], true
}

// RequireRole checks that the context carries the given role.
// It is the explicit capability check handlers invoke after transport-level
// authentication has already succeeded.
func RequireRole(ctx context.Context, role string) error {
	actual, _ := ctx.Value(RoleKey).(string)
	if actual != role {
		return ErrForbidden
	}

	return nil
}

// UserIDFromContext returns the authenticated userid, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
