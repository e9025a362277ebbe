package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/config"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Operation classifies every endpoint as a read or a write. USER may only
// read; ADMIN may do both.
type Operation string

const (
	OperationRead  Operation = "read"
	OperationWrite Operation = "write"
)

// Allowed is the whole access policy.
func Allowed(role Role, op Operation) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleUser:
		return op == OperationRead
	default:
		return false
	}
}

type contextKey string

const roleContextKey contextKey = "authRole"

// RoleFromContext returns the role the auth middleware resolved for the
// request.
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleContextKey).(Role)
	return role, ok
}

type credential struct {
	passwordHash []byte
	role         Role
}

type BasicAuthMiddleware struct {
	enabled bool
	users   map[string]credential
	logger  *slog.Logger
}

// NewBasicAuthMiddleware hashes the configured passwords once at startup
// so plaintext never sits in the struct afterwards.
func NewBasicAuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) (*BasicAuthMiddleware, error) {
	users := make(map[string]credential, len(cfg.Users))
	for _, u := range cfg.Users {
		if u.Username == "" {
			return nil, fmt.Errorf("auth user with empty username in configuration")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for user %s: %w", u.Username, err)
		}
		users[u.Username] = credential{passwordHash: hash, role: Role(u.Role)}
	}

	return &BasicAuthMiddleware{
		enabled: cfg.Enabled,
		users:   users,
		logger:  logger.With("component", "BasicAuthMiddleware"),
	}, nil
}

// dummyHash is compared against when the username is unknown so lookup
// misses cost the same as password mismatches.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("-"), bcrypt.DefaultCost)

func (m *BasicAuthMiddleware) Middleware(next http.Handler) http.Handler {
	if !m.enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), roleContextKey, RoleAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			m.logger.Warn("Missing or malformed Authorization header")
			respondUnauthorized(w, r)
			return
		}

		cred, found := m.users[username]
		hash := dummyHash
		if found {
			hash = cred.passwordHash
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !found {
			m.logger.Warn("Rejected credentials", "username", username)
			respondUnauthorized(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), roleContextKey, cred.role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOperation gates a route on the access policy. It must run after
// the basic auth middleware.
func RequireOperation(op Operation, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				logger.Warn("No role in request context, denying access", "path", r.URL.Path)
				respondUnauthorized(w, r)
				return
			}
			if !Allowed(role, op) {
				logger.Warn("Role not allowed for operation", "role", string(role), "operation", string(op), "path", r.URL.Path)
				resp := dto.NewErrorResponse(http.StatusForbidden, http.StatusText(http.StatusForbidden), "Access denied", r.URL.Path)
				writeJSON(w, http.StatusForbidden, resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="customer-service", charset="UTF-8"`)
	resp := dto.NewErrorResponse(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), "Unauthorized", r.URL.Path)
	writeJSON(w, http.StatusUnauthorized, resp)
}
