package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthConfig = config.AuthConfig{
	Enabled: true,
	Users: []config.UserConfig{
		{Username: "user", Password: "password", Role: "USER"},
		{Username: "admin", Password: "admin", Role: "ADMIN"},
	},
}

func newAuthMiddleware(t *testing.T, cfg config.AuthConfig) *BasicAuthMiddleware {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	m, err := NewBasicAuthMiddleware(cfg, logger)
	require.NoError(t, err)
	return m
}

func roleCapturingHandler(captured *Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role, ok := RoleFromContext(r.Context()); ok {
			*captured = role
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestBasicAuthMiddleware(t *testing.T) {
	m := newAuthMiddleware(t, testAuthConfig)

	t.Run("accepts valid user credentials and stores the role", func(t *testing.T) {
		var captured Role
		handler := m.Middleware(roleCapturingHandler(&captured))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.SetBasicAuth("user", "password")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, RoleUser, captured)
	})

	t.Run("accepts valid admin credentials", func(t *testing.T) {
		var captured Role
		handler := m.Middleware(roleCapturingHandler(&captured))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.SetBasicAuth("admin", "admin")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, RoleAdmin, captured)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		handler := m.Middleware(roleCapturingHandler(new(Role)))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.SetBasicAuth("user", "wrong")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic realm=")
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		handler := m.Middleware(roleCapturingHandler(new(Role)))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.SetBasicAuth("nobody", "password")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects missing Authorization header with error body", func(t *testing.T) {
		handler := m.Middleware(roleCapturingHandler(new(Role)))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
		assert.Equal(t, "Unauthorized", resp.Message)
		assert.Equal(t, "/api/v1/customers", resp.Path)
	})

	t.Run("grants admin role to everything when disabled", func(t *testing.T) {
		disabled := newAuthMiddleware(t, config.AuthConfig{Enabled: false})
		var captured Role
		handler := disabled.Middleware(roleCapturingHandler(&captured))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, RoleAdmin, captured)
	})
}

func TestNewBasicAuthMiddlewareRejectsEmptyUsername(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := config.AuthConfig{Enabled: true, Users: []config.UserConfig{{Username: "", Password: "x", Role: "USER"}}}

	_, err := NewBasicAuthMiddleware(cfg, logger)
	assert.Error(t, err)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(RoleAdmin, OperationRead))
	assert.True(t, Allowed(RoleAdmin, OperationWrite))
	assert.True(t, Allowed(RoleUser, OperationRead))
	assert.False(t, Allowed(RoleUser, OperationWrite))
	assert.False(t, Allowed(Role("GUEST"), OperationRead))
}

func TestRequireOperation(t *testing.T) {
	m := newAuthMiddleware(t, testAuthConfig)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("user may read", func(t *testing.T) {
		handler := m.Middleware(RequireOperation(OperationRead, logger)(okHandler))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.SetBasicAuth("user", "password")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("user may not write", func(t *testing.T) {
		handler := m.Middleware(RequireOperation(OperationWrite, logger)(okHandler))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", nil)
		req.SetBasicAuth("user", "password")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Access denied", resp.Message)
	})

	t.Run("admin may write", func(t *testing.T) {
		handler := m.Middleware(RequireOperation(OperationWrite, logger)(okHandler))

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/1", nil)
		req.SetBasicAuth("admin", "admin")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing role yields unauthorized", func(t *testing.T) {
		handler := RequireOperation(OperationRead, logger)(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
