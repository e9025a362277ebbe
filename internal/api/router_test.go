package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"customer-service/internal/config"
	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubCustomerService struct {
	mock.Mock
}

func (m *stubCustomerService) ListCustomers(ctx context.Context, query customer.ListQuery) (*customer.Page, error) {
	args := m.Called(ctx, query)
	if page, ok := args.Get(0).(*customer.Page); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubCustomerService) GetCustomerByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubCustomerService) CreateCustomer(ctx context.Context, firstName, lastName, email string, phoneNumber *string) (*customer.Customer, error) {
	args := m.Called(ctx, firstName, lastName, email, phoneNumber)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubCustomerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, email string, phoneNumber *string) (*customer.Customer, error) {
	args := m.Called(ctx, customerID, firstName, lastName, email, phoneNumber)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RateLimit: config.RateLimitConfig{Enabled: false},
			Auth: config.AuthConfig{
				Enabled: true,
				Users: []config.UserConfig{
					{Username: "user", Password: "password", Role: "USER"},
					{Username: "admin", Password: "admin", Role: "ADMIN"},
				},
			},
		},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
}

func setupTestRouter(t *testing.T) (*stubCustomerService, http.Handler) {
	t.Helper()
	svc := new(stubCustomerService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	router, err := SetupRouter(svc, testConfig(), logger)
	require.NoError(t, err)
	return svc, router
}

func TestRouterOpenEndpoints(t *testing.T) {
	_, router := setupTestRouter(t)

	t.Run("health needs no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("welcome needs no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/welcome", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Welcome")
	})

	t.Run("metrics endpoint is mounted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouterCustomerAccessControl(t *testing.T) {
	t.Run("list rejects anonymous callers", func(t *testing.T) {
		_, router := setupTestRouter(t)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
	})

	t.Run("user role may list", func(t *testing.T) {
		svc, router := setupTestRouter(t)
		page := customer.NewPage(nil, 0, 10, 0)
		svc.On("ListCustomers", mock.Anything, mock.Anything).Return(page, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.SetBasicAuth("user", "password")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("user role may not create", func(t *testing.T) {
		svc, router := setupTestRouter(t)

		body := `{"firstName":"Jane","lastName":"Doe","email":"jane.doe@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(body))
		req.SetBasicAuth("user", "password")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "CreateCustomer")
	})

	t.Run("admin role may delete", func(t *testing.T) {
		svc, router := setupTestRouter(t)
		svc.On("DeleteCustomer", mock.Anything, int64(5)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/5", nil)
		req.SetBasicAuth("admin", "admin")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, router := setupTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.SetBasicAuth("admin", "nope")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
