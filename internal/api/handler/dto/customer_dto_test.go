package dto

import (
	"strings"
	"testing"
	"time"

	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CustomerRequest {
	return CustomerRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.com",
		PhoneNumber: "+12025550147",
	}
}

func TestCustomerRequestValidateWhenValid(t *testing.T) {
	req := validRequest()
	assert.Nil(t, req.Validate())
}

func TestCustomerRequestValidateWhenPhoneOmitted(t *testing.T) {
	req := validRequest()
	req.PhoneNumber = ""
	assert.Nil(t, req.Validate())
	assert.Nil(t, req.Phone())
}

func TestCustomerRequestValidateCollectsAllViolations(t *testing.T) {
	req := CustomerRequest{
		FirstName:   "  ",
		LastName:    "",
		Email:       "not-an-email",
		PhoneNumber: strings.Repeat("9", 16),
	}

	violations := req.Validate()
	require.Len(t, violations, 4)
	assert.Equal(t, "First name is required", violations["firstName"])
	assert.Equal(t, "Last name is required", violations["lastName"])
	assert.Equal(t, "Email should be valid", violations["email"])
	assert.Equal(t, "Phone number must not exceed 15 characters", violations["phoneNumber"])
}

func TestCustomerRequestValidateLengthLimits(t *testing.T) {
	req := validRequest()
	req.FirstName = strings.Repeat("a", 51)
	req.LastName = strings.Repeat("b", 51)

	violations := req.Validate()
	require.Len(t, violations, 2)
	assert.Equal(t, "First name must not exceed 50 characters", violations["firstName"])
	assert.Equal(t, "Last name must not exceed 50 characters", violations["lastName"])
}

func TestCustomerRequestValidateEmailRequired(t *testing.T) {
	req := validRequest()
	req.Email = "   "

	violations := req.Validate()
	assert.Equal(t, "Email is required", violations["email"])
}

func TestCustomerRequestPhoneTrimsWhitespace(t *testing.T) {
	req := validRequest()
	req.PhoneNumber = " +12025550147 "

	phone := req.Phone()
	require.NotNil(t, phone)
	assert.Equal(t, "+12025550147", *phone)
}

func TestNewCustomerPageResponse(t *testing.T) {
	now := time.Now()
	phone := "+12025550147"
	items := []*customer.Customer{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com", PhoneNumber: &phone, CreatedAt: now, LastModified: now},
		{ID: 2, FirstName: "John", LastName: "Smith", Email: "john.smith@example.com", CreatedAt: now, LastModified: now},
	}
	page := customer.NewPage(items, 0, 10, 25)

	resp := NewCustomerPageResponse(page)
	require.Len(t, resp.Customers, 2)
	assert.Equal(t, int64(1), resp.Customers[0].ID)
	assert.Nil(t, resp.Customers[1].PhoneNumber)
	assert.Equal(t, 0, resp.Page)
	assert.Equal(t, 10, resp.Size)
	assert.Equal(t, int64(25), resp.TotalElements)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.First)
	assert.False(t, resp.Last)
	assert.True(t, resp.HasNext)
	assert.False(t, resp.HasPrevious)
}

func TestNewCustomerPageResponseWhenEmpty(t *testing.T) {
	page := customer.NewPage(nil, 0, 10, 0)

	resp := NewCustomerPageResponse(page)
	assert.NotNil(t, resp.Customers)
	assert.Empty(t, resp.Customers)
	assert.Zero(t, resp.TotalPages)
	assert.True(t, resp.First)
	assert.True(t, resp.Last)
	assert.False(t, resp.HasNext)
}

func TestNewValidationErrorResponse(t *testing.T) {
	violations := map[string]string{"email": "Email is required"}

	resp := NewValidationErrorResponse(400, "Bad Request", "Validation failed", "/api/v1/customers", violations)
	assert.Equal(t, 400, resp.Status)
	assert.Equal(t, "Bad Request", resp.Error)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Equal(t, "/api/v1/customers", resp.Path)
	assert.Equal(t, violations, resp.ValidationErrors)
	assert.WithinDuration(t, time.Now().UTC(), resp.Timestamp, time.Second)
}
