package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is shared by the service tests.
type MockCustomerRepository struct {
	mock.Mock
}

var _ CustomerRepository = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) Save(ctx context.Context, customer *Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	args := m.Called(ctx, customerID)
	if cust, ok := args.Get(0).(*Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindPage(ctx context.Context, query ListQuery) ([]*Customer, int64, error) {
	args := m.Called(ctx, query)
	if customers, ok := args.Get(0).([]*Customer); ok {
		return customers, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{ID: 42}
	assert.Equal(t, "Customer not found with id: 42", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateEmailError(t *testing.T) {
	err := &DuplicateEmailError{Email: "jane.doe@example.com"}
	assert.Equal(t, "Customer with email jane.doe@example.com already exists", err.Error())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestInvalidSortFieldError(t *testing.T) {
	err := &InvalidSortFieldError{Field: "deleted"}
	assert.Equal(t, "Invalid sort field: deleted", err.Error())
	assert.ErrorIs(t, err, ErrInvalidSortField)

	var typed *InvalidSortFieldError
	assert.True(t, errors.As(error(err), &typed))
}
