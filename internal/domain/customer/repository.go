package customer

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateEmail = errors.New("customer email already in use")

	ErrInvalidSortField = errors.New("invalid sort field")
)

// NotFoundError reports that no non-deleted customer has the given id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Customer not found with id: %d", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateEmailError reports an email collision with another non-deleted
// customer on create or update.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("Customer with email %s already exists", e.Email)
}

func (e *DuplicateEmailError) Unwrap() error { return ErrDuplicateEmail }

type InvalidSortFieldError struct {
	Field string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("Invalid sort field: %s", e.Field)
}

func (e *InvalidSortFieldError) Unwrap() error { return ErrInvalidSortField }

// CustomerRepository is the store adapter contract. Every read scopes to
// non-deleted rows; the soft-delete predicate lives in the queries, not in
// ad-hoc flag checks above them.
type CustomerRepository interface {
	// Save inserts when customer.ID is zero, otherwise replaces the row.
	Save(ctx context.Context, customer *Customer) error

	// FindByID returns the non-deleted customer with the given id.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// ExistsByEmail reports whether a non-deleted customer uses the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindPage returns one window of non-deleted customers matching the
	// query plus the total match count independent of the window.
	FindPage(ctx context.Context, query ListQuery) ([]*Customer, int64, error)
}
