package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"customer-service/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

// CustomerService is the single authority for reading and mutating
// customer records under the uniqueness and soft-delete invariants.
type CustomerService interface {
	ListCustomers(ctx context.Context, query ListQuery) (*Page, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*Customer, error)
	CreateCustomer(ctx context.Context, firstName, lastName, email string, phoneNumber *string) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, email string, phoneNumber *string) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) ListCustomers(ctx context.Context, query ListQuery) (*Page, error) {
	logCtx := s.logger.With(
		slog.Int("page", query.Page),
		slog.Int("size", query.Size),
		slog.String("sortBy", query.SortBy),
		slog.String("sortDir", string(query.SortDir)),
	)
	logCtx.InfoContext(ctx, "Fetching active customers")

	if _, ok := SortColumn(query.SortBy); !ok {
		logCtx.WarnContext(ctx, "Rejected unknown sort field")
		return nil, &InvalidSortFieldError{Field: query.SortBy}
	}

	items, total, err := s.repo.FindPage(ctx, query)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	logCtx.InfoContext(ctx, "Found active customers", slog.Int64("totalElements", total))
	return NewPage(items, query.Page, query.Size, total), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Fetching active customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, &NotFoundError{ID: customerID}
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Found customer", slog.String("email", cust.Email))
	return cust, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, firstName, lastName, email string, phoneNumber *string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	logCtx := s.logger.With(slog.String("email", email))
	logCtx.InfoContext(ctx, "Creating new customer")

	if firstName == "" {
		logCtx.WarnContext(ctx, "Validation failed: first name is empty")
		return nil, errors.New("customer first name cannot be empty")
	}
	if lastName == "" {
		logCtx.WarnContext(ctx, "Validation failed: last name is empty")
		return nil, errors.New("customer last name cannot be empty")
	}
	if email == "" {
		logCtx.WarnContext(ctx, "Validation failed: email is empty")
		return nil, errors.New("customer email cannot be empty")
	}

	// Read-then-decide uniqueness check. Two concurrent creates with the
	// same email can both pass this before either writes; the partial
	// unique index is the structural backstop and surfaces below as
	// ErrAlreadyExists.
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error checking email uniqueness", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		logCtx.WarnContext(ctx, "Email already used by a non-deleted customer")
		return nil, &DuplicateEmailError{Email: email}
	}

	cust := NewCustomer(firstName, lastName, email, phoneNumber)
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Unique constraint rejected customer insert")
			return nil, &DuplicateEmailError{Email: email}
		}
		logCtx.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logCtx.InfoContext(ctx, "Successfully created customer", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, firstName, lastName, email string, phoneNumber *string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Updating customer")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, &NotFoundError{ID: customerID}
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	// The uniqueness check is skipped when the email is unchanged: a record
	// keeping its own email needs no re-validation.
	if cust.Email != email {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			logCtx.ErrorContext(ctx, "Repository error checking email uniqueness", slog.Any("error", err))
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if exists {
			logCtx.WarnContext(ctx, "New email already used by another non-deleted customer")
			return nil, &DuplicateEmailError{Email: email}
		}
	}

	cust.Update(firstName, lastName, email, phoneNumber)
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Unique constraint rejected customer update")
			return nil, &DuplicateEmailError{Email: email}
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer disappeared before update completed")
			return nil, &NotFoundError{ID: customerID}
		}
		logCtx.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Soft deleting customer")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return &NotFoundError{ID: customerID}
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer for delete", slog.Any("error", err))
		return fmt.Errorf("cannot find customer %d to delete: %w", customerID, err)
	}

	cust.MarkDeleted()
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer disappeared before delete completed")
			return &NotFoundError{ID: customerID}
		}
		logCtx.ErrorContext(ctx, "Repository failed to save soft delete", slog.Any("error", err))
		return fmt.Errorf("failed to soft delete customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully soft deleted customer")
	return nil
}
