package dto

import (
	"regexp"
	"strings"
	"time"

	"customer-service/internal/domain/customer"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CustomerRequest is the create/update payload. Both operations take the
// full record; there is no partial update.
type CustomerRequest struct {
	FirstName   string `json:"firstName" example:"Jane"`
	LastName    string `json:"lastName" example:"Doe"`
	Email       string `json:"email" example:"jane.doe@example.com"`
	PhoneNumber string `json:"phoneNumber,omitempty" example:"+12025550147"`
}

// Validate collects every field violation keyed by field name so the
// response can report them all at once.
func (r *CustomerRequest) Validate() map[string]string {
	violations := make(map[string]string)

	if strings.TrimSpace(r.FirstName) == "" {
		violations["firstName"] = "First name is required"
	} else if len(r.FirstName) > 50 {
		violations["firstName"] = "First name must not exceed 50 characters"
	}

	if strings.TrimSpace(r.LastName) == "" {
		violations["lastName"] = "Last name is required"
	} else if len(r.LastName) > 50 {
		violations["lastName"] = "Last name must not exceed 50 characters"
	}

	if strings.TrimSpace(r.Email) == "" {
		violations["email"] = "Email is required"
	} else if !emailRegex.MatchString(strings.TrimSpace(r.Email)) {
		violations["email"] = "Email should be valid"
	}

	if len(r.PhoneNumber) > 15 {
		violations["phoneNumber"] = "Phone number must not exceed 15 characters"
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}

// Phone returns the optional phone number, nil when the field was omitted
// or blank.
func (r *CustomerRequest) Phone() *string {
	phone := strings.TrimSpace(r.PhoneNumber)
	if phone == "" {
		return nil
	}
	return &phone
}

type CustomerResponse struct {
	ID           int64     `json:"id" example:"1"`
	FirstName    string    `json:"firstName" example:"Jane"`
	LastName     string    `json:"lastName" example:"Doe"`
	Email        string    `json:"email" example:"jane.doe@example.com"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty" example:"+12025550147"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           cust.ID,
		FirstName:    cust.FirstName,
		LastName:     cust.LastName,
		Email:        cust.Email,
		PhoneNumber:  cust.PhoneNumber,
		CreatedAt:    cust.CreatedAt,
		LastModified: cust.LastModified,
	}
}

// CustomerPageResponse is the list envelope. Page is zero-based here even
// though the page query parameter is one-based.
type CustomerPageResponse struct {
	Customers     []CustomerResponse `json:"customers"`
	Page          int                `json:"page" example:"0"`
	Size          int                `json:"size" example:"10"`
	TotalElements int64              `json:"totalElements" example:"42"`
	TotalPages    int                `json:"totalPages" example:"5"`
	First         bool               `json:"first" example:"true"`
	Last          bool               `json:"last" example:"false"`
	HasNext       bool               `json:"hasNext" example:"true"`
	HasPrevious   bool               `json:"hasPrevious" example:"false"`
}

func NewCustomerPageResponse(page *customer.Page) CustomerPageResponse {
	customers := make([]CustomerResponse, 0, len(page.Items))
	for _, cust := range page.Items {
		customers = append(customers, NewCustomerResponse(cust))
	}
	return CustomerPageResponse{
		Customers:     customers,
		Page:          page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First,
		Last:          page.Last,
		HasNext:       page.HasNext,
		HasPrevious:   page.HasPrevious,
	}
}

// ErrorResponse mirrors the error body shape across all failure statuses.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status" example:"404"`
	Error     string    `json:"error" example:"Not Found"`
	Message   string    `json:"message" example:"Customer not found with id: 1"`
	Path      string    `json:"path" example:"/api/v1/customers/1"`
}

// ValidationErrorResponse extends ErrorResponse with the per-field
// violation map.
type ValidationErrorResponse struct {
	ErrorResponse
	ValidationErrors map[string]string `json:"validationErrors"`
}

func NewErrorResponse(status int, statusText, message, path string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     statusText,
		Message:   message,
		Path:      path,
	}
}

func NewValidationErrorResponse(status int, statusText, message, path string, violations map[string]string) ValidationErrorResponse {
	return ValidationErrorResponse{
		ErrorResponse:    NewErrorResponse(status, statusText, message, path),
		ValidationErrors: violations,
	}
}
