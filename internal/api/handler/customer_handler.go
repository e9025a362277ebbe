package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("customerID not found in URL path")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("Customer ID must be positive")
	}
	return id, nil
}

// listParams carries the parsed and validated query parameters. page is
// the 1-based value from the request; the query handed to the service is
// zero-based.
type listParams struct {
	page     int
	pageSize int
	sortBy   string
	sortDir  customer.SortDirection
	name     string
	email    string
}

func parseListParams(r *http.Request) (listParams, string) {
	params := listParams{
		page:     defaultPage,
		pageSize: defaultPageSize,
		sortBy:   "id",
		sortDir:  customer.SortDesc,
	}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, "Page number must be at least 1"
		}
		params.page = page
	}

	if raw := q.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return params, "Page size must be at least 1"
		}
		if size > maxPageSize {
			return params, "Page size must not exceed 100"
		}
		params.pageSize = size
	}

	if raw := q.Get("sortBy"); raw != "" {
		if _, ok := customer.SortColumn(raw); !ok {
			return params, "Invalid sort field"
		}
		params.sortBy = raw
	}

	if raw := q.Get("sortDir"); raw != "" {
		lowered := strings.ToLower(raw)
		if lowered != "asc" && lowered != "desc" {
			return params, "Sort direction must be 'asc' or 'desc'"
		}
		params.sortDir = customer.ParseSortDirection(lowered)
	}

	params.name = strings.TrimSpace(q.Get("name"))
	params.email = strings.TrimSpace(q.Get("email"))

	return params, ""
}

// ListCustomers returns one page of non-deleted customers.
//
// @Summary List customers
// @Description Retrieve a paginated list of all active customers with sorting and optional name/email filters.
// @Tags Customers
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Number of items per page (1-100)" default(10)
// @Param sortBy query string false "Field to sort by (id, firstName, lastName, email, phoneNumber, createdAt, lastModified)" default(id)
// @Param sortDir query string false "Sort direction (asc or desc)" default(desc)
// @Param name query string false "Case-insensitive substring match on first or last name"
// @Param email query string false "Case-insensitive substring match on email"
// @Success 200 {object} dto.CustomerPageResponse "Successfully retrieved customers"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized access"
// @Router /customers [get]
// @Security BasicAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	params, problem := parseListParams(r)
	if problem != "" {
		respondBadRequest(w, r, problem)
		return
	}

	query := customer.ListQuery{
		Page:    params.page - 1,
		Size:    params.pageSize,
		SortBy:  params.sortBy,
		SortDir: params.sortDir,
		Name:    params.name,
		Email:   params.email,
	}

	page, err := h.service.ListCustomers(r.Context(), query)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerPageResponse(page))
}

// GetCustomer returns a single non-deleted customer by id.
//
// @Summary Get customer by ID
// @Description Retrieve a specific customer by their unique identifier.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Successfully retrieved customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized access"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID} [get]
// @Security BasicAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	cust, err := h.service.GetCustomerByID(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// CreateCustomer creates a new customer record.
//
// @Summary Create new customer
// @Description Create a new customer. The email must be unique among non-deleted customers.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer creation payload"
// @Success 201 {object} dto.CustomerResponse "Customer created successfully"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid customer data or validation errors"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized access"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 409 {object} dto.ErrorResponse "Customer with email already exists"
// @Router /customers [post]
// @Security BasicAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, r, "Malformed JSON request")
		return
	}
	if violations := req.Validate(); violations != nil {
		respondValidationErrors(w, r, violations)
		return
	}

	cust, err := h.service.CreateCustomer(r.Context(), req.FirstName, req.LastName, req.Email, req.Phone())
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Created customer", slog.Int64("customerID", cust.ID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(cust))
}

// UpdateCustomer replaces an existing customer record.
//
// @Summary Update customer
// @Description Update an existing customer's information. The whole record is replaced.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param request body dto.CustomerRequest true "Customer update payload"
// @Success 200 {object} dto.CustomerResponse "Customer updated successfully"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid customer data or validation errors"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized access"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Customer with email already exists"
// @Router /customers/{customerID} [put]
// @Security BasicAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, r, "Malformed JSON request")
		return
	}
	if violations := req.Validate(); violations != nil {
		respondValidationErrors(w, r, violations)
		return
	}

	cust, err := h.service.UpdateCustomer(r.Context(), customerID, req.FirstName, req.LastName, req.Email, req.Phone())
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Updated customer", slog.Int64("customerID", cust.ID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// DeleteCustomer soft deletes a customer.
//
// @Summary Delete customer
// @Description Soft delete a customer. The record is retained but excluded from all reads, and its email becomes reusable.
// @Tags Customers
// @Param customerID path int true "Customer ID"
// @Success 204 "Customer deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized access"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID} [delete]
// @Security BasicAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Soft deleted customer", slog.Int64("customerID", customerID))
	w.WriteHeader(http.StatusNoContent)
}
