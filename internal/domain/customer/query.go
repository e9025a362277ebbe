package customer

import "strings"

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection normalizes a direction string case-insensitively.
// Anything other than "desc" yields ascending; HTTP callers are validated
// strictly at the boundary, so this defaulting is the contract for
// in-process callers only.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(s, "desc") {
		return SortDesc
	}
	return SortAsc
}

// sortColumns maps the externally visible sort fields to their columns.
// The map doubles as the whitelist: a field outside it is a caller error.
var sortColumns = map[string]string{
	"id":           "id",
	"firstName":    "first_name",
	"lastName":     "last_name",
	"email":        "email",
	"phoneNumber":  "phone_number",
	"createdAt":    "created_at",
	"lastModified": "last_modified",
}

func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}

// SortFields returns the allowed sort field names.
func SortFields() []string {
	fields := make([]string, 0, len(sortColumns))
	for f := range sortColumns {
		fields = append(fields, f)
	}
	return fields
}

// ListQuery is the query specification handed down to the store adapter.
// Page is zero-based; converting from the API's 1-based parameter happens
// at the boundary. Name and Email are optional case-insensitive substring
// filters.
type ListQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir SortDirection
	Name    string
	Email   string
}

// Page is one window of non-deleted customers plus pagination metadata.
type Page struct {
	Items         []*Customer
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
	First         bool
	Last          bool
	HasNext       bool
	HasPrevious   bool
}

// NewPage computes the metadata from the window position and the total
// match count. TotalPages is ceil(total/size), 0 when nothing matches.
func NewPage(items []*Customer, number, size int, totalElements int64) *Page {
	totalPages := 0
	if size > 0 {
		totalPages = int((totalElements + int64(size) - 1) / int64(size))
	}
	return &Page{
		Items:         items,
		Number:        number,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         number == 0,
		Last:          number >= totalPages-1,
		HasNext:       number < totalPages-1,
		HasPrevious:   number > 0,
	}
}
