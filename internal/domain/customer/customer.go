package customer

import "time"

// Customer is the persisted record. Deleted rows stay in the store forever;
// every read path excludes them.
type Customer struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
	Deleted      bool      `json:"deleted"`
}

// NewCustomer builds an unsaved record. The store replaces both timestamps
// with its own clock on insert; these values only matter to callers that
// never persist.
func NewCustomer(firstName, lastName, email string, phoneNumber *string) *Customer {
	now := time.Now()
	return &Customer{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PhoneNumber:  phoneNumber,
		CreatedAt:    now,
		LastModified: now,
		Deleted:      false,
	}
}

// Update replaces all four business fields and stamps LastModified.
// CreatedAt is never touched after the first persistence.
func (c *Customer) Update(firstName, lastName, email string, phoneNumber *string) {
	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.PhoneNumber = phoneNumber
	c.LastModified = time.Now()
}

// MarkDeleted flips the soft-delete flag. The row itself is kept.
func (c *Customer) MarkDeleted() {
	if !c.Deleted {
		c.Deleted = true
		c.LastModified = time.Now()
	}
}
