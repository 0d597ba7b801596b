package partner

import (
	"net/mail"
	"strings"

	"github.com/bookkeeping/backend/internal/domain/shared"
)

// Contact holds the contact details shared by customers and suppliers
type Contact struct {
	Phone   string
	Email   string
	Address string
}

func (c Contact) normalize() (Contact, error) {
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return c, shared.NewValidationError("invalid email %q", c.Email)
		}
	}
	return c, nil
}

func validName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewValidationError("%s name is required", kind)
	}
	if len(name) > 200 {
		return "", shared.NewValidationError("%s name cannot exceed 200 characters", kind)
	}
	return name, nil
}

// Customer buys on credit and owes receivables
type Customer struct {
	shared.BaseEntity
	Name string
	Contact
}

// NewCustomer creates a customer
func NewCustomer(name string, contact Contact) (*Customer, error) {
	name, err := validName("customer", name)
	if err != nil {
		return nil, err
	}
	contact, err = contact.normalize()
	if err != nil {
		return nil, err
	}
	return &Customer{BaseEntity: shared.NewBaseEntity(), Name: name, Contact: contact}, nil
}

// Supplier issues purchase invoices
type Supplier struct {
	shared.BaseEntity
	Name string
	Contact
}

// NewSupplier creates a supplier
func NewSupplier(name string, contact Contact) (*Supplier, error) {
	name, err := validName("supplier", name)
	if err != nil {
		return nil, err
	}
	contact, err = contact.normalize()
	if err != nil {
		return nil, err
	}
	return &Supplier{BaseEntity: shared.NewBaseEntity(), Name: name, Contact: contact}, nil
}

// Branch is a shop location owning sales and cash entries
type Branch struct {
	shared.BaseEntity
	Name    string
	Address string
}

// NewBranch creates a branch
func NewBranch(name, address string) (*Branch, error) {
	name, err := validName("branch", name)
	if err != nil {
		return nil, err
	}
	return &Branch{BaseEntity: shared.NewBaseEntity(), Name: name, Address: strings.TrimSpace(address)}, nil
}
