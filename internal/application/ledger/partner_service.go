package ledger

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/partner"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerService manages customers, suppliers and branches
type PartnerService struct {
	base
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(deps Dependencies) *PartnerService {
	return &PartnerService{base: newBase(deps)}
}

// CreateCustomer registers a customer
func (s *PartnerService) CreateCustomer(ctx context.Context, name string, contact partner.Contact) (*partner.Customer, error) {
	customer, err := partner.NewCustomer(name, contact)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Customers().Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns a customer
func (s *PartnerService) GetCustomer(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return s.repos.Customers().FindByID(ctx, id)
}

// ListCustomers lists customers
func (s *PartnerService) ListCustomers(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	return s.repos.Customers().FindAll(ctx, filter)
}

// CreateSupplier registers a supplier
func (s *PartnerService) CreateSupplier(ctx context.Context, name string, contact partner.Contact) (*partner.Supplier, error) {
	supplier, err := partner.NewSupplier(name, contact)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Suppliers().Save(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier returns a supplier
func (s *PartnerService) GetSupplier(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	return s.repos.Suppliers().FindByID(ctx, id)
}

// ListSuppliers lists suppliers
func (s *PartnerService) ListSuppliers(ctx context.Context, filter shared.Filter) ([]partner.Supplier, int64, error) {
	return s.repos.Suppliers().FindAll(ctx, filter)
}

// CreateBranch registers a branch
func (s *PartnerService) CreateBranch(ctx context.Context, name, address string) (*partner.Branch, error) {
	branch, err := partner.NewBranch(name, address)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Branches().Save(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// GetBranch returns a branch
func (s *PartnerService) GetBranch(ctx context.Context, id uuid.UUID) (*partner.Branch, error) {
	return s.repos.Branches().FindByID(ctx, id)
}

// ListBranches lists branches
func (s *PartnerService) ListBranches(ctx context.Context, filter shared.Filter) ([]partner.Branch, int64, error) {
	return s.repos.Branches().FindAll(ctx, filter)
}
