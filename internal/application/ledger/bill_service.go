package ledger

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillInput is the input for a rent or utility bill
type BillInput struct {
	BranchID *uuid.UUID
	Name     string
	Amount   decimal.Decimal
	DueDate  *time.Time
	Remarks  string
}

// BillService manages rent and utility bills. Bills are paid through PaymentRouter.
type BillService struct {
	base
}

// NewBillService creates a new BillService
func NewBillService(deps Dependencies) *BillService {
	return &BillService{base: newBase(deps)}
}

// CreateBill records an unpaid bill
func (s *BillService) CreateBill(ctx context.Context, in BillInput) (*finance.Bill, error) {
	bill, err := finance.NewBill(in.BranchID, in.Name, in.Amount, in.DueDate, in.Remarks)
	if err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, in.BranchID, s.repos.Branches().ExistsByID, "branch"); err != nil {
		return nil, err
	}
	if err := s.repos.Bills().Save(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBill returns a bill
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*finance.Bill, error) {
	return s.repos.Bills().FindByID(ctx, id)
}

// ListBills lists bills matching the filter
func (s *BillService) ListBills(ctx context.Context, filter finance.BillFilter) ([]finance.Bill, int64, error) {
	return s.repos.Bills().FindAll(ctx, filter)
}
