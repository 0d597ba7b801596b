package ledger

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceivableInput is the input for a standalone receivable
type ReceivableInput struct {
	CustomerID *uuid.UUID
	BranchID   *uuid.UUID
	Amount     decimal.Decimal
	DueDate    *time.Time
	Remarks    string
}

// ReceivableDetail is a receivable with its recovery history
type ReceivableDetail struct {
	finance.Receivable
	Recoveries []finance.ReceivableRecovery
}

// ReceivableService manages amounts owed by customers.
// Recoveries are applied through PaymentRouter so every one carries a payment audit row.
type ReceivableService struct {
	base
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(deps Dependencies) *ReceivableService {
	return &ReceivableService{base: newBase(deps)}
}

// CreateStandalone records a receivable that is not tied to a sale
func (s *ReceivableService) CreateStandalone(ctx context.Context, in ReceivableInput) (*finance.Receivable, error) {
	receivable, err := finance.NewReceivable(finance.ReceivableParams{
		CustomerID: in.CustomerID,
		BranchID:   in.BranchID,
		Amount:     in.Amount,
		DueDate:    in.DueDate,
		Remarks:    in.Remarks,
	})
	if err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, in.CustomerID, s.repos.Customers().ExistsByID, "customer"); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, in.BranchID, s.repos.Branches().ExistsByID, "branch"); err != nil {
		return nil, err
	}
	if err := s.repos.Receivables().Save(ctx, receivable); err != nil {
		return nil, err
	}
	s.log(ctx).Info("Receivable created",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("amount", receivable.Amount.String()),
	)
	return receivable, nil
}

// GetReceivable returns a receivable with its recoveries, oldest first
func (s *ReceivableService) GetReceivable(ctx context.Context, id uuid.UUID) (*ReceivableDetail, error) {
	receivable, err := s.repos.Receivables().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	recoveries, err := s.repos.Receivables().FindRecoveries(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReceivableDetail{Receivable: *receivable, Recoveries: recoveries}, nil
}

// ListReceivables lists receivables matching the filter
func (s *ReceivableService) ListReceivables(ctx context.Context, filter finance.ReceivableFilter) ([]finance.Receivable, int64, error) {
	return s.repos.Receivables().FindAll(ctx, filter)
}

// recoverReceivable applies a recovery and appends its history row
func recoverReceivable(ctx context.Context, repos Repositories, receivable *finance.Receivable, amount decimal.Decimal, vch string) error {
	recovery, err := receivable.Recover(amount, vch)
	if err != nil {
		return err
	}
	if err := repos.Receivables().Save(ctx, receivable); err != nil {
		return err
	}
	return repos.Receivables().SaveRecovery(ctx, recovery)
}
