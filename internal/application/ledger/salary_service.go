package ledger

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryInput is the input for an employee's salary for one period
type SalaryInput struct {
	EmployeeName string
	BranchID     *uuid.UUID
	Period       string
	Amount       decimal.Decimal
	Remarks      string
}

// SalaryService manages salary records. Salaries are paid through PaymentRouter.
type SalaryService struct {
	base
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(deps Dependencies) *SalaryService {
	return &SalaryService{base: newBase(deps)}
}

// CreateSalary records an unpaid salary
func (s *SalaryService) CreateSalary(ctx context.Context, in SalaryInput) (*finance.SalaryRecord, error) {
	record, err := finance.NewSalaryRecord(in.EmployeeName, in.BranchID, in.Period, in.Amount, in.Remarks)
	if err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, in.BranchID, s.repos.Branches().ExistsByID, "branch"); err != nil {
		return nil, err
	}
	if err := s.repos.Salaries().Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetSalary returns a salary record
func (s *SalaryService) GetSalary(ctx context.Context, id uuid.UUID) (*finance.SalaryRecord, error) {
	return s.repos.Salaries().FindByID(ctx, id)
}

// ListSalaries lists salary records matching the filter
func (s *SalaryService) ListSalaries(ctx context.Context, filter finance.SalaryFilter) ([]finance.SalaryRecord, int64, error) {
	return s.repos.Salaries().FindAll(ctx, filter)
}
