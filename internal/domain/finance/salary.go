package finance

import (
	"regexp"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryStatus represents whether a salary record was settled
type SalaryStatus string

const (
	SalaryStatusUnpaid SalaryStatus = "unpaid"
	SalaryStatusPaid   SalaryStatus = "paid"
)

// IsValid checks if the status is valid
func (s SalaryStatus) IsValid() bool {
	return s == SalaryStatusUnpaid || s == SalaryStatusPaid
}

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// SalaryRecord is one employee's salary for a period (YYYY-MM)
type SalaryRecord struct {
	shared.BaseEntity
	EmployeeName string
	BranchID     *uuid.UUID
	Period       string
	Amount       decimal.Decimal
	PaidAmount   decimal.Decimal
	PaidDate     *time.Time
	Status       SalaryStatus
	Remarks      string
}

// NewSalaryRecord creates an unpaid salary record
func NewSalaryRecord(employeeName string, branchID *uuid.UUID, period string, amount decimal.Decimal, remarks string) (*SalaryRecord, error) {
	employeeName = strings.TrimSpace(employeeName)
	if employeeName == "" {
		return nil, shared.NewValidationError("employee_name is required")
	}
	period = strings.TrimSpace(period)
	if !periodPattern.MatchString(period) {
		return nil, shared.NewValidationError("period must be formatted as YYYY-MM")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("salary amount must be greater than zero")
	}
	return &SalaryRecord{
		BaseEntity:   shared.NewBaseEntity(),
		EmployeeName: employeeName,
		BranchID:     branchID,
		Period:       period,
		Amount:       amount,
		PaidAmount:   decimal.Zero,
		Status:       SalaryStatusUnpaid,
		Remarks:      strings.TrimSpace(remarks),
	}, nil
}

// CheckPayable rejects records that were already paid
func (s *SalaryRecord) CheckPayable() error {
	if s.Status == SalaryStatusPaid {
		return shared.NewDomainError(shared.CodeAlreadyPaid, "salary is already paid for "+s.Period)
	}
	return nil
}

// Pay settles the record with the amount actually paid
func (s *SalaryRecord) Pay(amount decimal.Decimal, date time.Time) error {
	if err := s.CheckPayable(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return shared.NewValidationError("payment amount must be greater than zero")
	}
	paidOn := shared.NormalizeDate(date)
	s.PaidAmount = amount
	s.PaidDate = &paidOn
	s.Status = SalaryStatusPaid
	s.Touch()
	return nil
}
