package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus represents the payment state of a rent or utility bill
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "unpaid"
	BillStatusPartial BillStatus = "partial"
	BillStatusPaid    BillStatus = "paid"
)

// IsValid checks if the status is valid
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusUnpaid, BillStatusPartial, BillStatusPaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether a payment may move the bill from s to next
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	switch s {
	case BillStatusUnpaid, BillStatusPartial:
		return next == BillStatusPartial || next == BillStatusPaid
	}
	return false
}

// Bill is a rent or utility bill settled through the payment router
type Bill struct {
	shared.BaseEntity
	BranchID   *uuid.UUID
	Name       string
	Amount     decimal.Decimal
	PaidAmount decimal.Decimal
	Balance    decimal.Decimal
	DueDate    *time.Time
	Status     BillStatus
	Remarks    string
}

// NewBill creates an unpaid bill
func NewBill(branchID *uuid.UUID, name string, amount decimal.Decimal, dueDate *time.Time, remarks string) (*Bill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("bill name is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("bill amount must be greater than zero")
	}
	var due *time.Time
	if dueDate != nil {
		d := shared.NormalizeDate(*dueDate)
		due = &d
	}
	return &Bill{
		BaseEntity: shared.NewBaseEntity(),
		BranchID:   branchID,
		Name:       name,
		Amount:     amount,
		PaidAmount: decimal.Zero,
		Balance:    amount,
		DueDate:    due,
		Status:     BillStatusUnpaid,
		Remarks:    strings.TrimSpace(remarks),
	}, nil
}

// CheckPayable verifies a payment of amount fits within the balance
func (b *Bill) CheckPayable(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("payment amount must be greater than zero")
	}
	if amount.GreaterThan(b.Balance) {
		return shared.NewDomainError(shared.CodeAmountExceedsBalance,
			fmt.Sprintf("payment amount %s exceeds bill balance %s", amount.StringFixed(2), b.Balance.StringFixed(2)))
	}
	return nil
}

// Pay applies a payment to the bill
func (b *Bill) Pay(amount decimal.Decimal) error {
	if err := b.CheckPayable(amount); err != nil {
		return err
	}
	paid := b.PaidAmount.Add(amount)
	balance := ComputeBalance(b.Amount, paid)
	next := BillStatusPartial
	if balance.IsZero() {
		next = BillStatusPaid
	}
	if !b.Status.CanTransitionTo(next) {
		return shared.NewConflictError("cannot move bill from %s to %s", b.Status, next)
	}
	b.PaidAmount = paid
	b.Balance = balance
	b.Status = next
	b.Touch()
	return nil
}
