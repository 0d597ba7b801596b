package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the recovery state of a receivable
type ReceivableStatus string

const (
	ReceivableStatusPending   ReceivableStatus = "pending"   // No recovery yet
	ReceivableStatusPartial   ReceivableStatus = "partial"   // 0 < amount < original
	ReceivableStatusRecovered ReceivableStatus = "recovered" // amount == 0
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusPartial, ReceivableStatusRecovered:
		return true
	}
	return false
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the receivable is fully recovered
func (s ReceivableStatus) IsTerminal() bool {
	return s == ReceivableStatusRecovered
}

// CanTransitionTo reports whether moving from s to next is a legal move.
// Only recoveries change status, so pending is never re-entered.
func (s ReceivableStatus) CanTransitionTo(next ReceivableStatus) bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusPartial:
		return next == ReceivableStatusPartial || next == ReceivableStatusRecovered
	}
	return false
}

// Receivable is an amount owed by a customer, reduced by recoveries
type Receivable struct {
	shared.BaseEntity
	CustomerID     *uuid.UUID
	SaleID         *uuid.UUID // set when generated from a credit sale
	BranchID       *uuid.UUID
	OriginalAmount decimal.Decimal
	Amount         decimal.Decimal // remaining due
	DueDate        *time.Time
	Status         ReceivableStatus
	Remarks        string
}

// ReceivableParams holds the input for creating a receivable
type ReceivableParams struct {
	CustomerID *uuid.UUID
	SaleID     *uuid.UUID
	BranchID   *uuid.UUID
	Amount     decimal.Decimal
	DueDate    *time.Time
	Remarks    string
}

// NewReceivable creates a pending receivable
func NewReceivable(p ReceivableParams) (*Receivable, error) {
	if !p.Amount.IsPositive() {
		return nil, shared.NewValidationError("receivable amount must be greater than zero")
	}
	var due *time.Time
	if p.DueDate != nil {
		d := shared.NormalizeDate(*p.DueDate)
		due = &d
	}
	return &Receivable{
		BaseEntity:     shared.NewBaseEntity(),
		CustomerID:     p.CustomerID,
		SaleID:         p.SaleID,
		BranchID:       p.BranchID,
		OriginalAmount: p.Amount,
		Amount:         p.Amount,
		DueDate:        due,
		Status:         ReceivableStatusPending,
		Remarks:        strings.TrimSpace(p.Remarks),
	}, nil
}

// ReceivableRecovery is an append-only record of money recovered against a receivable
type ReceivableRecovery struct {
	shared.BaseEntity
	ReceivableID uuid.UUID
	Amount       decimal.Decimal
	Voucher      string
	RecordedAt   time.Time
}

// Recover applies a recovery and returns the history row to persist
func (r *Receivable) Recover(amount decimal.Decimal, voucher string) (*ReceivableRecovery, error) {
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("recovery amount must be greater than zero")
	}
	if amount.GreaterThan(r.Amount) {
		return nil, shared.NewDomainError(shared.CodeAmountExceedsBalance,
			fmt.Sprintf("recovery amount %s exceeds amount due %s", amount.StringFixed(2), r.Amount.StringFixed(2)))
	}

	remaining := r.Amount.Sub(amount)
	next := ReceivableStatusPartial
	if !remaining.IsPositive() {
		next = ReceivableStatusRecovered
		remaining = decimal.Zero
	}
	if !r.Status.CanTransitionTo(next) {
		return nil, shared.NewConflictError("cannot move receivable from %s to %s", r.Status, next)
	}

	r.Amount = remaining
	r.Status = next
	r.Touch()

	return &ReceivableRecovery{
		BaseEntity:   shared.NewBaseEntity(),
		ReceivableID: r.ID,
		Amount:       amount,
		Voucher:      voucher,
		RecordedAt:   time.Now(),
	}, nil
}

// Recovered returns how much has been recovered so far
func (r *Receivable) Recovered() decimal.Decimal {
	return r.OriginalAmount.Sub(r.Amount)
}
