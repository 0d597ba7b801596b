// Package cashregister models the daily cash count of a branch.
package cashregister

import (
	"context"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Figures are the day's cash movements as entered by the cashier
type Figures struct {
	OpeningCash    decimal.Decimal
	SalesCash      decimal.Decimal
	ExpenseCash    decimal.Decimal
	BankDeposit    decimal.Decimal
	BankWithdrawal decimal.Decimal
	// ClosingCash is the counted amount; nil means the drawer is assumed to balance
	ClosingCash *decimal.Decimal
}

// Expected returns opening + sales - expense - deposit + withdrawal
func (f Figures) Expected() decimal.Decimal {
	return f.OpeningCash.Add(f.SalesCash).Sub(f.ExpenseCash).Sub(f.BankDeposit).Add(f.BankWithdrawal)
}

// CashEntry is the single cash register entry for a branch and day
type CashEntry struct {
	shared.BaseEntity
	BranchID        uuid.UUID
	EntryDate       time.Time
	OpeningCash     decimal.Decimal
	SalesCash       decimal.Decimal
	ExpenseCash     decimal.Decimal
	BankDeposit     decimal.Decimal
	BankWithdrawal  decimal.Decimal
	ExpectedClosing decimal.Decimal
	ClosingCash     decimal.Decimal
	Difference      decimal.Decimal
	Remarks         string
}

// NewCashEntry creates an entry and computes expected closing and difference
func NewCashEntry(branchID uuid.UUID, entryDate time.Time, fig Figures, remarks string) (*CashEntry, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch_id is required")
	}
	if entryDate.IsZero() {
		return nil, shared.NewValidationError("entry_date is required")
	}
	e := &CashEntry{
		BaseEntity: shared.NewBaseEntity(),
		BranchID:   branchID,
		EntryDate:  shared.NormalizeDate(entryDate),
	}
	if err := e.apply(fig, remarks); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the figures, keeping branch and date
func (e *CashEntry) Update(fig Figures, remarks string) error {
	if err := e.apply(fig, remarks); err != nil {
		return err
	}
	e.Touch()
	return nil
}

func (e *CashEntry) apply(fig Figures, remarks string) error {
	for name, v := range map[string]decimal.Decimal{
		"opening_cash":    fig.OpeningCash,
		"sales_cash":      fig.SalesCash,
		"expense_cash":    fig.ExpenseCash,
		"bank_deposit":    fig.BankDeposit,
		"bank_withdrawal": fig.BankWithdrawal,
	} {
		if v.IsNegative() {
			return shared.NewValidationError("%s cannot be negative", name)
		}
	}

	expected := fig.Expected()
	closing := expected
	if fig.ClosingCash != nil {
		closing = *fig.ClosingCash
	}

	e.OpeningCash = fig.OpeningCash
	e.SalesCash = fig.SalesCash
	e.ExpenseCash = fig.ExpenseCash
	e.BankDeposit = fig.BankDeposit
	e.BankWithdrawal = fig.BankWithdrawal
	e.ExpectedClosing = expected
	e.ClosingCash = closing
	e.Difference = closing.Sub(expected)
	e.Remarks = strings.TrimSpace(remarks)
	return nil
}

// IsBalanced returns true when the counted cash matches the expected cash
func (e *CashEntry) IsBalanced() bool {
	return e.Difference.IsZero()
}

// EntryFilter narrows cash entry queries
type EntryFilter struct {
	shared.Filter
	BranchID *uuid.UUID
}

// Repository defines persistence for cash entries
type Repository interface {
	FindByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time) (*CashEntry, error)
	FindAll(ctx context.Context, filter EntryFilter) ([]CashEntry, int64, error)
	ExistsByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time) (bool, error)
	Save(ctx context.Context, entry *CashEntry) error
}
