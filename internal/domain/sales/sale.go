package sales

import (
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrSaleLocked is returned when a locked sale is edited or deleted
var ErrSaleLocked = shared.NewDomainError(shared.CodeLocked, "Sale is locked and cannot be modified")

// Figures are the monetary components entered for a sale
type Figures struct {
	Cash     decimal.Decimal
	Bank     decimal.Decimal
	Credit   decimal.Decimal
	Discount decimal.Decimal
	Returns  decimal.Decimal
}

// NetSales returns max(0, cash + bank + credit - discount - returns)
func (f Figures) NetSales() decimal.Decimal {
	net := f.Cash.Add(f.Bank).Add(f.Credit).Sub(f.Discount).Sub(f.Returns)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

func (f Figures) validate() error {
	parts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"cash_amount", f.Cash},
		{"bank_amount", f.Bank},
		{"credit_amount", f.Credit},
		{"discount", f.Discount},
		{"returns_amount", f.Returns},
	}
	for _, p := range parts {
		if p.value.IsNegative() {
			return shared.NewValidationError("%s cannot be negative", p.name)
		}
	}
	return nil
}

// SplitLine is a requested bank split, already checked against known banks
type SplitLine struct {
	BankID uuid.UUID
	Amount decimal.Decimal
}

// SaleBankSplit is one bank's share of a sale's bank amount
type SaleBankSplit struct {
	shared.BaseEntity
	SaleID uuid.UUID
	BankID uuid.UUID
	Amount decimal.Decimal
}

// Deposit is a bank credit a sale produces
type Deposit struct {
	BankID uuid.UUID
	Amount decimal.Decimal
}

// Params carries the resolved input for creating or editing a sale.
// When SplitsProvided is true the bank amount is the sum of Splits and
// Figures.Bank is ignored.
type Params struct {
	BranchID       *uuid.UUID
	CustomerID     *uuid.UUID
	BankID         *uuid.UUID
	Date           time.Time
	Figures        Figures
	SplitsProvided bool
	Splits         []SplitLine
	Remarks        string
	CreatedBy      string
}

// Sale is a day's sales record for a branch
type Sale struct {
	shared.BaseEntity
	Voucher       string
	BranchID      *uuid.UUID
	CustomerID    *uuid.UUID
	BankID        *uuid.UUID // primary bank; first split's bank when split
	Date          time.Time
	CashAmount    decimal.Decimal
	BankAmount    decimal.Decimal
	CreditAmount  decimal.Decimal
	Discount      decimal.Decimal
	ReturnsAmount decimal.Decimal
	NetSales      decimal.Decimal
	IsLocked      bool
	Remarks       string
	CreatedBy     string
	Splits        []SaleBankSplit
}

// NewSale creates a sale from resolved parameters
func NewSale(voucher string, p Params) (*Sale, error) {
	s := &Sale{
		BaseEntity: shared.NewBaseEntity(),
		Voucher:    voucher,
		CreatedBy:  p.CreatedBy,
	}
	if err := s.apply(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Edit recomputes the sale from new parameters, replacing its splits.
// Locked sales reject edits.
func (s *Sale) Edit(p Params) error {
	if err := s.EnsureModifiable(); err != nil {
		return err
	}
	if err := s.apply(p); err != nil {
		return err
	}
	s.Touch()
	return nil
}

func (s *Sale) apply(p Params) error {
	fig := p.Figures
	if err := fig.validate(); err != nil {
		return err
	}

	primary := p.BankID
	var splits []SaleBankSplit
	if p.SplitsProvided {
		fig.Bank = decimal.Zero
		for _, line := range p.Splits {
			if line.BankID == uuid.Nil || !line.Amount.IsPositive() {
				continue
			}
			fig.Bank = fig.Bank.Add(line.Amount)
			splits = append(splits, SaleBankSplit{
				BaseEntity: shared.NewBaseEntity(),
				SaleID:     s.ID,
				BankID:     line.BankID,
				Amount:     line.Amount,
			})
		}
		if len(splits) > 0 {
			first := splits[0].BankID
			primary = &first
		}
	} else if fig.Bank.IsPositive() && (p.BankID == nil || *p.BankID == uuid.Nil) {
		return shared.NewValidationError("bank_id is required when bank_amount is greater than zero")
	}

	date := p.Date
	if date.IsZero() {
		date = shared.Today()
	}

	s.BranchID = p.BranchID
	s.CustomerID = p.CustomerID
	s.BankID = primary
	s.Date = shared.NormalizeDate(date)
	s.CashAmount = fig.Cash
	s.BankAmount = fig.Bank
	s.CreditAmount = fig.Credit
	s.Discount = fig.Discount
	s.ReturnsAmount = fig.Returns
	s.NetSales = fig.NetSales()
	s.Remarks = strings.TrimSpace(p.Remarks)
	s.Splits = splits
	return nil
}

// Figures returns the sale's monetary components
func (s *Sale) Figures() Figures {
	return Figures{
		Cash:     s.CashAmount,
		Bank:     s.BankAmount,
		Credit:   s.CreditAmount,
		Discount: s.Discount,
		Returns:  s.ReturnsAmount,
	}
}

// Deposits returns the bank credits this sale produces: one per split, or a
// single deposit to the primary bank when there are no splits
func (s *Sale) Deposits() []Deposit {
	if !s.BankAmount.IsPositive() {
		return nil
	}
	if len(s.Splits) > 0 {
		out := make([]Deposit, 0, len(s.Splits))
		for _, sp := range s.Splits {
			out = append(out, Deposit{BankID: sp.BankID, Amount: sp.Amount})
		}
		return out
	}
	if s.BankID == nil {
		return nil
	}
	return []Deposit{{BankID: *s.BankID, Amount: s.BankAmount}}
}

// HasCredit returns true when part of the sale is owed by the customer
func (s *Sale) HasCredit() bool {
	return s.CreditAmount.IsPositive()
}

// EnsureModifiable returns ErrSaleLocked for locked sales
func (s *Sale) EnsureModifiable() error {
	if s.IsLocked {
		return ErrSaleLocked
	}
	return nil
}

// Lock sets the terminal lock flag. Locking twice is a no-op.
func (s *Sale) Lock() {
	if s.IsLocked {
		return
	}
	s.IsLocked = true
	s.Touch()
}

// SaleAttachment is metadata for a file stored in the attachment store
type SaleAttachment struct {
	shared.BaseEntity
	SaleID    uuid.UUID
	ObjectKey string
	FileName  string
}

// NewSaleAttachment creates attachment metadata for a sale
func NewSaleAttachment(saleID uuid.UUID, objectKey, fileName string) (*SaleAttachment, error) {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return nil, shared.NewValidationError("object_key is required")
	}
	return &SaleAttachment{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		ObjectKey:  objectKey,
		FileName:   strings.TrimSpace(fileName),
	}, nil
}
