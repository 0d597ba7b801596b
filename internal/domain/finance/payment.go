package finance

import (
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCategory classifies a payment handled by the payment router
type PaymentCategory string

const (
	PaymentCategorySupplier           PaymentCategory = "supplier"
	PaymentCategoryRentBill           PaymentCategory = "rent_bill"
	PaymentCategorySalary             PaymentCategory = "salary"
	PaymentCategoryReceivableRecovery PaymentCategory = "receivable_recovery"
	// PaymentCategoryPurchaseInvoice pays one invoice directly, without FIFO allocation
	PaymentCategoryPurchaseInvoice PaymentCategory = "purchase_invoice"
)

// IsValid checks if the category is known
func (c PaymentCategory) IsValid() bool {
	switch c {
	case PaymentCategorySupplier, PaymentCategoryRentBill, PaymentCategorySalary,
		PaymentCategoryReceivableRecovery, PaymentCategoryPurchaseInvoice:
		return true
	}
	return false
}

// String returns the string representation
func (c PaymentCategory) String() string {
	return string(c)
}

// IsInflow returns true when money comes in rather than going out
func (c PaymentCategory) IsInflow() bool {
	return c == PaymentCategoryReceivableRecovery
}

// ReferenceType names the entity a category's reference_id points at
func (c PaymentCategory) ReferenceType() string {
	switch c {
	case PaymentCategorySupplier:
		return "supplier"
	case PaymentCategoryRentBill:
		return "bill"
	case PaymentCategorySalary:
		return "salary"
	case PaymentCategoryReceivableRecovery:
		return "receivable"
	case PaymentCategoryPurchaseInvoice:
		return "purchase"
	}
	return ""
}

// ParsePaymentCategory parses a category string
func ParsePaymentCategory(s string) (PaymentCategory, error) {
	c := PaymentCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", shared.NewValidationError("invalid payment category %q", s)
	}
	return c, nil
}

// PaymentMode is how money moved
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "cash"
	PaymentModeBank PaymentMode = "bank"
)

// IsValid checks if the mode is known
func (m PaymentMode) IsValid() bool {
	return m == PaymentModeCash || m == PaymentModeBank
}

// Payment is the immutable audit record of a money movement processed by the router
type Payment struct {
	shared.BaseEntity
	Voucher       string
	Category      PaymentCategory
	ReferenceID   uuid.UUID
	ReferenceType string
	Amount        decimal.Decimal
	Date          time.Time
	Mode          PaymentMode
	BankID        *uuid.UUID
	Remarks       string
	CreatedBy     string
}

// PaymentParams holds the input for an audit record
type PaymentParams struct {
	Voucher     string
	Category    PaymentCategory
	ReferenceID uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Mode        PaymentMode
	BankID      *uuid.UUID
	Remarks     string
	CreatedBy   string
}

// NewPayment creates an audit record
func NewPayment(p PaymentParams) (*Payment, error) {
	if !p.Category.IsValid() {
		return nil, shared.NewValidationError("invalid payment category %q", p.Category)
	}
	if p.ReferenceID == uuid.Nil {
		return nil, shared.NewValidationError("reference_id is required")
	}
	if !p.Amount.IsPositive() {
		return nil, shared.NewValidationError("payment amount must be greater than zero")
	}
	if !p.Mode.IsValid() {
		return nil, shared.NewValidationError("invalid payment mode %q", p.Mode)
	}
	if p.Mode == PaymentModeBank && (p.BankID == nil || *p.BankID == uuid.Nil) {
		return nil, shared.NewValidationError("bank_id is required for bank payments")
	}
	bankID := p.BankID
	if p.Mode == PaymentModeCash {
		bankID = nil
	}
	date := p.Date
	if date.IsZero() {
		date = shared.Today()
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		Voucher:       p.Voucher,
		Category:      p.Category,
		ReferenceID:   p.ReferenceID,
		ReferenceType: p.Category.ReferenceType(),
		Amount:        p.Amount,
		Date:          shared.NormalizeDate(date),
		Mode:          p.Mode,
		BankID:        bankID,
		Remarks:       strings.TrimSpace(p.Remarks),
		CreatedBy:     p.CreatedBy,
	}, nil
}
