package finance

import (
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComputeBalance returns max(0, total - paid)
func ComputeBalance(total, paid decimal.Decimal) decimal.Decimal {
	balance := total.Sub(paid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// Purchase is a supplier invoice
type Purchase struct {
	shared.BaseEntity
	SupplierID  uuid.UUID
	BranchID    *uuid.UUID
	InvoiceNo   string
	Date        time.Time
	DueDate     *time.Time
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Balance     decimal.Decimal
	Remarks     string
}

// PurchaseParams holds the input for creating a purchase invoice
type PurchaseParams struct {
	SupplierID  uuid.UUID
	BranchID    *uuid.UUID
	InvoiceNo   string
	Date        time.Time
	DueDate     *time.Time
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Remarks     string
}

// NewPurchase creates a purchase invoice. The invoice number must already be resolved.
func NewPurchase(p PurchaseParams) (*Purchase, error) {
	if p.SupplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier_id is required")
	}
	invoiceNo := strings.TrimSpace(p.InvoiceNo)
	if invoiceNo == "" {
		return nil, shared.NewValidationError("invoice_no is required")
	}
	if len(invoiceNo) > 50 {
		return nil, shared.NewValidationError("invoice_no cannot exceed 50 characters")
	}
	if !p.TotalAmount.IsPositive() {
		return nil, shared.NewValidationError("total_amount must be greater than zero")
	}
	if p.PaidAmount.IsNegative() {
		return nil, shared.NewValidationError("paid_amount cannot be negative")
	}
	date := p.Date
	if date.IsZero() {
		date = shared.Today()
	}
	var due *time.Time
	if p.DueDate != nil {
		d := shared.NormalizeDate(*p.DueDate)
		due = &d
	}

	return &Purchase{
		BaseEntity:  shared.NewBaseEntity(),
		SupplierID:  p.SupplierID,
		BranchID:    p.BranchID,
		InvoiceNo:   invoiceNo,
		Date:        shared.NormalizeDate(date),
		DueDate:     due,
		TotalAmount: p.TotalAmount,
		PaidAmount:  p.PaidAmount,
		Balance:     ComputeBalance(p.TotalAmount, p.PaidAmount),
		Remarks:     strings.TrimSpace(p.Remarks),
	}, nil
}

// ApplyPayment records a payment against this invoice.
// Paying more than the balance is accepted; the balance floors at zero.
func (p *Purchase) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("payment amount must be greater than zero")
	}
	p.PaidAmount = p.PaidAmount.Add(amount)
	p.Balance = ComputeBalance(p.TotalAmount, p.PaidAmount)
	p.Touch()
	return nil
}

// IsOutstanding returns true while a balance remains
func (p *Purchase) IsOutstanding() bool {
	return p.Balance.IsPositive()
}
