package handler

import (
	"time"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateReceivableRequest records an amount owed outside of a sale
type CreateReceivableRequest struct {
	CustomerID string          `json:"customer_id" binding:"omitempty,uuid"`
	BranchID   string          `json:"branch_id" binding:"omitempty,uuid"`
	Amount     decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	DueDate    string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Remarks    string          `json:"remarks" binding:"max=500"`
}

// RecoveryRequest pays down a receivable
type RecoveryRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" binding:"max=36"`
	Remarks       string          `json:"remarks" binding:"max=500"`
}

// ReceivableListRequest filters receivables
type ReceivableListRequest struct {
	dto.ListRequest
	Status     string `form:"status" binding:"omitempty,oneof=pending partial recovered"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	BranchID   string `form:"branch_id" binding:"omitempty,uuid"`
	SaleID     string `form:"sale_id" binding:"omitempty,uuid"`
}

// ReceivableResponse is an amount owed by a customer
type ReceivableResponse struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	SaleID         *uuid.UUID      `json:"sale_id,omitempty"`
	BranchID       *uuid.UUID      `json:"branch_id,omitempty"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        *string         `json:"due_date,omitempty"`
	Status         string          `json:"status"`
	Remarks        string          `json:"remarks,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RecoveryResponse is one applied recovery
type RecoveryResponse struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Voucher    string          `json:"voucher,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// ReceivableDetailResponse is a receivable with its recovery history
type ReceivableDetailResponse struct {
	ReceivableResponse
	Recoveries []RecoveryResponse `json:"recoveries"`
}

// CreatePurchaseRequest records a supplier invoice.
// An empty invoice_no is generated.
type CreatePurchaseRequest struct {
	SupplierID   string          `json:"supplier_id" binding:"required,uuid"`
	BranchID     string          `json:"branch_id" binding:"omitempty,uuid"`
	InvoiceNo    string          `json:"invoice_no" binding:"max=50"`
	PurchaseDate string          `json:"purchase_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate      string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	TotalAmount  decimal.Decimal `json:"total_amount" binding:"decimal_gte0"`
	PaidAmount   decimal.Decimal `json:"paid_amount" binding:"decimal_gte0"`
	Remarks      string          `json:"remarks" binding:"max=500"`
}

// PurchasePaymentRequest pays one invoice directly
type PurchasePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" binding:"max=36"`
	Remarks       string          `json:"remarks" binding:"max=500"`
}

// PurchaseListRequest filters supplier invoices
type PurchaseListRequest struct {
	dto.ListRequest
	SupplierID      string `form:"supplier_id" binding:"omitempty,uuid"`
	BranchID        string `form:"branch_id" binding:"omitempty,uuid"`
	OutstandingOnly bool   `form:"outstanding_only"`
}

// PurchaseResponse is a supplier invoice
type PurchaseResponse struct {
	ID           uuid.UUID       `json:"id"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	BranchID     *uuid.UUID      `json:"branch_id,omitempty"`
	InvoiceNo    string          `json:"invoice_no"`
	PurchaseDate string          `json:"purchase_date"`
	DueDate      *string         `json:"due_date,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Balance      decimal.Decimal `json:"balance"`
	Remarks      string          `json:"remarks,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PurchasePaymentResponse is an invoice after a direct payment, with the
// payment's voucher
type PurchasePaymentResponse struct {
	PurchaseResponse
	Voucher string `json:"voucher"`
}

// SupplierLedgerResponse is a supplier's invoices and payments with totals
type SupplierLedgerResponse struct {
	SupplierID     uuid.UUID          `json:"supplier_id"`
	TotalPurchases decimal.Decimal    `json:"total_purchases"`
	TotalPaid      decimal.Decimal    `json:"total_paid"`
	Balance        decimal.Decimal    `json:"balance"`
	Purchases      []PurchaseResponse `json:"purchases"`
	Payments       []PaymentResponse  `json:"payments"`
}

// PayRequest routes a payment to the ledger its category names.
// payment_method is "cash" (or empty) or a bank id.
type PayRequest struct {
	Category      string          `json:"category" binding:"required,max=32"`
	ReferenceID   string          `json:"reference_id" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" binding:"max=36"`
	Remarks       string          `json:"remarks" binding:"max=500"`
}

// PaymentListRequest filters the payment audit trail
type PaymentListRequest struct {
	dto.ListRequest
	Category    string `form:"category" binding:"omitempty,oneof=supplier rent_bill salary receivable_recovery purchase_invoice"`
	ReferenceID string `form:"reference_id" binding:"omitempty,uuid"`
	BankID      string `form:"bank_id" binding:"omitempty,uuid"`
}

// PaymentResponse is a payment audit row
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Voucher       string          `json:"voucher"`
	Category      string          `json:"category"`
	ReferenceID   uuid.UUID       `json:"reference_id"`
	ReferenceType string          `json:"reference_type"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	Mode          string          `json:"mode"`
	BankID        *uuid.UUID      `json:"bank_id,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateBillRequest records a rent or utility bill
type CreateBillRequest struct {
	BranchID string          `json:"branch_id" binding:"omitempty,uuid"`
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Amount   decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	DueDate  string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Remarks  string          `json:"remarks" binding:"max=500"`
}

// BillListRequest filters bills
type BillListRequest struct {
	dto.ListRequest
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=unpaid partial paid"`
}

// BillResponse is a rent or utility bill
type BillResponse struct {
	ID         uuid.UUID       `json:"id"`
	BranchID   *uuid.UUID      `json:"branch_id,omitempty"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Balance    decimal.Decimal `json:"balance"`
	DueDate    *string         `json:"due_date,omitempty"`
	Status     string          `json:"status"`
	Remarks    string          `json:"remarks,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateSalaryRequest records an employee's salary for a period
type CreateSalaryRequest struct {
	EmployeeName string          `json:"employee_name" binding:"required,min=1,max=200"`
	BranchID     string          `json:"branch_id" binding:"omitempty,uuid"`
	Period       string          `json:"period" binding:"required,datetime=2006-01"`
	Amount       decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Remarks      string          `json:"remarks" binding:"max=500"`
}

// SalaryListRequest filters salary records
type SalaryListRequest struct {
	dto.ListRequest
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	Period   string `form:"period" binding:"omitempty,datetime=2006-01"`
	Status   string `form:"status" binding:"omitempty,oneof=unpaid paid"`
}

// SalaryResponse is a salary record
type SalaryResponse struct {
	ID           uuid.UUID       `json:"id"`
	EmployeeName string          `json:"employee_name"`
	BranchID     *uuid.UUID      `json:"branch_id,omitempty"`
	Period       string          `json:"period"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	PaidDate     *string         `json:"paid_date,omitempty"`
	Status       string          `json:"status"`
	Remarks      string          `json:"remarks,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toReceivableResponse(r *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:             r.ID,
		CustomerID:     r.CustomerID,
		SaleID:         r.SaleID,
		BranchID:       r.BranchID,
		OriginalAmount: r.OriginalAmount,
		Amount:         r.Amount,
		DueDate:        formatOptionalDate(r.DueDate),
		Status:         string(r.Status),
		Remarks:        r.Remarks,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toReceivableDetailResponse(d *ledger.ReceivableDetail) ReceivableDetailResponse {
	recoveries := make([]RecoveryResponse, 0, len(d.Recoveries))
	for _, rec := range d.Recoveries {
		recoveries = append(recoveries, RecoveryResponse{
			ID:         rec.ID,
			Amount:     rec.Amount,
			Voucher:    rec.Voucher,
			RecordedAt: rec.RecordedAt,
		})
	}
	return ReceivableDetailResponse{
		ReceivableResponse: toReceivableResponse(&d.Receivable),
		Recoveries:         recoveries,
	}
}

func toPurchaseResponse(p *finance.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:           p.ID,
		SupplierID:   p.SupplierID,
		BranchID:     p.BranchID,
		InvoiceNo:    p.InvoiceNo,
		PurchaseDate: formatDate(p.Date),
		DueDate:      formatOptionalDate(p.DueDate),
		TotalAmount:  p.TotalAmount,
		PaidAmount:   p.PaidAmount,
		Balance:      p.Balance,
		Remarks:      p.Remarks,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPurchaseResponses(list []finance.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(list))
	for i := range list {
		out = append(out, toPurchaseResponse(&list[i]))
	}
	return out
}

func toPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		Voucher:       p.Voucher,
		Category:      string(p.Category),
		ReferenceID:   p.ReferenceID,
		ReferenceType: p.ReferenceType,
		Amount:        p.Amount,
		PaymentDate:   formatDate(p.Date),
		Mode:          string(p.Mode),
		BankID:        p.BankID,
		Remarks:       p.Remarks,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

func toPaymentResponses(list []finance.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, toPaymentResponse(&list[i]))
	}
	return out
}

func toBillResponse(b *finance.Bill) BillResponse {
	return BillResponse{
		ID:         b.ID,
		BranchID:   b.BranchID,
		Name:       b.Name,
		Amount:     b.Amount,
		PaidAmount: b.PaidAmount,
		Balance:    b.Balance,
		DueDate:    formatOptionalDate(b.DueDate),
		Status:     string(b.Status),
		Remarks:    b.Remarks,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toSalaryResponse(s *finance.SalaryRecord) SalaryResponse {
	return SalaryResponse{
		ID:           s.ID,
		EmployeeName: s.EmployeeName,
		BranchID:     s.BranchID,
		Period:       s.Period,
		Amount:       s.Amount,
		PaidAmount:   s.PaidAmount,
		PaidDate:     formatOptionalDate(s.PaidDate),
		Status:       string(s.Status),
		Remarks:      s.Remarks,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
