package finance

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableFilter narrows receivable queries
type ReceivableFilter struct {
	shared.Filter
	Status     ReceivableStatus
	CustomerID *uuid.UUID
	BranchID   *uuid.UUID
	SaleID     *uuid.UUID
}

// ReceivableRepository defines persistence for receivables and their recovery history
type ReceivableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)
	FindAll(ctx context.Context, filter ReceivableFilter) ([]Receivable, int64, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]Receivable, error)
	Save(ctx context.Context, receivable *Receivable) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error

	SaveRecovery(ctx context.Context, recovery *ReceivableRecovery) error
	FindRecoveries(ctx context.Context, receivableID uuid.UUID) ([]ReceivableRecovery, error)
	CountRecoveries(ctx context.Context, receivableIDs []uuid.UUID) (int64, error)
	DeleteRecoveries(ctx context.Context, receivableIDs []uuid.UUID) error
}

// PurchaseFilter narrows purchase queries
type PurchaseFilter struct {
	shared.Filter
	SupplierID      *uuid.UUID
	BranchID        *uuid.UUID
	OutstandingOnly bool
}

// PurchaseTotals aggregates a supplier's invoices
type PurchaseTotals struct {
	Count       int64
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Balance     decimal.Decimal
}

// PurchaseRepository defines persistence for supplier invoices
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter PurchaseFilter) ([]Purchase, int64, error)
	// FindOutstandingBySupplier returns invoices with balance > 0 ordered by date, id
	FindOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Purchase, error)
	ExistsByInvoiceNo(ctx context.Context, invoiceNo string) (bool, error)
	Save(ctx context.Context, purchase *Purchase) error
	SupplierTotals(ctx context.Context, supplierID uuid.UUID) (*PurchaseTotals, error)
}

// PaymentFilter narrows payment audit queries
type PaymentFilter struct {
	shared.Filter
	Category    PaymentCategory
	ReferenceID *uuid.UUID
	BankID      *uuid.UUID
}

// PaymentRepository persists the append-only payment audit log
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
}

// BillFilter narrows bill queries
type BillFilter struct {
	shared.Filter
	BranchID *uuid.UUID
	Status   BillStatus
}

// BillRepository defines persistence for bills
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindAll(ctx context.Context, filter BillFilter) ([]Bill, int64, error)
	Save(ctx context.Context, bill *Bill) error
}

// SalaryFilter narrows salary queries
type SalaryFilter struct {
	shared.Filter
	BranchID *uuid.UUID
	Period   string
	Status   SalaryStatus
}

// SalaryRepository defines persistence for salary records
type SalaryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalaryRecord, error)
	FindAll(ctx context.Context, filter SalaryFilter) ([]SalaryRecord, int64, error)
	Save(ctx context.Context, record *SalaryRecord) error
}
