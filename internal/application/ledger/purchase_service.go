package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseInput is the input for a supplier invoice.
// An empty InvoiceNo is generated from the purchase invoice counter.
type PurchaseInput struct {
	SupplierID  uuid.UUID
	BranchID    *uuid.UUID
	InvoiceNo   string
	Date        time.Time
	DueDate     *time.Time
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Remarks     string
}

// SupplierLedger sums a supplier's invoices and lists them with the supplier payments
type SupplierLedger struct {
	SupplierID     uuid.UUID
	TotalPurchases decimal.Decimal
	TotalPaid      decimal.Decimal
	Balance        decimal.Decimal
	Purchases      []finance.Purchase
	Payments       []finance.Payment
}

// InvoicePaymentInput pays one invoice without FIFO allocation
type InvoicePaymentInput struct {
	Amount    decimal.Decimal
	Date      time.Time
	Method    string
	Remarks   string
	CreatedBy string
}

// InvoicePayment is an invoice after a direct payment, with the payment's voucher
type InvoicePayment struct {
	Purchase *finance.Purchase
	Voucher  string
}

// PurchaseService manages supplier invoices and their settlement
type PurchaseService struct {
	base
	payments *PaymentRouter
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(deps Dependencies) *PurchaseService {
	return &PurchaseService{base: newBase(deps), payments: NewPaymentRouter(deps)}
}

// CreateInvoice records a supplier invoice
func (s *PurchaseService) CreateInvoice(ctx context.Context, in PurchaseInput) (purchase *finance.Purchase, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchases", "create_invoice")
	defer func() { telemetry.EndSpan(span, err) }()

	if in.SupplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier_id is required")
	}
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		if err := ensureExists(ctx, &in.SupplierID, repos.Suppliers().ExistsByID, "supplier"); err != nil {
			return err
		}
		if err := ensureExists(ctx, in.BranchID, repos.Branches().ExistsByID, "branch"); err != nil {
			return err
		}

		invoiceNo := strings.TrimSpace(in.InvoiceNo)
		if invoiceNo == "" {
			seq := voucher.NewSequencer(repos.Counters(), voucher.KeyPurchaseInvoice, s.cfg.PurchasePrefix)
			generated, err := seq.Next(ctx)
			if err != nil {
				return err
			}
			invoiceNo = generated
		}
		taken, err := repos.Purchases().ExistsByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewConflictError("invoice number %s already exists", invoiceNo)
		}

		purchase, err = finance.NewPurchase(finance.PurchaseParams{
			SupplierID:  in.SupplierID,
			BranchID:    in.BranchID,
			InvoiceNo:   invoiceNo,
			Date:        in.Date,
			DueDate:     in.DueDate,
			TotalAmount: in.TotalAmount,
			PaidAmount:  in.PaidAmount,
			Remarks:     in.Remarks,
		})
		if err != nil {
			return err
		}
		return repos.Purchases().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOperation(ctx, "purchase", "", purchase.TotalAmount)
	s.log(ctx).Info("Purchase invoice created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("invoice_no", purchase.InvoiceNo),
		zap.String("balance", purchase.Balance.String()),
	)
	return purchase, nil
}

// ApplyPayment pays one invoice directly. Overpaying floors the balance at
// zero. The payment goes through the payment router, so it is tagged with a
// voucher, mirrored in the bank ledger when paid from a bank and kept in the
// payment audit trail.
func (s *PurchaseService) ApplyPayment(ctx context.Context, id uuid.UUID, in InvoicePaymentInput) (*InvoicePayment, error) {
	result, err := s.payments.Pay(ctx, PayInput{
		Category:    finance.PaymentCategoryPurchaseInvoice,
		ReferenceID: id,
		Amount:      in.Amount,
		Date:        in.Date,
		Method:      in.Method,
		Remarks:     in.Remarks,
		CreatedBy:   in.CreatedBy,
	})
	if err != nil {
		return nil, err
	}
	purchase, err := s.repos.Purchases().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InvoicePayment{Purchase: purchase, Voucher: result.Voucher}, nil
}

// GetPurchase returns a purchase invoice
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*finance.Purchase, error) {
	return s.repos.Purchases().FindByID(ctx, id)
}

// ListPurchases lists purchase invoices matching the filter
func (s *PurchaseService) ListPurchases(ctx context.Context, filter finance.PurchaseFilter) ([]finance.Purchase, int64, error) {
	return s.repos.Purchases().FindAll(ctx, filter)
}

// SupplierLedger reports a supplier's invoice totals with the invoices and supplier payments behind them
func (s *PurchaseService) SupplierLedger(ctx context.Context, supplierID uuid.UUID) (*SupplierLedger, error) {
	if err := ensureExists(ctx, &supplierID, s.repos.Suppliers().ExistsByID, "supplier"); err != nil {
		return nil, err
	}
	totals, err := s.repos.Purchases().SupplierTotals(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	purchaseFilter := finance.PurchaseFilter{SupplierID: &supplierID}
	purchaseFilter.OrderBy, purchaseFilter.OrderDir = "purchase_date", "asc"
	purchases, _, err := s.repos.Purchases().FindAll(ctx, purchaseFilter)
	if err != nil {
		return nil, err
	}

	paymentFilter := finance.PaymentFilter{
		Category:    finance.PaymentCategorySupplier,
		ReferenceID: &supplierID,
	}
	paymentFilter.OrderBy, paymentFilter.OrderDir = "payment_date", "asc"
	payments, _, err := s.repos.Payments().FindAll(ctx, paymentFilter)
	if err != nil {
		return nil, err
	}

	return &SupplierLedger{
		SupplierID:     supplierID,
		TotalPurchases: totals.TotalAmount,
		TotalPaid:      totals.PaidAmount,
		Balance:        totals.Balance,
		Purchases:      purchases,
		Payments:       payments,
	}, nil
}

// allocateSupplierPayment spreads amount over the supplier's open invoices,
// oldest first, and saves every invoice it touched
func allocateSupplierPayment(ctx context.Context, repos Repositories, supplierID uuid.UUID, amount decimal.Decimal) (*finance.SupplierAllocation, error) {
	open, err := repos.Purchases().FindOutstandingBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	invoices := make([]*finance.Purchase, len(open))
	byID := make(map[uuid.UUID]*finance.Purchase, len(open))
	for i := range open {
		invoices[i] = &open[i]
		byID[open[i].ID] = &open[i]
	}

	allocation, err := finance.AllocateFIFO(amount, invoices)
	if err != nil {
		return nil, err
	}
	for _, a := range allocation.Allocations {
		if err := repos.Purchases().Save(ctx, byID[a.PurchaseID]); err != nil {
			return nil, err
		}
	}
	return allocation, nil
}
