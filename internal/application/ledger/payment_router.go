package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CashMethod is the payment_method value for cash payments; any other value is a bank id
const CashMethod = "cash"

// PayInput is a payment to route to the ledger its category names
type PayInput struct {
	Category    finance.PaymentCategory
	ReferenceID uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Method      string
	Remarks     string
	CreatedBy   string
}

// PayResult is returned by Pay
type PayResult struct {
	OK          bool                        `json:"ok"`
	Amount      decimal.Decimal             `json:"amount"`
	Category    finance.PaymentCategory     `json:"category"`
	Voucher     string                      `json:"voucher"`
	Unallocated decimal.Decimal             `json:"unallocated"`
	Allocations []finance.InvoiceAllocation `json:"allocations,omitempty"`
}

// PaymentRouter dispatches payments to the supplier, bill, salary and
// receivable ledgers, mirrors bank payments in the bank ledger and keeps an
// audit row for every payment
type PaymentRouter struct {
	base
}

// NewPaymentRouter creates a new PaymentRouter
func NewPaymentRouter(deps Dependencies) *PaymentRouter {
	return &PaymentRouter{base: newBase(deps)}
}

// ParseMethod resolves a payment_method into a mode and, for bank payments, the bank id
func ParseMethod(method string) (finance.PaymentMode, *uuid.UUID, error) {
	method = strings.TrimSpace(method)
	if method == "" || strings.EqualFold(method, CashMethod) {
		return finance.PaymentModeCash, nil, nil
	}
	bankID, err := uuid.Parse(method)
	if err != nil || bankID == uuid.Nil {
		return "", nil, shared.NewValidationError("payment_method must be %q or a bank id", CashMethod)
	}
	return finance.PaymentModeBank, &bankID, nil
}

// Pay validates the payment, issues its voucher, mutates the target ledger,
// records the bank movement and writes the audit row, all in one transaction
func (r *PaymentRouter) Pay(ctx context.Context, in PayInput) (result *PayResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payments", "pay",
		attribute.String(telemetry.AttrCategory, string(in.Category)),
		attribute.String(telemetry.AttrReference, in.ReferenceID.String()),
		attribute.String(telemetry.AttrAmount, in.Amount.String()),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	if !in.Category.IsValid() {
		return nil, shared.NewValidationError("invalid payment category %q", in.Category)
	}
	if in.ReferenceID == uuid.Nil {
		return nil, shared.NewValidationError("reference_id is required")
	}
	if !in.Amount.IsPositive() {
		return nil, shared.NewValidationError("payment amount must be greater than zero")
	}
	mode, bankID, err := ParseMethod(in.Method)
	if err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = shared.Today()
	}

	result = &PayResult{
		OK:          true,
		Amount:      in.Amount,
		Category:    in.Category,
		Unallocated: decimal.Zero,
	}
	err = r.scope.Execute(ctx, func(repos Repositories) error {
		if err := ensureExists(ctx, bankID, repos.Banks().ExistsByID, "bank"); err != nil {
			return err
		}
		apply, err := r.precheck(ctx, repos, in, date, result)
		if err != nil {
			return err
		}

		vch, err := r.issueVoucher(ctx, repos)
		if err != nil {
			return err
		}
		result.Voucher = vch
		if err := apply(vch); err != nil {
			return err
		}

		remarks := voucher.AttachNote(in.Remarks, vch)
		if mode == finance.PaymentModeBank {
			txType := banking.TransactionTypePayment
			if in.Category.IsInflow() {
				txType = banking.TransactionTypeDeposit
			}
			tx, err := banking.NewBankTransaction(*bankID, txType, in.Amount, date, vch, remarks)
			if err != nil {
				return err
			}
			if err := repos.BankTransactions().Save(ctx, tx); err != nil {
				return err
			}
		}

		payment, err := finance.NewPayment(finance.PaymentParams{
			Voucher:     vch,
			Category:    in.Category,
			ReferenceID: in.ReferenceID,
			Amount:      in.Amount,
			Date:        date,
			Mode:        mode,
			BankID:      bankID,
			Remarks:     remarks,
			CreatedBy:   in.CreatedBy,
		})
		if err != nil {
			return err
		}
		return repos.Payments().Save(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String(telemetry.AttrVoucher, result.Voucher))
	if in.Category == finance.PaymentCategorySupplier {
		span.SetAttributes(
			attribute.Int("ledger.allocations", len(result.Allocations)),
			attribute.String("ledger.unallocated", result.Unallocated.String()),
		)
	}
	r.metrics.VoucherIssued(ctx)
	r.metrics.RecordOperation(ctx, "payment", string(in.Category), in.Amount)

	log := r.log(ctx).With(
		zap.String("voucher", result.Voucher),
		zap.String("category", string(in.Category)),
		zap.String("reference_id", in.ReferenceID.String()),
		zap.String("amount", in.Amount.String()),
		zap.String("mode", string(mode)),
	)
	if result.Unallocated.IsPositive() {
		r.metrics.RecordUnallocated(ctx, result.Unallocated)
		log.Warn("Supplier payment exceeds outstanding invoices",
			zap.String("unallocated", result.Unallocated.String()))
	} else {
		log.Info("Payment recorded")
	}
	return result, nil
}

// precheck loads the payment's target and verifies it can take the payment.
// The returned function applies the mutation once a voucher exists.
func (r *PaymentRouter) precheck(ctx context.Context, repos Repositories, in PayInput, date time.Time, result *PayResult) (func(vch string) error, error) {
	switch in.Category {
	case finance.PaymentCategorySupplier:
		if err := ensureExists(ctx, &in.ReferenceID, repos.Suppliers().ExistsByID, "supplier"); err != nil {
			return nil, err
		}
		return func(string) error {
			allocation, err := allocateSupplierPayment(ctx, repos, in.ReferenceID, in.Amount)
			if err != nil {
				return err
			}
			result.Allocations = allocation.Allocations
			result.Unallocated = allocation.Unallocated
			return nil
		}, nil

	case finance.PaymentCategoryPurchaseInvoice:
		purchase, err := repos.Purchases().FindByID(ctx, in.ReferenceID)
		if err != nil {
			return nil, err
		}
		return func(string) error {
			if err := purchase.ApplyPayment(in.Amount); err != nil {
				return err
			}
			return repos.Purchases().Save(ctx, purchase)
		}, nil

	case finance.PaymentCategoryRentBill:
		bill, err := repos.Bills().FindByID(ctx, in.ReferenceID)
		if err != nil {
			return nil, err
		}
		if err := bill.CheckPayable(in.Amount); err != nil {
			return nil, err
		}
		return func(string) error {
			if err := bill.Pay(in.Amount); err != nil {
				return err
			}
			return repos.Bills().Save(ctx, bill)
		}, nil

	case finance.PaymentCategorySalary:
		record, err := repos.Salaries().FindByID(ctx, in.ReferenceID)
		if err != nil {
			return nil, err
		}
		if err := record.CheckPayable(); err != nil {
			return nil, err
		}
		return func(string) error {
			if err := record.Pay(in.Amount, date); err != nil {
				return err
			}
			return repos.Salaries().Save(ctx, record)
		}, nil

	case finance.PaymentCategoryReceivableRecovery:
		receivable, err := repos.Receivables().FindByID(ctx, in.ReferenceID)
		if err != nil {
			return nil, err
		}
		if in.Amount.GreaterThan(receivable.Amount) {
			return nil, shared.NewDomainError(shared.CodeAmountExceedsBalance,
				"recovery amount "+in.Amount.StringFixed(2)+" exceeds amount due "+receivable.Amount.StringFixed(2))
		}
		return func(vch string) error {
			return recoverReceivable(ctx, repos, receivable, in.Amount, vch)
		}, nil
	}
	return nil, shared.NewValidationError("invalid payment category %q", in.Category)
}

// ListPayments lists payment audit rows matching the filter
func (r *PaymentRouter) ListPayments(ctx context.Context, filter finance.PaymentFilter) ([]finance.Payment, int64, error) {
	return r.repos.Payments().FindAll(ctx, filter)
}
