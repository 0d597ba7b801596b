package ledger

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/domain/sales"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AttachmentStore keeps the bytes of sale attachments
type AttachmentStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, keys ...string) error
}

// SplitInput is one requested bank split
type SplitInput struct {
	BankID uuid.UUID
	Amount decimal.Decimal
}

// SaleInput is the input for recording or editing a sale.
// A nil Splits means no split list was supplied; an empty one means a split
// list with no usable lines, which yields a zero bank amount.
type SaleInput struct {
	BranchID   *uuid.UUID
	CustomerID *uuid.UUID
	BankID     *uuid.UUID
	Date       time.Time
	Cash       decimal.Decimal
	Bank       decimal.Decimal
	Credit     decimal.Decimal
	Discount   decimal.Decimal
	Returns    decimal.Decimal
	Splits     []SplitInput
	Remarks    string
	CreatedBy  string
}

// SaleResult is returned by RecordSale and EditSale
type SaleResult struct {
	ID       uuid.UUID       `json:"id"`
	NetSales decimal.Decimal `json:"net_sales"`
	Voucher  string          `json:"voucher"`
}

// SalesService records sales and fans them out into bank deposits and receivables
type SalesService struct {
	base
	attachments AttachmentStore
}

// NewSalesService creates a new SalesService
func NewSalesService(deps Dependencies, attachments AttachmentStore) *SalesService {
	return &SalesService{base: newBase(deps), attachments: attachments}
}

// RecordSale stores a sale with its voucher, splits, deposits and receivable in one transaction
func (s *SalesService) RecordSale(ctx context.Context, in SaleInput) (result *SaleResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales", "record")
	defer func() { telemetry.EndSpan(span, err) }()

	var sale *sales.Sale
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		params, err := s.resolve(ctx, repos, in)
		if err != nil {
			return err
		}
		vch, err := s.issueVoucher(ctx, repos)
		if err != nil {
			return err
		}
		sale, err = sales.NewSale(vch, params)
		if err != nil {
			return err
		}
		sale.Remarks = voucher.AttachNote(sale.Remarks, vch)
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		if err := s.createReceivable(ctx, repos, sale); err != nil {
			return err
		}
		return s.createDeposits(ctx, repos, sale)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String(telemetry.AttrSaleID, sale.ID.String()),
		attribute.String(telemetry.AttrVoucher, sale.Voucher),
	)
	s.metrics.VoucherIssued(ctx)
	s.metrics.RecordOperation(ctx, "sale", "", sale.NetSales)
	s.log(ctx).Info("Sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("voucher", sale.Voucher),
		zap.String("net_sales", sale.NetSales.String()),
		zap.Int("deposits", len(sale.Deposits())),
	)
	return &SaleResult{ID: sale.ID, NetSales: sale.NetSales, Voucher: sale.Voucher}, nil
}

// EditSale recomputes a sale and replaces its splits, deposits and, when
// the credit amount changed, its receivable. Locked sales are rejected.
func (s *SalesService) EditSale(ctx context.Context, id uuid.UUID, in SaleInput) (result *SaleResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales", "edit",
		attribute.String(telemetry.AttrSaleID, id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var sale *sales.Sale
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := sale.EnsureModifiable(); err != nil {
			return err
		}
		params, err := s.resolve(ctx, repos, in)
		if err != nil {
			return err
		}
		previousCredit := sale.CreditAmount
		if err := sale.Edit(params); err != nil {
			return err
		}
		sale.Remarks = voucher.AttachNote(sale.Remarks, sale.Voucher)
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		if !previousCredit.Equal(sale.CreditAmount) {
			if err := s.replaceReceivable(ctx, repos, sale); err != nil {
				return err
			}
		}
		if _, err := repos.BankTransactions().DeleteByReference(ctx, banking.SaleReference(sale.ID)); err != nil {
			return err
		}
		return s.createDeposits(ctx, repos, sale)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOperation(ctx, "sale_edit", "", sale.NetSales)
	s.log(ctx).Info("Sale edited",
		zap.String("sale_id", sale.ID.String()),
		zap.String("net_sales", sale.NetSales.String()),
	)
	return &SaleResult{ID: sale.ID, NetSales: sale.NetSales, Voucher: sale.Voucher}, nil
}

// DeleteSale removes a sale with its receivables, their recoveries and its
// attachments. Bank deposits tagged with the sale are left in place.
func (s *SalesService) DeleteSale(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales", "delete",
		attribute.String(telemetry.AttrSaleID, id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var objectKeys []string
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		sale, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := sale.EnsureModifiable(); err != nil {
			return err
		}
		if err := s.removeReceivables(ctx, repos, sale.ID); err != nil {
			return err
		}
		attachments, err := repos.Sales().FindAttachments(ctx, sale.ID)
		if err != nil {
			return err
		}
		for _, a := range attachments {
			objectKeys = append(objectKeys, a.ObjectKey)
		}
		if err := repos.Sales().DeleteAttachments(ctx, sale.ID); err != nil {
			return err
		}
		return repos.Sales().Delete(ctx, sale.ID)
	})
	if err != nil {
		return err
	}

	if len(objectKeys) > 0 && s.attachments != nil {
		if derr := s.attachments.Delete(ctx, objectKeys...); derr != nil {
			s.log(ctx).Warn("Failed to delete sale attachments from storage",
				zap.String("sale_id", id.String()),
				zap.Strings("object_keys", objectKeys),
				zap.Error(derr),
			)
		}
	}
	s.log(ctx).Info("Sale deleted", zap.String("sale_id", id.String()))
	return nil
}

// LockSale sets the terminal lock flag on a sale
func (s *SalesService) LockSale(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if sale.IsLocked {
			return nil
		}
		sale.Lock()
		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale returns a sale with its splits
func (s *SalesService) GetSale(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	return s.repos.Sales().FindByID(ctx, id)
}

// ListSales lists sales matching the filter
func (s *SalesService) ListSales(ctx context.Context, filter sales.SaleFilter) ([]sales.Sale, int64, error) {
	return s.repos.Sales().FindAll(ctx, filter)
}

// NetSalesSummary sums net sales over a date range, optionally for one branch
func (s *SalesService) NetSalesSummary(ctx context.Context, branchID *uuid.UUID, from, to *time.Time) (*sales.Summary, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, shared.NewValidationError("to must not be before from")
	}
	return s.repos.Sales().Summarize(ctx, branchID, from, to)
}

// AttachFile stores a file in the attachment store and records its metadata on the sale
func (s *SalesService) AttachFile(ctx context.Context, saleID uuid.UUID, fileName, contentType string, body io.Reader, size int64) (*sales.SaleAttachment, error) {
	if s.attachments == nil {
		return nil, shared.NewValidationError("attachment storage is not configured")
	}
	sale, err := s.repos.Sales().FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.EnsureModifiable(); err != nil {
		return nil, err
	}

	fileName = path.Base(strings.TrimSpace(fileName))
	key := fmt.Sprintf("sales/%s/%s-%s", sale.ID, shared.NewID(), fileName)
	attachment, err := sales.NewSaleAttachment(sale.ID, key, fileName)
	if err != nil {
		return nil, err
	}
	if err := s.attachments.Put(ctx, key, contentType, body, size); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	if err := s.repos.Sales().SaveAttachment(ctx, attachment); err != nil {
		if derr := s.attachments.Delete(ctx, key); derr != nil {
			s.log(ctx).Warn("Failed to remove orphaned attachment", zap.String("object_key", key), zap.Error(derr))
		}
		return nil, err
	}
	return attachment, nil
}

// ListAttachments lists a sale's attachment metadata
func (s *SalesService) ListAttachments(ctx context.Context, saleID uuid.UUID) ([]sales.SaleAttachment, error) {
	if _, err := s.repos.Sales().FindByID(ctx, saleID); err != nil {
		return nil, err
	}
	return s.repos.Sales().FindAttachments(ctx, saleID)
}

// resolve checks references and turns the input into sale parameters.
// Split lines naming an unknown bank or a non-positive amount are dropped.
func (s *SalesService) resolve(ctx context.Context, repos Repositories, in SaleInput) (sales.Params, error) {
	if err := ensureExists(ctx, in.BranchID, repos.Branches().ExistsByID, "branch"); err != nil {
		return sales.Params{}, err
	}
	if err := ensureExists(ctx, in.CustomerID, repos.Customers().ExistsByID, "customer"); err != nil {
		return sales.Params{}, err
	}

	params := sales.Params{
		BranchID:   in.BranchID,
		CustomerID: in.CustomerID,
		BankID:     in.BankID,
		Date:       in.Date,
		Figures: sales.Figures{
			Cash:     in.Cash,
			Bank:     in.Bank,
			Credit:   in.Credit,
			Discount: in.Discount,
			Returns:  in.Returns,
		},
		SplitsProvided: in.Splits != nil,
		Remarks:        in.Remarks,
		CreatedBy:      in.CreatedBy,
	}

	if params.SplitsProvided {
		for _, line := range in.Splits {
			if line.BankID == uuid.Nil || !line.Amount.IsPositive() {
				continue
			}
			ok, err := repos.Banks().ExistsByID(ctx, line.BankID)
			if err != nil {
				return sales.Params{}, err
			}
			if !ok {
				s.log(ctx).Debug("Dropping split for unknown bank", zap.String("bank_id", line.BankID.String()))
				continue
			}
			params.Splits = append(params.Splits, sales.SplitLine{BankID: line.BankID, Amount: line.Amount})
		}
		return params, nil
	}

	if in.Bank.IsPositive() {
		if in.BankID == nil || *in.BankID == uuid.Nil {
			return sales.Params{}, shared.NewValidationError("bank_id is required when bank_amount is greater than zero")
		}
		ok, err := repos.Banks().ExistsByID(ctx, *in.BankID)
		if err != nil {
			return sales.Params{}, err
		}
		if !ok {
			return sales.Params{}, shared.NewValidationError("bank account %s does not exist", in.BankID)
		}
	}
	return params, nil
}

func (s *SalesService) createReceivable(ctx context.Context, repos Repositories, sale *sales.Sale) error {
	if !sale.HasCredit() {
		return nil
	}
	saleID := sale.ID
	receivable, err := finance.NewReceivable(finance.ReceivableParams{
		CustomerID: sale.CustomerID,
		SaleID:     &saleID,
		BranchID:   sale.BranchID,
		Amount:     sale.CreditAmount,
		Remarks:    voucher.AttachNote("Credit sale", sale.Voucher),
	})
	if err != nil {
		return err
	}
	return repos.Receivables().Save(ctx, receivable)
}

func (s *SalesService) createDeposits(ctx context.Context, repos Repositories, sale *sales.Sale) error {
	deposits := sale.Deposits()
	if len(deposits) == 0 {
		return nil
	}
	txns := make([]*banking.BankTransaction, 0, len(deposits))
	for _, d := range deposits {
		tx, err := banking.NewBankTransaction(
			d.BankID,
			banking.TransactionTypeDeposit,
			d.Amount,
			sale.Date,
			banking.SaleReference(sale.ID),
			voucher.AttachNote("Sale deposit", sale.Voucher),
		)
		if err != nil {
			return err
		}
		txns = append(txns, tx)
	}
	return repos.BankTransactions().SaveBatch(ctx, txns)
}

// replaceReceivable swaps the sale's receivable for one matching the new credit.
// Once money was recovered against it the credit can no longer change.
func (s *SalesService) replaceReceivable(ctx context.Context, repos Repositories, sale *sales.Sale) error {
	existing, err := repos.Receivables().FindBySale(ctx, sale.ID)
	if err != nil {
		return err
	}
	ids := receivableIDs(existing)
	recovered, err := repos.Receivables().CountRecoveries(ctx, ids)
	if err != nil {
		return err
	}
	if recovered > 0 {
		return shared.NewConflictError("credit amount cannot change after recoveries were recorded against the sale")
	}
	if err := repos.Receivables().DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	return s.createReceivable(ctx, repos, sale)
}

func (s *SalesService) removeReceivables(ctx context.Context, repos Repositories, saleID uuid.UUID) error {
	existing, err := repos.Receivables().FindBySale(ctx, saleID)
	if err != nil {
		return err
	}
	ids := receivableIDs(existing)
	if err := repos.Receivables().DeleteRecoveries(ctx, ids); err != nil {
		return err
	}
	return repos.Receivables().DeleteByIDs(ctx, ids)
}

func receivableIDs(receivables []finance.Receivable) []uuid.UUID {
	ids := make([]uuid.UUID, len(receivables))
	for i := range receivables {
		ids[i] = receivables[i].ID
	}
	return ids
}
