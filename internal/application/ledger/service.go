// Package ledger holds the application services that keep sales, receivables,
// purchases, bank accounts and the cash register consistent with each other.
package ledger

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/logger"
	"github.com/bookkeeping/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds the numbering settings shared by the services
type Config struct {
	VoucherPrefix  string
	PurchasePrefix string
}

// Dependencies bundles what every ledger service needs.
// Logger and Metrics may be nil.
type Dependencies struct {
	Repos   Repositories
	Scope   TransactionScope
	Config  Config
	Logger  *zap.Logger
	Metrics *telemetry.LedgerMetrics
}

type base struct {
	repos   Repositories
	scope   TransactionScope
	cfg     Config
	logger  *zap.Logger
	metrics *telemetry.LedgerMetrics
}

func newBase(deps Dependencies) base {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := deps.Config
	if cfg.VoucherPrefix == "" {
		cfg.VoucherPrefix = voucher.DefaultPrefix
	}
	if cfg.PurchasePrefix == "" {
		cfg.PurchasePrefix = "PUR"
	}
	return base{
		repos:   deps.Repos,
		scope:   deps.Scope,
		cfg:     cfg,
		logger:  log,
		metrics: deps.Metrics,
	}
}

// issueVoucher draws the next voucher from the counter bound to repos
func (b *base) issueVoucher(ctx context.Context, repos Repositories) (string, error) {
	return voucher.NewSequencer(repos.Counters(), voucher.KeyVoucher, b.cfg.VoucherPrefix).Next(ctx)
}

func (b *base) log(ctx context.Context) *zap.Logger {
	return logger.WithTraceContext(ctx, b.logger)
}

// Services groups the ledger services for wiring into the transport layer
type Services struct {
	Sales        *SalesService
	Receivables  *ReceivableService
	Purchases    *PurchaseService
	Banks        *BankService
	CashRegister *CashRegisterService
	Payments     *PaymentRouter
	Bills        *BillService
	Salaries     *SalaryService
	Partners     *PartnerService
}

// NewServices builds every ledger service over the same dependencies
func NewServices(deps Dependencies, attachments AttachmentStore) *Services {
	return &Services{
		Sales:        NewSalesService(deps, attachments),
		Receivables:  NewReceivableService(deps),
		Purchases:    NewPurchaseService(deps),
		Banks:        NewBankService(deps),
		CashRegister: NewCashRegisterService(deps),
		Payments:     NewPaymentRouter(deps),
		Bills:        NewBillService(deps),
		Salaries:     NewSalaryService(deps),
		Partners:     NewPartnerService(deps),
	}
}

type existsFunc func(ctx context.Context, id uuid.UUID) (bool, error)

// ensureExists returns a not-found error naming resource when id is set but unknown
func ensureExists(ctx context.Context, id *uuid.UUID, exists existsFunc, resource string) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	ok, err := exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewNotFoundError(resource)
	}
	return nil
}
