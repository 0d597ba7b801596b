package persistence

import (
	"context"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/domain/partner"
	"github.com/bookkeeping/backend/internal/domain/sales"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"gorm.io/gorm"
)

// GormTransactionScope implements ledger.TransactionScope using GORM transactions
type GormTransactionScope struct {
	db             *gorm.DB
	counterRetries int
}

// NewGormTransactionScope creates a new GormTransactionScope.
// counterRetries bounds the compare-and-swap loop of counters used inside a transaction.
func NewGormTransactionScope(db *gorm.DB, counterRetries int) *GormTransactionScope {
	return &GormTransactionScope{db: db, counterRetries: counterRetries}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise it is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx, s.counterRetries))
	})
}

// gormRepositories builds repositories over one *gorm.DB, which is either the
// root connection pool or a transaction
type gormRepositories struct {
	db             *gorm.DB
	counterRetries int
}

// NewRepositories returns the ledger repositories bound to db
func NewRepositories(db *gorm.DB, counterRetries int) ledger.Repositories {
	return &gormRepositories{db: db, counterRetries: counterRetries}
}

func (r *gormRepositories) Counters() voucher.Counter {
	return NewGormCounterRepository(r.db, r.counterRetries)
}

func (r *gormRepositories) Banks() banking.BankRepository {
	return NewGormBankRepository(r.db)
}

func (r *gormRepositories) BankTransactions() banking.BankTransactionRepository {
	return NewGormBankTransactionRepository(r.db)
}

func (r *gormRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.db)
}

func (r *gormRepositories) Receivables() finance.ReceivableRepository {
	return NewGormReceivableRepository(r.db)
}

func (r *gormRepositories) Purchases() finance.PurchaseRepository {
	return NewGormPurchaseRepository(r.db)
}

func (r *gormRepositories) Payments() finance.PaymentRepository {
	return NewGormPaymentRepository(r.db)
}

func (r *gormRepositories) Bills() finance.BillRepository {
	return NewGormBillRepository(r.db)
}

func (r *gormRepositories) Salaries() finance.SalaryRepository {
	return NewGormSalaryRepository(r.db)
}

func (r *gormRepositories) CashEntries() cashregister.Repository {
	return NewGormCashEntryRepository(r.db)
}

func (r *gormRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.db)
}

func (r *gormRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.db)
}

func (r *gormRepositories) Branches() partner.BranchRepository {
	return NewGormBranchRepository(r.db)
}

var (
	_ ledger.TransactionScope = (*GormTransactionScope)(nil)
	_ ledger.Repositories     = (*gormRepositories)(nil)
)
