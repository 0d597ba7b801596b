package ledger

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/domain/partner"
	"github.com/bookkeeping/backend/internal/domain/sales"
	"github.com/bookkeeping/backend/internal/domain/voucher"
)

// TransactionScope runs a unit of work atomically.
// Every write made through the repositories handed to fn, the voucher counter
// included, is committed together or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to every ledger repository.
// Inside TransactionScope.Execute all of them share the same transaction;
// callers must not reach for repositories bound to another connection there.
type Repositories interface {
	Counters() voucher.Counter
	Banks() banking.BankRepository
	BankTransactions() banking.BankTransactionRepository
	Sales() sales.SaleRepository
	Receivables() finance.ReceivableRepository
	Purchases() finance.PurchaseRepository
	Payments() finance.PaymentRepository
	Bills() finance.BillRepository
	Salaries() finance.SalaryRepository
	CashEntries() cashregister.Repository
	Customers() partner.CustomerRepository
	Suppliers() partner.SupplierRepository
	Branches() partner.BranchRepository
}
