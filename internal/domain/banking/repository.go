package banking

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BankRepository defines persistence for bank accounts
type BankRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bank, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Bank, int64, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, bank *Bank) error
}

// TransactionFilter narrows bank transaction queries
type TransactionFilter struct {
	shared.Filter
	Type      TransactionType
	Reference string
}

// BankTransactionRepository defines persistence for the bank ledger
type BankTransactionRepository interface {
	Save(ctx context.Context, tx *BankTransaction) error
	SaveBatch(ctx context.Context, txns []*BankTransaction) error
	FindByBank(ctx context.Context, bankID uuid.UUID, filter TransactionFilter) ([]BankTransaction, int64, error)
	FindByReference(ctx context.Context, reference string) ([]BankTransaction, error)
	// FindInPeriod returns the bank's transactions within [from, to] ordered by date, id.
	// Nil bounds are open.
	FindInPeriod(ctx context.Context, bankID uuid.UUID, from, to *time.Time) ([]BankTransaction, error)
	// SumByBank aggregates credits and debits; when before is set only rows dated strictly earlier count
	SumByBank(ctx context.Context, bankID uuid.UUID, before *time.Time) (Totals, error)
	DeleteByReference(ctx context.Context, reference string) (int64, error)
}
