package ledger

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// TransactionInput is the input for a manual bank ledger entry
type TransactionInput struct {
	BankID      uuid.UUID
	Type        banking.TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Reference   string
	Description string
}

// TransferInput moves money between two bank accounts
type TransferInput struct {
	FromBankID uuid.UUID
	ToBankID   uuid.UUID
	Amount     decimal.Decimal
	Date       time.Time
	Remarks    string
}

// TransferResult is returned by Transfer
type TransferResult struct {
	Amount  decimal.Decimal `json:"amount"`
	Voucher string          `json:"voucher"`
}

// BankBalance is a bank's balance derived from its ledger
type BankBalance struct {
	Bank    banking.Bank
	Credits decimal.Decimal
	Debits  decimal.Decimal
	Balance decimal.Decimal
}

// BankService manages bank accounts and their transaction ledgers
type BankService struct {
	base
}

// NewBankService creates a new BankService
func NewBankService(deps Dependencies) *BankService {
	return &BankService{base: newBase(deps)}
}

// CreateBank opens a bank account
func (s *BankService) CreateBank(ctx context.Context, name, accountNumber string, openingBalance decimal.Decimal) (*banking.Bank, error) {
	bank, err := banking.NewBank(name, accountNumber, openingBalance)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Banks().Save(ctx, bank); err != nil {
		return nil, err
	}
	s.log(ctx).Info("Bank created", zap.String("bank_id", bank.ID.String()), zap.String("name", bank.Name))
	return bank, nil
}

// GetBank returns a bank account
func (s *BankService) GetBank(ctx context.Context, id uuid.UUID) (*banking.Bank, error) {
	return s.repos.Banks().FindByID(ctx, id)
}

// ListBanks lists bank accounts
func (s *BankService) ListBanks(ctx context.Context, filter shared.Filter) ([]banking.Bank, int64, error) {
	return s.repos.Banks().FindAll(ctx, filter)
}

// Balance derives the current balance from the opening balance and the whole ledger
func (s *BankService) Balance(ctx context.Context, id uuid.UUID) (*BankBalance, error) {
	bank, err := s.repos.Banks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := s.repos.BankTransactions().SumByBank(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return &BankBalance{
		Bank:    *bank,
		Credits: totals.Credits,
		Debits:  totals.Debits,
		Balance: banking.BalanceFromTotals(bank.OpeningBalance, totals),
	}, nil
}

// RecordTransaction appends a manual entry to a bank's ledger
func (s *BankService) RecordTransaction(ctx context.Context, in TransactionInput) (*banking.BankTransaction, error) {
	tx, err := banking.NewBankTransaction(in.BankID, in.Type, in.Amount, in.Date, in.Reference, in.Description)
	if err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, &in.BankID, s.repos.Banks().ExistsByID, "bank"); err != nil {
		return nil, err
	}
	if err := s.repos.BankTransactions().Save(ctx, tx); err != nil {
		return nil, err
	}
	s.metrics.RecordOperation(ctx, "bank_transaction", string(tx.Type), tx.Amount)
	return tx, nil
}

// Transfer debits one account and credits another under a single voucher
func (s *BankService) Transfer(ctx context.Context, in TransferInput) (result *TransferResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "banks", "transfer",
		attribute.String(telemetry.AttrAmount, in.Amount.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if !in.Amount.IsPositive() {
		return nil, shared.NewValidationError("transfer amount must be greater than zero")
	}
	if in.FromBankID == uuid.Nil || in.ToBankID == uuid.Nil {
		return nil, shared.NewValidationError("from_bank_id and to_bank_id are required")
	}
	if in.FromBankID == in.ToBankID {
		return nil, shared.NewValidationError("cannot transfer to the same bank account")
	}
	date := in.Date
	if date.IsZero() {
		date = shared.Today()
	}

	var vch string
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		if err := ensureExists(ctx, &in.FromBankID, repos.Banks().ExistsByID, "source bank"); err != nil {
			return err
		}
		if err := ensureExists(ctx, &in.ToBankID, repos.Banks().ExistsByID, "destination bank"); err != nil {
			return err
		}
		var err error
		vch, err = s.issueVoucher(ctx, repos)
		if err != nil {
			return err
		}
		description := voucher.AttachNote(in.Remarks, vch)
		out, err := banking.NewBankTransaction(in.FromBankID, banking.TransactionTypeTransferOut, in.Amount, date, vch, description)
		if err != nil {
			return err
		}
		incoming, err := banking.NewBankTransaction(in.ToBankID, banking.TransactionTypeTransferIn, in.Amount, date, vch, description)
		if err != nil {
			return err
		}
		return repos.BankTransactions().SaveBatch(ctx, []*banking.BankTransaction{out, incoming})
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String(telemetry.AttrVoucher, vch))
	s.metrics.VoucherIssued(ctx)
	s.metrics.RecordOperation(ctx, "transfer", "", in.Amount)
	s.log(ctx).Info("Bank transfer recorded",
		zap.String("voucher", vch),
		zap.String("from_bank_id", in.FromBankID.String()),
		zap.String("to_bank_id", in.ToBankID.String()),
		zap.String("amount", in.Amount.String()),
	)
	return &TransferResult{Amount: in.Amount, Voucher: vch}, nil
}

// Reconciliation replays a bank's ledger over [from, to] in (date, id) order.
// With from set the replay opens at the opening balance plus everything dated earlier.
func (s *BankService) Reconciliation(ctx context.Context, id uuid.UUID, from, to *time.Time) (*banking.Reconciliation, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, shared.NewValidationError("to must not be before from")
	}
	bank, err := s.repos.Banks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	opening := bank.OpeningBalance
	if from != nil {
		earlier, err := s.repos.BankTransactions().SumByBank(ctx, id, from)
		if err != nil {
			return nil, err
		}
		opening = banking.BalanceFromTotals(opening, earlier)
	}
	txns, err := s.repos.BankTransactions().FindInPeriod(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	return banking.NewReconciliation(*bank, from, to, opening, txns), nil
}

// ListTransactions lists a bank's ledger entries
func (s *BankService) ListTransactions(ctx context.Context, bankID uuid.UUID, filter banking.TransactionFilter) ([]banking.BankTransaction, int64, error) {
	if err := ensureExists(ctx, &bankID, s.repos.Banks().ExistsByID, "bank"); err != nil {
		return nil, 0, err
	}
	return s.repos.BankTransactions().FindByBank(ctx, bankID, filter)
}
