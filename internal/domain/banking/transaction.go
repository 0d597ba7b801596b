package banking

import (
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of bank ledger movements
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypePayment     TransactionType = "payment"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeDeposit,
		TransactionTypeWithdrawal,
		TransactionTypePayment,
		TransactionTypeTransferIn,
		TransactionTypeTransferOut,
	}
}

// IsValid checks if the type is one of the enumerated values
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypePayment,
		TransactionTypeTransferIn, TransactionTypeTransferOut:
		return true
	}
	return false
}

// IsCredit returns true for types that increase the bank balance
func (t TransactionType) IsCredit() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeTransferIn
}

// IsDebit returns true for types that decrease the bank balance
func (t TransactionType) IsDebit() bool {
	return t.IsValid() && !t.IsCredit()
}

// String returns the string representation
func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType parses a case-insensitive transaction type
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewValidationError("invalid transaction type %q", s)
	}
	return t, nil
}

// CreditTypes lists the types counted as credits
func CreditTypes() []TransactionType {
	return []TransactionType{TransactionTypeDeposit, TransactionTypeTransferIn}
}

// DebitTypes lists the types counted as debits
func DebitTypes() []TransactionType {
	return []TransactionType{TransactionTypeWithdrawal, TransactionTypePayment, TransactionTypeTransferOut}
}

// BankTransaction is one immutable row of a bank's ledger.
// Rows are never updated; a correction is a delete followed by a new insert.
type BankTransaction struct {
	shared.BaseEntity
	BankID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Reference   string
	Description string
}

// NewBankTransaction validates and creates a bank transaction
func NewBankTransaction(
	bankID uuid.UUID,
	txType TransactionType,
	amount decimal.Decimal,
	date time.Time,
	reference string,
	description string,
) (*BankTransaction, error) {
	if bankID == uuid.Nil {
		return nil, shared.NewValidationError("bank_id is required")
	}
	if !txType.IsValid() {
		return nil, shared.NewValidationError("invalid transaction type %q", txType)
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("transaction amount must be greater than zero")
	}
	if date.IsZero() {
		date = shared.Today()
	}

	return &BankTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		BankID:      bankID,
		Type:        txType,
		Amount:      amount,
		Date:        shared.NormalizeDate(date),
		Reference:   strings.TrimSpace(reference),
		Description: strings.TrimSpace(description),
	}, nil
}

// SignedAmount returns the amount as it affects the balance
func (t *BankTransaction) SignedAmount() decimal.Decimal {
	if t.Type.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// SaleReference is the correlation key tying bank deposits to a sale
func SaleReference(saleID uuid.UUID) string {
	return "sale-" + saleID.String()
}
