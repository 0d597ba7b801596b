package handler

import (
	"time"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBankRequest opens a bank account
type CreateBankRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	AccountNumber  string          `json:"account_number" binding:"max=100"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// BankTransactionRequest is a manual bank ledger entry
type BankTransactionRequest struct {
	Type            string          `json:"type" binding:"required,oneof=deposit withdrawal payment transfer_in transfer_out"`
	Amount          decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	TransactionDate string          `json:"transaction_date" binding:"omitempty,datetime=2006-01-02"`
	Reference       string          `json:"reference" binding:"max=100"`
	Description     string          `json:"description" binding:"max=500"`
}

// TransferRequest moves money between two banks.
// Amount and distinct banks are checked by the ledger so they surface as
// domain validation errors.
type TransferRequest struct {
	FromBankID      string          `json:"from_bank_id" binding:"required,uuid"`
	ToBankID        string          `json:"to_bank_id" binding:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date" binding:"omitempty,datetime=2006-01-02"`
	Remarks         string          `json:"remarks" binding:"max=500"`
}

// TransactionListRequest filters a bank's ledger
type TransactionListRequest struct {
	dto.ListRequest
	Type      string `form:"type" binding:"omitempty,oneof=deposit withdrawal payment transfer_in transfer_out"`
	Reference string `form:"reference" binding:"omitempty,max=100"`
}

// PeriodRequest bounds a report by date
type PeriodRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// BankResponse is a bank account
type BankResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	AccountNumber  string          `json:"account_number,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BankBalanceResponse is a bank's derived balance
type BankBalanceResponse struct {
	BankID         uuid.UUID       `json:"bank_id"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	Balance        decimal.Decimal `json:"balance"`
}

// BankTransactionResponse is one bank ledger row
type BankTransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	BankID      uuid.UUID       `json:"bank_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"transaction_date"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransferResponse is returned by a bank transfer
type TransferResponse struct {
	OK      bool            `json:"ok"`
	Amount  decimal.Decimal `json:"amount"`
	Voucher string          `json:"voucher"`
}

// ReconciliationLineResponse is one replayed ledger row
type ReconciliationLineResponse struct {
	BankTransactionResponse
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// ReconciliationResponse replays a bank's ledger over a period
type ReconciliationResponse struct {
	BankID         uuid.UUID                    `json:"bank_id"`
	Name           string                       `json:"name"`
	From           *string                      `json:"from,omitempty"`
	To             *string                      `json:"to,omitempty"`
	OpeningBalance decimal.Decimal              `json:"opening_balance"`
	TotalCredit    decimal.Decimal              `json:"total_credit"`
	TotalDebit     decimal.Decimal              `json:"total_debit"`
	ClosingBalance decimal.Decimal              `json:"closing_balance"`
	Lines          []ReconciliationLineResponse `json:"lines"`
}

func toBankResponse(b *banking.Bank) BankResponse {
	return BankResponse{
		ID:             b.ID,
		Name:           b.Name,
		AccountNumber:  b.AccountNumber,
		OpeningBalance: b.OpeningBalance,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toBankBalanceResponse(b *ledger.BankBalance) BankBalanceResponse {
	return BankBalanceResponse{
		BankID:         b.Bank.ID,
		Name:           b.Bank.Name,
		OpeningBalance: b.Bank.OpeningBalance,
		TotalCredit:    b.Credits,
		TotalDebit:     b.Debits,
		Balance:        b.Balance,
	}
}

func toBankTransactionResponse(t *banking.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		ID:          t.ID,
		BankID:      t.BankID,
		Type:        t.Type.String(),
		Amount:      t.Amount,
		Date:        formatDate(t.Date),
		Reference:   t.Reference,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func toReconciliationResponse(r *banking.Reconciliation) ReconciliationResponse {
	lines := make([]ReconciliationLineResponse, 0, len(r.Lines))
	for i := range r.Lines {
		l := &r.Lines[i]
		lines = append(lines, ReconciliationLineResponse{
			BankTransactionResponse: toBankTransactionResponse(&l.Transaction),
			Debit:                   l.Debit,
			Credit:                  l.Credit,
			RunningBalance:          l.RunningBalance,
		})
	}
	return ReconciliationResponse{
		BankID:         r.Bank.ID,
		Name:           r.Bank.Name,
		From:           formatOptionalDate(r.From),
		To:             formatOptionalDate(r.To),
		OpeningBalance: r.OpeningBalance,
		TotalCredit:    r.TotalCredit,
		TotalDebit:     r.TotalDebit,
		ClosingBalance: r.ClosingBalance,
		Lines:          lines,
	}
}
