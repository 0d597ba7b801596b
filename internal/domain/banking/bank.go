package banking

import (
	"sort"
	"strings"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Bank is a bank account. Its current balance is never stored; it is always
// derived from OpeningBalance and the account's transaction log.
type Bank struct {
	shared.BaseEntity
	Name           string
	AccountNumber  string
	OpeningBalance decimal.Decimal
}

// NewBank creates a new bank account
func NewBank(name, accountNumber string, openingBalance decimal.Decimal) (*Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("bank name is required")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("bank name cannot exceed 100 characters")
	}
	return &Bank{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		AccountNumber:  strings.TrimSpace(accountNumber),
		OpeningBalance: openingBalance,
	}, nil
}

// Totals holds aggregated credits and debits for a bank
type Totals struct {
	Credits decimal.Decimal
	Debits  decimal.Decimal
}

// Net returns credits minus debits
func (t Totals) Net() decimal.Decimal {
	return t.Credits.Sub(t.Debits)
}

// BalanceFromTotals computes opening + credits - debits
func BalanceFromTotals(opening decimal.Decimal, totals Totals) decimal.Decimal {
	return opening.Add(totals.Net())
}

// Balance replays a transaction log on top of an opening balance
func Balance(opening decimal.Decimal, txns []BankTransaction) decimal.Decimal {
	balance := opening
	for i := range txns {
		balance = balance.Add(txns[i].SignedAmount())
	}
	return balance
}

// ReconciliationLine is one replayed transaction with its running balance
type ReconciliationLine struct {
	Transaction    BankTransaction
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
}

// Reconciliation is the replay of a bank's transactions over a period
type Reconciliation struct {
	Bank           Bank
	From           *time.Time
	To             *time.Time
	OpeningBalance decimal.Decimal
	TotalCredit    decimal.Decimal
	TotalDebit     decimal.Decimal
	ClosingBalance decimal.Decimal
	Lines          []ReconciliationLine
}

// Reconcile replays txns in (date, id) order starting from opening.
// txns is not modified.
func Reconcile(opening decimal.Decimal, txns []BankTransaction) ([]ReconciliationLine, decimal.Decimal) {
	ordered := make([]BankTransaction, len(txns))
	copy(ordered, txns)
	SortForReplay(ordered)

	lines := make([]ReconciliationLine, 0, len(ordered))
	running := opening
	for _, tx := range ordered {
		line := ReconciliationLine{
			Transaction: tx,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if tx.Type.IsCredit() {
			line.Credit = tx.Amount
		} else {
			line.Debit = tx.Amount
		}
		running = running.Add(tx.SignedAmount())
		line.RunningBalance = running
		lines = append(lines, line)
	}
	return lines, running
}

// NewReconciliation builds a reconciliation report for a period
func NewReconciliation(bank Bank, from, to *time.Time, periodOpening decimal.Decimal, txns []BankTransaction) *Reconciliation {
	lines, closing := Reconcile(periodOpening, txns)
	r := &Reconciliation{
		Bank:           bank,
		From:           from,
		To:             to,
		OpeningBalance: periodOpening,
		TotalCredit:    decimal.Zero,
		TotalDebit:     decimal.Zero,
		ClosingBalance: closing,
		Lines:          lines,
	}
	for _, l := range lines {
		r.TotalCredit = r.TotalCredit.Add(l.Credit)
		r.TotalDebit = r.TotalDebit.Add(l.Debit)
	}
	return r
}

// SortForReplay orders transactions by date, then by ID (insertion order)
func SortForReplay(txns []BankTransaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return strings.Compare(txns[i].ID.String(), txns[j].ID.String()) < 0
	})
}
