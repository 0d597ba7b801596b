package models

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashEntryModel is the persistence model for a daily cash entry.
// (branch_id, entry_date) is unique.
type CashEntryModel struct {
	BaseModel
	BranchID        uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_cash_entry_branch_date,priority:1"`
	EntryDate       time.Time       `gorm:"type:date;not null;uniqueIndex:idx_cash_entry_branch_date,priority:2"`
	OpeningCash     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalesCash       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpenseCash     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BankDeposit     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BankWithdrawal  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedClosing decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ClosingCash     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Difference      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Remarks         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CashEntryModel) TableName() string {
	return "cash_entries"
}

// ToDomain converts the persistence model to a domain CashEntry
func (m *CashEntryModel) ToDomain() *cashregister.CashEntry {
	return &cashregister.CashEntry{
		BaseEntity:      m.BaseModel.ToDomain(),
		BranchID:        m.BranchID,
		EntryDate:       m.EntryDate.UTC(),
		OpeningCash:     m.OpeningCash,
		SalesCash:       m.SalesCash,
		ExpenseCash:     m.ExpenseCash,
		BankDeposit:     m.BankDeposit,
		BankWithdrawal:  m.BankWithdrawal,
		ExpectedClosing: m.ExpectedClosing,
		ClosingCash:     m.ClosingCash,
		Difference:      m.Difference,
		Remarks:         m.Remarks,
	}
}

// CashEntryModelFromDomain creates a persistence model from a domain CashEntry
func CashEntryModelFromDomain(e *cashregister.CashEntry) *CashEntryModel {
	m := &CashEntryModel{
		BranchID:        e.BranchID,
		EntryDate:       e.EntryDate,
		OpeningCash:     e.OpeningCash,
		SalesCash:       e.SalesCash,
		ExpenseCash:     e.ExpenseCash,
		BankDeposit:     e.BankDeposit,
		BankWithdrawal:  e.BankWithdrawal,
		ExpectedClosing: e.ExpectedClosing,
		ClosingCash:     e.ClosingCash,
		Difference:      e.Difference,
		Remarks:         e.Remarks,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
