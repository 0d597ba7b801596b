package models

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankModel is the persistence model for the Bank domain entity.
// Balance is derived from the transaction log and has no column.
type BankModel struct {
	BaseModel
	Name           string          `gorm:"type:varchar(100);not null"`
	AccountNumber  string          `gorm:"type:varchar(50)"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BankModel) TableName() string {
	return "banks"
}

// ToDomain converts the persistence model to a domain Bank
func (m *BankModel) ToDomain() *banking.Bank {
	return &banking.Bank{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		AccountNumber:  m.AccountNumber,
		OpeningBalance: m.OpeningBalance,
	}
}

// FromDomain populates the persistence model from a domain Bank
func (m *BankModel) FromDomain(b *banking.Bank) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.AccountNumber = b.AccountNumber
	m.OpeningBalance = b.OpeningBalance
}

// BankModelFromDomain creates a new persistence model from a domain Bank
func BankModelFromDomain(b *banking.Bank) *BankModel {
	m := &BankModel{}
	m.FromDomain(b)
	return m
}

// BankTransactionModel is the persistence model for a bank ledger row
type BankTransactionModel struct {
	BaseModel
	BankID      uuid.UUID               `gorm:"type:varchar(36);not null;index:idx_bank_tx_bank_date,priority:1"`
	Type        banking.TransactionType `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Date        time.Time               `gorm:"column:transaction_date;type:date;not null;index:idx_bank_tx_bank_date,priority:2"`
	Reference   string                  `gorm:"type:varchar(100);index"`
	Description string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BankTransactionModel) TableName() string {
	return "bank_transactions"
}

// ToDomain converts the persistence model to a domain BankTransaction
func (m *BankTransactionModel) ToDomain() *banking.BankTransaction {
	return &banking.BankTransaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		BankID:      m.BankID,
		Type:        m.Type,
		Amount:      m.Amount,
		Date:        m.Date.UTC(),
		Reference:   m.Reference,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain BankTransaction
func (m *BankTransactionModel) FromDomain(t *banking.BankTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.BankID = t.BankID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Date = t.Date
	m.Reference = t.Reference
	m.Description = t.Description
}

// BankTransactionModelFromDomain creates a new persistence model from a domain BankTransaction
func BankTransactionModelFromDomain(t *banking.BankTransaction) *BankTransactionModel {
	m := &BankTransactionModel{}
	m.FromDomain(t)
	return m
}
