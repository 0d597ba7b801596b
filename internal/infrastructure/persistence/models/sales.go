package models

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale domain entity
type SaleModel struct {
	BaseModel
	Voucher       string               `gorm:"type:varchar(30);not null;index"`
	BranchID      *uuid.UUID           `gorm:"type:varchar(36);index"`
	CustomerID    *uuid.UUID           `gorm:"type:varchar(36);index"`
	BankID        *uuid.UUID           `gorm:"type:varchar(36)"`
	Date          time.Time            `gorm:"column:sale_date;type:date;not null;index"`
	CashAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	BankAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	CreditAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Discount      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnsAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	NetSales      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	IsLocked      bool                 `gorm:"not null;default:false"`
	Remarks       string               `gorm:"type:text"`
	CreatedBy     string               `gorm:"type:varchar(100)"`
	Splits        []SaleBankSplitModel `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale, including loaded splits
func (m *SaleModel) ToDomain() *sales.Sale {
	s := &sales.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		Voucher:       m.Voucher,
		BranchID:      m.BranchID,
		CustomerID:    m.CustomerID,
		BankID:        m.BankID,
		Date:          m.Date.UTC(),
		CashAmount:    m.CashAmount,
		BankAmount:    m.BankAmount,
		CreditAmount:  m.CreditAmount,
		Discount:      m.Discount,
		ReturnsAmount: m.ReturnsAmount,
		NetSales:      m.NetSales,
		IsLocked:      m.IsLocked,
		Remarks:       m.Remarks,
		CreatedBy:     m.CreatedBy,
	}
	if len(m.Splits) > 0 {
		s.Splits = make([]sales.SaleBankSplit, len(m.Splits))
		for i := range m.Splits {
			s.Splits[i] = *m.Splits[i].ToDomain()
		}
	}
	return s
}

// FromDomain populates the persistence model from a domain Sale.
// Splits are not copied; the repository writes them separately.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Voucher = s.Voucher
	m.BranchID = s.BranchID
	m.CustomerID = s.CustomerID
	m.BankID = s.BankID
	m.Date = s.Date
	m.CashAmount = s.CashAmount
	m.BankAmount = s.BankAmount
	m.CreditAmount = s.CreditAmount
	m.Discount = s.Discount
	m.ReturnsAmount = s.ReturnsAmount
	m.NetSales = s.NetSales
	m.IsLocked = s.IsLocked
	m.Remarks = s.Remarks
	m.CreatedBy = s.CreatedBy
}

// SaleModelFromDomain creates a new persistence model from a domain Sale
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleBankSplitModel is the persistence model for one bank split of a sale
type SaleBankSplitModel struct {
	BaseModel
	SaleID uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	BankID uuid.UUID       `gorm:"type:varchar(36);not null"`
	Amount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleBankSplitModel) TableName() string {
	return "sale_bank_splits"
}

// ToDomain converts the persistence model to a domain SaleBankSplit
func (m *SaleBankSplitModel) ToDomain() *sales.SaleBankSplit {
	return &sales.SaleBankSplit{
		BaseEntity: m.BaseModel.ToDomain(),
		SaleID:     m.SaleID,
		BankID:     m.BankID,
		Amount:     m.Amount,
	}
}

// SaleBankSplitModelFromDomain creates a persistence model from a domain split
func SaleBankSplitModelFromDomain(s *sales.SaleBankSplit) *SaleBankSplitModel {
	m := &SaleBankSplitModel{
		SaleID: s.SaleID,
		BankID: s.BankID,
		Amount: s.Amount,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// SaleAttachmentModel is attachment metadata; file bytes live in object storage
type SaleAttachmentModel struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	ObjectKey string    `gorm:"type:varchar(500);not null"`
	FileName  string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (SaleAttachmentModel) TableName() string {
	return "sale_attachments"
}

// ToDomain converts the persistence model to a domain SaleAttachment
func (m *SaleAttachmentModel) ToDomain() *sales.SaleAttachment {
	return &sales.SaleAttachment{
		BaseEntity: m.BaseModel.ToDomain(),
		SaleID:     m.SaleID,
		ObjectKey:  m.ObjectKey,
		FileName:   m.FileName,
	}
}

// SaleAttachmentModelFromDomain creates a persistence model from a domain attachment
func SaleAttachmentModelFromDomain(a *sales.SaleAttachment) *SaleAttachmentModel {
	m := &SaleAttachmentModel{
		SaleID:    a.SaleID,
		ObjectKey: a.ObjectKey,
		FileName:  a.FileName,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
