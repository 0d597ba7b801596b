package models

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableModel is the persistence model for the Receivable domain entity
type ReceivableModel struct {
	BaseModel
	CustomerID     *uuid.UUID               `gorm:"type:varchar(36);index"`
	SaleID         *uuid.UUID               `gorm:"type:varchar(36);index"`
	BranchID       *uuid.UUID               `gorm:"type:varchar(36);index"`
	OriginalAmount decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Amount         decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DueDate        *time.Time               `gorm:"type:date"`
	Status         finance.ReceivableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remarks        string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable
func (m *ReceivableModel) ToDomain() *finance.Receivable {
	return &finance.Receivable{
		BaseEntity:     m.BaseModel.ToDomain(),
		CustomerID:     m.CustomerID,
		SaleID:         m.SaleID,
		BranchID:       m.BranchID,
		OriginalAmount: m.OriginalAmount,
		Amount:         m.Amount,
		DueDate:        utcPtr(m.DueDate),
		Status:         m.Status,
		Remarks:        m.Remarks,
	}
}

// ReceivableModelFromDomain creates a persistence model from a domain Receivable
func ReceivableModelFromDomain(r *finance.Receivable) *ReceivableModel {
	m := &ReceivableModel{
		CustomerID:     r.CustomerID,
		SaleID:         r.SaleID,
		BranchID:       r.BranchID,
		OriginalAmount: r.OriginalAmount,
		Amount:         r.Amount,
		DueDate:        r.DueDate,
		Status:         r.Status,
		Remarks:        r.Remarks,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// ReceivableRecoveryModel is an append-only recovery history row
type ReceivableRecoveryModel struct {
	BaseModel
	ReceivableID uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Voucher      string          `gorm:"type:varchar(30)"`
	RecordedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceivableRecoveryModel) TableName() string {
	return "receivable_recoveries"
}

// ToDomain converts the persistence model to a domain ReceivableRecovery
func (m *ReceivableRecoveryModel) ToDomain() *finance.ReceivableRecovery {
	return &finance.ReceivableRecovery{
		BaseEntity:   m.BaseModel.ToDomain(),
		ReceivableID: m.ReceivableID,
		Amount:       m.Amount,
		Voucher:      m.Voucher,
		RecordedAt:   m.RecordedAt,
	}
}

// ReceivableRecoveryModelFromDomain creates a persistence model from a domain recovery
func ReceivableRecoveryModelFromDomain(r *finance.ReceivableRecovery) *ReceivableRecoveryModel {
	m := &ReceivableRecoveryModel{
		ReceivableID: r.ReceivableID,
		Amount:       r.Amount,
		Voucher:      r.Voucher,
		RecordedAt:   r.RecordedAt,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// PurchaseModel is the persistence model for a supplier invoice
type PurchaseModel struct {
	BaseModel
	SupplierID  uuid.UUID       `gorm:"type:varchar(36);not null;index:idx_purchase_supplier_date,priority:1"`
	BranchID    *uuid.UUID      `gorm:"type:varchar(36);index"`
	InvoiceNo   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Date        time.Time       `gorm:"column:purchase_date;type:date;not null;index:idx_purchase_supplier_date,priority:2"`
	DueDate     *time.Time      `gorm:"type:date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Remarks     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase
func (m *PurchaseModel) ToDomain() *finance.Purchase {
	return &finance.Purchase{
		BaseEntity:  m.BaseModel.ToDomain(),
		SupplierID:  m.SupplierID,
		BranchID:    m.BranchID,
		InvoiceNo:   m.InvoiceNo,
		Date:        m.Date.UTC(),
		DueDate:     utcPtr(m.DueDate),
		TotalAmount: m.TotalAmount,
		PaidAmount:  m.PaidAmount,
		Balance:     m.Balance,
		Remarks:     m.Remarks,
	}
}

// PurchaseModelFromDomain creates a persistence model from a domain Purchase
func PurchaseModelFromDomain(p *finance.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		SupplierID:  p.SupplierID,
		BranchID:    p.BranchID,
		InvoiceNo:   p.InvoiceNo,
		Date:        p.Date,
		DueDate:     p.DueDate,
		TotalAmount: p.TotalAmount,
		PaidAmount:  p.PaidAmount,
		Balance:     p.Balance,
		Remarks:     p.Remarks,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// PaymentModel is the payment audit row
type PaymentModel struct {
	BaseModel
	Voucher       string                  `gorm:"type:varchar(30);not null;index"`
	Category      finance.PaymentCategory `gorm:"type:varchar(30);not null;index"`
	ReferenceID   uuid.UUID               `gorm:"type:varchar(36);not null;index"`
	ReferenceType string                  `gorm:"type:varchar(30);not null"`
	Amount        decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Date          time.Time               `gorm:"column:payment_date;type:date;not null;index"`
	Mode          finance.PaymentMode     `gorm:"type:varchar(10);not null"`
	BankID        *uuid.UUID              `gorm:"type:varchar(36);index"`
	Remarks       string                  `gorm:"type:text"`
	CreatedBy     string                  `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		Voucher:       m.Voucher,
		Category:      m.Category,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		Amount:        m.Amount,
		Date:          m.Date.UTC(),
		Mode:          m.Mode,
		BankID:        m.BankID,
		Remarks:       m.Remarks,
		CreatedBy:     m.CreatedBy,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{
		Voucher:       p.Voucher,
		Category:      p.Category,
		ReferenceID:   p.ReferenceID,
		ReferenceType: p.ReferenceType,
		Amount:        p.Amount,
		Date:          p.Date,
		Mode:          p.Mode,
		BankID:        p.BankID,
		Remarks:       p.Remarks,
		CreatedBy:     p.CreatedBy,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// BillModel is the persistence model for a rent or utility bill
type BillModel struct {
	BaseModel
	BranchID   *uuid.UUID         `gorm:"type:varchar(36);index"`
	Name       string             `gorm:"type:varchar(200);not null"`
	Amount     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	PaidAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Balance    decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	DueDate    *time.Time         `gorm:"type:date"`
	Status     finance.BillStatus `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	Remarks    string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill
func (m *BillModel) ToDomain() *finance.Bill {
	return &finance.Bill{
		BaseEntity: m.BaseModel.ToDomain(),
		BranchID:   m.BranchID,
		Name:       m.Name,
		Amount:     m.Amount,
		PaidAmount: m.PaidAmount,
		Balance:    m.Balance,
		DueDate:    utcPtr(m.DueDate),
		Status:     m.Status,
		Remarks:    m.Remarks,
	}
}

// BillModelFromDomain creates a persistence model from a domain Bill
func BillModelFromDomain(b *finance.Bill) *BillModel {
	m := &BillModel{
		BranchID:   b.BranchID,
		Name:       b.Name,
		Amount:     b.Amount,
		PaidAmount: b.PaidAmount,
		Balance:    b.Balance,
		DueDate:    b.DueDate,
		Status:     b.Status,
		Remarks:    b.Remarks,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}

// SalaryRecordModel is the persistence model for a salary record
type SalaryRecordModel struct {
	BaseModel
	EmployeeName string               `gorm:"type:varchar(200);not null"`
	BranchID     *uuid.UUID           `gorm:"type:varchar(36);index"`
	Period       string               `gorm:"type:varchar(7);not null;index"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	PaidAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	PaidDate     *time.Time           `gorm:"type:date"`
	Status       finance.SalaryStatus `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	Remarks      string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalaryRecordModel) TableName() string {
	return "salary_records"
}

// ToDomain converts the persistence model to a domain SalaryRecord
func (m *SalaryRecordModel) ToDomain() *finance.SalaryRecord {
	return &finance.SalaryRecord{
		BaseEntity:   m.BaseModel.ToDomain(),
		EmployeeName: m.EmployeeName,
		BranchID:     m.BranchID,
		Period:       m.Period,
		Amount:       m.Amount,
		PaidAmount:   m.PaidAmount,
		PaidDate:     utcPtr(m.PaidDate),
		Status:       m.Status,
		Remarks:      m.Remarks,
	}
}

// SalaryRecordModelFromDomain creates a persistence model from a domain SalaryRecord
func SalaryRecordModelFromDomain(s *finance.SalaryRecord) *SalaryRecordModel {
	m := &SalaryRecordModel{
		EmployeeName: s.EmployeeName,
		BranchID:     s.BranchID,
		Period:       s.Period,
		Amount:       s.Amount,
		PaidAmount:   s.PaidAmount,
		PaidDate:     s.PaidDate,
		Status:       s.Status,
		Remarks:      s.Remarks,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
