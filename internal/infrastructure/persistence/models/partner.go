package models

import (
	"github.com/bookkeeping/backend/internal/domain/partner"
)

// ContactColumns are the contact fields shared by customers and suppliers
type ContactColumns struct {
	Phone   string `gorm:"type:varchar(50)"`
	Email   string `gorm:"type:varchar(200)"`
	Address string `gorm:"type:text"`
}

func (c ContactColumns) toDomain() partner.Contact {
	return partner.Contact{Phone: c.Phone, Email: c.Email, Address: c.Address}
}

func contactFromDomain(c partner.Contact) ContactColumns {
	return ContactColumns{Phone: c.Phone, Email: c.Email, Address: c.Address}
}

// CustomerModel is the persistence model for the Customer domain entity
type CustomerModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;index"`
	ContactColumns
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Contact:    m.ContactColumns.toDomain(),
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{Name: c.Name, ContactColumns: contactFromDomain(c.Contact)}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// SupplierModel is the persistence model for the Supplier domain entity
type SupplierModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;index"`
	ContactColumns
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Contact:    m.ContactColumns.toDomain(),
	}
}

// SupplierModelFromDomain creates a persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{Name: s.Name, ContactColumns: contactFromDomain(s.Contact)}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// BranchModel is the persistence model for the Branch domain entity
type BranchModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch
func (m *BranchModel) ToDomain() *partner.Branch {
	return &partner.Branch{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
	}
}

// BranchModelFromDomain creates a persistence model from a domain Branch
func BranchModelFromDomain(b *partner.Branch) *BranchModel {
	m := &BranchModel{Name: b.Name, Address: b.Address}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
