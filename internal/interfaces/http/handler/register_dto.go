package handler

import (
	"time"

	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/bookkeeping/backend/internal/domain/partner"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFiguresRequest are the day's cash movements.
// closing_cash may be omitted when the drawer was not counted.
type CashFiguresRequest struct {
	OpeningCash    decimal.Decimal  `json:"opening_cash" binding:"decimal_gte0"`
	SalesCash      decimal.Decimal  `json:"sales_cash" binding:"decimal_gte0"`
	ExpenseCash    decimal.Decimal  `json:"expense_cash" binding:"decimal_gte0"`
	BankDeposit    decimal.Decimal  `json:"bank_deposit" binding:"decimal_gte0"`
	BankWithdrawal decimal.Decimal  `json:"bank_withdrawal" binding:"decimal_gte0"`
	ClosingCash    *decimal.Decimal `json:"closing_cash"`
	Remarks        string           `json:"remarks" binding:"max=500"`
}

func (r CashFiguresRequest) figures() cashregister.Figures {
	return cashregister.Figures{
		OpeningCash:    r.OpeningCash,
		SalesCash:      r.SalesCash,
		ExpenseCash:    r.ExpenseCash,
		BankDeposit:    r.BankDeposit,
		BankWithdrawal: r.BankWithdrawal,
		ClosingCash:    r.ClosingCash,
	}
}

// CreateCashEntryRequest opens the cash register entry of a branch and day
type CreateCashEntryRequest struct {
	BranchID  string `json:"branch_id" binding:"required,uuid"`
	EntryDate string `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
	CashFiguresRequest
}

// CashEntryListRequest filters cash entries
type CashEntryListRequest struct {
	dto.ListRequest
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
}

// CashEntryCreatedResponse is the reconciliation result of a new entry
type CashEntryCreatedResponse struct {
	ID              uuid.UUID       `json:"id"`
	ExpectedClosing decimal.Decimal `json:"expectedClosing"`
	Difference      decimal.Decimal `json:"difference"`
}

// CashEntryResponse is a cash register entry
type CashEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	BranchID        uuid.UUID       `json:"branch_id"`
	EntryDate       string          `json:"entry_date"`
	OpeningCash     decimal.Decimal `json:"opening_cash"`
	SalesCash       decimal.Decimal `json:"sales_cash"`
	ExpenseCash     decimal.Decimal `json:"expense_cash"`
	BankDeposit     decimal.Decimal `json:"bank_deposit"`
	BankWithdrawal  decimal.Decimal `json:"bank_withdrawal"`
	ExpectedClosing decimal.Decimal `json:"expected_closing"`
	ClosingCash     decimal.Decimal `json:"closing_cash"`
	Difference      decimal.Decimal `json:"difference"`
	Remarks         string          `json:"remarks,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toCashEntryResponse(e *cashregister.CashEntry) CashEntryResponse {
	return CashEntryResponse{
		ID:              e.ID,
		BranchID:        e.BranchID,
		EntryDate:       formatDate(e.EntryDate),
		OpeningCash:     e.OpeningCash,
		SalesCash:       e.SalesCash,
		ExpenseCash:     e.ExpenseCash,
		BankDeposit:     e.BankDeposit,
		BankWithdrawal:  e.BankWithdrawal,
		ExpectedClosing: e.ExpectedClosing,
		ClosingCash:     e.ClosingCash,
		Difference:      e.Difference,
		Remarks:         e.Remarks,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// PartnerRequest creates a customer or supplier
type PartnerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
}

func (r PartnerRequest) contact() partner.Contact {
	return partner.Contact{Phone: r.Phone, Email: r.Email, Address: r.Address}
}

// BranchRequest creates a branch
type BranchRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// PartnerResponse is a customer or supplier
type PartnerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchResponse is a branch
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toPartnerResponse(base partnerView) PartnerResponse {
	return PartnerResponse{
		ID:        base.id,
		Name:      base.name,
		Phone:     base.contact.Phone,
		Email:     base.contact.Email,
		Address:   base.contact.Address,
		CreatedAt: base.createdAt,
	}
}

// partnerView flattens the fields customers and suppliers share
type partnerView struct {
	id        uuid.UUID
	name      string
	contact   partner.Contact
	createdAt time.Time
}

func customerView(c *partner.Customer) partnerView {
	return partnerView{id: c.ID, name: c.Name, contact: c.Contact, createdAt: c.CreatedAt}
}

func supplierView(s *partner.Supplier) partnerView {
	return partnerView{id: s.ID, name: s.Name, contact: s.Contact, createdAt: s.CreatedAt}
}

func toBranchResponse(b *partner.Branch) BranchResponse {
	return BranchResponse{ID: b.ID, Name: b.Name, Address: b.Address, CreatedAt: b.CreatedAt}
}
