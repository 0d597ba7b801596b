package handler

import (
	"time"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/sales"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankSplitRequest is one requested bank deposit of a sale.
// Lines with an unknown bank or a non-positive amount are dropped.
type BankSplitRequest struct {
	BankID string          `json:"bank_id"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleRequest records or edits a sale.
// A present bank_splits list, even an empty one, replaces bank_amount.
type SaleRequest struct {
	BranchID      string             `json:"branch_id" binding:"omitempty,uuid"`
	CustomerID    string             `json:"customer_id" binding:"omitempty,uuid"`
	BankID        string             `json:"bank_id" binding:"omitempty,uuid"`
	SaleDate      string             `json:"sale_date" binding:"omitempty,datetime=2006-01-02"`
	CashAmount    decimal.Decimal    `json:"cash_amount" binding:"decimal_gte0"`
	BankAmount    decimal.Decimal    `json:"bank_amount" binding:"decimal_gte0"`
	CreditAmount  decimal.Decimal    `json:"credit_amount" binding:"decimal_gte0"`
	Discount      decimal.Decimal    `json:"discount" binding:"decimal_gte0"`
	ReturnsAmount decimal.Decimal    `json:"returns_amount" binding:"decimal_gte0"`
	BankSplits    []BankSplitRequest `json:"bank_splits"`
	Remarks       string             `json:"remarks" binding:"max=500"`
}

func (r *SaleRequest) toInput(createdBy string) ledger.SaleInput {
	in := ledger.SaleInput{
		BranchID:   optionalID(r.BranchID),
		CustomerID: optionalID(r.CustomerID),
		BankID:     optionalID(r.BankID),
		Date:       parseDate(r.SaleDate),
		Cash:       r.CashAmount,
		Bank:       r.BankAmount,
		Credit:     r.CreditAmount,
		Discount:   r.Discount,
		Returns:    r.ReturnsAmount,
		Remarks:    r.Remarks,
		CreatedBy:  createdBy,
	}
	if r.BankSplits != nil {
		in.Splits = make([]ledger.SplitInput, 0, len(r.BankSplits))
		for _, s := range r.BankSplits {
			in.Splits = append(in.Splits, ledger.SplitInput{BankID: parseID(s.BankID), Amount: s.Amount})
		}
	}
	return in
}

// SaleListRequest filters sales
type SaleListRequest struct {
	dto.ListRequest
	BranchID   string `form:"branch_id" binding:"omitempty,uuid"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
}

// SaleSummaryRequest bounds the net sales summary
type SaleSummaryRequest struct {
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// BankSplitResponse is one stored bank deposit of a sale
type BankSplitResponse struct {
	BankID uuid.UUID       `json:"bank_id"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleResponse is a recorded sale
type SaleResponse struct {
	ID            uuid.UUID           `json:"id"`
	Voucher       string              `json:"voucher"`
	BranchID      *uuid.UUID          `json:"branch_id,omitempty"`
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
	BankID        *uuid.UUID          `json:"bank_id,omitempty"`
	SaleDate      string              `json:"sale_date"`
	CashAmount    decimal.Decimal     `json:"cash_amount"`
	BankAmount    decimal.Decimal     `json:"bank_amount"`
	CreditAmount  decimal.Decimal     `json:"credit_amount"`
	Discount      decimal.Decimal     `json:"discount"`
	ReturnsAmount decimal.Decimal     `json:"returns_amount"`
	NetSales      decimal.Decimal     `json:"net_sales"`
	IsLocked      bool                `json:"is_locked"`
	Remarks       string              `json:"remarks,omitempty"`
	CreatedBy     string              `json:"created_by,omitempty"`
	BankSplits    []BankSplitResponse `json:"bank_splits"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// SaleSummaryResponse totals net sales over a period
type SaleSummaryResponse struct {
	BranchID      *uuid.UUID      `json:"branch_id,omitempty"`
	From          *string         `json:"from,omitempty"`
	To            *string         `json:"to,omitempty"`
	Count         int64           `json:"count"`
	TotalNetSales decimal.Decimal `json:"total_net_sales"`
}

// SaleAttachmentResponse is a stored sale attachment
type SaleAttachmentResponse struct {
	ID        uuid.UUID `json:"id"`
	SaleID    uuid.UUID `json:"sale_id"`
	FileName  string    `json:"file_name"`
	ObjectKey string    `json:"object_key"`
	CreatedAt time.Time `json:"created_at"`
}

func toSaleResponse(s *sales.Sale) SaleResponse {
	splits := make([]BankSplitResponse, 0, len(s.Splits))
	for _, sp := range s.Splits {
		splits = append(splits, BankSplitResponse{BankID: sp.BankID, Amount: sp.Amount})
	}
	return SaleResponse{
		ID:            s.ID,
		Voucher:       s.Voucher,
		BranchID:      s.BranchID,
		CustomerID:    s.CustomerID,
		BankID:        s.BankID,
		SaleDate:      formatDate(s.Date),
		CashAmount:    s.CashAmount,
		BankAmount:    s.BankAmount,
		CreditAmount:  s.CreditAmount,
		Discount:      s.Discount,
		ReturnsAmount: s.ReturnsAmount,
		NetSales:      s.NetSales,
		IsLocked:      s.IsLocked,
		Remarks:       s.Remarks,
		CreatedBy:     s.CreatedBy,
		BankSplits:    splits,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toSaleAttachmentResponse(a *sales.SaleAttachment) SaleAttachmentResponse {
	return SaleAttachmentResponse{
		ID:        a.ID,
		SaleID:    a.SaleID,
		FileName:  a.FileName,
		ObjectKey: a.ObjectKey,
		CreatedAt: a.CreatedAt,
	}
}
