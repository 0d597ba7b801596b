package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BankHandler handles bank accounts, their ledgers and transfers
type BankHandler struct {
	BaseHandler
	banks *ledger.BankService
}

// NewBankHandler creates a new BankHandler
func NewBankHandler(banks *ledger.BankService) *BankHandler {
	return &BankHandler{banks: banks}
}

// Create opens a bank account.
// POST /banks
func (h *BankHandler) Create(c *gin.Context) {
	var req CreateBankRequest
	if !h.bindJSON(c, &req) {
		return
	}

	bank, err := h.banks.CreateBank(c.Request.Context(), req.Name, req.AccountNumber, req.OpeningBalance)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBankResponse(bank))
}

// List lists bank accounts.
// GET /banks
func (h *BankHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := listFilter(req)

	banks, total, err := h.banks.ListBanks(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]BankResponse, 0, len(banks))
	for i := range banks {
		out = append(out, toBankResponse(&banks[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// Get returns a bank account.
// GET /banks/:id
func (h *BankHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	bank, err := h.banks.GetBank(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBankResponse(bank))
}

// Balance returns the bank's balance, derived from its ledger on every call.
// GET /banks/:id/balance
func (h *BankHandler) Balance(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	balance, err := h.banks.Balance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBankBalanceResponse(balance))
}

// RecordTransaction appends a manual entry to the bank's ledger.
// POST /banks/:id/transactions
func (h *BankHandler) RecordTransaction(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req BankTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	txType, err := banking.ParseTransactionType(req.Type)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	txn, err := h.banks.RecordTransaction(c.Request.Context(), ledger.TransactionInput{
		BankID:      id,
		Type:        txType,
		Amount:      req.Amount,
		Date:        parseDate(req.TransactionDate),
		Reference:   req.Reference,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBankTransactionResponse(txn))
}

// ListTransactions lists the bank's ledger rows.
// GET /banks/:id/transactions
func (h *BankHandler) ListTransactions(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req TransactionListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := banking.TransactionFilter{
		Filter:    listFilter(req.ListRequest),
		Type:      banking.TransactionType(req.Type),
		Reference: req.Reference,
	}

	txns, total, err := h.banks.ListTransactions(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]BankTransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, toBankTransactionResponse(&txns[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// Reconciliation replays the bank's ledger with a running balance.
// GET /banks/:id/reconciliation?from&to
func (h *BankHandler) Reconciliation(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req PeriodRequest
	if !h.bindQuery(c, &req) {
		return
	}

	rec, err := h.banks.Reconciliation(c.Request.Context(), id, optionalDate(req.From), optionalDate(req.To))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReconciliationResponse(rec))
}

// Transfer moves money between two banks under one voucher.
// POST /banks/transfers
func (h *BankHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.banks.Transfer(c.Request.Context(), ledger.TransferInput{
		FromBankID: parseID(req.FromBankID),
		ToBankID:   parseID(req.ToBankID),
		Amount:     req.Amount,
		Date:       parseDate(req.TransactionDate),
		Remarks:    req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, TransferResponse{OK: true, Amount: result.Amount, Voucher: result.Voucher})
}
