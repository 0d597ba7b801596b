package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles supplier invoices and the supplier ledger
type PurchaseHandler struct {
	BaseHandler
	purchases *ledger.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchases *ledger.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Create records a supplier invoice.
// POST /purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchases.CreateInvoice(c.Request.Context(), ledger.PurchaseInput{
		SupplierID:  parseID(req.SupplierID),
		BranchID:    optionalID(req.BranchID),
		InvoiceNo:   req.InvoiceNo,
		Date:        parseDate(req.PurchaseDate),
		DueDate:     optionalDate(req.DueDate),
		TotalAmount: req.TotalAmount,
		PaidAmount:  req.PaidAmount,
		Remarks:     req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPurchaseResponse(purchase))
}

// Get returns a supplier invoice.
// GET /purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.purchases.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPurchaseResponse(purchase))
}

// List lists supplier invoices.
// GET /purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var req PurchaseListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := finance.PurchaseFilter{
		Filter:          listFilter(req.ListRequest),
		SupplierID:      optionalID(req.SupplierID),
		BranchID:        optionalID(req.BranchID),
		OutstandingOnly: req.OutstandingOnly,
	}

	list, total, err := h.purchases.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toPurchaseResponses(list), total, filter.Page, filter.PageSize)
}

// ApplyPayment pays one invoice directly, without FIFO allocation.
// POST /purchases/:id/payments
func (h *PurchaseHandler) ApplyPayment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req PurchasePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	paid, err := h.purchases.ApplyPayment(c.Request.Context(), id, ledger.InvoicePaymentInput{
		Amount:    req.Amount,
		Date:      parseDate(req.PaymentDate),
		Method:    req.PaymentMethod,
		Remarks:   req.Remarks,
		CreatedBy: createdBy(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, PurchasePaymentResponse{
		PurchaseResponse: toPurchaseResponse(paid.Purchase),
		Voucher:          paid.Voucher,
	})
}

// SupplierLedger returns a supplier's invoices, payments and balance.
// GET /suppliers/:id/ledger
func (h *PurchaseHandler) SupplierLedger(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sl, err := h.purchases.SupplierLedger(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SupplierLedgerResponse{
		SupplierID:     sl.SupplierID,
		TotalPurchases: sl.TotalPurchases,
		TotalPaid:      sl.TotalPaid,
		Balance:        sl.Balance,
		Purchases:      toPurchaseResponses(sl.Purchases),
		Payments:       toPaymentResponses(sl.Payments),
	})
}
