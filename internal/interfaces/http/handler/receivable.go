package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// ReceivableHandler handles customer receivables and their recovery
type ReceivableHandler struct {
	BaseHandler
	receivables *ledger.ReceivableService
	payments    *ledger.PaymentRouter
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(receivables *ledger.ReceivableService, payments *ledger.PaymentRouter) *ReceivableHandler {
	return &ReceivableHandler{receivables: receivables, payments: payments}
}

// Create records a receivable not tied to a sale.
// POST /receivables
func (h *ReceivableHandler) Create(c *gin.Context) {
	var req CreateReceivableRequest
	if !h.bindJSON(c, &req) {
		return
	}

	receivable, err := h.receivables.CreateStandalone(c.Request.Context(), ledger.ReceivableInput{
		CustomerID: optionalID(req.CustomerID),
		BranchID:   optionalID(req.BranchID),
		Amount:     req.Amount,
		DueDate:    optionalDate(req.DueDate),
		Remarks:    req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toReceivableResponse(receivable))
}

// Get returns a receivable with its recoveries.
// GET /receivables/:id
func (h *ReceivableHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.receivables.GetReceivable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReceivableDetailResponse(detail))
}

// List lists receivables.
// GET /receivables
func (h *ReceivableHandler) List(c *gin.Context) {
	var req ReceivableListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := finance.ReceivableFilter{
		Filter:     listFilter(req.ListRequest),
		Status:     finance.ReceivableStatus(req.Status),
		CustomerID: optionalID(req.CustomerID),
		BranchID:   optionalID(req.BranchID),
		SaleID:     optionalID(req.SaleID),
	}

	list, total, err := h.receivables.ListReceivables(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]ReceivableResponse, 0, len(list))
	for i := range list {
		out = append(out, toReceivableResponse(&list[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// Recover pays down a receivable through the payment router so the
// recovery gets a voucher and an audit row.
// POST /receivables/:id/recoveries
func (h *ReceivableHandler) Recover(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req RecoveryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.payments.Pay(c.Request.Context(), ledger.PayInput{
		Category:    finance.PaymentCategoryReceivableRecovery,
		ReferenceID: id,
		Amount:      req.Amount,
		Date:        parseDate(req.PaymentDate),
		Method:      req.PaymentMethod,
		Remarks:     req.Remarks,
		CreatedBy:   createdBy(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
