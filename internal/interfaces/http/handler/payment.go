package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// PaymentHandler routes outgoing payments and recoveries
type PaymentHandler struct {
	BaseHandler
	payments *ledger.PaymentRouter
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *ledger.PaymentRouter) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Pay applies a payment to the supplier, bill, salary or receivable ledger.
// POST /payments
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req PayRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := finance.ParsePaymentCategory(req.Category)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.payments.Pay(c.Request.Context(), ledger.PayInput{
		Category:    category,
		ReferenceID: parseID(req.ReferenceID),
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

// List lists the payment audit trail.
// GET /payments
func (h *PaymentHandler) List(c *gin.Context) {
	var req PaymentListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := finance.PaymentFilter{
		Filter:      listFilter(req.ListRequest),
		Category:    finance.PaymentCategory(req.Category),
		ReferenceID: optionalID(req.ReferenceID),
		BankID:      optionalID(req.BankID),
	}

	list, total, err := h.payments.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toPaymentResponses(list), total, filter.Page, filter.PageSize)
}
