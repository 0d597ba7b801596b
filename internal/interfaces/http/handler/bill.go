package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// BillHandler handles rent and utility bills. Bills are paid through POST /payments.
type BillHandler struct {
	BaseHandler
	bills *ledger.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills *ledger.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

// Create records a bill.
// POST /bills
func (h *BillHandler) Create(c *gin.Context) {
	var req CreateBillRequest
	if !h.bindJSON(c, &req) {
		return
	}

	bill, err := h.bills.CreateBill(c.Request.Context(), ledger.BillInput{
		BranchID: optionalID(req.BranchID),
		Name:     req.Name,
		Amount:   req.Amount,
		DueDate:  optionalDate(req.DueDate),
		Remarks:  req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBillResponse(bill))
}

// Get returns a bill.
// GET /bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	bill, err := h.bills.GetBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillResponse(bill))
}

// List lists bills.
// GET /bills
func (h *BillHandler) List(c *gin.Context) {
	var req BillListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := finance.BillFilter{
		Filter:   listFilter(req.ListRequest),
		BranchID: optionalID(req.BranchID),
		Status:   finance.BillStatus(req.Status),
	}

	list, total, err := h.bills.ListBills(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]BillResponse, 0, len(list))
	for i := range list {
		out = append(out, toBillResponse(&list[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}
