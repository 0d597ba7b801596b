package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/gin-gonic/gin"
)

// CashEntryHandler handles the daily cash register
type CashEntryHandler struct {
	BaseHandler
	register *ledger.CashRegisterService
}

// NewCashEntryHandler creates a new CashEntryHandler
func NewCashEntryHandler(register *ledger.CashRegisterService) *CashEntryHandler {
	return &CashEntryHandler{register: register}
}

// Create records the single entry of a branch and day.
// POST /cash-entries
func (h *CashEntryHandler) Create(c *gin.Context) {
	var req CreateCashEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.register.CreateEntry(c.Request.Context(), ledger.CashEntryInput{
		BranchID: parseID(req.BranchID),
		Date:     parseDate(req.EntryDate),
		Figures:  req.figures(),
		Remarks:  req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, CashEntryCreatedResponse{
		ID:              entry.ID,
		ExpectedClosing: entry.ExpectedClosing,
		Difference:      entry.Difference,
	})
}

// Update replaces the figures of an entry and recomputes its difference.
// PUT /cash-entries/:branch_id/:date
func (h *CashEntryHandler) Update(c *gin.Context) {
	branchID, ok := h.pathID(c, "branch_id")
	if !ok {
		return
	}
	date, ok := h.pathDate(c, "date")
	if !ok {
		return
	}
	var req CashFiguresRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.register.EditEntry(c.Request.Context(), branchID, date, req.figures(), req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCashEntryResponse(entry))
}

// Get returns the entry of a branch and day.
// GET /cash-entries/:branch_id/:date
func (h *CashEntryHandler) Get(c *gin.Context) {
	branchID, ok := h.pathID(c, "branch_id")
	if !ok {
		return
	}
	date, ok := h.pathDate(c, "date")
	if !ok {
		return
	}
	entry, err := h.register.GetEntry(c.Request.Context(), branchID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCashEntryResponse(entry))
}

// List lists cash entries, newest first.
// GET /cash-entries
func (h *CashEntryHandler) List(c *gin.Context) {
	var req CashEntryListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := cashregister.EntryFilter{
		Filter:   listFilter(req.ListRequest),
		BranchID: optionalID(req.BranchID),
	}

	list, total, err := h.register.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]CashEntryResponse, 0, len(list))
	for i := range list {
		out = append(out, toCashEntryResponse(&list[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}
