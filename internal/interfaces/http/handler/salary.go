package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// SalaryHandler handles salary records. Salaries are paid through POST /payments.
type SalaryHandler struct {
	BaseHandler
	salaries *ledger.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler
func NewSalaryHandler(salaries *ledger.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaries: salaries}
}

// Create records a salary for one employee and period.
// POST /salaries
func (h *SalaryHandler) Create(c *gin.Context) {
	var req CreateSalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.salaries.CreateSalary(c.Request.Context(), ledger.SalaryInput{
		EmployeeName: req.EmployeeName,
		BranchID:     optionalID(req.BranchID),
		Period:       req.Period,
		Amount:       req.Amount,
		Remarks:      req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toSalaryResponse(record))
}

// Get returns a salary record.
// GET /salaries/:id
func (h *SalaryHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.salaries.GetSalary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSalaryResponse(record))
}

// List lists salary records.
// GET /salaries
func (h *SalaryHandler) List(c *gin.Context) {
	var req SalaryListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := finance.SalaryFilter{
		Filter:   listFilter(req.ListRequest),
		BranchID: optionalID(req.BranchID),
		Period:   req.Period,
		Status:   finance.SalaryStatus(req.Status),
	}

	list, total, err := h.salaries.ListSalaries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]SalaryResponse, 0, len(list))
	for i := range list {
		out = append(out, toSalaryResponse(&list[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}
