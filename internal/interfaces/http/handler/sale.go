package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/sales"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// maxAttachmentSize caps a single uploaded sale attachment
const maxAttachmentSize = 10 << 20

// SaleHandler handles sale recording, edits, locking and attachments
type SaleHandler struct {
	BaseHandler
	sales *ledger.SalesService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales *ledger.SalesService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Create records a sale and fans it out into deposits and a receivable.
// POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req SaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.sales.RecordSale(c.Request.Context(), req.toInput(createdBy(c)))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update replaces a sale's figures and its deposits and receivable.
// PUT /sales/:id
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req SaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.sales.EditSale(c.Request.Context(), id, req.toInput(createdBy(c)))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes an unlocked sale with its splits, receivable and attachments.
// DELETE /sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.sales.DeleteSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Lock closes a sale to edits and deletes.
// POST /sales/:id/lock
func (h *SaleHandler) Lock(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sale, err := h.sales.LockSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSaleResponse(sale))
}

// Get returns a sale with its bank splits.
// GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sale, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSaleResponse(sale))
}

// List lists sales.
// GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	var req SaleListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := sales.SaleFilter{
		Filter:     listFilter(req.ListRequest),
		BranchID:   optionalID(req.BranchID),
		CustomerID: optionalID(req.CustomerID),
	}

	list, total, err := h.sales.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]SaleResponse, 0, len(list))
	for i := range list {
		out = append(out, toSaleResponse(&list[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// Summary totals net sales, optionally for one branch and period.
// GET /sales/summary?branch_id&from&to
func (h *SaleHandler) Summary(c *gin.Context) {
	var req SaleSummaryRequest
	if !h.bindQuery(c, &req) {
		return
	}

	summary, err := h.sales.NetSalesSummary(c.Request.Context(), optionalID(req.BranchID), optionalDate(req.From), optionalDate(req.To))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SaleSummaryResponse{
		BranchID:      summary.BranchID,
		From:          formatOptionalDate(summary.From),
		To:            formatOptionalDate(summary.To),
		Count:         summary.Count,
		TotalNetSales: summary.TotalNetSales,
	})
}

// UploadAttachment stores a file against an unlocked sale.
// POST /sales/:id/attachments (multipart field "file")
func (h *SaleHandler) UploadAttachment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidation, "A file is required in the \"file\" form field")
		return
	}
	if header.Size > maxAttachmentSize {
		h.ErrorWithCode(c, dto.ErrCodeRequestTooBig, "Attachment exceeds 10MB")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	attachment, err := h.sales.AttachFile(c.Request.Context(), id, header.Filename, contentType, file, header.Size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toSaleAttachmentResponse(attachment))
}

// ListAttachments lists a sale's attachments.
// GET /sales/:id/attachments
func (h *SaleHandler) ListAttachments(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.sales.ListAttachments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]SaleAttachmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toSaleAttachmentResponse(&list[i]))
	}
	h.Success(c, out)
}
