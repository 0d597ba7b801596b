package handler

import (
	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles customers, suppliers and branches
type PartnerHandler struct {
	BaseHandler
	partners *ledger.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partners *ledger.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// CreateCustomer POST /customers
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req PartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.partners.CreateCustomer(c.Request.Context(), req.Name, req.contact())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPartnerResponse(customerView(customer)))
}

// GetCustomer GET /customers/:id
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	customer, err := h.partners.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPartnerResponse(customerView(customer)))
}

// ListCustomers GET /customers
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := listFilter(req)
	list, total, err := h.partners.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]PartnerResponse, 0, len(list))
	for i := range list {
		out = append(out, toPartnerResponse(customerView(&list[i])))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// CreateSupplier POST /suppliers
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	var req PartnerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	supplier, err := h.partners.CreateSupplier(c.Request.Context(), req.Name, req.contact())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toPartnerResponse(supplierView(supplier)))
}

// GetSupplier GET /suppliers/:id
func (h *PartnerHandler) GetSupplier(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	supplier, err := h.partners.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPartnerResponse(supplierView(supplier)))
}

// ListSuppliers GET /suppliers
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := listFilter(req)
	list, total, err := h.partners.ListSuppliers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]PartnerResponse, 0, len(list))
	for i := range list {
		out = append(out, toPartnerResponse(supplierView(&list[i])))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// CreateBranch POST /branches
func (h *PartnerHandler) CreateBranch(c *gin.Context) {
	var req BranchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.partners.CreateBranch(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBranchResponse(branch))
}

// GetBranch GET /branches/:id
func (h *PartnerHandler) GetBranch(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	branch, err := h.partners.GetBranch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBranchResponse(branch))
}

// ListBranches GET /branches
func (h *PartnerHandler) ListBranches(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	filter := listFilter(req)
	list, total, err := h.partners.ListBranches(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]BranchResponse, 0, len(list))
	for i := range list {
		out = append(out, toBranchResponse(&list[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}
