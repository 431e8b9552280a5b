package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	branchID, err := id.Parse(req.BranchID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid branch id").WithDetail("field", "branchId"))
		return
	}

	p := product.NewProduct(branchID, parsedOrNil(req.CategoryID), req.ProductName, req.Unit, req.UnitPrice)
	p.UnitCost = req.UnitCost
	p.Threshold = req.Threshold
	p.SellingUnits = dto.ToSellingUnits(req.SellingUnits)

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID.String())
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	p.CategoryID = parsedOrNil(req.CategoryID)
	p.Name = req.ProductName
	p.Unit = req.Unit
	p.UnitPrice = req.UnitPrice
	p.UnitCost = req.UnitCost
	p.Threshold = req.Threshold
	p.SellingUnits = dto.ToSellingUnits(req.SellingUnits)

	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ProductListFilter
	if !h.BindQuery(c, &req) {
		return
	}

	filter := product.DefaultListFilter()
	filter.Search = req.Search
	if req.Limit > 0 {
		filter.Limit = req.Limit
	}
	filter.Offset = req.Offset
	if req.BranchID != "" {
		branchID, err := id.Parse(req.BranchID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid branch id").WithDetail("field", "branchId"))
			return
		}
		filter.BranchID = &branchID
	}
	if req.CategoryID != "" {
		categoryID, err := id.Parse(req.CategoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid category id").WithDetail("field", "categoryId"))
			return
		}
		filter.CategoryID = &categoryID
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ProductResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, dto.FromProduct(p))
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// SellableUnits handles GET /products/:id/selling-units.
func (h *ProductHandler) SellableUnits(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	resolved, err := h.service.SellableUnits(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSellingUnits(resolved))
}

// parsedOrNil parses an optional UUID string, returning the nil ID for
// empty or malformed input.
func parsedOrNil(s string) id.ID {
	if s == "" {
		return id.Nil()
	}
	parsed, err := id.Parse(s)
	if err != nil {
		return id.Nil()
	}
	return parsed
}
