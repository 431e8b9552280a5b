package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/http/v1/dto"
)

// StockHandler handles the stock register endpoints.
type StockHandler struct {
	*BaseHandler
	service *stock.ReceivingService
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.ReceivingService) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// Receive handles POST /products/:id/stock.
func (h *StockHandler) Receive(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReceiveStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	batch, err := h.service.Receive(c.Request.Context(), productID, req.Quantity, req.Validity)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromBatch(batch))
}

// Available handles GET /products/:id/stock.
func (h *StockHandler) Available(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	available, err := h.service.Available(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.AvailableStockResponse{
		ProductID: productID.String(),
		Available: available,
	})
}
