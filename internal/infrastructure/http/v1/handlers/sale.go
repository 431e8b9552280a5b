package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/sales"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale recording and retrieval.
type SaleHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sales.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

// Create handles POST /sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	branchID, err := id.Parse(h.GetBranchID(c))
	if err != nil {
		h.Error(c, apperror.NewForbidden("no branch in session"))
		return
	}
	userID, err := id.Parse(h.GetUserID(c))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("no user in session"))
		return
	}

	sub, err := toSubmission(req, branchID, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	sale, err := h.service.Create(c.Request.Context(), sub)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(sale))
}

// Cancel handles POST /sales/:id/cancel.
func (h *SaleHandler) Cancel(c *gin.Context) {
	saleID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	var req dto.CancelSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), saleID, req.Reason); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "sale canceled and stock restored")
}

// Get handles GET /sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	sale, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(sale))
}

// Items handles GET /sales/:id/items.
func (h *SaleHandler) Items(c *gin.Context) {
	saleID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	items, err := h.service.GetItems(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSaleItems(items))
}

// List handles GET /sales for the session's branch.
func (h *SaleHandler) List(c *gin.Context) {
	branchID, err := id.Parse(h.GetBranchID(c))
	if err != nil {
		h.Error(c, apperror.NewForbidden("no branch in session"))
		return
	}

	list, err := h.service.ListByBranch(c.Request.Context(), branchID)
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, dto.FromSale(sale))
	}
	h.OK(c, out)
}

func toSubmission(req dto.CreateSaleRequest, branchID, userID id.ID) (sales.Submission, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	items := make([]sales.SubmissionItem, 0, len(req.Items))
	for i, item := range req.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			return sales.Submission{}, apperror.NewValidation("invalid product id").
				WithDetail("lineNo", i+1)
		}
		items = append(items, sales.SubmissionItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount,
		})
	}

	return sales.Submission{
		Header: sales.SubmissionHeader{
			ChargeTo:           req.ChargeTo,
			TIN:                req.TIN,
			Address:            req.Address,
			Date:               date,
			BranchID:           branchID,
			UserID:             userID,
			VAT:                req.VAT,
			AmountNetVAT:       req.AmountNetVAT,
			TotalAmountDue:     req.TotalAmountDue,
			AdditionalDiscount: req.AdditionalDiscount,
			DeliveryFee:        req.DeliveryFee,
			IsForDelivery:      req.IsForDelivery,
		},
		Items: items,
	}, nil
}
