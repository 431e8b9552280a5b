package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/units"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/http/v1/dto"
)

// UnitHandler exposes the unit registry to clients.
type UnitHandler struct {
	*BaseHandler
	registry *units.Registry
}

// NewUnitHandler creates a new unit handler.
func NewUnitHandler(base *BaseHandler, registry *units.Registry) *UnitHandler {
	return &UnitHandler{BaseHandler: base, registry: registry}
}

// List handles GET /units.
func (h *UnitHandler) List(c *gin.Context) {
	configs := h.registry.Configs()
	out := make([]dto.UnitConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, dto.FromUnitConfig(cfg))
	}
	h.OK(c, out)
}

// Get handles GET /units/:symbol.
func (h *UnitHandler) Get(c *gin.Context) {
	cfg, err := h.registry.Lookup(c.Param("symbol"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromUnitConfig(cfg))
}

// ValidateQuantity handles POST /units/validate-quantity. A granularity
// failure is reported in the body, not as an HTTP error; only an unknown
// unit yields one.
func (h *UnitHandler) ValidateQuantity(c *gin.Context) {
	var req dto.ValidateQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cfg, err := h.registry.Lookup(req.Unit)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ValidateQuantityResponse{Valid: true, Unit: req.Unit}
	if err := h.registry.ValidateQuantity(req.Quantity, req.Unit); err != nil {
		resp.Valid = false
		resp.MinIncrement = cfg.MinIncrement()
		resp.Message = "quantity must be in multiples of " + cfg.MinimumDescription()
	}
	h.OK(c, resp)
}
