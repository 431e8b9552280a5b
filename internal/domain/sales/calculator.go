package sales

import (
	"fmt"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/types"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/units"
)

// stockTolerance absorbs float noise when comparing a requested quantity
// against the maximum sellable quantity derived from base-unit stock.
const stockTolerance = 1e-9

// GranularityViolation describes a quantity that does not convert to a
// whole number of base units for its unit. It is row-level validation
// data, not an error: the row is excluded from totals while it stands.
type GranularityViolation struct {
	Unit         string  `json:"unit"`
	MinIncrement float64 `json:"minIncrement"`
	Message      string  `json:"message"`
}

// Calculator computes one sale row against a product snapshot.
type Calculator struct {
	registry *units.Registry
}

// NewCalculator creates a calculator backed by the unit registry.
func NewCalculator(registry *units.Registry) *Calculator {
	return &Calculator{registry: registry}
}

// ComputeRow recomputes a row from its current fields plus the product's
// inventory snapshot. Pure: identical inputs always produce identical
// outputs, and the product is never mutated.
//
// availableStock is expressed in the product's base inventory units.
// A nil product (deleted, or not yet chosen) yields the row with a zero
// amount, no violation and the stock flag cleared.
func (c *Calculator) ComputeRow(row Row, p *product.Product, availableStock float64) (Row, *GranularityViolation, bool) {
	if p == nil {
		row.Amount = 0
		return row, nil, false
	}

	resolved := product.Resolve(p)
	if len(resolved) == 0 {
		// Product has no usable selling units; the row contributes nothing
		// but is not an error.
		row.Amount = 0
		return row, nil, false
	}

	active, ok := product.FindUnit(resolved, row.Unit)
	if !ok {
		active, _ = product.BaseEntry(resolved)
		row.Unit = active.Unit
	}

	// Always refresh from the resolved configuration.
	row.UnitPrice = active.UnitPrice
	row.BaseQuantityPerSellUnit = active.BaseQuantityPerSellUnit

	var violation *GranularityViolation
	if row.Quantity > 0 && row.Unit != "" {
		if cfg, err := c.registry.Lookup(row.Unit); err == nil {
			if !cfg.IsIntegralBase(row.Quantity) {
				violation = &GranularityViolation{
					Unit:         row.Unit,
					MinIncrement: cfg.MinIncrement(),
					Message:      fmt.Sprintf("quantity must be in multiples of %s", cfg.MinimumDescription()),
				}
			}
		}
		// Unknown symbol: free-form legacy unit, granularity rules do not apply.
	}

	// Stock check runs regardless of granularity validity.
	exceeded := false
	if row.Quantity > 0 && row.BaseQuantityPerSellUnit > 0 {
		maxSellable := availableStock / row.BaseQuantityPerSellUnit
		exceeded = row.Quantity > maxSellable+stockTolerance
	}

	if violation != nil {
		row.Amount = 0
	} else {
		row.Amount = types.Round2(row.Quantity * row.UnitPrice)
	}

	return row, violation, exceeded
}
