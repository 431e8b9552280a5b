// Package product provides the product catalog and the selling-unit
// resolver that normalizes how a product may be sold.
package product

import (
	"context"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// SellingUnit is one sellable option for a product.
// BaseQuantityPerSellUnit is the amount of the product's inventory base
// unit consumed when one of Unit is sold; it is 1 for the base entry.
type SellingUnit struct {
	Unit                    string  `db:"-" json:"unit"`
	UnitPrice               float64 `db:"-" json:"unitPrice"`
	BaseQuantityPerSellUnit float64 `db:"-" json:"baseQuantityPerSellUnit"`
	IsBase                  bool    `db:"-" json:"isBase"`
}

// Product represents an inventory-tracked product.
// Quantity is the available stock expressed in the product's base
// inventory unit. Unit/UnitPrice are the legacy single-unit fields still
// present on records created before multi-unit selling existed;
// SellingUnits supersedes them when populated.
type Product struct {
	ID         id.ID  `db:"product_id" json:"productId"`
	CategoryID id.ID  `db:"category_id" json:"categoryId"`
	BranchID   id.ID  `db:"branch_id" json:"branchId"`
	Name       string `db:"product_name" json:"productName"`

	Unit      string  `db:"unit" json:"unit,omitempty"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice,omitempty"`
	UnitCost  float64 `db:"unit_cost" json:"unitCost"`

	Quantity  float64 `db:"quantity" json:"quantity"`
	Threshold float64 `db:"threshold" json:"threshold"`

	SellingUnits []SellingUnit `db:"-" json:"sellingUnits,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a product with required fields.
func NewProduct(branchID, categoryID id.ID, name, unit string, unitPrice float64) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:         id.New(),
		BranchID:   branchID,
		CategoryID: categoryID,
		Name:       name,
		Unit:       unit,
		UnitPrice:  unitPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}
	if id.IsNil(p.BranchID) {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branchId")
	}
	if p.Unit == "" && len(p.SellingUnits) == 0 {
		return apperror.NewValidation("a base unit or selling units are required").
			WithDetail("field", "unit")
	}
	if p.Unit != "" && p.UnitPrice <= 0 {
		return apperror.NewValidation("unit price must be positive").
			WithDetail("field", "unitPrice")
	}
	if p.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	return nil
}

// AvailableStock returns the stock snapshot in base inventory units.
func (p *Product) AvailableStock() float64 {
	return p.Quantity
}
