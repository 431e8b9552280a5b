package dto

import (
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
)

// SellingUnitDTO is one sellable unit of a product.
type SellingUnitDTO struct {
	Unit                    string  `json:"unit"`
	UnitPrice               float64 `json:"unitPrice"`
	BaseQuantityPerSellUnit float64 `json:"baseQuantityPerSellUnit"`
	IsBase                  bool    `json:"isBase"`
}

// CreateProductRequest creates a product.
type CreateProductRequest struct {
	CategoryID   string           `json:"categoryId"`
	BranchID     string           `json:"branchId" binding:"required"`
	ProductName  string           `json:"productName" binding:"required"`
	Unit         string           `json:"unit"`
	UnitPrice    float64          `json:"unitPrice"`
	UnitCost     float64          `json:"unitCost"`
	Threshold    float64          `json:"threshold"`
	SellingUnits []SellingUnitDTO `json:"sellingUnits"`
}

// UpdateProductRequest updates a product.
type UpdateProductRequest struct {
	CategoryID   string           `json:"categoryId"`
	ProductName  string           `json:"productName" binding:"required"`
	Unit         string           `json:"unit"`
	UnitPrice    float64          `json:"unitPrice"`
	UnitCost     float64          `json:"unitCost"`
	Threshold    float64          `json:"threshold"`
	SellingUnits []SellingUnitDTO `json:"sellingUnits"`
}

// ProductResponse is the API shape of a product.
type ProductResponse struct {
	ProductID    string           `json:"productId"`
	CategoryID   string           `json:"categoryId,omitempty"`
	BranchID     string           `json:"branchId"`
	ProductName  string           `json:"productName"`
	Unit         string           `json:"unit,omitempty"`
	UnitPrice    float64          `json:"unitPrice,omitempty"`
	UnitCost     float64          `json:"unitCost"`
	Quantity     float64          `json:"quantity"`
	Threshold    float64          `json:"threshold"`
	SellingUnits []SellingUnitDTO `json:"sellingUnits"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ProductListFilter narrows product listings.
type ProductListFilter struct {
	BranchID   string `form:"branchId"`
	CategoryID string `form:"categoryId"`
	Search     string `form:"search"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// ToSellingUnits converts DTO selling units to domain.
func ToSellingUnits(in []SellingUnitDTO) []product.SellingUnit {
	if len(in) == 0 {
		return nil
	}
	out := make([]product.SellingUnit, 0, len(in))
	for _, su := range in {
		out = append(out, product.SellingUnit{
			Unit:                    su.Unit,
			UnitPrice:               su.UnitPrice,
			BaseQuantityPerSellUnit: su.BaseQuantityPerSellUnit,
			IsBase:                  su.IsBase,
		})
	}
	return out
}

// FromSellingUnits converts domain selling units to DTO.
func FromSellingUnits(in []product.SellingUnit) []SellingUnitDTO {
	out := make([]SellingUnitDTO, 0, len(in))
	for _, su := range in {
		out = append(out, SellingUnitDTO{
			Unit:                    su.Unit,
			UnitPrice:               su.UnitPrice,
			BaseQuantityPerSellUnit: su.BaseQuantityPerSellUnit,
			IsBase:                  su.IsBase,
		})
	}
	return out
}

// FromProduct converts a domain product to the response shape.
func FromProduct(p *product.Product) ProductResponse {
	resp := ProductResponse{
		ProductID:    p.ID.String(),
		BranchID:     p.BranchID.String(),
		ProductName:  p.Name,
		Unit:         p.Unit,
		UnitPrice:    p.UnitPrice,
		UnitCost:     p.UnitCost,
		Quantity:     p.Quantity,
		Threshold:    p.Threshold,
		SellingUnits: FromSellingUnits(product.Resolve(p)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if !id.IsNil(p.CategoryID) {
		resp.CategoryID = p.CategoryID.String()
	}
	return resp
}
