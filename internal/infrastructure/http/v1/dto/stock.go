package dto

import (
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
)

// ReceiveStockRequest records a stock receipt batch.
type ReceiveStockRequest struct {
	Quantity float64   `json:"quantity" binding:"required,gt=0"`
	Validity time.Time `json:"productValidity" binding:"required"`
}

// BatchResponse is the API shape of a stock batch.
type BatchResponse struct {
	AddID         int64     `json:"addId"`
	ProductID     string    `json:"productId"`
	QuantityAdded float64   `json:"quantityAdded"`
	QuantityLeft  float64   `json:"quantityLeft"`
	DateAdded     time.Time `json:"dateAdded"`
	Validity      time.Time `json:"productValidity"`
}

// AvailableStockResponse reports sellable stock in base units.
type AvailableStockResponse struct {
	ProductID string  `json:"productId"`
	Available float64 `json:"available"`
}

// FromBatch converts a domain batch.
func FromBatch(b *stock.Batch) BatchResponse {
	return BatchResponse{
		AddID:         b.AddID,
		ProductID:     b.ProductID.String(),
		QuantityAdded: b.QuantityAdded,
		QuantityLeft:  b.QuantityLeft,
		DateAdded:     b.DateAdded,
		Validity:      b.Validity,
	}
}
