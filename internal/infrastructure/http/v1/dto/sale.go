package dto

import (
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/sales"
)

// SaleItemRequest is one confirmed sale line.
type SaleItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
	Amount    float64 `json:"amount"`
}

// CreateSaleRequest records a confirmed sale.
type CreateSaleRequest struct {
	ChargeTo           string            `json:"chargeTo"`
	TIN                string            `json:"tin"`
	Address            string            `json:"address"`
	Date               time.Time         `json:"date"`
	VAT                float64           `json:"vat"`
	AmountNetVAT       float64           `json:"amountNetVat"`
	TotalAmountDue     float64           `json:"totalAmountDue"`
	AdditionalDiscount float64           `json:"additionalDiscount"`
	DeliveryFee        float64           `json:"deliveryFee"`
	IsForDelivery      bool              `json:"isForDelivery"`
	Items              []SaleItemRequest `json:"items" binding:"required,min=1"`
}

// CancelSaleRequest cancels a recorded sale.
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleResponse is the API shape of a sale header.
type SaleResponse struct {
	SalesInformationID int64     `json:"salesInformationId"`
	BranchID           string    `json:"branchId"`
	ChargeTo           string    `json:"chargeTo"`
	TIN                string    `json:"tin,omitempty"`
	Address            string    `json:"address,omitempty"`
	Date               time.Time `json:"date"`
	VAT                float64   `json:"vat"`
	AmountNetVAT       float64   `json:"amountNetVat"`
	TotalAmountDue     float64   `json:"totalAmountDue"`
	Discount           float64   `json:"discount"`
	DeliveryFee        float64   `json:"deliveryFee"`
	IsForDelivery      bool      `json:"isForDelivery"`
	TransactionBy      string    `json:"transactionBy"`
	CreatedAt          time.Time `json:"createdAt"`
}

// SaleItemResponse is the API shape of a sale line.
type SaleItemResponse struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// FromSale converts a domain sale header.
func FromSale(s *sales.Sale) SaleResponse {
	return SaleResponse{
		SalesInformationID: s.ID,
		BranchID:           s.BranchID.String(),
		ChargeTo:           s.ChargeTo,
		TIN:                s.TIN,
		Address:            s.Address,
		Date:               s.Date,
		VAT:                s.VAT,
		AmountNetVAT:       s.AmountNetVAT,
		TotalAmountDue:     s.TotalAmountDue,
		Discount:           s.Discount,
		DeliveryFee:        s.DeliveryFee,
		IsForDelivery:      s.IsForDelivery,
		TransactionBy:      s.TransactionBy.String(),
		CreatedAt:          s.CreatedAt,
	}
}

// FromSaleItems converts domain sale lines.
func FromSaleItems(items []sales.SaleItem) []SaleItemResponse {
	out := make([]SaleItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return out
}
