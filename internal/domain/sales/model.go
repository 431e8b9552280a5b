// Package sales provides the multi-unit sale line-item engine and the
// sale document: row computation, aggregation, stock-exceed tracking, and
// persistence of confirmed sales with FIFO stock deduction.
package sales

import (
	"context"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// Row is one line of an in-progress sale. Rows carry a generated stable
// identity so validation state and selections survive removals of other
// rows without re-indexing.
type Row struct {
	ID id.ID `json:"rowId"`

	// ProductID is nil until a product is chosen.
	ProductID id.ID `json:"productId"`

	// Quantity as entered, in the active selling unit. Fractional values
	// are only legal when the unit's registry factor exceeds 1.
	Quantity float64 `json:"quantity"`

	// Unit is the currently selected selling unit symbol.
	Unit string `json:"unit"`

	// UnitPrice and BaseQuantityPerSellUnit are copied from the resolved
	// selling-unit configuration on every computation; client-held values
	// are never trusted.
	UnitPrice               float64 `json:"unitPrice"`
	BaseQuantityPerSellUnit float64 `json:"baseQuantityPerSellUnit"`

	// Amount is quantity * unitPrice rounded to 2 places, zero while the
	// row fails granularity validation.
	Amount float64 `json:"amount"`
}

// Complete reports whether the row carries enough information to be
// included in totals and the submission payload.
func (r Row) Complete() bool {
	return !id.IsNil(r.ProductID) && r.Quantity > 0
}

// Header holds the sale-level fields entered alongside the rows.
type Header struct {
	ChargeTo           string    `json:"chargeTo"`
	TIN                string    `json:"tin"`
	Address            string    `json:"address"`
	Date               time.Time `json:"date"`
	IsForDelivery      bool      `json:"isForDelivery"`
	DeliveryFee        float64   `json:"deliveryFee"`
	AdditionalDiscount float64   `json:"additionalDiscount"`
}

// Totals are the derived monetary aggregates of a sale.
// VAT is kept unrounded; displays and the submission payload round it.
type Totals struct {
	NetAmount      float64 `json:"amountNetVat"`
	VAT            float64 `json:"vat"`
	TotalAmountDue float64 `json:"totalAmountDue"`
}

// Submission is the fully-formed payload handed to persistence once the
// cashier confirms the sale. Incomplete rows are already filtered out.
type Submission struct {
	Header SubmissionHeader `json:"header"`
	Items  []SubmissionItem `json:"items"`
}

// SubmissionHeader mirrors the Sales_Information record.
type SubmissionHeader struct {
	ChargeTo           string    `json:"chargeTo"`
	TIN                string    `json:"tin"`
	Address            string    `json:"address"`
	Date               time.Time `json:"date"`
	BranchID           id.ID     `json:"branchId"`
	UserID             id.ID     `json:"userId"`
	VAT                float64   `json:"vat"`
	AmountNetVAT       float64   `json:"amountNetVat"`
	TotalAmountDue     float64   `json:"totalAmountDue"`
	AdditionalDiscount float64   `json:"additionalDiscount"`
	DeliveryFee        float64   `json:"deliveryFee"`
	IsForDelivery      bool      `json:"isForDelivery"`
}

// SubmissionItem mirrors the Sales_Items record.
type SubmissionItem struct {
	ProductID id.ID   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
	Amount    float64 `json:"amount"`
}

// Validate checks that a submission is internally usable before the
// persistence transaction starts.
func (s Submission) Validate(ctx context.Context) error {
	if id.IsNil(s.Header.BranchID) {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branchId")
	}
	if len(s.Items) == 0 {
		return apperror.NewValidation("at least one line item is required").
			WithDetail("field", "items")
	}
	for i, item := range s.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}
	if s.Header.DeliveryFee < 0 || s.Header.AdditionalDiscount < 0 {
		return apperror.NewValidation("delivery fee and discount cannot be negative")
	}
	return nil
}

// Sale is a persisted sale header.
type Sale struct {
	ID                 int64     `db:"sales_information_id" json:"salesInformationId"`
	BranchID           id.ID     `db:"branch_id" json:"branchId"`
	ChargeTo           string    `db:"charge_to" json:"chargeTo"`
	TIN                string    `db:"tin" json:"tin"`
	Address            string    `db:"address" json:"address"`
	Date               time.Time `db:"date" json:"date"`
	VAT                float64   `db:"vat" json:"vat"`
	AmountNetVAT       float64   `db:"amount_net_vat" json:"amountNetVat"`
	TotalAmountDue     float64   `db:"total_amount_due" json:"totalAmountDue"`
	Discount           float64   `db:"discount" json:"discount"`
	DeliveryFee        float64   `db:"delivery_fee" json:"deliveryFee"`
	IsForDelivery      bool      `db:"is_for_delivery" json:"isForDelivery"`
	TransactionBy      id.ID     `db:"transaction_by" json:"transactionBy"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}

// SaleItem is a persisted sale line.
type SaleItem struct {
	SaleID      int64   `db:"sales_information_id" json:"salesInformationId"`
	ProductID   id.ID   `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName,omitempty"`
	Quantity    float64 `db:"quantity" json:"quantity"`
	Unit        string  `db:"unit" json:"unit"`
	UnitPrice   float64 `db:"unit_price" json:"unitPrice"`
	Amount      float64 `db:"amount" json:"amount"`
}
