// Package stock provides the batch-level stock register: every receipt
// creates a batch, sales consume batches FIFO, and each deduction is
// tracked so a canceled sale restores exactly the batches it drew from.
package stock

import (
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// Batch is one stock receipt. QuantityLeft is in the product's base
// inventory units and only decreases through sales.
type Batch struct {
	AddID         int64     `db:"add_id" json:"addId"`
	ProductID     id.ID     `db:"product_id" json:"productId"`
	QuantityAdded float64   `db:"quantity_added" json:"quantityAdded"`
	QuantityLeft  float64   `db:"quantity_left" json:"quantityLeft"`
	DateAdded     time.Time `db:"date_added" json:"dateAdded"`
	Validity      time.Time `db:"product_validity" json:"productValidity"`
}

// Usage records how much of a batch a sale consumed. Restored usages stay
// in place as an audit trail; a re-deduction after a restore deletes them
// first.
type Usage struct {
	UsageID      int64      `db:"usage_id" json:"usageId"`
	SaleID       int64      `db:"sales_information_id" json:"salesInformationId"`
	ProductID    id.ID      `db:"product_id" json:"productId"`
	AddStockID   int64      `db:"add_stock_id" json:"addStockId"`
	QuantityUsed float64    `db:"quantity_used" json:"quantityUsed"`
	Restored     bool       `db:"is_restored" json:"isRestored"`
	RestoredAt   *time.Time `db:"restored_date" json:"restoredDate,omitempty"`
}
