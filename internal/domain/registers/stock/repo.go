package stock

import (
	"context"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// Repository defines the interface for stock register persistence.
// Deduction methods are expected to run inside the caller's transaction.
type Repository interface {
	// Available returns the summed quantity_left of non-expired batches.
	Available(ctx context.Context, productID id.ID) (float64, error)

	// InsertBatch records a stock receipt.
	InsertBatch(ctx context.Context, b *Batch) error

	// BatchesForUpdate returns non-expired batches with remaining stock in
	// FIFO order (date added, then validity), row-locked. With skipLocked
	// set, batches held by other transactions are skipped instead of
	// waited on.
	BatchesForUpdate(ctx context.Context, productID id.ID, skipLocked bool) ([]Batch, error)

	// UpdateBatchQuantity sets a batch's remaining quantity guarded by the
	// previously observed value. Returns false when the guard failed.
	UpdateBatchQuantity(ctx context.Context, addID int64, newLeft, expectedLeft float64) (bool, error)

	// RestoreBatchQuantity adds a quantity back to a batch.
	RestoreBatchQuantity(ctx context.Context, addID int64, qty float64) error

	InsertUsage(ctx context.Context, u Usage) error
	UsageForSale(ctx context.Context, saleID int64, includeRestored bool) ([]Usage, error)
	HasRestoredUsage(ctx context.Context, saleID int64) (bool, error)
	DeleteRestoredUsage(ctx context.Context, saleID int64) error
	MarkUsageRestored(ctx context.Context, usageID int64, at time.Time) error
}
