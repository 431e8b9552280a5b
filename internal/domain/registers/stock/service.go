package stock

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/pkg/logger"
)

// Service provides business operations for the stock register.
// Transaction boundaries are owned by the caller; every method here runs
// against whatever querier the context carries.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Available returns sellable stock for a product in base units.
func (s *Service) Available(ctx context.Context, productID id.ID) (float64, error) {
	return s.repo.Available(ctx, productID)
}

// Receive records a stock receipt as a new batch.
func (s *Service) Receive(ctx context.Context, productID id.ID, qty float64, validity time.Time) (*Batch, error) {
	if qty <= 0 {
		return nil, apperror.NewValidation("received quantity must be positive")
	}
	b := &Batch{
		ProductID:     productID,
		QuantityAdded: qty,
		QuantityLeft:  qty,
		DateAdded:     time.Now().UTC(),
		Validity:      validity,
	}
	if err := s.repo.InsertBatch(ctx, b); err != nil {
		return nil, fmt.Errorf("insert batch: %w", err)
	}
	logger.Info(ctx, "stock received", "product_id", productID, "quantity", qty)
	return b, nil
}

// DeductForSale consumes stock for one sale line, oldest batches first,
// and records per-batch usage so a cancellation can restore the exact
// batches. Must be called inside the sale's transaction.
//
// A sale whose stock was previously restored may be re-deducted; its
// restored usage rows are deleted first so the trail reflects the fresh
// deduction.
func (s *Service) DeductForSale(ctx context.Context, saleID int64, productID id.ID, qty float64) error {
	if qty <= 0 {
		return apperror.NewValidation("deduction quantity must be positive")
	}

	restored, err := s.repo.HasRestoredUsage(ctx, saleID)
	if err != nil {
		return fmt.Errorf("check restored usage: %w", err)
	}
	if restored {
		if err := s.repo.DeleteRestoredUsage(ctx, saleID); err != nil {
			return fmt.Errorf("delete restored usage: %w", err)
		}
		logger.Info(ctx, "cleared restored usage before re-deduction", "sale_id", saleID)
	}

	// Skip-locked first to avoid deadlocks between concurrent sales; fall
	// back to waiting on locks when every batch is held elsewhere.
	batches, err := s.repo.BatchesForUpdate(ctx, productID, true)
	if err != nil {
		return fmt.Errorf("lock batches: %w", err)
	}
	if len(batches) == 0 {
		batches, err = s.repo.BatchesForUpdate(ctx, productID, false)
		if err != nil {
			return fmt.Errorf("lock batches: %w", err)
		}
		if len(batches) == 0 {
			return apperror.NewInsufficientStock(productID.String(), qty, 0)
		}
	}

	remaining := qty
	for _, batch := range batches {
		if remaining <= 0 {
			break
		}
		take := math.Min(remaining, batch.QuantityLeft)
		ok, err := s.repo.UpdateBatchQuantity(ctx, batch.AddID, batch.QuantityLeft-take, batch.QuantityLeft)
		if err != nil {
			return fmt.Errorf("deduct batch %d: %w", batch.AddID, err)
		}
		if !ok {
			return apperror.NewConcurrentModification("stock batch", batch.AddID)
		}

		if err := s.repo.InsertUsage(ctx, Usage{
			SaleID:       saleID,
			ProductID:    productID,
			AddStockID:   batch.AddID,
			QuantityUsed: take,
		}); err != nil {
			return fmt.Errorf("track usage: %w", err)
		}

		remaining -= take
	}

	if remaining > stockEpsilon {
		return apperror.NewInsufficientStock(productID.String(), qty, qty-remaining)
	}

	logger.Info(ctx, "stock deducted", "sale_id", saleID, "product_id", productID, "quantity", qty)
	return nil
}

// RestoreForSale returns every non-restored usage of a sale to its
// original batch and marks the usages restored. Idempotent: a sale with
// nothing left to restore is a no-op.
func (s *Service) RestoreForSale(ctx context.Context, saleID int64, reason string) error {
	usages, err := s.repo.UsageForSale(ctx, saleID, false)
	if err != nil {
		return fmt.Errorf("load usage: %w", err)
	}
	if len(usages) == 0 {
		logger.Info(ctx, "no stock usage to restore", "sale_id", saleID)
		return nil
	}

	now := time.Now().UTC()
	for _, u := range usages {
		if err := s.repo.RestoreBatchQuantity(ctx, u.AddStockID, u.QuantityUsed); err != nil {
			return fmt.Errorf("restore batch %d: %w", u.AddStockID, err)
		}
		if err := s.repo.MarkUsageRestored(ctx, u.UsageID, now); err != nil {
			return fmt.Errorf("mark usage %d restored: %w", u.UsageID, err)
		}
	}

	logger.Info(ctx, "stock restored", "sale_id", saleID, "usages", len(usages), "reason", reason)
	return nil
}

// stockEpsilon absorbs float residue when checking that a deduction was
// fully covered.
const stockEpsilon = 1e-9
