package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/tx"
)

// ProductQuantitySync updates the catalog's cached stock snapshot. The
// product repository satisfies it.
type ProductQuantitySync interface {
	SetQuantity(ctx context.Context, productID id.ID, quantity float64) error
}

// ReceivingService wraps batch receipts in a transaction and keeps the
// catalog's quantity snapshot in line with the register.
type ReceivingService struct {
	register  *Service
	sync      ProductQuantitySync
	txManager tx.Manager
}

// NewReceivingService creates a new receiving service.
func NewReceivingService(register *Service, sync ProductQuantitySync, txManager tx.Manager) *ReceivingService {
	return &ReceivingService{register: register, sync: sync, txManager: txManager}
}

// Receive records a batch and refreshes the product's cached quantity.
func (s *ReceivingService) Receive(ctx context.Context, productID id.ID, qty float64, validity time.Time) (*Batch, error) {
	var batch *Batch
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		b, err := s.register.Receive(ctx, productID, qty, validity)
		if err != nil {
			return err
		}
		batch = b

		available, err := s.register.Available(ctx, productID)
		if err != nil {
			return fmt.Errorf("refresh stock for %s: %w", productID, err)
		}
		return s.sync.SetQuantity(ctx, productID, available)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Available returns sellable stock for a product in base units.
func (s *ReceivingService) Available(ctx context.Context, productID id.ID) (float64, error) {
	return s.register.Available(ctx, productID)
}
