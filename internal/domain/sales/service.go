package sales

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/tx"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
	"github.com/Bench-10/LJean-IMS-sub002/pkg/logger"
)

// maxIDAttempts bounds the random sale number search; collisions on a
// 7-digit space are rare enough that hitting this indicates trouble.
const maxIDAttempts = 25

// Service persists confirmed sales. Stock is deducted the moment a sale
// is recorded, deliveries included, so pending orders always reflect in
// available stock.
type Service struct {
	repo      Repository
	products  product.Repository
	stock     *stock.Service
	txManager tx.Manager
	rng       *rand.Rand
}

// NewService creates a new sale service.
func NewService(repo Repository, products product.Repository, stockSvc *stock.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		stock:     stockSvc,
		txManager: txManager,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create records a submitted sale: re-checks stock inside the
// transaction, writes the header and items, and deducts stock FIFO per
// line. The engine already validated the draft, but stock may have moved
// between display and confirmation, so the register is the authority
// here.
func (s *Service) Create(ctx context.Context, sub Submission) (*Sale, error) {
	if err := sub.Validate(ctx); err != nil {
		return nil, err
	}

	saleID, err := s.generateSaleID(ctx)
	if err != nil {
		return nil, err
	}

	sale := &Sale{
		ID:             saleID,
		BranchID:       sub.Header.BranchID,
		ChargeTo:       sub.Header.ChargeTo,
		TIN:            sub.Header.TIN,
		Address:        sub.Header.Address,
		Date:           sub.Header.Date,
		VAT:            sub.Header.VAT,
		AmountNetVAT:   sub.Header.AmountNetVAT,
		TotalAmountDue: sub.Header.TotalAmountDue,
		Discount:       sub.Header.AdditionalDiscount,
		DeliveryFee:    sub.Header.DeliveryFee,
		IsForDelivery:  sub.Header.IsForDelivery,
		TransactionBy:  sub.Header.UserID,
		CreatedAt:      time.Now().UTC(),
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Convert each line to base-unit consumption and confirm the
		// register can cover it before touching anything.
		baseQty := make(map[id.ID]float64, len(sub.Items))
		for _, item := range sub.Items {
			needed, err := s.baseConsumption(ctx, item)
			if err != nil {
				return err
			}
			baseQty[item.ProductID] += needed
		}
		for productID, needed := range baseQty {
			available, err := s.stock.Available(ctx, productID)
			if err != nil {
				return fmt.Errorf("check stock for %s: %w", productID, err)
			}
			if needed > available {
				return apperror.NewInsufficientStock(productID.String(), needed, available)
			}
		}

		if err := s.repo.InsertHeader(ctx, sale); err != nil {
			return fmt.Errorf("insert sale header: %w", err)
		}
		if err := s.repo.InsertItems(ctx, saleID, sub.Items); err != nil {
			return fmt.Errorf("insert sale items: %w", err)
		}

		for productID, needed := range baseQty {
			if err := s.stock.DeductForSale(ctx, saleID, productID, needed); err != nil {
				return err
			}
			available, err := s.stock.Available(ctx, productID)
			if err != nil {
				return fmt.Errorf("refresh stock for %s: %w", productID, err)
			}
			if err := s.products.SetQuantity(ctx, productID, available); err != nil {
				return fmt.Errorf("sync product quantity: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale recorded",
		"sale_id", saleID,
		"branch_id", sale.BranchID,
		"total", sale.TotalAmountDue,
		"lines", len(sub.Items),
	)
	return sale, nil
}

// Cancel restores a sale's stock to the exact batches it consumed.
func (s *Service) Cancel(ctx context.Context, saleID int64, reason string) error {
	if _, err := s.repo.GetByID(ctx, saleID); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stock.RestoreForSale(ctx, saleID, reason); err != nil {
			return err
		}
		// Re-sync cached product quantities for the restored lines.
		items, err := s.repo.GetItems(ctx, saleID)
		if err != nil {
			return fmt.Errorf("load sale items: %w", err)
		}
		seen := make(map[id.ID]bool, len(items))
		for _, item := range items {
			if seen[item.ProductID] {
				continue
			}
			seen[item.ProductID] = true
			available, err := s.stock.Available(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("refresh stock for %s: %w", item.ProductID, err)
			}
			if err := s.products.SetQuantity(ctx, item.ProductID, available); err != nil {
				return fmt.Errorf("sync product quantity: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale canceled", "sale_id", saleID, "reason", reason)
	return nil
}

// GetByID retrieves a sale header.
func (s *Service) GetByID(ctx context.Context, saleID int64) (*Sale, error) {
	return s.repo.GetByID(ctx, saleID)
}

// ListByBranch retrieves all sales recorded by a branch.
func (s *Service) ListByBranch(ctx context.Context, branchID id.ID) ([]*Sale, error) {
	return s.repo.ListByBranch(ctx, branchID)
}

// GetItems retrieves the line items of a sale.
func (s *Service) GetItems(ctx context.Context, saleID int64) ([]SaleItem, error) {
	return s.repo.GetItems(ctx, saleID)
}

// baseConsumption converts a line's quantity to base inventory units via
// the product's resolved selling-unit ratio. Unknown units fall back to a
// ratio of 1 (legacy single-unit rows).
func (s *Service) baseConsumption(ctx context.Context, item SubmissionItem) (float64, error) {
	p, err := s.products.GetByID(ctx, item.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, apperror.NewValidation("product no longer exists").
				WithDetail("product_id", item.ProductID)
		}
		return 0, err
	}

	ratio := 1.0
	if su, ok := product.FindUnit(product.Resolve(p), item.Unit); ok {
		ratio = su.BaseQuantityPerSellUnit
	}
	return item.Quantity * ratio, nil
}

// generateSaleID draws random 7-digit identifiers until an unused one is
// found, mirroring the printed sales slip numbering.
func (s *Service) generateSaleID(ctx context.Context) (int64, error) {
	for i := 0; i < maxIDAttempts; i++ {
		candidate := 1000000 + s.rng.Int63n(9000000)
		exists, err := s.repo.IDExists(ctx, candidate)
		if err != nil {
			return 0, fmt.Errorf("check sale id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return 0, apperror.NewInternal(fmt.Errorf("could not allocate a sale id after %d attempts", maxIDAttempts))
}
