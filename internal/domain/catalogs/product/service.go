package product

import (
	"context"
	"strings"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/units"
	"github.com/Bench-10/LJean-IMS-sub002/pkg/logger"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo     Repository
	registry *units.Registry
}

// NewService creates a new product service.
func NewService(repo Repository, registry *units.Registry) *Service {
	return &Service{repo: repo, registry: registry}
}

// Create validates and persists a new product.
// The base unit must exist in the unit registry; selling-unit entries may
// reference units outside it (legacy labels) and are normalized by the
// resolver at sale time instead.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if p.Unit != "" {
		if _, err := s.registry.Lookup(p.Unit); err != nil {
			return apperror.NewValidation("base unit is not configured").
				WithDetail("unit", p.Unit).
				WithCause(err)
		}
	}

	p.SellingUnits = SyncWithBase(p.SellingUnits, p.Unit, p.UnitPrice)

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "product created", "product_id", p.ID, "name", p.Name)
	return nil
}

// Update persists changes to a product. When the base unit or price
// changed, the selling-unit list is re-synced so the base entry stays
// first and unit collisions are resolved.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}

	if existing.Unit != p.Unit || existing.UnitPrice != p.UnitPrice {
		p.SellingUnits = SyncWithBase(p.SellingUnits, p.Unit, p.UnitPrice)
	}

	p.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, p)
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, productID)
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// SellableUnits returns the resolved selling-unit list for a product.
func (s *Service) SellableUnits(ctx context.Context, productID id.ID) ([]SellingUnit, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return Resolve(p), nil
}
