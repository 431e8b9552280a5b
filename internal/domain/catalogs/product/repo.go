package product

import (
	"context"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// ListFilter narrows product listings.
type ListFilter struct {
	BranchID   *id.ID
	CategoryID *id.ID
	Search     string
	Limit      int
	Offset     int
}

// DefaultListFilter returns sane pagination defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}

// ListResult wraps a page of products.
type ListResult struct {
	Items      []*Product
	TotalCount int64
	Limit      int
	Offset     int
}

// Repository defines the interface for product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	Delete(ctx context.Context, productID id.ID) error
	List(ctx context.Context, filter ListFilter) (ListResult, error)

	// SetQuantity updates the cached stock snapshot in base units.
	SetQuantity(ctx context.Context, productID id.ID, quantity float64) error
}
