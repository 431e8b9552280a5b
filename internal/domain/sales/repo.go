package sales

import (
	"context"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// Repository defines the interface for sale persistence.
type Repository interface {
	IDExists(ctx context.Context, saleID int64) (bool, error)
	InsertHeader(ctx context.Context, sale *Sale) error
	InsertItems(ctx context.Context, saleID int64, items []SubmissionItem) error
	GetByID(ctx context.Context, saleID int64) (*Sale, error)
	ListByBranch(ctx context.Context, branchID id.ID) ([]*Sale, error)
	GetItems(ctx context.Context, saleID int64) ([]SaleItem, error)
}
