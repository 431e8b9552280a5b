// Package document_repo provides PostgreSQL implementations for document
// repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/sales"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres"
)

const (
	saleTable     = "sales_information"
	saleItemTable = "sales_items"
)

var saleColumns = []string{
	"sales_information_id", "branch_id", "charge_to", "tin", "address",
	"date", "vat", "amount_net_vat", "total_amount_due", "discount",
	"delivery_fee", "is_for_delivery", "transaction_by", "created_at",
}

// Compile-time check that SaleRepo implements sales.Repository.
var _ sales.Repository = (*SaleRepo)(nil)

// SaleRepo implements sales.Repository.
type SaleRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// IDExists reports whether a sale number is already taken.
func (r *SaleRepo) IDExists(ctx context.Context, saleID int64) (bool, error) {
	q := r.builder.Select("COUNT(*)").
		From(saleTable).
		Where(squirrel.Eq{"sales_information_id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check sale id: %w", err)
	}
	return count > 0, nil
}

// InsertHeader writes the sale header.
func (r *SaleRepo) InsertHeader(ctx context.Context, sale *sales.Sale) error {
	q := r.builder.Insert(saleTable).
		Columns(saleColumns...).
		Values(
			sale.ID, sale.BranchID, sale.ChargeTo, sale.TIN, sale.Address,
			sale.Date, sale.VAT, sale.AmountNetVAT, sale.TotalAmountDue, sale.Discount,
			sale.DeliveryFee, sale.IsForDelivery, sale.TransactionBy, sale.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// InsertItems writes the sale lines in one statement.
func (r *SaleRepo) InsertItems(ctx context.Context, saleID int64, items []sales.SubmissionItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.builder.Insert(saleItemTable).
		Columns("sales_information_id", "product_id", "quantity", "unit", "unit_price", "amount")
	for _, item := range items {
		q = q.Values(saleID, item.ProductID, item.Quantity, item.Unit, item.UnitPrice, item.Amount)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale items: %w", err)
	}
	return nil
}

// GetByID retrieves a sale header.
func (r *SaleRepo) GetByID(ctx context.Context, saleID int64) (*sales.Sale, error) {
	q := r.builder.Select(saleColumns...).
		From(saleTable).
		Where(squirrel.Eq{"sales_information_id": saleID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale sales.Sale
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", saleID)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &sale, nil
}

// ListByBranch retrieves sale headers of one branch, newest first.
func (r *SaleRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*sales.Sale, error) {
	q := r.builder.Select(saleColumns...).
		From(saleTable).
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("date DESC", "sales_information_id DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*sales.Sale
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	return out, nil
}

// GetItems retrieves the lines of a sale joined with product names.
func (r *SaleRepo) GetItems(ctx context.Context, saleID int64) ([]sales.SaleItem, error) {
	q := r.builder.Select(
		"i.sales_information_id", "i.product_id", "p.product_name",
		"i.quantity", "i.unit", "i.unit_price", "i.amount",
	).From(saleItemTable + " i").
		Join("products p ON p.product_id = i.product_id").
		Where(squirrel.Eq{"i.sales_information_id": saleID}).
		OrderBy("p.product_name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []sales.SaleItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select sale items: %w", err)
	}
	return items, nil
}
