// Package register_repo provides PostgreSQL implementations for register
// repositories.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres"
)

const (
	addStockTable = "add_stocks"
	usageTable    = "sales_stock_usage"
)

var batchColumns = []string{
	"add_id", "product_id", "quantity_added", "quantity_left",
	"date_added", "product_validity",
}

// Compile-time check that StockRepo implements stock.Repository.
var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Available returns the summed quantity_left of non-expired batches.
func (r *StockRepo) Available(ctx context.Context, productID id.ID) (float64, error) {
	q := r.builder.Select("COALESCE(SUM(quantity_left), 0)").
		From(addStockTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Gt{"quantity_left": 0}).
		Where(squirrel.Gt{"product_validity": time.Now()})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var available float64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&available); err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return available, nil
}

// InsertBatch records a stock receipt.
func (r *StockRepo) InsertBatch(ctx context.Context, b *stock.Batch) error {
	q := r.builder.Insert(addStockTable).
		Columns("product_id", "quantity_added", "quantity_left", "date_added", "product_validity").
		Values(b.ProductID, b.QuantityAdded, b.QuantityLeft, b.DateAdded, b.Validity).
		Suffix("RETURNING add_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&b.AddID); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// BatchesForUpdate returns non-expired batches with remaining stock in
// FIFO order, row-locked for the current transaction. Squirrel has no
// suffix for lock clauses with SKIP LOCKED, so the query is assembled and
// the clause appended.
func (r *StockRepo) BatchesForUpdate(ctx context.Context, productID id.ID, skipLocked bool) ([]stock.Batch, error) {
	q := r.builder.Select(batchColumns...).
		From(addStockTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Gt{"quantity_left": 0}).
		Where(squirrel.Gt{"product_validity": time.Now()}).
		OrderBy("date_added", "product_validity", "add_id")

	if skipLocked {
		q = q.Suffix("FOR UPDATE SKIP LOCKED")
	} else {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var batches []stock.Batch
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &batches, sql, args...); err != nil {
		return nil, fmt.Errorf("lock batches: %w", err)
	}
	return batches, nil
}

// UpdateBatchQuantity sets a batch's remaining quantity guarded by the
// previously observed value.
func (r *StockRepo) UpdateBatchQuantity(ctx context.Context, addID int64, newLeft, expectedLeft float64) (bool, error) {
	q := r.builder.Update(addStockTable).
		Set("quantity_left", newLeft).
		Where(squirrel.Eq{"add_id": addID}).
		Where(squirrel.Eq{"quantity_left": expectedLeft})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("update batch: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RestoreBatchQuantity adds a quantity back to a batch.
func (r *StockRepo) RestoreBatchQuantity(ctx context.Context, addID int64, qty float64) error {
	q := r.builder.Update(addStockTable).
		Set("quantity_left", squirrel.Expr("quantity_left + ?", qty)).
		Where(squirrel.Eq{"add_id": addID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("restore batch: %w", err)
	}
	return nil
}

// InsertUsage records one batch consumption of a sale.
func (r *StockRepo) InsertUsage(ctx context.Context, u stock.Usage) error {
	q := r.builder.Insert(usageTable).
		Columns("sales_information_id", "product_id", "add_stock_id", "quantity_used", "is_restored").
		Values(u.SaleID, u.ProductID, u.AddStockID, u.QuantityUsed, false)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert usage: %w", err)
	}
	return nil
}

// UsageForSale returns the usage trail of a sale, oldest first.
func (r *StockRepo) UsageForSale(ctx context.Context, saleID int64, includeRestored bool) ([]stock.Usage, error) {
	q := r.builder.Select(
		"usage_id", "sales_information_id", "product_id",
		"add_stock_id", "quantity_used", "is_restored", "restored_date",
	).From(usageTable).
		Where(squirrel.Eq{"sales_information_id": saleID}).
		OrderBy("usage_id")

	if !includeRestored {
		q = q.Where(squirrel.Eq{"is_restored": false})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var usages []stock.Usage
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &usages, sql, args...); err != nil {
		return nil, fmt.Errorf("select usage: %w", err)
	}
	return usages, nil
}

// HasRestoredUsage reports whether a sale has any restored usage rows.
func (r *StockRepo) HasRestoredUsage(ctx context.Context, saleID int64) (bool, error) {
	q := r.builder.Select("COUNT(*)").
		From(usageTable).
		Where(squirrel.Eq{"sales_information_id": saleID}).
		Where(squirrel.Eq{"is_restored": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check restored usage: %w", err)
	}
	return count > 0, nil
}

// DeleteRestoredUsage clears restored usage rows before a re-deduction.
func (r *StockRepo) DeleteRestoredUsage(ctx context.Context, saleID int64) error {
	q := r.builder.Delete(usageTable).
		Where(squirrel.Eq{"sales_information_id": saleID}).
		Where(squirrel.Eq{"is_restored": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete restored usage: %w", err)
	}
	return nil
}

// MarkUsageRestored flags a usage row as returned to its batch.
func (r *StockRepo) MarkUsageRestored(ctx context.Context, usageID int64, at time.Time) error {
	q := r.builder.Update(usageTable).
		Set("is_restored", true).
		Set("restored_date", at).
		Where(squirrel.Eq{"usage_id": usageID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("mark usage restored: %w", err)
	}
	return nil
}
