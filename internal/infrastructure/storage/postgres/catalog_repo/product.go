// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories.
package catalog_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres"
)

const productTable = "products"

var productColumns = []string{
	"product_id", "category_id", "branch_id", "product_name",
	"unit", "unit_price", "unit_cost", "quantity", "threshold",
	"selling_units", "created_at", "updated_at",
}

// Compile-time check that ProductRepo implements product.Repository.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// productRow maps the products table. Selling units live in a JSONB
// column; the resolver interprets them, the repo only round-trips bytes.
type productRow struct {
	ID           id.ID     `db:"product_id"`
	CategoryID   id.ID     `db:"category_id"`
	BranchID     id.ID     `db:"branch_id"`
	Name         string    `db:"product_name"`
	Unit         string    `db:"unit"`
	UnitPrice    float64   `db:"unit_price"`
	UnitCost     float64   `db:"unit_cost"`
	Quantity     float64   `db:"quantity"`
	Threshold    float64   `db:"threshold"`
	SellingUnits []byte    `db:"selling_units"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r productRow) toDomain() (*product.Product, error) {
	p := &product.Product{
		ID:         r.ID,
		CategoryID: r.CategoryID,
		BranchID:   r.BranchID,
		Name:       r.Name,
		Unit:       r.Unit,
		UnitPrice:  r.UnitPrice,
		UnitCost:   r.UnitCost,
		Quantity:   r.Quantity,
		Threshold:  r.Threshold,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if len(r.SellingUnits) > 0 {
		if err := json.Unmarshal(r.SellingUnits, &p.SellingUnits); err != nil {
			return nil, fmt.Errorf("decode selling units for %s: %w", r.ID, err)
		}
	}
	return p, nil
}

func encodeSellingUnits(units []product.SellingUnit) ([]byte, error) {
	if len(units) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(units)
}

// Create inserts a product.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	sellingUnits, err := encodeSellingUnits(p.SellingUnits)
	if err != nil {
		return fmt.Errorf("encode selling units: %w", err)
	}

	q := r.builder.Insert(productTable).
		Columns(productColumns...).
		Values(
			p.ID, p.CategoryID, p.BranchID, p.Name,
			p.Unit, p.UnitPrice, p.UnitCost, p.Quantity, p.Threshold,
			sellingUnits, p.CreatedAt, p.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update rewrites a product record.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	sellingUnits, err := encodeSellingUnits(p.SellingUnits)
	if err != nil {
		return fmt.Errorf("encode selling units: %w", err)
	}

	q := r.builder.Update(productTable).
		Set("category_id", p.CategoryID).
		Set("product_name", p.Name).
		Set("unit", p.Unit).
		Set("unit_price", p.UnitPrice).
		Set("unit_cost", p.UnitCost).
		Set("quantity", p.Quantity).
		Set("threshold", p.Threshold).
		Set("selling_units", sellingUnits).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"product_id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

// GetByID retrieves a product.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.builder.Select(productColumns...).
		From(productTable).
		Where(squirrel.Eq{"product_id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row productRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toDomain()
}

// Delete removes a product.
func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	q := r.builder.Delete(productTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

// List returns a filtered page of products.
func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) (product.ListResult, error) {
	base := r.builder.Select().From(productTable)
	if filter.BranchID != nil {
		base = base.Where(squirrel.Eq{"branch_id": *filter.BranchID})
	}
	if filter.CategoryID != nil {
		base = base.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.Search != "" {
		base = base.Where(squirrel.ILike{"product_name": "%" + filter.Search + "%"})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = product.DefaultListFilter().Limit
	}

	result := product.ListResult{Limit: limit, Offset: filter.Offset}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count products: %w", err)
	}

	listSQL, listArgs, err := base.Columns(productColumns...).
		OrderBy("product_name").
		Limit(uint64(limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var rows []productRow
	if err := pgxscan.Select(ctx, querier, &rows, listSQL, listArgs...); err != nil {
		return result, fmt.Errorf("select products: %w", err)
	}

	result.Items = make([]*product.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return result, err
		}
		result.Items = append(result.Items, p)
	}
	return result, nil
}

// SetQuantity updates the cached stock snapshot in base units.
func (r *ProductRepo) SetQuantity(ctx context.Context, productID id.ID, quantity float64) error {
	q := r.builder.Update(productTable).
		Set("quantity", quantity).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}
