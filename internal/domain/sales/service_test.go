package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSaleRepo struct {
	headers map[int64]*Sale
	items   map[int64][]SubmissionItem
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{headers: map[int64]*Sale{}, items: map[int64][]SubmissionItem{}}
}

func (f *fakeSaleRepo) IDExists(_ context.Context, saleID int64) (bool, error) {
	_, ok := f.headers[saleID]
	return ok, nil
}

func (f *fakeSaleRepo) InsertHeader(_ context.Context, sale *Sale) error {
	f.headers[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepo) InsertItems(_ context.Context, saleID int64, items []SubmissionItem) error {
	f.items[saleID] = items
	return nil
}

func (f *fakeSaleRepo) GetByID(_ context.Context, saleID int64) (*Sale, error) {
	sale, ok := f.headers[saleID]
	if !ok {
		return nil, apperror.NewNotFound("sale", saleID)
	}
	return sale, nil
}

func (f *fakeSaleRepo) ListByBranch(_ context.Context, branchID id.ID) ([]*Sale, error) {
	var out []*Sale
	for _, s := range f.headers {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) GetItems(_ context.Context, saleID int64) ([]SaleItem, error) {
	var out []SaleItem
	for _, it := range f.items[saleID] {
		out = append(out, SaleItem{
			SaleID:    saleID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
			Amount:    it.Amount,
		})
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[id.ID]*product.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *product.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, productID id.ID) error {
	delete(f.products, productID)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, _ product.ListFilter) (product.ListResult, error) {
	return product.ListResult{}, nil
}

func (f *fakeProductRepo) SetQuantity(_ context.Context, productID id.ID, quantity float64) error {
	if p, ok := f.products[productID]; ok {
		p.Quantity = quantity
	}
	return nil
}

// fakeStockRepo backs a real stock.Service with in-memory batches.
type fakeStockRepo struct {
	nextAddID   int64
	nextUsageID int64
	batches     []*stock.Batch
	usages      []*stock.Usage
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{nextAddID: 1, nextUsageID: 1}
}

func (m *fakeStockRepo) Available(_ context.Context, productID id.ID) (float64, error) {
	var sum float64
	for _, b := range m.batches {
		if b.ProductID == productID {
			sum += b.QuantityLeft
		}
	}
	return sum, nil
}

func (m *fakeStockRepo) InsertBatch(_ context.Context, b *stock.Batch) error {
	b.AddID = m.nextAddID
	m.nextAddID++
	m.batches = append(m.batches, b)
	return nil
}

func (m *fakeStockRepo) BatchesForUpdate(_ context.Context, productID id.ID, _ bool) ([]stock.Batch, error) {
	var out []stock.Batch
	for _, b := range m.batches {
		if b.ProductID == productID && b.QuantityLeft > 0 {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *fakeStockRepo) UpdateBatchQuantity(_ context.Context, addID int64, newLeft, expectedLeft float64) (bool, error) {
	for _, b := range m.batches {
		if b.AddID == addID && b.QuantityLeft == expectedLeft {
			b.QuantityLeft = newLeft
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeStockRepo) RestoreBatchQuantity(_ context.Context, addID int64, qty float64) error {
	for _, b := range m.batches {
		if b.AddID == addID {
			b.QuantityLeft += qty
		}
	}
	return nil
}

func (m *fakeStockRepo) InsertUsage(_ context.Context, u stock.Usage) error {
	u.UsageID = m.nextUsageID
	m.nextUsageID++
	m.usages = append(m.usages, &u)
	return nil
}

func (m *fakeStockRepo) UsageForSale(_ context.Context, saleID int64, includeRestored bool) ([]stock.Usage, error) {
	var out []stock.Usage
	for _, u := range m.usages {
		if u.SaleID == saleID && (includeRestored || !u.Restored) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *fakeStockRepo) HasRestoredUsage(_ context.Context, saleID int64) (bool, error) {
	for _, u := range m.usages {
		if u.SaleID == saleID && u.Restored {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeStockRepo) DeleteRestoredUsage(_ context.Context, saleID int64) error {
	kept := m.usages[:0]
	for _, u := range m.usages {
		if !(u.SaleID == saleID && u.Restored) {
			kept = append(kept, u)
		}
	}
	m.usages = kept
	return nil
}

func (m *fakeStockRepo) MarkUsageRestored(_ context.Context, usageID int64, at time.Time) error {
	for _, u := range m.usages {
		if u.UsageID == usageID {
			u.Restored = true
			t := at
			u.RestoredAt = &t
		}
	}
	return nil
}

type saleFixture struct {
	svc       *Service
	saleRepo  *fakeSaleRepo
	products  *fakeProductRepo
	stockRepo *fakeStockRepo
}

func newSaleFixture(products ...*product.Product) *saleFixture {
	f := &saleFixture{
		saleRepo:  newFakeSaleRepo(),
		products:  &fakeProductRepo{products: map[id.ID]*product.Product{}},
		stockRepo: newFakeStockRepo(),
	}
	for _, p := range products {
		f.products.products[p.ID] = p
	}
	f.svc = NewService(f.saleRepo, f.products, stock.NewService(f.stockRepo), passthroughTx{})
	return f
}

func (f *saleFixture) addBatch(productID id.ID, qty float64) {
	f.stockRepo.batches = append(f.stockRepo.batches, &stock.Batch{
		AddID: f.stockRepo.nextAddID, ProductID: productID,
		QuantityAdded: qty, QuantityLeft: qty,
		DateAdded: time.Now().Add(-time.Duration(f.stockRepo.nextAddID) * time.Hour),
	})
	f.stockRepo.nextAddID++
}

func validSubmission(p *product.Product, qty float64) Submission {
	amount := qty * 7
	return Submission{
		Header: SubmissionHeader{
			ChargeTo: "Walk-in", Date: time.Now(),
			BranchID: id.New(), UserID: id.New(),
			AmountNetVAT: amount, VAT: amount * 0.12, TotalAmountDue: amount * 1.12,
		},
		Items: []SubmissionItem{
			{ProductID: p.ID, Quantity: qty, Unit: "kg", UnitPrice: 7, Amount: amount},
		},
	}
}

func TestServiceCreate_DeductsBaseUnits(t *testing.T) {
	p := cement(5000)
	f := newSaleFixture(p)
	f.addBatch(p.ID, 5000)

	sale, err := f.svc.Create(context.Background(), validSubmission(p, 3))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, sale.ID, int64(1000000))
	assert.Less(t, sale.ID, int64(10000000))

	// 3 kg at ratio 1000 consumes 3000 g.
	remaining, err := f.stockRepo.Available(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, remaining)
	assert.Equal(t, 2000.0, f.products.products[p.ID].Quantity, "cached quantity re-synced")

	items, err := f.svc.GetItems(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kg", items[0].Unit)
}

func TestServiceCreate_InsufficientStock(t *testing.T) {
	p := cement(5000)
	f := newSaleFixture(p)
	f.addBatch(p.ID, 5000)

	_, err := f.svc.Create(context.Background(), validSubmission(p, 6))

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Empty(t, f.saleRepo.headers, "nothing persisted on shortage")
}

func TestServiceCreate_RejectsInvalidSubmission(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Create(context.Background(), Submission{})

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestServiceCreate_UnknownUnitFallsBackToRatioOne(t *testing.T) {
	p := &product.Product{
		ID: id.New(), Name: "Legacy Paint", Quantity: 50,
		Unit: "can", UnitPrice: 120,
	}
	f := newSaleFixture(p)
	f.addBatch(p.ID, 50)

	sub := validSubmission(p, 4)
	sub.Items[0].Unit = "can"
	_, err := f.svc.Create(context.Background(), sub)
	require.NoError(t, err)

	remaining, _ := f.stockRepo.Available(context.Background(), p.ID)
	assert.Equal(t, 46.0, remaining)
}

func TestServiceCancel_RestoresStockAndQuantity(t *testing.T) {
	p := cement(5000)
	f := newSaleFixture(p)
	f.addBatch(p.ID, 5000)

	sale, err := f.svc.Create(context.Background(), validSubmission(p, 3))
	require.NoError(t, err)
	require.Equal(t, 2000.0, f.products.products[p.ID].Quantity)

	require.NoError(t, f.svc.Cancel(context.Background(), sale.ID, "customer changed mind"))

	remaining, _ := f.stockRepo.Available(context.Background(), p.ID)
	assert.Equal(t, 5000.0, remaining)
	assert.Equal(t, 5000.0, f.products.products[p.ID].Quantity)
}

func TestServiceCancel_UnknownSale(t *testing.T) {
	f := newSaleFixture()

	err := f.svc.Cancel(context.Background(), 9999999, "nope")

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
