package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// memRepo is an in-memory Repository. Locking flags are ignored; tests
// exercise the FIFO math and the usage trail, not Postgres row locks.
type memRepo struct {
	nextAddID   int64
	nextUsageID int64
	batches     []*Batch
	usages      []*Usage

	// guardFailOnce makes the next UpdateBatchQuantity report a failed
	// optimistic guard.
	guardFailOnce bool
}

func newMemRepo() *memRepo {
	return &memRepo{nextAddID: 1, nextUsageID: 1}
}

func (m *memRepo) Available(_ context.Context, productID id.ID) (float64, error) {
	var sum float64
	now := time.Now()
	for _, b := range m.batches {
		if b.ProductID == productID && b.Validity.After(now) {
			sum += b.QuantityLeft
		}
	}
	return sum, nil
}

func (m *memRepo) InsertBatch(_ context.Context, b *Batch) error {
	b.AddID = m.nextAddID
	m.nextAddID++
	m.batches = append(m.batches, b)
	return nil
}

func (m *memRepo) BatchesForUpdate(_ context.Context, productID id.ID, _ bool) ([]Batch, error) {
	var out []Batch
	now := time.Now()
	for _, b := range m.batches {
		if b.ProductID == productID && b.QuantityLeft > 0 && b.Validity.After(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateBatchQuantity(_ context.Context, addID int64, newLeft, expectedLeft float64) (bool, error) {
	if m.guardFailOnce {
		m.guardFailOnce = false
		return false, nil
	}
	for _, b := range m.batches {
		if b.AddID == addID {
			if b.QuantityLeft != expectedLeft {
				return false, nil
			}
			b.QuantityLeft = newLeft
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) RestoreBatchQuantity(_ context.Context, addID int64, qty float64) error {
	for _, b := range m.batches {
		if b.AddID == addID {
			b.QuantityLeft += qty
		}
	}
	return nil
}

func (m *memRepo) InsertUsage(_ context.Context, u Usage) error {
	u.UsageID = m.nextUsageID
	m.nextUsageID++
	m.usages = append(m.usages, &u)
	return nil
}

func (m *memRepo) UsageForSale(_ context.Context, saleID int64, includeRestored bool) ([]Usage, error) {
	var out []Usage
	for _, u := range m.usages {
		if u.SaleID == saleID && (includeRestored || !u.Restored) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memRepo) HasRestoredUsage(_ context.Context, saleID int64) (bool, error) {
	for _, u := range m.usages {
		if u.SaleID == saleID && u.Restored {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) DeleteRestoredUsage(_ context.Context, saleID int64) error {
	kept := m.usages[:0]
	for _, u := range m.usages {
		if !(u.SaleID == saleID && u.Restored) {
			kept = append(kept, u)
		}
	}
	m.usages = kept
	return nil
}

func (m *memRepo) MarkUsageRestored(_ context.Context, usageID int64, at time.Time) error {
	for _, u := range m.usages {
		if u.UsageID == usageID {
			u.Restored = true
			t := at
			u.RestoredAt = &t
		}
	}
	return nil
}

func seedBatches(t *testing.T, repo *memRepo, productID id.ID, quantities ...float64) {
	t.Helper()
	base := time.Now().Add(-time.Duration(len(quantities)) * 24 * time.Hour)
	for i, q := range quantities {
		repo.batches = append(repo.batches, &Batch{
			AddID:         repo.nextAddID,
			ProductID:     productID,
			QuantityAdded: q,
			QuantityLeft:  q,
			DateAdded:     base.Add(time.Duration(i) * 24 * time.Hour),
			Validity:      time.Now().Add(365 * 24 * time.Hour),
		})
		repo.nextAddID++
	}
}

func TestDeductForSale_FIFOAcrossBatches(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	productID := id.New()
	seedBatches(t, repo, productID, 300, 500)

	require.NoError(t, svc.DeductForSale(context.Background(), 1000001, productID, 450))

	// Oldest batch drained first, remainder from the next.
	assert.Equal(t, 0.0, repo.batches[0].QuantityLeft)
	assert.Equal(t, 350.0, repo.batches[1].QuantityLeft)

	usages, err := repo.UsageForSale(context.Background(), 1000001, false)
	require.NoError(t, err)
	require.Len(t, usages, 2)
	assert.Equal(t, 300.0, usages[0].QuantityUsed)
	assert.Equal(t, 150.0, usages[1].QuantityUsed)

	available, err := svc.Available(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, available)
}

func TestDeductForSale_InsufficientStock(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	productID := id.New()
	seedBatches(t, repo, productID, 100)

	err := svc.DeductForSale(context.Background(), 1000002, productID, 250)

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestDeductForSale_NoBatches(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	err := svc.DeductForSale(context.Background(), 1000003, id.New(), 10)

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestDeductForSale_OptimisticGuard(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	productID := id.New()
	seedBatches(t, repo, productID, 100)
	repo.guardFailOnce = true

	err := svc.DeductForSale(context.Background(), 1000004, productID, 50)

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConcurrentModification, appErr.Code)
}

func TestDeductForSale_IgnoresExpiredBatches(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	productID := id.New()
	repo.batches = append(repo.batches, &Batch{
		AddID: 1, ProductID: productID, QuantityAdded: 500, QuantityLeft: 500,
		DateAdded: time.Now().Add(-48 * time.Hour),
		Validity:  time.Now().Add(-time.Hour),
	})
	repo.nextAddID = 2
	seedBatches(t, repo, productID, 200)

	require.NoError(t, svc.DeductForSale(context.Background(), 1000005, productID, 150))

	assert.Equal(t, 500.0, repo.batches[0].QuantityLeft, "expired batch untouched")
	assert.Equal(t, 50.0, repo.batches[1].QuantityLeft)
}

func TestRestoreForSale_ExactBatches(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	productID := id.New()
	seedBatches(t, repo, productID, 300, 500)
	require.NoError(t, svc.DeductForSale(context.Background(), 1000006, productID, 450))

	require.NoError(t, svc.RestoreForSale(context.Background(), 1000006, "customer cancellation"))

	assert.Equal(t, 300.0, repo.batches[0].QuantityLeft)
	assert.Equal(t, 500.0, repo.batches[1].QuantityLeft)

	// Second restore finds nothing unrestored.
	require.NoError(t, svc.RestoreForSale(context.Background(), 1000006, "retry"))
	assert.Equal(t, 300.0, repo.batches[0].QuantityLeft)
	assert.Equal(t, 500.0, repo.batches[1].QuantityLeft)
}

func TestDeductForSale_ClearsRestoredUsageOnRededuction(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	productID := id.New()
	seedBatches(t, repo, productID, 1000)
	ctx := context.Background()

	require.NoError(t, svc.DeductForSale(ctx, 1000007, productID, 400))
	require.NoError(t, svc.RestoreForSale(ctx, 1000007, "edit"))
	require.NoError(t, svc.DeductForSale(ctx, 1000007, productID, 250))

	all, err := repo.UsageForSale(ctx, 1000007, true)
	require.NoError(t, err)
	require.Len(t, all, 1, "restored rows dropped before re-deduction")
	assert.Equal(t, 250.0, all[0].QuantityUsed)
	assert.Equal(t, 750.0, repo.batches[0].QuantityLeft)
}

func TestReceive(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	productID := id.New()

	b, err := svc.Receive(context.Background(), productID, 500, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 500.0, b.QuantityLeft)
	assert.NotZero(t, b.AddID)

	_, err = svc.Receive(context.Background(), productID, 0, time.Now())
	require.Error(t, err)
}
