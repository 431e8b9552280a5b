package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/units"
)

func newCalc() *Calculator {
	return NewCalculator(units.NewRegistry())
}

// cement: stock tracked in grams, sold per kg or per 25kg sack.
func cement(stockGrams float64) *product.Product {
	return &product.Product{
		ID:       id.New(),
		Name:     "Portland Cement",
		Quantity: stockGrams,
		SellingUnits: []product.SellingUnit{
			{Unit: "kg", UnitPrice: 7, BaseQuantityPerSellUnit: 1000, IsBase: false},
			{Unit: "g", UnitPrice: 0.01, BaseQuantityPerSellUnit: 1, IsBase: true},
		},
	}
}

func TestComputeRow_MissingProduct(t *testing.T) {
	calc := newCalc()
	row := Row{ID: id.New(), ProductID: id.New(), Quantity: 3, Unit: "kg", Amount: 99}

	got, violation, exceeded := calc.ComputeRow(row, nil, 0)

	assert.Equal(t, float64(0), got.Amount)
	assert.Nil(t, violation)
	assert.False(t, exceeded)
	assert.Equal(t, row.Quantity, got.Quantity, "row otherwise unchanged")
}

func TestComputeRow_DefaultsToBaseUnit(t *testing.T) {
	calc := newCalc()
	p := cement(5000)
	row := Row{ID: id.New(), ProductID: p.ID, Quantity: 100}

	got, violation, exceeded := calc.ComputeRow(row, p, p.Quantity)

	require.Nil(t, violation)
	assert.False(t, exceeded)
	assert.Equal(t, "g", got.Unit)
	assert.Equal(t, 0.01, got.UnitPrice)
	assert.Equal(t, float64(1), got.BaseQuantityPerSellUnit)
	assert.Equal(t, 1.00, got.Amount)
}

func TestComputeRow_RefreshesPriceAndRatio(t *testing.T) {
	calc := newCalc()
	p := cement(5000)
	// Client-held values are stale garbage.
	row := Row{ID: id.New(), ProductID: p.ID, Quantity: 2, Unit: "kg", UnitPrice: 999, BaseQuantityPerSellUnit: 5}

	got, violation, _ := calc.ComputeRow(row, p, p.Quantity)

	require.Nil(t, violation)
	assert.Equal(t, float64(7), got.UnitPrice)
	assert.Equal(t, float64(1000), got.BaseQuantityPerSellUnit)
	assert.Equal(t, 14.00, got.Amount)
}

func TestComputeRow_GranularityViolation(t *testing.T) {
	calc := newCalc()
	p := cement(1e7)

	// 1.5 kg is 1500 g, fine.
	got, violation, _ := calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 1.5, Unit: "kg"}, p, p.Quantity)
	require.Nil(t, violation)
	assert.Equal(t, 10.50, got.Amount)

	// 1.5005 kg is 1500.5 g, off grid.
	got, violation, _ = calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 1.5005, Unit: "kg"}, p, p.Quantity)
	require.NotNil(t, violation)
	assert.Equal(t, "kg", violation.Unit)
	assert.Equal(t, 0.001, violation.MinIncrement)
	assert.Contains(t, violation.Message, "0.001 kg (1 g)")
	assert.Equal(t, float64(0), got.Amount, "invalid row is excluded from totals")
}

func TestComputeRow_FreeFormUnitSkipsGranularity(t *testing.T) {
	calc := newCalc()
	p := &product.Product{
		ID:       id.New(),
		Name:     "Rebar offcut",
		Quantity: 100,
		SellingUnits: []product.SellingUnit{
			{Unit: "bundle", UnitPrice: 350, BaseQuantityPerSellUnit: 10, IsBase: true},
		},
	}

	got, violation, exceeded := calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 2.5, Unit: "bundle"}, p, p.Quantity)

	assert.Nil(t, violation, "units outside the registry carry no granularity rules")
	assert.False(t, exceeded)
	assert.Equal(t, 875.00, got.Amount)
}

func TestComputeRow_StockExceeded(t *testing.T) {
	calc := newCalc()
	// 5000 g available, selling unit kg with ratio 1000: max sellable 5 kg.
	p := cement(5000)

	_, _, exceeded := calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 6, Unit: "kg"}, p, p.Quantity)
	assert.True(t, exceeded)

	_, _, exceeded = calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 4, Unit: "kg"}, p, p.Quantity)
	assert.False(t, exceeded)

	// Exactly at the limit is not exceeded.
	_, _, exceeded = calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 5, Unit: "kg"}, p, p.Quantity)
	assert.False(t, exceeded)
}

func TestComputeRow_StockCheckRunsDespiteViolation(t *testing.T) {
	calc := newCalc()
	p := cement(5000)

	_, violation, exceeded := calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 6.0005, Unit: "kg"}, p, p.Quantity)

	require.NotNil(t, violation)
	assert.True(t, exceeded, "stock check is independent of granularity validation")
}

func TestComputeRow_NoSellableUnits(t *testing.T) {
	calc := newCalc()
	p := &product.Product{ID: id.New(), Name: "Unmigrated", Quantity: 50}

	got, violation, exceeded := calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 3, Unit: "pcs"}, p, p.Quantity)

	assert.Equal(t, float64(0), got.Amount)
	assert.Nil(t, violation)
	assert.False(t, exceeded)
}

func TestComputeRow_Idempotent(t *testing.T) {
	calc := newCalc()
	p := cement(5000)
	row := Row{ID: id.New(), ProductID: p.ID, Quantity: 2.5, Unit: "kg"}

	r1, v1, e1 := calc.ComputeRow(row, p, p.Quantity)
	r2, v2, e2 := calc.ComputeRow(r1, p, p.Quantity)

	assert.Equal(t, r1, r2)
	assert.Equal(t, v1, v2)
	assert.Equal(t, e1, e2)
}

func TestComputeRow_DoesNotMutateProduct(t *testing.T) {
	calc := newCalc()
	p := cement(5000)
	before := *p
	beforeUnits := append([]product.SellingUnit(nil), p.SellingUnits...)

	_, _, _ = calc.ComputeRow(Row{ID: id.New(), ProductID: p.ID, Quantity: 2, Unit: "kg"}, p, p.Quantity)

	assert.Equal(t, before.Quantity, p.Quantity)
	assert.Equal(t, beforeUnits, p.SellingUnits)
}
