package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

func structuredProduct() *Product {
	return &Product{
		ID:       id.New(),
		BranchID: id.New(),
		Name:     "Portland Cement",
		Quantity: 5000,
		SellingUnits: []SellingUnit{
			{Unit: "sack", UnitPrice: 250, BaseQuantityPerSellUnit: 40},
			{Unit: "kg", UnitPrice: 7, BaseQuantityPerSellUnit: 1, IsBase: true},
			{Unit: "bag", UnitPrice: 120, BaseQuantityPerSellUnit: 20},
		},
	}
}

func TestResolve_OrdersBaseFirstThenAlphabetical(t *testing.T) {
	resolved := Resolve(structuredProduct())

	require.Len(t, resolved, 3)
	assert.True(t, resolved[0].IsBase)
	assert.Equal(t, "kg", resolved[0].Unit)
	assert.Equal(t, "bag", resolved[1].Unit)
	assert.Equal(t, "sack", resolved[2].Unit)
}

func TestResolve_DropsMalformedEntriesSilently(t *testing.T) {
	p := structuredProduct()
	p.SellingUnits = append(p.SellingUnits,
		SellingUnit{Unit: "  ", UnitPrice: 10, BaseQuantityPerSellUnit: 1},
		SellingUnit{Unit: "box", UnitPrice: 0, BaseQuantityPerSellUnit: 5},
		SellingUnit{Unit: "pail", UnitPrice: 90, BaseQuantityPerSellUnit: -2},
	)

	resolved := Resolve(p)

	require.Len(t, resolved, 3)
	for _, su := range resolved {
		assert.NotEmpty(t, su.Unit)
		assert.Greater(t, su.UnitPrice, float64(0))
		assert.Greater(t, su.BaseQuantityPerSellUnit, float64(0))
	}
}

func TestResolve_TrimsUnitNames(t *testing.T) {
	p := &Product{
		Name: "Nails",
		SellingUnits: []SellingUnit{
			{Unit: " kg ", UnitPrice: 90, BaseQuantityPerSellUnit: 1, IsBase: true},
		},
	}

	resolved := Resolve(p)
	require.Len(t, resolved, 1)
	assert.Equal(t, "kg", resolved[0].Unit)
}

func TestResolve_LegacyScalarFallback(t *testing.T) {
	p := &Product{Name: "Plywood", Unit: "sheet", UnitPrice: 450}

	resolved := Resolve(p)

	require.Len(t, resolved, 1)
	assert.Equal(t, SellingUnit{Unit: "sheet", UnitPrice: 450, BaseQuantityPerSellUnit: 1, IsBase: true}, resolved[0])
}

func TestResolve_NothingUsableYieldsEmptyList(t *testing.T) {
	p := &Product{
		Name:         "Broken record",
		Unit:         "",
		SellingUnits: []SellingUnit{{Unit: "", UnitPrice: 10, BaseQuantityPerSellUnit: 1}},
	}

	assert.Empty(t, Resolve(p))
	assert.Empty(t, Resolve(&Product{Name: "No units", Unit: "kg", UnitPrice: 0}))
	assert.Empty(t, Resolve(nil))
}

func TestResolve_Idempotent(t *testing.T) {
	p := structuredProduct()
	first := Resolve(p)

	// Re-feed a product already carrying a resolved list.
	p2 := &Product{Name: p.Name, SellingUnits: first}
	second := Resolve(p2)

	assert.Equal(t, first, second)
}

func TestBaseEntry(t *testing.T) {
	resolved := Resolve(structuredProduct())
	base, ok := BaseEntry(resolved)
	require.True(t, ok)
	assert.Equal(t, "kg", base.Unit)

	// No base flag falls back to the first entry.
	noBase := []SellingUnit{
		{Unit: "bag", UnitPrice: 120, BaseQuantityPerSellUnit: 20},
		{Unit: "sack", UnitPrice: 250, BaseQuantityPerSellUnit: 40},
	}
	first, ok := BaseEntry(noBase)
	require.True(t, ok)
	assert.Equal(t, "bag", first.Unit)

	_, ok = BaseEntry(nil)
	assert.False(t, ok)
}

func TestSyncWithBase_ForcesBaseEntryFirst(t *testing.T) {
	entries := []SellingUnit{
		{Unit: "kg", UnitPrice: 7, BaseQuantityPerSellUnit: 1, IsBase: true},
		{Unit: "sack", UnitPrice: 250, BaseQuantityPerSellUnit: 40},
		{Unit: "bag", UnitPrice: 120, BaseQuantityPerSellUnit: 20},
	}

	out := SyncWithBase(entries, "g", 0.01)

	require.NotEmpty(t, out)
	assert.Equal(t, SellingUnit{Unit: "g", UnitPrice: 0.01, BaseQuantityPerSellUnit: 1, IsBase: true}, out[0])
}

func TestSyncWithBase_DropsCollisionsAndDuplicates(t *testing.T) {
	entries := []SellingUnit{
		{Unit: "kg", UnitPrice: 7, BaseQuantityPerSellUnit: 1, IsBase: true},
		{Unit: "bag", UnitPrice: 120, BaseQuantityPerSellUnit: 20},
		{Unit: "bag ", UnitPrice: 130, BaseQuantityPerSellUnit: 25},
		{Unit: "sack", UnitPrice: 250, BaseQuantityPerSellUnit: 40},
	}

	out := SyncWithBase(entries, "sack", 240)

	require.Len(t, out, 2)
	assert.Equal(t, "sack", out[0].Unit)
	assert.True(t, out[0].IsBase)
	assert.Equal(t, "bag", out[1].Unit)
	assert.Equal(t, float64(120), out[1].UnitPrice) // first occurrence kept
}

func TestSyncWithBase_PreservesPlaceholders(t *testing.T) {
	entries := []SellingUnit{
		{Unit: "bag", UnitPrice: 120, BaseQuantityPerSellUnit: 20},
		{Unit: "", UnitPrice: 0, BaseQuantityPerSellUnit: 0}, // admin still typing
	}

	out := SyncWithBase(entries, "kg", 7)

	require.Len(t, out, 3)
	assert.Equal(t, "kg", out[0].Unit)
	assert.Equal(t, "bag", out[1].Unit)
	assert.Equal(t, "", out[2].Unit)
}

func TestSyncWithBase_EmptyBaseKeepsOnlyNonBase(t *testing.T) {
	entries := []SellingUnit{
		{Unit: "kg", UnitPrice: 7, BaseQuantityPerSellUnit: 1, IsBase: true},
		{Unit: "bag", UnitPrice: 120, BaseQuantityPerSellUnit: 20},
	}

	out := SyncWithBase(entries, "", 0)

	require.Len(t, out, 1)
	assert.Equal(t, "bag", out[0].Unit)
	assert.False(t, out[0].IsBase)
}
