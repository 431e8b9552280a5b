package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

func completeRow(amount float64) Row {
	return Row{ID: id.New(), ProductID: id.New(), Quantity: 1, Unit: "pcs", Amount: amount}
}

func TestNetAmount_SkipsIncompleteRows(t *testing.T) {
	rows := []Row{
		completeRow(100.005),
		{ID: id.New(), Quantity: 3, Unit: "pcs", Amount: 500}, // no product picked yet
		completeRow(50.00),
		{ID: id.New(), ProductID: id.New(), Unit: "pcs", Amount: 500}, // no quantity
	}

	assert.Equal(t, 150.01, NetAmount(rows))
}

func TestComputeTotals_VATRoundedIntoTotal(t *testing.T) {
	net := NetAmount([]Row{completeRow(100.005), completeRow(50.00)})

	totals := ComputeTotals(net, 0, 0, false)

	assert.Equal(t, 150.01, totals.NetAmount)
	// Stored VAT stays unrounded; the rounded figure feeds the grand total.
	assert.InDelta(t, 18.0012, totals.VAT, 1e-9)
	assert.Equal(t, 168.01, totals.TotalAmountDue)
}

func TestComputeTotals_DeliveryFee(t *testing.T) {
	withDelivery := ComputeTotals(1000, 200, 0, true)
	assert.Equal(t, 1320.00, withDelivery.TotalAmountDue)

	// A stale fee from a previous toggle must not leak into the total.
	withoutDelivery := ComputeTotals(1000, 200, 0, false)
	assert.Equal(t, 1120.00, withoutDelivery.TotalAmountDue)
}

func TestComputeTotals_DiscountAndClamp(t *testing.T) {
	discounted := ComputeTotals(100, 0, 12, false)
	assert.Equal(t, 100.00, discounted.TotalAmountDue)

	// Discount beyond the payable amount clamps at zero.
	clamped := ComputeTotals(100, 0, 5000, false)
	assert.Equal(t, 0.00, clamped.TotalAmountDue)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(0, 0, 0, false)

	assert.Equal(t, 0.00, totals.NetAmount)
	assert.Equal(t, 0.00, totals.VAT)
	assert.Equal(t, 0.00, totals.TotalAmountDue)
}
